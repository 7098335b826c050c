package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PranayKumarReddyW/Backend/internal/auth"
)

const testSecret = "middleware-test-secret"

// guardOnly builds a middleware whose DB is never reached by the cases
// under test: every request fails before the principal load.
func guardOnly() *AuthMiddleware {
	return &AuthMiddleware{secret: testSecret, timeout: time.Second}
}

func nextHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(t *testing.T, handler http.Handler, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: cookie})
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["message"]
}

func TestGuardMissingCookie(t *testing.T) {
	var called bool
	rec := doRequest(t, guardOnly().Student(nextHandler(&called)), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Please login!", message(t, rec))
	assert.False(t, called)
}

func TestGuardExpiredToken(t *testing.T) {
	claims := &auth.Claims{
		ID:   "65f000000000000000000001",
		Role: RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	var called bool
	rec := doRequest(t, guardOnly().Student(nextHandler(&called)), token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Session expired, please login again!", message(t, rec))
	assert.False(t, called)
}

func TestGuardMalformedToken(t *testing.T) {
	var called bool
	rec := doRequest(t, guardOnly().Student(nextHandler(&called)), "garbage")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid token!", message(t, rec))
	assert.False(t, called)
}

func TestGuardRoleMismatch(t *testing.T) {
	token, err := auth.GenerateJWT(testSecret, "65f000000000000000000001", RoleStudent)
	require.NoError(t, err)

	var called bool
	rec := doRequest(t, guardOnly().Admin(nextHandler(&called)), token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied", message(t, rec))
	assert.False(t, called)
}

func TestCoordinatorOrAdminBothFail(t *testing.T) {
	// A student token fails the coordinator guard and then the admin
	// guard; the admin guard's failure is what the client sees.
	token, err := auth.GenerateJWT(testSecret, "65f000000000000000000001", RoleStudent)
	require.NoError(t, err)

	var called bool
	rec := doRequest(t, guardOnly().CoordinatorOrAdmin(nextHandler(&called)), token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}
