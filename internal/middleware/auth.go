package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/PranayKumarReddyW/Backend/internal/auth"
	"github.com/PranayKumarReddyW/Backend/internal/models"
	"github.com/PranayKumarReddyW/Backend/internal/utils"
)

type contextKey string

// PrincipalKey holds the authenticated principal (*models.User,
// *models.Coordinator or *models.Admin depending on the guard).
const PrincipalKey contextKey = "principal"

const (
	RoleStudent     = "Student"
	RoleCoordinator = "Coordinator"
	RoleAdmin       = "Admin"
)

// AuthMiddleware is a single role guard parameterized by the expected
// role claim; each role loads its principal from its own collection.
type AuthMiddleware struct {
	secret       string
	timeout      time.Duration
	users        *mongo.Collection
	coordinators *mongo.Collection
	admins       *mongo.Collection
}

func NewAuthMiddleware(client *mongo.Client, dbName, secret string) *AuthMiddleware {
	db := client.Database(dbName)
	return &AuthMiddleware{
		secret:       secret,
		timeout:      5 * time.Second,
		users:        db.Collection("users"),
		coordinators: db.Collection("coordinators"),
		admins:       db.Collection("admins"),
	}
}

// authResult is the tagged outcome of a guard: either a principal, or
// the status/message the guard should answer with.
type authResult struct {
	principal interface{}
	status    int
	message   string
}

func (res authResult) ok() bool { return res.principal != nil }

func (m *AuthMiddleware) authenticate(r *http.Request, role string) authResult {
	cookie, err := r.Cookie("token")
	if err != nil {
		return authResult{status: http.StatusUnauthorized, message: "Please login!"}
	}

	claims, err := auth.ValidateJWT(m.secret, cookie.Value)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return authResult{status: http.StatusUnauthorized, message: "Session expired, please login again!"}
		}
		return authResult{status: http.StatusBadRequest, message: "Invalid token!"}
	}

	if claims.Role != role {
		return authResult{status: http.StatusForbidden, message: "Access denied"}
	}

	id, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return authResult{status: http.StatusBadRequest, message: "Invalid token!"}
	}

	ctx, cancel := context.WithTimeout(r.Context(), m.timeout)
	defer cancel()

	principal, err := m.loadPrincipal(ctx, role, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return authResult{status: http.StatusNotFound, message: roleNotFound(role)}
		}
		return authResult{status: http.StatusInternalServerError, message: "Server error"}
	}
	return authResult{principal: principal}
}

func (m *AuthMiddleware) loadPrincipal(ctx context.Context, role string, id primitive.ObjectID) (interface{}, error) {
	filter := bson.M{"_id": id}
	switch role {
	case RoleStudent:
		var user models.User
		if err := m.users.FindOne(ctx, filter).Decode(&user); err != nil {
			return nil, err
		}
		return &user, nil
	case RoleCoordinator:
		var coordinator models.Coordinator
		if err := m.coordinators.FindOne(ctx, filter).Decode(&coordinator); err != nil {
			return nil, err
		}
		return &coordinator, nil
	case RoleAdmin:
		var admin models.Admin
		if err := m.admins.FindOne(ctx, filter).Decode(&admin); err != nil {
			return nil, err
		}
		return &admin, nil
	}
	return nil, mongo.ErrNoDocuments
}

func roleNotFound(role string) string {
	switch role {
	case RoleStudent:
		return "User not found"
	case RoleCoordinator:
		return "Coordinator not found"
	default:
		return "Admin not found"
	}
}

func (m *AuthMiddleware) require(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := m.authenticate(r, role)
		if !res.ok() {
			utils.WriteMessage(w, res.status, res.message)
			return
		}
		ctx := context.WithValue(r.Context(), PrincipalKey, res.principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) Student(next http.Handler) http.Handler {
	return m.require(RoleStudent, next)
}

func (m *AuthMiddleware) Coordinator(next http.Handler) http.Handler {
	return m.require(RoleCoordinator, next)
}

func (m *AuthMiddleware) Admin(next http.Handler) http.Handler {
	return m.require(RoleAdmin, next)
}

// CoordinatorOrAdmin grants access when either guard succeeds,
// answering with the admin guard's failure when both miss.
func (m *AuthMiddleware) CoordinatorOrAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := m.authenticate(r, RoleCoordinator)
		if !res.ok() {
			res = m.authenticate(r, RoleAdmin)
		}
		if !res.ok() {
			utils.WriteMessage(w, res.status, res.message)
			return
		}
		ctx := context.WithValue(r.Context(), PrincipalKey, res.principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the authenticated student, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(PrincipalKey).(*models.User)
	return user, ok
}

// CoordinatorFromContext returns the authenticated coordinator, if any.
func CoordinatorFromContext(ctx context.Context) (*models.Coordinator, bool) {
	coordinator, ok := ctx.Value(PrincipalKey).(*models.Coordinator)
	return coordinator, ok
}

// AdminFromContext returns the authenticated admin, if any.
func AdminFromContext(ctx context.Context) (*models.Admin, bool) {
	admin, ok := ctx.Value(PrincipalKey).(*models.Admin)
	return admin, ok
}
