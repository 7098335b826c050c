package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/PranayKumarReddyW/Backend/internal/auth"
	"github.com/PranayKumarReddyW/Backend/internal/middleware"
	"github.com/PranayKumarReddyW/Backend/internal/models"
	"github.com/PranayKumarReddyW/Backend/internal/utils"
)

type AdminHandler struct {
	collection *mongo.Collection
	jwtSecret  string
}

func NewAdminHandler(client *mongo.Client, dbName, jwtSecret string) *AdminHandler {
	return &AdminHandler{
		collection: client.Database(dbName).Collection("admins"),
		jwtSecret:  jwtSecret,
	}
}

// RegisterAdmin creates the single system admin. A second registration
// always fails with 403 regardless of payload.
func (h *AdminHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		PhoneNumber string `json:"phoneNumber"`
		Password    string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := h.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Printf("count admins: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if count > 0 {
		utils.WriteMessage(w, http.StatusForbidden, "Admin already exists")
		return
	}

	if body.Name == "" || body.Email == "" || body.PhoneNumber == "" || body.Password == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	admin := models.Admin{
		ID:          primitive.NewObjectID(),
		Name:        body.Name,
		Email:       body.Email,
		PhoneNumber: body.PhoneNumber,
		Password:    body.Password,
		CreatedAt:   time.Now(),
	}
	if err := admin.HashPassword(); err != nil {
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	if _, err := h.collection.InsertOne(ctx, admin); err != nil {
		log.Printf("insert admin: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Admin registered successfully",
		"admin":   admin,
	})
}

// LoginAdmin issues a 1-hour session cookie with the Admin role claim.
func (h *AdminHandler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if credentials.Email == "" || credentials.Password == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var admin models.Admin
	err := h.collection.FindOne(ctx, bson.M{"email": credentials.Email}).Decode(&admin)
	if err != nil {
		utils.WriteMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !admin.ComparePassword(credentials.Password) {
		utils.WriteMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.GenerateJWT(h.jwtSecret, admin.ID.Hex(), middleware.RoleAdmin)
	if err != nil {
		log.Printf("sign token: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		MaxAge:   3600,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"admin":   admin,
	})
}
