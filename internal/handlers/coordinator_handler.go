package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/PranayKumarReddyW/Backend/internal/auth"
	"github.com/PranayKumarReddyW/Backend/internal/middleware"
	"github.com/PranayKumarReddyW/Backend/internal/models"
	"github.com/PranayKumarReddyW/Backend/internal/utils"
	"github.com/PranayKumarReddyW/Backend/internal/validation"
)

type CoordinatorHandler struct {
	collection *mongo.Collection
	jwtSecret  string
}

func NewCoordinatorHandler(client *mongo.Client, dbName, jwtSecret string) *CoordinatorHandler {
	return &CoordinatorHandler{
		collection: client.Database(dbName).Collection("coordinators"),
		jwtSecret:  jwtSecret,
	}
}

// RegisterCoordinator validates the payload, rejects duplicate
// email/phone, and persists with a hashed password.
func (h *CoordinatorHandler) RegisterCoordinator(w http.ResponseWriter, r *http.Request) {
	var req validation.RegisterCoordinatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if msg := validation.ValidateCoordinator(&req); msg != "" {
		utils.WriteMessage(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := h.collection.FindOne(ctx, bson.M{"email": req.Email}).Err()
	if err == nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Email already in use")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	err = h.collection.FindOne(ctx, bson.M{"phone": req.Phone}).Err()
	if err == nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Phone number already in use")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	now := time.Now()
	coordinator := models.Coordinator{
		ID:               primitive.NewObjectID(),
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Role:             models.CoordinatorRole(req.Role),
		Department:       models.Branch(req.Department),
		Password:         req.Password,
		AccessibleEvents: []primitive.ObjectID{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := coordinator.HashPassword(); err != nil {
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	if _, err := h.collection.InsertOne(ctx, coordinator); err != nil {
		log.Printf("insert coordinator: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Coordinator registered successfully",
		"coordinator": coordinator,
	})
}

func (h *CoordinatorHandler) LoginCoordinator(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var coordinator models.Coordinator
	err := h.collection.FindOne(ctx, bson.M{"email": credentials.Email}).Decode(&coordinator)
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if !coordinator.ComparePassword(credentials.Password) {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := auth.GenerateJWT(h.jwtSecret, coordinator.ID.Hex(), middleware.RoleCoordinator)
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
		"message":     "Login successful",
		"coordinator": coordinator,
	})
}

func (h *CoordinatorHandler) LogoutCoordinator(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
	utils.WriteMessage(w, http.StatusOK, "Logout successful")
}

func (h *CoordinatorHandler) GetCoordinatorByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid coordinator ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var coordinator models.Coordinator
	if err := h.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&coordinator); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.WriteMessage(w, http.StatusNotFound, "Coordinator not found")
			return
		}
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, coordinator)
}

func (h *CoordinatorHandler) GetCoordinators(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.collection.Find(ctx, bson.M{})
	if err != nil {
		log.Printf("find coordinators: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cursor.Close(ctx)

	var coordinators []models.Coordinator
	if err := cursor.All(ctx, &coordinators); err != nil {
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if len(coordinators) == 0 {
		utils.WriteMessage(w, http.StatusNotFound, "No coordinators found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, coordinators)
}
