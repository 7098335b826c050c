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
	"golang.org/x/crypto/bcrypt"

	"github.com/PranayKumarReddyW/Backend/internal/auth"
	"github.com/PranayKumarReddyW/Backend/internal/middleware"
	"github.com/PranayKumarReddyW/Backend/internal/models"
	"github.com/PranayKumarReddyW/Backend/internal/utils"
	"github.com/PranayKumarReddyW/Backend/internal/validation"
)

type UserHandler struct {
	collection *mongo.Collection
	jwtSecret  string
}

func NewUserHandler(client *mongo.Client, dbName, jwtSecret string) *UserHandler {
	return &UserHandler{
		collection: client.Database(dbName).Collection("users"),
		jwtSecret:  jwtSecret,
	}
}

// RegisterUser validates the payload, rejects duplicate email,
// registration number and phone number, and persists the student.
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req validation.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if msg := validation.ValidateUser(&req); msg != "" {
		utils.WriteMessage(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := []struct {
		filter  bson.M
		message string
	}{
		{bson.M{"email": req.Email}, "Email already in use"},
		{bson.M{"registrationNumber": req.RegistrationNumber}, "Registration number already in use"},
		{bson.M{"phoneNumber": req.PhoneNumber}, "Phone number already in use"},
	}
	for _, check := range checks {
		err := h.collection.FindOne(ctx, check.filter).Err()
		if err == nil {
			utils.WriteMessage(w, http.StatusBadRequest, check.message)
			return
		} else if err != mongo.ErrNoDocuments {
			utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
	}

	user := models.User{
		ID:                 primitive.NewObjectID(),
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		Branch:             models.Branch(req.Branch),
		PassedOutYear:      req.PassedOutYear,
		Email:              req.Email,
		PhoneNumber:        req.PhoneNumber,
		Password:           req.Password,
		RegisteredEvents:   []primitive.ObjectID{},
		CreatedAt:          time.Now(),
	}
	if err := user.HashPassword(); err != nil {
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	if _, err := h.collection.InsertOne(ctx, user); err != nil {
		log.Printf("insert user: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    user,
	})
}

// LoginUser answers 400 (not 401) on bad credentials and sets the cookie
// without the HttpOnly/SameSite flags the other logins use. Known drift
// carried over from the deployed behavior; clients depend on the 400.
func (h *UserHandler) LoginUser(w http.ResponseWriter, r *http.Request) {
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

	var user models.User
	err := h.collection.FindOne(ctx, bson.M{"email": credentials.Email}).Decode(&user)
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if !user.ComparePassword(credentials.Password) {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := auth.GenerateJWT(h.jwtSecret, user.ID.Hex(), middleware.RoleStudent)
	if err != nil {
		log.Printf("sign token: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:   "token",
		Value:  token,
		MaxAge: 3600,
		Path:   "/",
	})

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    user,
	})
}

func (h *UserHandler) LogoutUser(w http.ResponseWriter, r *http.Request) {
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

// GetUser returns the authenticated student's own profile.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteMessage(w, http.StatusUnauthorized, "Please login!")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile fetched successfully",
		"user":    user,
	})
}

// GetUserByID serves coordinators and admins looking up a student.
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := h.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.WriteMessage(w, http.StatusNotFound, "User not found")
			return
		}
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, user)
}

// GetUsers lists the students in the coordinator's own department.
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	coordinator, ok := middleware.CoordinatorFromContext(r.Context())
	if !ok {
		utils.WriteMessage(w, http.StatusUnauthorized, "Please login!")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.collection.Find(ctx, bson.M{"branch": coordinator.Department})
	if err != nil {
		log.Printf("find users by branch: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if len(users) == 0 {
		utils.WriteMessage(w, http.StatusNotFound, "No users found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, users)
}

// GetAllUsers lists every student for the admin. The upstream revision
// swallowed faults here and hung the request; we log and answer 500.
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.collection.Find(ctx, bson.M{})
	if err != nil {
		log.Printf("find all users: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		log.Printf("decode all users: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if len(users) == 0 {
		utils.WriteMessage(w, http.StatusNotFound, "No users found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, users)
}

// UpdateUser applies a partial profile update to the authenticated
// student, re-checking uniqueness for every identity field that changes.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteMessage(w, http.StatusUnauthorized, "Please login!")
		return
	}

	var body struct {
		Name               string `json:"name"`
		Branch             string `json:"branch"`
		PhoneNumber        string `json:"phoneNumber"`
		Password           string `json:"password"`
		RegistrationNumber string `json:"registrationNumber"`
		PassedOutYear      int    `json:"passedOutYear"`
		Email              string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if body.Email != "" && body.Email != user.Email {
		if err := h.collection.FindOne(ctx, bson.M{"email": body.Email}).Err(); err == nil {
			utils.WriteMessage(w, http.StatusBadRequest, "Email already in use")
			return
		} else if err != mongo.ErrNoDocuments {
			utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		user.Email = body.Email
	}

	if body.PhoneNumber != "" && body.PhoneNumber != user.PhoneNumber {
		if err := h.collection.FindOne(ctx, bson.M{"phoneNumber": body.PhoneNumber}).Err(); err == nil {
			utils.WriteMessage(w, http.StatusBadRequest, "Phone number already in use")
			return
		} else if err != mongo.ErrNoDocuments {
			utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		user.PhoneNumber = body.PhoneNumber
	}

	if body.RegistrationNumber != "" && body.RegistrationNumber != user.RegistrationNumber {
		if err := h.collection.FindOne(ctx, bson.M{"registrationNumber": body.RegistrationNumber}).Err(); err == nil {
			utils.WriteMessage(w, http.StatusBadRequest, "Registration number already in use")
			return
		} else if err != mongo.ErrNoDocuments {
			utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		user.RegistrationNumber = body.RegistrationNumber
	}

	if body.Name != "" {
		user.Name = body.Name
	}
	if body.Branch != "" {
		user.Branch = models.Branch(body.Branch)
	}
	if body.PassedOutYear != 0 {
		user.PassedOutYear = body.PassedOutYear
	}
	if body.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		user.Password = string(hashed)
	}

	update := bson.M{"$set": bson.M{
		"name":               user.Name,
		"branch":             user.Branch,
		"phoneNumber":        user.PhoneNumber,
		"password":           user.Password,
		"registrationNumber": user.RegistrationNumber,
		"passedOutYear":      user.PassedOutYear,
		"email":              user.Email,
	}}
	if _, err := h.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		log.Printf("update user: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
