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
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/PranayKumarReddyW/Backend/internal/middleware"
	"github.com/PranayKumarReddyW/Backend/internal/models"
	"github.com/PranayKumarReddyW/Backend/internal/utils"
	"github.com/PranayKumarReddyW/Backend/internal/validation"
)

type EventHandler struct {
	events       *mongo.Collection
	users        *mongo.Collection
	coordinators *mongo.Collection
}

func NewEventHandler(client *mongo.Client, dbName string) *EventHandler {
	db := client.Database(dbName)
	return &EventHandler{
		events:       db.Collection("events"),
		users:        db.Collection("users"),
		coordinators: db.Collection("coordinators"),
	}
}

// CreateEvent validates the full payload (returning every violation),
// checks that each coordinator exists and is not yet assigned to any
// event, and persists. Free events always get a zero fee.
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req validation.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if msgs := validation.ValidateEvent(&req); len(msgs) > 0 {
		utils.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "Validation Error",
			"errors":  msgs,
		})
		return
	}

	coordinatorIDs := make([]primitive.ObjectID, 0, len(req.Coordinators))
	for _, hexID := range req.Coordinators {
		id, err := primitive.ObjectIDFromHex(hexID)
		if err != nil {
			utils.WriteMessage(w, http.StatusBadRequest, "Invalid coordinator ID format")
			return
		}
		coordinatorIDs = append(coordinatorIDs, id)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := h.coordinators.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": coordinatorIDs}})
	if err != nil {
		log.Printf("count coordinators: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if count != int64(len(coordinatorIDs)) {
		utils.WriteMessage(w, http.StatusBadRequest, "Coordinator not found")
		return
	}

	// A coordinator may run at most one event system-wide.
	assigned, err := h.events.CountDocuments(ctx, bson.M{"coordinators": bson.M{"$in": coordinatorIDs}})
	if err != nil {
		log.Printf("count assigned coordinators: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if assigned > 0 {
		utils.WriteMessage(w, http.StatusBadRequest, "Coordinator is already assigned to an event")
		return
	}

	fee := 0.0
	if req.RegistrationType == string(models.RegistrationPaid) {
		fee = req.RegistrationFee
	}

	branches := make([]models.Branch, 0, len(req.Branches))
	for _, b := range req.Branches {
		branches = append(branches, models.Branch(b))
	}

	now := time.Now()
	event := models.Event{
		ID:                   primitive.NewObjectID(),
		Name:                 req.Name,
		Description:          req.Description,
		Date:                 req.Date,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		Venue:                req.Venue,
		MaxParticipants:      req.MaxParticipants,
		RegistrationDeadline: req.RegistrationDeadline,
		Coordinators:         coordinatorIDs,
		Category:             models.EventCategory(req.Category),
		RegistrationType:     models.RegistrationType(req.RegistrationType),
		RegistrationFee:      fee,
		Rules:                req.Rules,
		ContactEmail:         req.ContactEmail,
		ContactPhone:         req.ContactPhone,
		Branches:             branches,
		Years:                req.Years,
		RegisteredUsers:      []primitive.ObjectID{},
		EventImage:           req.EventImage,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if _, err := h.events.InsertOne(ctx, event); err != nil {
		log.Printf("insert event: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Event created successfully",
		"event":   event,
	})
}

// GetEvents lists all events sorted by date ascending.
func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	findOpts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := h.events.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		log.Printf("find events: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if len(events) == 0 {
		utils.WriteMessage(w, http.StatusNotFound, "No events found for your department & year")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

func (h *EventHandler) GetEventByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var event models.Event
	if err := h.events.FindOne(ctx, bson.M{"_id": id}).Decode(&event); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.WriteMessage(w, http.StatusNotFound, "Event not found")
			return
		}
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, event)
}

// RegisterForEvent joins the authenticated student to an event. The
// capacity, duplicate and date guards ride inside a single update filter
// so concurrent registrations cannot overbook; the follow-up write onto
// the user's record is compensated with a $pull if it fails.
func (h *EventHandler) RegisterForEvent(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteMessage(w, http.StatusUnauthorized, "Please login!")
		return
	}

	eventID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var event models.Event
	if err := h.events.FindOne(ctx, bson.M{"_id": eventID}).Decode(&event); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.WriteMessage(w, http.StatusNotFound, "Event not found")
			return
		}
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	if status, msg := registrationGuard(&event, user.ID); msg != "" {
		utils.WriteMessage(w, status, msg)
		return
	}

	if err := h.users.FindOne(ctx, bson.M{"_id": user.ID}).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.WriteMessage(w, http.StatusNotFound, "User not found")
			return
		}
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	filter := bson.M{
		"_id":             eventID,
		"date":            bson.M{"$gt": time.Now()},
		"registeredUsers": bson.M{"$ne": user.ID},
		"$expr": bson.M{"$lt": bson.A{
			bson.M{"$size": "$registeredUsers"},
			"$maxParticipants",
		}},
	}
	update := bson.M{
		"$addToSet": bson.M{"registeredUsers": user.ID},
		"$set":      bson.M{"updatedAt": time.Now()},
	}

	res, err := h.events.UpdateOne(ctx, filter, update)
	if err != nil {
		log.Printf("register for event: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if res.MatchedCount == 0 {
		// A concurrent registration got there first; re-read to say why.
		if err := h.events.FindOne(ctx, bson.M{"_id": eventID}).Decode(&event); err != nil {
			utils.WriteMessage(w, http.StatusNotFound, "Event not found")
			return
		}
		status, msg := registrationGuard(&event, user.ID)
		if msg == "" {
			status, msg = http.StatusInternalServerError, "Server error"
		}
		utils.WriteMessage(w, status, msg)
		return
	}

	_, err = h.users.UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$addToSet": bson.M{"registeredEvents": eventID}},
	)
	if err != nil {
		// Roll back the event-side write so the records stay consistent.
		log.Printf("push registered event: %v", err)
		if _, rbErr := h.events.UpdateOne(ctx,
			bson.M{"_id": eventID},
			bson.M{"$pull": bson.M{"registeredUsers": user.ID}},
		); rbErr != nil {
			log.Printf("rollback event registration: %v", rbErr)
		}
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteMessage(w, http.StatusOK, "Registered successfully")
}

// registrationGuard checks the sequenced registration rules and returns
// the first violation, or an empty message when registration may proceed.
func registrationGuard(event *models.Event, userID primitive.ObjectID) (int, string) {
	if event.Date.Before(time.Now()) {
		return http.StatusBadRequest, "Event registration closed"
	}
	if len(event.RegisteredUsers) >= event.MaxParticipants {
		return http.StatusBadRequest, "Event registration full"
	}
	if event.IsRegistered(userID) {
		return http.StatusBadRequest, "User already registered"
	}
	return 0, ""
}
