package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/PranayKumarReddyW/Backend/internal/config"
	"github.com/PranayKumarReddyW/Backend/internal/models"
	"github.com/PranayKumarReddyW/Backend/internal/payment"
	"github.com/PranayKumarReddyW/Backend/internal/utils"
)

type PaymentHandler struct {
	payments *mongo.Collection
	users    *mongo.Collection
	events   *mongo.Collection
	gateway  *payment.Gateway
	cfg      config.Config
}

func NewPaymentHandler(client *mongo.Client, cfg config.Config) *PaymentHandler {
	db := client.Database(cfg.DatabaseName)
	return &PaymentHandler{
		payments: db.Collection("payments"),
		users:    db.Collection("users"),
		events:   db.Collection("events"),
		gateway:  payment.NewGateway(cfg.MerchantID, cfg.MerchantKey, cfg.MerchantBaseURL, cfg.MerchantStatusURL),
		cfg:      cfg,
	}
}

// CreateOrder initiates a gateway order for a paid event and relays the
// gateway's payment page URL. A pending Payment record is stored so the
// status callback can reconcile.
func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name         string  `json:"name"`
		MobileNumber string  `json:"mobileNumber"`
		Amount       float64 `json:"amount"`
		UserID       string  `json:"userId"`
		EventID      string  `json:"eventId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	eventID, err := primitive.ObjectIDFromHex(body.EventID)
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	orderID := uuid.NewString()
	redirectURL := fmt.Sprintf("%s/?id=%s&userId=%s", h.cfg.RedirectURL, orderID, body.UserID)

	url, err := h.gateway.Pay(r.Context(), payment.PayRequest{
		Name:         body.Name,
		MobileNumber: body.MobileNumber,
		Amount:       body.Amount,
		OrderID:      orderID,
		RedirectURL:  redirectURL,
	})
	if err != nil {
		log.Printf("Error initiating payment: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to initiate payment"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	record := models.Payment{
		ID:            primitive.NewObjectID(),
		OrderID:       orderID,
		EventID:       eventID,
		Name:          body.Name,
		MobileNumber:  body.MobileNumber,
		Amount:        body.Amount,
		PaymentStatus: models.PaymentPending,
		Timestamp:     time.Now(),
	}
	if _, err := h.payments.InsertOne(ctx, record); err != nil {
		log.Printf("insert payment record: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to initiate payment"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"msg": "OK", "url": url})
}

// Status handles the gateway's redirect callback. It verifies the
// transaction outcome, finalizes the Payment record, reconciles the
// User and Event registration lists, and redirects to the static
// success/failure page.
func (h *PaymentHandler) Status(w http.ResponseWriter, r *http.Request) {
	merchantTransactionID := r.URL.Query().Get("id")
	userIDHex := r.URL.Query().Get("userId")

	success, transactionID, err := h.gateway.Status(r.Context(), merchantTransactionID)
	if err != nil {
		log.Printf("Error verifying payment status: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to verify payment status"})
		return
	}

	status := models.PaymentFailure
	if success {
		status = models.PaymentSuccess
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var record models.Payment
	err = h.payments.FindOneAndUpdate(ctx,
		bson.M{"orderId": merchantTransactionID},
		bson.M{"$set": bson.M{"paymentStatus": status, "transactionId": transactionID}},
	).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			log.Print("No payment record found for this order")
		} else {
			log.Printf("update payment record: %v", err)
		}
	}

	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
		return
	}
	if err := h.users.FindOne(ctx, bson.M{"_id": userID}).Err(); err != nil {
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
		return
	}

	if status != models.PaymentSuccess {
		http.Redirect(w, r, h.cfg.FailureURL, http.StatusFound)
		return
	}

	if err := h.events.FindOne(ctx, bson.M{"_id": record.EventID}).Err(); err != nil {
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "Event not found"})
		return
	}

	if _, err := h.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"registeredEvents": record.EventID}},
	); err != nil {
		log.Printf("push registered event: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to verify payment status"})
		return
	}
	if _, err := h.events.UpdateOne(ctx,
		bson.M{"_id": record.EventID},
		bson.M{"$addToSet": bson.M{"registeredUsers": userID}},
	); err != nil {
		// Keep the two registration lists consistent.
		log.Printf("push registered user: %v", err)
		if _, rbErr := h.users.UpdateOne(ctx,
			bson.M{"_id": userID},
			bson.M{"$pull": bson.M{"registeredEvents": record.EventID}},
		); rbErr != nil {
			log.Printf("rollback user registration: %v", rbErr)
		}
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to verify payment status"})
		return
	}

	http.Redirect(w, r, h.cfg.SuccessURL, http.StatusFound)
}

// SendQRCode emails a QR ticket encoding the registration and deletes
// the temporary image whatever the send outcome.
func (h *PaymentHandler) SendQRCode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email     string `json:"email"`
		Name      string `json:"name"`
		EventName string `json:"eventName"`
		UserID    string `json:"userId"`
		EventID   string `json:"eventId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.Email == "" || body.UserID == "" || body.EventID == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "Email, user ID and event ID are required")
		return
	}

	content, err := json.Marshal(map[string]string{
		"userId":    body.UserID,
		"eventId":   body.EventID,
		"name":      body.Name,
		"eventName": body.EventName,
	})
	if err != nil {
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("qr-%s-%s.png", body.UserID, body.EventID))
	if err := utils.GenerateQRCode(string(content), path); err != nil {
		log.Printf("generate qr code: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}
	defer os.Remove(path)

	emailBody := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your registration for <b>%s</b> is confirmed. Present the attached QR code at the venue.</p>",
		body.Name, body.EventName,
	)
	if err := utils.SendEmail(h.cfg, body.Email, "Your event ticket", emailBody, path); err != nil {
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to send email")
		return
	}

	utils.WriteMessage(w, http.StatusOK, "QR code sent successfully")
}
