package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailure PaymentStatus = "failure"
)

type Payment struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	OrderID       string             `json:"orderId" bson:"orderId"`
	EventID       primitive.ObjectID `json:"eventId" bson:"eventId"`
	Name          string             `json:"name" bson:"name"`
	MobileNumber  string             `json:"mobileNumber" bson:"mobileNumber"`
	Amount        float64            `json:"amount" bson:"amount"`
	PaymentStatus PaymentStatus      `json:"paymentStatus" bson:"paymentStatus"`
	TransactionID string             `json:"transactionId" bson:"transactionId"`
	Timestamp     time.Time          `json:"timestamp" bson:"timestamp"`
}
