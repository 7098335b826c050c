package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventCategory string

const (
	CategoryTechnical EventCategory = "Technical"
	CategoryCultural  EventCategory = "Cultural"
	CategorySports    EventCategory = "Sports"
	CategoryWorkshop  EventCategory = "Workshop"
	CategoryOther     EventCategory = "Other"
)

type RegistrationType string

const (
	RegistrationFree RegistrationType = "Free"
	RegistrationPaid RegistrationType = "Paid"
)

type Event struct {
	ID                   primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name                 string               `json:"name" bson:"name"`
	Description          string               `json:"description" bson:"description"`
	Date                 time.Time            `json:"date" bson:"date"`
	StartTime            string               `json:"startTime" bson:"startTime"`
	EndTime              string               `json:"endTime" bson:"endTime"`
	Venue                string               `json:"venue" bson:"venue"`
	MaxParticipants      int                  `json:"maxParticipants" bson:"maxParticipants"`
	RegistrationDeadline time.Time            `json:"registrationDeadline" bson:"registrationDeadline"`
	Coordinators         []primitive.ObjectID `json:"coordinators" bson:"coordinators"`
	Category             EventCategory        `json:"category" bson:"category"`
	RegistrationType     RegistrationType     `json:"registrationType" bson:"registrationType"`
	RegistrationFee      float64              `json:"registrationFee" bson:"registrationFee"`
	Rules                []string             `json:"rules" bson:"rules"`
	ContactEmail         string               `json:"contactEmail" bson:"contactEmail"`
	ContactPhone         string               `json:"contactPhone" bson:"contactPhone"`
	Branches             []Branch             `json:"branches" bson:"branches"`
	Years                []int                `json:"years" bson:"years"`
	RegisteredUsers      []primitive.ObjectID `json:"registeredUsers" bson:"registeredUsers"`
	EventImage           string               `json:"eventImage" bson:"eventImage"`
	CreatedAt            time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// IsUpcoming reports whether the event date is still in the future.
func (e *Event) IsUpcoming() bool {
	return e.Date.After(time.Now())
}

// IsRegistrationOpen reports whether the registration deadline has not passed.
func (e *Event) IsRegistrationOpen() bool {
	return time.Now().Before(e.RegistrationDeadline)
}

// EventTimings returns the formatted start-end window.
func (e *Event) EventTimings() string {
	return fmt.Sprintf("%s - %s", e.StartTime, e.EndTime)
}

// IsRegistered reports whether the user is already in the registration list.
func (e *Event) IsRegistered(userID primitive.ObjectID) bool {
	for _, id := range e.RegisteredUsers {
		if id == userID {
			return true
		}
	}
	return false
}
