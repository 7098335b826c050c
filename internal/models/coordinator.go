package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type CoordinatorRole string

const (
	CoordinatorLead      CoordinatorRole = "Lead"
	CoordinatorAssistant CoordinatorRole = "Assistant"
	CoordinatorSupport   CoordinatorRole = "Support"
	CoordinatorFaculty   CoordinatorRole = "Faculty"
)

type Coordinator struct {
	ID               primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name             string               `json:"name" bson:"name"`
	Email            string               `json:"email" bson:"email"`
	Phone            string               `json:"phone" bson:"phone"`
	Role             CoordinatorRole      `json:"role" bson:"role"`
	Department       Branch               `json:"department" bson:"department"`
	Password         string               `json:"-" bson:"password"`
	AccessibleEvents []primitive.ObjectID `json:"accessibleEvents" bson:"accessibleEvents"`
	CreatedAt        time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt" bson:"updatedAt"`
}

func (c *Coordinator) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.Password = string(hashed)
	return nil
}

func (c *Coordinator) ComparePassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(candidate)) == nil
}

// IsCoordinatorOfEvent reports whether the event is in the coordinator's access list.
func (c *Coordinator) IsCoordinatorOfEvent(eventID primitive.ObjectID) bool {
	for _, id := range c.AccessibleEvents {
		if id == eventID {
			return true
		}
	}
	return false
}
