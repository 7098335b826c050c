package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Admin is a singleton document: registration rejects a second admin.
type Admin struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	PhoneNumber string             `json:"phoneNumber" bson:"phoneNumber"`
	Password    string             `json:"-" bson:"password"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

func (a *Admin) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.Password = string(hashed)
	return nil
}

func (a *Admin) ComparePassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(candidate)) == nil
}
