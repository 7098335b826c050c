package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type Branch string

const (
	BranchCSE   Branch = "CSE"
	BranchECE   Branch = "ECE"
	BranchEEE   Branch = "EEE"
	BranchMech  Branch = "MECH"
	BranchCivil Branch = "CIVIL"
	BranchIT    Branch = "IT"
	BranchCSEDS Branch = "CSE DS"
)

// Branches lists every valid branch/department value.
var Branches = []Branch{BranchCSE, BranchECE, BranchEEE, BranchMech, BranchCivil, BranchIT, BranchCSEDS}

type User struct {
	ID                 primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name               string               `json:"name" bson:"name"`
	RegistrationNumber string               `json:"registrationNumber" bson:"registrationNumber"`
	Branch             Branch               `json:"branch" bson:"branch"`
	PassedOutYear      int                  `json:"passedOutYear" bson:"passedOutYear"`
	Email              string               `json:"email" bson:"email"`
	PhoneNumber        string               `json:"phoneNumber" bson:"phoneNumber"`
	Password           string               `json:"-" bson:"password"`
	RegisteredEvents   []primitive.ObjectID `json:"registeredEvents" bson:"registeredEvents"`
	CreatedAt          time.Time            `json:"createdAt" bson:"createdAt"`
}

// HashPassword replaces the plaintext password with its bcrypt hash.
func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// ComparePassword reports whether the candidate matches the stored hash.
func (u *User) ComparePassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate)) == nil
}
