package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserPasswordHashing(t *testing.T) {
	user := User{Password: "plaintext1"}
	require.NoError(t, user.HashPassword())

	assert.NotEqual(t, "plaintext1", user.Password)
	assert.True(t, user.ComparePassword("plaintext1"))
	assert.False(t, user.ComparePassword("plaintext2"))
}

func TestUserJSONOmitsPassword(t *testing.T) {
	user := User{
		ID:       primitive.NewObjectID(),
		Name:     "Ravi",
		Email:    "ravi@example.com",
		Password: "hashed-secret",
	}
	raw, err := json.Marshal(user)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "password")
	assert.NotContains(t, string(raw), "hashed-secret")
}

func TestCoordinatorPasswordAndRedaction(t *testing.T) {
	coordinator := Coordinator{Password: "coordpass"}
	require.NoError(t, coordinator.HashPassword())
	assert.True(t, coordinator.ComparePassword("coordpass"))

	raw, err := json.Marshal(coordinator)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "coordpass")
	assert.NotContains(t, string(raw), "password")
}

func TestAdminJSONOmitsPassword(t *testing.T) {
	admin := Admin{Name: "Root", Password: "adminpass"}
	require.NoError(t, admin.HashPassword())

	raw, err := json.Marshal(admin)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
}

func TestCoordinatorIsCoordinatorOfEvent(t *testing.T) {
	eventID := primitive.NewObjectID()
	coordinator := Coordinator{AccessibleEvents: []primitive.ObjectID{eventID}}

	assert.True(t, coordinator.IsCoordinatorOfEvent(eventID))
	assert.False(t, coordinator.IsCoordinatorOfEvent(primitive.NewObjectID()))
}

func TestEventHelpers(t *testing.T) {
	userID := primitive.NewObjectID()
	event := Event{
		Date:                 time.Now().Add(48 * time.Hour),
		RegistrationDeadline: time.Now().Add(24 * time.Hour),
		StartTime:            "09:00",
		EndTime:              "18:00",
		RegisteredUsers:      []primitive.ObjectID{userID},
	}

	assert.True(t, event.IsUpcoming())
	assert.True(t, event.IsRegistrationOpen())
	assert.Equal(t, "09:00 - 18:00", event.EventTimings())
	assert.True(t, event.IsRegistered(userID))
	assert.False(t, event.IsRegistered(primitive.NewObjectID()))

	past := Event{
		Date:                 time.Now().Add(-time.Hour),
		RegistrationDeadline: time.Now().Add(-2 * time.Hour),
	}
	assert.False(t, past.IsUpcoming())
	assert.False(t, past.IsRegistrationOpen())
}
