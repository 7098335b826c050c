package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validUserRequest() RegisterUserRequest {
	return RegisterUserRequest{
		Name:               "Ravi Kumar",
		RegistrationNumber: "21B81A0501",
		Branch:             "CSE",
		PassedOutYear:      2025,
		Email:              "ravi@example.com",
		PhoneNumber:        "9876543210",
		Password:           "secret123",
	}
}

func TestValidateUser(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RegisterUserRequest)
		message string
	}{
		{"valid", func(r *RegisterUserRequest) {}, ""},
		{"missing name", func(r *RegisterUserRequest) { r.Name = "" }, "Name is required"},
		{"short name", func(r *RegisterUserRequest) { r.Name = "Ab" }, "Name must be at least 3 characters long"},
		{"missing regno", func(r *RegisterUserRequest) { r.RegistrationNumber = "" }, "Registration number is required"},
		{"bad branch", func(r *RegisterUserRequest) { r.Branch = "AIML" }, "Branch must be one of: CSE, ECE, EEE, MECH, CIVIL, IT, CSE DS"},
		{"branch with space", func(r *RegisterUserRequest) { r.Branch = "CSE DS" }, ""},
		{"bad year", func(r *RegisterUserRequest) { r.PassedOutYear = 2020 }, "Passed-out year must be one of: 2022, 2023, 2024, 2025, 2026"},
		{"bad email", func(r *RegisterUserRequest) { r.Email = "not-an-email" }, "Please enter a valid email address"},
		{"short phone", func(r *RegisterUserRequest) { r.PhoneNumber = "12345" }, "Phone number must be a 10-digit number"},
		{"alpha phone", func(r *RegisterUserRequest) { r.PhoneNumber = "987654321x" }, "Phone number must be a 10-digit number"},
		{"short password", func(r *RegisterUserRequest) { r.Password = "abc" }, "Password must be at least 6 characters long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUserRequest()
			tt.mutate(&req)
			assert.Equal(t, tt.message, ValidateUser(&req))
		})
	}
}

func TestValidateCoordinator(t *testing.T) {
	valid := RegisterCoordinatorRequest{
		Name:       "Priya Sharma",
		Email:      "priya@example.com",
		Phone:      "9876543210",
		Role:       "Lead",
		Department: "ECE",
		Password:   "longenough",
	}

	tests := []struct {
		name    string
		mutate  func(*RegisterCoordinatorRequest)
		message string
	}{
		{"valid", func(r *RegisterCoordinatorRequest) {}, ""},
		{"bad role", func(r *RegisterCoordinatorRequest) { r.Role = "Manager" }, "Role must be one of: Lead, Assistant, Support, Faculty"},
		{"bad department", func(r *RegisterCoordinatorRequest) { r.Department = "BIO" }, "Department must be one of: CSE, ECE, EEE, MECH, CIVIL, IT, CSE DS"},
		{"short password", func(r *RegisterCoordinatorRequest) { r.Password = "seven77" }, "Password must be at least 8 characters long"},
		{"bad event id", func(r *RegisterCoordinatorRequest) { r.AccessibleEvents = []string{"xyz"} }, "Accessible events must be an array of event IDs"},
		{"good event id", func(r *RegisterCoordinatorRequest) {
			r.AccessibleEvents = []string{"65f0000000000000000000aa"}
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Equal(t, tt.message, ValidateCoordinator(&req))
		})
	}
}

func validEventRequest() CreateEventRequest {
	date := time.Now().Add(30 * 24 * time.Hour)
	return CreateEventRequest{
		Name:                 "Hackathon",
		Description:          "24 hour hackathon",
		Date:                 date,
		StartTime:            "09:00",
		EndTime:              "18:00",
		Venue:                "Main Auditorium",
		MaxParticipants:      100,
		RegistrationDeadline: date.Add(-48 * time.Hour),
		Coordinators:         []string{"65f0000000000000000000aa"},
		Category:             "Technical",
		RegistrationType:     "Free",
		RegistrationFee:      0,
		Rules:                []string{"Teams of four"},
		ContactEmail:         "contact@example.com",
		ContactPhone:         "9876543210",
		Branches:             []string{"CSE", "CSE DS"},
		Years:                []int{3, 4},
		EventImage:           "https://cdn.example.com/hackathon.png",
	}
}

func TestValidateEventValid(t *testing.T) {
	req := validEventRequest()
	assert.Empty(t, ValidateEvent(&req))
}

func TestValidateEventCollectsAllMessages(t *testing.T) {
	req := validEventRequest()
	req.Name = ""
	req.StartTime = "25:00"
	req.ContactPhone = "123"

	msgs := ValidateEvent(&req)
	assert.Contains(t, msgs, "Event name is required")
	assert.Contains(t, msgs, "Invalid time format (HH:MM)")
	assert.Contains(t, msgs, "Invalid phone number format")
	assert.Len(t, msgs, 3)
}

func TestValidateEventDeadlineAfterDate(t *testing.T) {
	req := validEventRequest()
	req.RegistrationDeadline = req.Date.Add(time.Hour)
	assert.Contains(t, ValidateEvent(&req), "Registration deadline must be before the event date")
}

func TestValidateEventPastDate(t *testing.T) {
	req := validEventRequest()
	req.Date = time.Now().Add(-time.Hour)
	req.RegistrationDeadline = req.Date.Add(-time.Hour)
	assert.Contains(t, ValidateEvent(&req), "Event date must be in the future")
}

func TestValidateEventPaidFee(t *testing.T) {
	req := validEventRequest()
	req.RegistrationType = "Paid"
	req.RegistrationFee = 0
	assert.Contains(t, ValidateEvent(&req), "Paid events must have a positive registration fee")

	req.RegistrationFee = 150
	assert.Empty(t, ValidateEvent(&req))
}

func TestValidateEventYearsAndBranches(t *testing.T) {
	req := validEventRequest()
	req.Years = []int{5}
	assert.Contains(t, ValidateEvent(&req), "Invalid year value")

	req = validEventRequest()
	req.Branches = []string{"BIO"}
	assert.Contains(t, ValidateEvent(&req), "Invalid branch name")

	req = validEventRequest()
	req.Branches = nil
	assert.Contains(t, ValidateEvent(&req), "At least one branch must be selected")
}

func TestTimeHHMM(t *testing.T) {
	req := validEventRequest()
	for _, good := range []string{"00:00", "9:30", "23:59"} {
		req.StartTime = good
		assert.Empty(t, ValidateEvent(&req), good)
	}
	for _, bad := range []string{"24:00", "12:60", "1200", "12:0", "ab:cd"} {
		req.StartTime = bad
		assert.Contains(t, ValidateEvent(&req), "Invalid time format (HH:MM)", bad)
	}
}
