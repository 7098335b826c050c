// Package validation schema-checks registration and event payloads before
// they reach persistence. Field messages mirror the public API contract.
package validation

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type RegisterUserRequest struct {
	Name               string `json:"name" validate:"required,min=3"`
	RegistrationNumber string `json:"registrationNumber" validate:"required"`
	Branch             string `json:"branch" validate:"required,oneof=CSE ECE EEE MECH CIVIL IT 'CSE DS'"`
	PassedOutYear      int    `json:"passedOutYear" validate:"required,oneof=2022 2023 2024 2025 2026"`
	Email              string `json:"email" validate:"required,email"`
	PhoneNumber        string `json:"phoneNumber" validate:"required,len=10,numeric"`
	Password           string `json:"password" validate:"required,min=6"`
}

type RegisterCoordinatorRequest struct {
	Name             string   `json:"name" validate:"required,min=3,max=100"`
	Email            string   `json:"email" validate:"required,email"`
	Phone            string   `json:"phone" validate:"required,len=10,numeric"`
	Role             string   `json:"role" validate:"required,oneof=Lead Assistant Support Faculty"`
	Department       string   `json:"department" validate:"required,oneof=CSE ECE EEE MECH CIVIL IT 'CSE DS'"`
	Password         string   `json:"password" validate:"required,min=8"`
	AccessibleEvents []string `json:"accessibleEvents" validate:"omitempty,dive,len=24,hexadecimal"`
}

type CreateEventRequest struct {
	Name                 string    `json:"name" validate:"required,min=3,max=100"`
	Description          string    `json:"description" validate:"required,max=1000"`
	Date                 time.Time `json:"date" validate:"required"`
	StartTime            string    `json:"startTime" validate:"required,timehhmm"`
	EndTime              string    `json:"endTime" validate:"required,timehhmm"`
	Venue                string    `json:"venue" validate:"required,max=100"`
	MaxParticipants      int       `json:"maxParticipants" validate:"required,min=1"`
	RegistrationDeadline time.Time `json:"registrationDeadline" validate:"required,ltfield=Date"`
	Coordinators         []string  `json:"coordinators" validate:"required,min=1,dive,len=24,hexadecimal"`
	Category             string    `json:"category" validate:"required,oneof=Technical Cultural Sports Workshop Other"`
	RegistrationType     string    `json:"registrationType" validate:"required,oneof=Free Paid"`
	RegistrationFee      float64   `json:"registrationFee" validate:"min=0"`
	Rules                []string  `json:"rules" validate:"required,min=1"`
	ContactEmail         string    `json:"contactEmail" validate:"required,email"`
	ContactPhone         string    `json:"contactPhone" validate:"required,len=10,numeric"`
	Branches             []string  `json:"branches" validate:"required,min=1,dive,oneof=CSE ECE EEE MECH CIVIL IT 'CSE DS'"`
	Years                []int     `json:"years" validate:"required,min=1,dive,oneof=1 2 3 4"`
	EventImage           string    `json:"eventImage" validate:"required"`
}

func init() {
	// HH:MM, 24-hour clock
	_ = validate.RegisterValidation("timehhmm", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != 5 && len(s) != 4 {
			return false
		}
		var h, m int
		sep := len(s) - 3
		if s[sep] != ':' {
			return false
		}
		for i := 0; i < sep; i++ {
			if s[i] < '0' || s[i] > '9' {
				return false
			}
			h = h*10 + int(s[i]-'0')
		}
		for i := sep + 1; i < len(s); i++ {
			if s[i] < '0' || s[i] > '9' {
				return false
			}
			m = m*10 + int(s[i]-'0')
		}
		return h <= 23 && m <= 59
	})
}

// ValidateUser returns the first violation message, or "".
func ValidateUser(req *RegisterUserRequest) string {
	if msgs := collect(validate.Struct(req), userMessages); len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// ValidateCoordinator returns the first violation message, or "".
func ValidateCoordinator(req *RegisterCoordinatorRequest) string {
	if msgs := collect(validate.Struct(req), coordinatorMessages); len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// ValidateEvent returns every violation message so the client sees the
// full list, plus the checks the tag syntax cannot express.
func ValidateEvent(req *CreateEventRequest) []string {
	msgs := collect(validate.Struct(req), eventMessages)
	if !req.Date.IsZero() && !req.Date.After(time.Now()) {
		msgs = append(msgs, "Event date must be in the future")
	}
	if req.RegistrationType == "Paid" && req.RegistrationFee <= 0 {
		msgs = append(msgs, "Paid events must have a positive registration fee")
	}
	return msgs
}

func collect(err error, messages map[string]string) []string {
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		// dive violations report as e.g. Coordinators[0]
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if msg, ok := messages[field+"."+fe.Tag()]; ok {
			out = append(out, msg)
		} else if msg, ok := messages[field]; ok {
			out = append(out, msg)
		} else {
			out = append(out, field+" is invalid")
		}
	}
	return out
}

var userMessages = map[string]string{
	"Name.required":               "Name is required",
	"Name.min":                    "Name must be at least 3 characters long",
	"RegistrationNumber.required": "Registration number is required",
	"Branch.required":             "Branch is required",
	"Branch.oneof":                "Branch must be one of: CSE, ECE, EEE, MECH, CIVIL, IT, CSE DS",
	"PassedOutYear.required":      "Passed-out year is required",
	"PassedOutYear.oneof":         "Passed-out year must be one of: 2022, 2023, 2024, 2025, 2026",
	"Email.required":              "Email is required",
	"Email.email":                 "Please enter a valid email address",
	"PhoneNumber":                 "Phone number must be a 10-digit number",
	"PhoneNumber.required":        "Phone number is required",
	"Password.required":           "Password is required",
	"Password.min":                "Password must be at least 6 characters long",
}

var coordinatorMessages = map[string]string{
	"Name.required":       "Coordinator name is required",
	"Name.min":            "Coordinator name must be at least 3 characters long",
	"Name.max":            "Coordinator name cannot exceed 100 characters",
	"Email.required":      "Coordinator email is required",
	"Email.email":         "Invalid email format",
	"Phone.required":      "Coordinator phone is required",
	"Phone":               "Phone number must be a 10-digit number",
	"Role.required":       "Role is required",
	"Role.oneof":          "Role must be one of: Lead, Assistant, Support, Faculty",
	"Department.required": "Department is required",
	"Department.oneof":    "Department must be one of: CSE, ECE, EEE, MECH, CIVIL, IT, CSE DS",
	"Password.required":   "Password is required",
	"Password.min":        "Password must be at least 8 characters long",
	"AccessibleEvents":    "Accessible events must be an array of event IDs",
}

var eventMessages = map[string]string{
	"Name.required":                 "Event name is required",
	"Name.min":                      "Event name must be at least 3 characters",
	"Name.max":                      "Event name cannot exceed 100 characters",
	"Description.required":          "Description is required",
	"Description.max":               "Description cannot exceed 1000 characters",
	"Date.required":                 "Event date is required",
	"StartTime.required":            "Start time is required",
	"StartTime.timehhmm":            "Invalid time format (HH:MM)",
	"EndTime.required":              "End time is required",
	"EndTime.timehhmm":              "Invalid time format (HH:MM)",
	"Venue.required":                "Venue is required",
	"Venue.max":                     "Venue cannot exceed 100 characters",
	"MaxParticipants.required":      "Maximum participants is required",
	"MaxParticipants.min":           "At least one participant is required",
	"RegistrationDeadline.required": "Registration deadline is required",
	"RegistrationDeadline.ltfield":  "Registration deadline must be before the event date",
	"Coordinators.required":         "At least one coordinator is required",
	"Coordinators.min":              "At least one coordinator is required",
	"Coordinators":                  "Invalid coordinator ID format",
	"Category.required":             "Category is required",
	"Category.oneof":                "Invalid category",
	"RegistrationType.required":     "Registration type is required",
	"RegistrationType.oneof":        "Invalid registration type",
	"RegistrationFee.min":           "Registration fee cannot be negative",
	"Rules.required":                "At least one rule must be specified",
	"Rules.min":                     "At least one rule must be specified",
	"ContactEmail.required":         "Contact email is required",
	"ContactEmail.email":            "Invalid email format",
	"ContactPhone.required":         "Contact phone is required",
	"ContactPhone":                  "Invalid phone number format",
	"Branches.required":             "At least one branch must be selected",
	"Branches.min":                  "At least one branch must be selected",
	"Branches.oneof":                "Invalid branch name",
	"Years.required":                "At least one year must be selected",
	"Years.min":                     "At least one year must be selected",
	"Years.oneof":                   "Invalid year value",
	"EventImage.required":           "Event image is required",
}
