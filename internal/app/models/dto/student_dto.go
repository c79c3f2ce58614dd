package dto

import (
	"time"

	"github.com/mentorlink/mentorlink/internal/app/models"
)

// --- Request DTOs ---

// CreateStudentRequest represents student profile creation data
type CreateStudentRequest struct {
	Name          string              `json:"name" validate:"required"`
	Email         string              `json:"email" validate:"required,email"`
	Bio           string              `json:"bio"`
	Interests     []string            `json:"interests"`
	Goals         []string            `json:"goals"`
	TargetDomains []string            `json:"targetDomains"`
	Location      LocationRequest     `json:"location"`
	Preferences   PreferencesRequest  `json:"preferences"`
}

// UpdateStudentRequest represents student profile update data. Nil slices
// leave the stored value untouched.
type UpdateStudentRequest struct {
	Name          *string             `json:"name,omitempty"`
	Bio           *string             `json:"bio,omitempty"`
	Interests     []string            `json:"interests,omitempty"`
	Goals         []string            `json:"goals,omitempty"`
	TargetDomains []string            `json:"targetDomains,omitempty"`
	Location      *LocationRequest    `json:"location,omitempty"`
	Preferences   *PreferencesRequest `json:"preferences,omitempty"`
}

// LocationRequest represents location data in requests
type LocationRequest struct {
	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city"`
	Remote  bool   `json:"remote"`
}

// PreferencesRequest represents mentorship preference data in requests
type PreferencesRequest struct {
	MentorTypes        []string `json:"mentorTypes"`
	MentorExperience   string   `json:"mentorExperience" example:"5+"`
	CommunicationModes []string `json:"communicationModes"`
	SessionFrequency   string   `json:"sessionFrequency" example:"weekly"`
	Languages          []string `json:"languages"`
}

// --- Response DTOs ---

// StudentResponse represents a student profile in API responses
type StudentResponse struct {
	ID            string                    `json:"id"`
	Name          string                    `json:"name"`
	Email         string                    `json:"email"`
	Bio           string                    `json:"bio,omitempty"`
	Interests     []string                  `json:"interests"`
	Goals         []string                  `json:"goals"`
	TargetDomains []string                  `json:"targetDomains"`
	Location      models.Location           `json:"location"`
	Preferences   models.StudentPreferences `json:"preferences"`
	Active        bool                      `json:"active"`
	CreatedAt     time.Time                 `json:"createdAt"`
	UpdatedAt     time.Time                 `json:"updatedAt"`
}

// FromStudent converts a models.StudentProfile to a StudentResponse
func FromStudent(s *models.StudentProfile) StudentResponse {
	if s == nil {
		return StudentResponse{}
	}
	return StudentResponse{
		ID:            s.ID,
		Name:          s.Name,
		Email:         s.Email,
		Bio:           s.Bio,
		Interests:     s.Interests,
		Goals:         s.Goals,
		TargetDomains: s.TargetDomains,
		Location:      s.Location,
		Preferences:   s.Preferences,
		Active:        s.Active,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToLocation converts a LocationRequest to the model type
func (r LocationRequest) ToLocation() models.Location {
	return models.Location{
		Country: r.Country,
		State:   r.State,
		City:    r.City,
		Remote:  r.Remote,
	}
}

// ToPreferences converts a PreferencesRequest to the model type
func (r PreferencesRequest) ToPreferences() models.StudentPreferences {
	return models.StudentPreferences{
		MentorTypes:        r.MentorTypes,
		MentorExperience:   r.MentorExperience,
		CommunicationModes: r.CommunicationModes,
		SessionFrequency:   r.SessionFrequency,
		Languages:          r.Languages,
	}
}
