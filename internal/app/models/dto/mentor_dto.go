package dto

import (
	"time"

	"github.com/mentorlink/mentorlink/internal/app/models"
)

// --- Request DTOs ---

// CreateMentorRequest represents mentor profile creation data
type CreateMentorRequest struct {
	Name         string              `json:"name" validate:"required"`
	Email        string              `json:"email" validate:"required,email"`
	Bio          string              `json:"bio"`
	Expertise    ExpertiseRequest    `json:"expertise" validate:"required"`
	Availability AvailabilityRequest `json:"availability"`
	Style        StyleRequest        `json:"style"`
	Location     LocationRequest     `json:"location"`
	Pricing      PricingRequest      `json:"pricing"`
}

// ExpertiseRequest represents mentor expertise data in requests
type ExpertiseRequest struct {
	Domains           []string `json:"domains" validate:"required,min=1"`
	Skills            []string `json:"skills"`
	Industries        []string `json:"industries"`
	YearsOfExperience int      `json:"yearsOfExperience" validate:"min=0"`
}

// AvailabilityRequest represents mentor availability data in requests
type AvailabilityRequest struct {
	HoursPerWeek  int      `json:"hoursPerWeek" validate:"min=0"`
	PreferredDays []string `json:"preferredDays"`
	Timezone      string   `json:"timezone"`
}

// StyleRequest represents mentorship style data in requests
type StyleRequest struct {
	Approach        string   `json:"approach"`
	Specializations []string `json:"specializations"`
}

// PricingRequest represents pricing data in requests
type PricingRequest struct {
	IsFree     bool    `json:"isFree"`
	HourlyRate float64 `json:"hourlyRate" validate:"min=0"`
}

// UpdateAvailabilityRequest updates only the availability block
type UpdateAvailabilityRequest struct {
	HoursPerWeek  *int     `json:"hoursPerWeek,omitempty"`
	PreferredDays []string `json:"preferredDays,omitempty"`
	Timezone      *string  `json:"timezone,omitempty"`
}

// VerifyMentorRequest represents an administrative verification action
type VerifyMentorRequest struct {
	Method string `json:"method" binding:"required" example:"linkedin"`
}

// MentorFilterRequest represents mentor search filter parameters
type MentorFilterRequest struct {
	Domain        *string  `form:"domain,omitempty"`
	Country       *string  `form:"country,omitempty"`
	City          *string  `form:"city,omitempty"`
	VerifiedOnly  *bool    `form:"verified,omitempty"`
	FreeOnly      *bool    `form:"free,omitempty"`
	MinRating     *float64 `form:"minRating,omitempty"`
	MinExperience *int     `form:"minExperience,omitempty"`
	SortBy        string   `form:"sortBy,default=rating" binding:"omitempty,oneof=rating experience reviews newest"`
	Page          int      `form:"page,default=1" binding:"min=1"`
	PageSize      int      `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// --- Response DTOs ---

// MentorResponse represents a mentor profile in API responses
type MentorResponse struct {
	ID           string                    `json:"id"`
	Name         string                    `json:"name"`
	Email        string                    `json:"email"`
	Bio          string                    `json:"bio,omitempty"`
	Expertise    models.Expertise          `json:"expertise"`
	Availability models.Availability       `json:"availability"`
	Style        models.MentorshipStyle    `json:"style"`
	Location     models.Location           `json:"location"`
	Verification models.MentorVerification `json:"verification"`
	Pricing      models.Pricing            `json:"pricing"`
	Stats        models.MentorRollingStats `json:"stats"`
	Active       bool                      `json:"active"`
	CreatedAt    time.Time                 `json:"createdAt"`
	UpdatedAt    time.Time                 `json:"updatedAt"`
}

// MentorListResponse represents a paginated mentor list
type MentorListResponse struct {
	Mentors []MentorResponse `json:"mentors"`
	PaginationInfo
}

// MentorStatsResponse represents derived mentor statistics
type MentorStatsResponse struct {
	MentorID             string           `json:"mentorId"`
	TotalRequests        int              `json:"totalRequests"`
	AcceptedRequests     int              `json:"acceptedRequests"`
	CompletedSessions    int              `json:"completedSessions"`
	AcceptanceRate       int              `json:"acceptanceRate" example:"40"`
	AvgResponseTimeHours int              `json:"avgResponseTimeHours" example:"6"`
	RecentReviews        []ReviewResponse `json:"recentReviews"`
}

// ReviewResponse represents one completed-session rating in API responses
type ReviewResponse struct {
	StudentID string    `json:"studentId"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromMentor converts a models.MentorProfile to a MentorResponse
func FromMentor(m *models.MentorProfile) MentorResponse {
	if m == nil {
		return MentorResponse{}
	}
	return MentorResponse{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Bio:          m.Bio,
		Expertise:    m.Expertise,
		Availability: m.Availability,
		Style:        m.Style,
		Location:     m.Location,
		Verification: m.Verification,
		Pricing:      m.Pricing,
		Stats:        m.Stats,
		Active:       m.Active,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromMentors converts a slice of mentor profiles
func FromMentors(mentors []*models.MentorProfile) []MentorResponse {
	responses := make([]MentorResponse, 0, len(mentors))
	for _, m := range mentors {
		responses = append(responses, FromMentor(m))
	}
	return responses
}
