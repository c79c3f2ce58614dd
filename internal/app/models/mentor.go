package models

import "time"

// VerificationStatus represents the mentor verification state.
// Once a mentor reaches Verified there is no transition back.
type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
)

// IsValid checks whether the status is one of the known values
func (s VerificationStatus) IsValid() bool {
	switch s {
	case VerificationUnverified, VerificationPending, VerificationVerified:
		return true
	default:
		return false
	}
}

// MentorProfile defines the mentor model based on the 'mentors' table
type MentorProfile struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" example:"Dr. Sarah Chen"`
	Email     string    `json:"email" db:"email" example:"sarah.chen@example.com"`
	Bio       string    `json:"bio" db:"bio"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Active    bool      `json:"active" db:"active"`

	Expertise    Expertise          `json:"expertise" db:"expertise"`
	Availability Availability       `json:"availability" db:"availability"`
	Style        MentorshipStyle    `json:"style" db:"style"`
	Location     Location           `json:"location" db:"location"`
	Verification MentorVerification `json:"verification" db:"verification"`
	Pricing      Pricing            `json:"pricing" db:"pricing"`
	Stats        MentorRollingStats `json:"stats" db:"stats"`

	ProfilePictureURL        string   `json:"profilePictureUrl,omitempty" db:"profile_picture_url"`
	VerificationDocumentURLs []string `json:"verificationDocumentUrls,omitempty" db:"verification_document_urls"`
}

// Expertise describes what a mentor can teach
type Expertise struct {
	Domains           []string `json:"domains"`
	Skills            []string `json:"skills"`
	Industries        []string `json:"industries"`
	YearsOfExperience int      `json:"yearsOfExperience"`
}

// Availability describes when and how much a mentor can commit
type Availability struct {
	HoursPerWeek  int      `json:"hoursPerWeek"`
	PreferredDays []string `json:"preferredDays"`
	Timezone      string   `json:"timezone" example:"PST"`
}

// MentorshipStyle describes how a mentor works with mentees
type MentorshipStyle struct {
	Approach        string   `json:"approach" example:"structured"`
	Specializations []string `json:"specializations"`
}

// MentorVerification holds the verification state and how it was obtained
type MentorVerification struct {
	Status     VerificationStatus `json:"status"`
	Method     string             `json:"method,omitempty" example:"linkedin"`
	VerifiedAt *time.Time         `json:"verifiedAt,omitempty"`
}

// IsVerified reports whether the mentor's credentials have been confirmed
func (v MentorVerification) IsVerified() bool {
	return v.Status == VerificationVerified
}

// Pricing describes whether mentorship is free or paid
type Pricing struct {
	IsFree     bool    `json:"isFree"`
	HourlyRate float64 `json:"hourlyRate,omitempty"`
}

// MentorRollingStats holds the denormalized counters shown on a mentor card.
// Request-history derived figures (acceptance rate, response time) are
// computed by the statistics aggregator, not stored here.
type MentorRollingStats struct {
	TotalMentees  int     `json:"totalMentees"`
	ActiveMentees int     `json:"activeMentees"`
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}
