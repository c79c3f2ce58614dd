package models

import "time"

// StudentProfile defines the student model based on the 'students' table.
// Free-text fields (bio, interests, goals) feed the matching engine; the
// rest is directory data.
type StudentProfile struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" example:"Alex Johnson"`
	Email     string    `json:"email" db:"email" example:"alex@example.com"`
	Bio       string    `json:"bio" db:"bio"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Active    bool      `json:"active" db:"active"`

	// Interests and goals are ordered; repetition is meaningful to the
	// matching engine and must not be collapsed.
	Interests     []string `json:"interests" db:"interests"`
	Goals         []string `json:"goals" db:"goals"`
	TargetDomains []string `json:"targetDomains" db:"target_domains"`

	Location    Location           `json:"location" db:"location"`
	Preferences StudentPreferences `json:"preferences" db:"preferences"`
}

// StudentPreferences captures what kind of mentorship a student is looking for
type StudentPreferences struct {
	MentorTypes        []string `json:"mentorTypes"`
	MentorExperience   string   `json:"mentorExperience" example:"5+"`
	CommunicationModes []string `json:"communicationModes"`
	SessionFrequency   string   `json:"sessionFrequency" example:"bi-weekly"`
	Languages          []string `json:"languages"`
}
