package models

import "time"

// RequestStatus represents the lifecycle state of a matching request
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestDeclined  RequestStatus = "declined"
	RequestCompleted RequestStatus = "completed"
)

// IsValid checks whether the status is one of the known values
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestDeclined, RequestCompleted:
		return true
	default:
		return false
	}
}

// IsFinal reports whether the status permits no further transitions
func (s RequestStatus) IsFinal() bool {
	return s == RequestDeclined || s == RequestCompleted
}

// MatchingRequest links one student to one mentor. Requests are an audit
// trail: they transition between statuses but are never deleted.
type MatchingRequest struct {
	ID         string        `json:"id" db:"id"`
	StudentID  string        `json:"studentId" db:"student_id"`
	MentorID   string        `json:"mentorId" db:"mentor_id"`
	Message    string        `json:"message,omitempty" db:"message"`
	MatchScore int           `json:"matchScore" db:"match_score"`
	Status     RequestStatus `json:"status" db:"status"`
	CreatedAt  time.Time     `json:"createdAt" db:"created_at"`

	// RespondedAt is set when the mentor accepts or declines
	RespondedAt *time.Time `json:"respondedAt,omitempty" db:"responded_at"`

	// Rating may be set by the student after completion (1-5)
	Rating *float64 `json:"rating,omitempty" db:"rating"`
}

// HasResponse reports whether the mentor has responded to this request
func (r *MatchingRequest) HasResponse() bool {
	return r.RespondedAt != nil
}
