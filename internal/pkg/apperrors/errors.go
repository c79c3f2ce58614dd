package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrBadRequest       = errors.New("bad request")
)

// Profile errors
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrMentorNotFound     = errors.New("mentor not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrMentorInactive     = errors.New("mentor profile is deactivated")
)

// Community errors
var (
	ErrCommunityNotFound = errors.New("community not found")
	ErrAlreadyMember     = errors.New("already a member of this community")
	ErrCommunityFull     = errors.New("community is full")
	ErrNotMember         = errors.New("not a member of this community")
	ErrSoleAdmin         = errors.New("cannot leave as the only admin")

	// ErrRevisionConflict signals a concurrent mutation race on a community.
	// Callers retry the whole operation; it is never surfaced to end users
	// as a hard failure.
	ErrRevisionConflict = errors.New("community revision conflict")
)

// Matching errors
var (
	ErrRequestNotFound      = errors.New("matching request not found")
	ErrRequestAlreadyClosed = errors.New("matching request already finalized")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")

	// ErrEnrichmentUnavailable marks a failed or absent enrichment signal.
	// It is always recovered locally via the token-overlap fallback and
	// never surfaced to callers.
	ErrEnrichmentUnavailable = errors.New("enrichment provider unavailable")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewValidationError creates a new custom error for a malformed or missing
// required field with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithStatusMsg adds a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}
