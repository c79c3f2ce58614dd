package models

// UserType identifies which kind of profile a user id refers to
type UserType string

const (
	UserTypeStudent UserType = "student"
	UserTypeMentor  UserType = "mentor"
)

// IsValid checks whether the user type is one of the known values
func (t UserType) IsValid() bool {
	return t == UserTypeStudent || t == UserTypeMentor
}

// Location holds the geographic fields shared by students and mentors.
// Remote means "open to remote" for a student and "willing to mentor
// remotely" for a mentor.
type Location struct {
	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city"`
	Remote  bool   `json:"remote"`
}
