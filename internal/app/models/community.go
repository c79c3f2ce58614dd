package models

import "time"

// MemberRole defines a member's role inside a community
type MemberRole string

const (
	RoleAdmin     MemberRole = "admin"
	RoleModerator MemberRole = "moderator"
	RoleMember    MemberRole = "member"
)

// IsValid checks whether the role is one of the known values
func (r MemberRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleMember:
		return true
	default:
		return false
	}
}

// CanCreateEvents reports whether this role may create community events
func (r MemberRole) CanCreateEvents() bool {
	return r == RoleAdmin || r == RoleModerator
}

// Community represents a learning community based on the 'communities' table.
// Revision is a monotonically increasing marker used for optimistic
// concurrency control on membership and stats mutations.
type Community struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" example:"AI/ML Enthusiasts Bay Area"`
	Description string    `json:"description" db:"description"`
	Type        string    `json:"type" db:"type" example:"study-group"`
	CreatedBy   string    `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
	Revision    int64     `json:"revision" db:"revision"`
	Active      bool      `json:"active" db:"active"`

	Category CommunityCategory `json:"category" db:"category"`
	Location CommunityLocation `json:"location" db:"location"`
	Settings CommunitySettings `json:"settings" db:"settings"`

	Members   []CommunityMember   `json:"members" db:"members"`
	Stats     CommunityStats      `json:"stats" db:"stats"`
	Resources []CommunityResource `json:"resources" db:"resources"`
	Events    []CommunityEvent    `json:"events" db:"events"`
}

// CommunityCategory classifies what a community is about
type CommunityCategory struct {
	Domain     string   `json:"domain" example:"technology"`
	SubDomains []string `json:"subDomains"`
	Tags       []string `json:"tags"`
}

// CommunityLocation describes where a community meets, if anywhere
type CommunityLocation struct {
	LocationBased bool   `json:"locationBased"`
	Country       string `json:"country,omitempty"`
	State         string `json:"state,omitempty"`
	City          string `json:"city,omitempty"`
	Online        bool   `json:"online"`
}

// CommunitySettings holds the admin-controlled community configuration
type CommunitySettings struct {
	MaxMembers      int  `json:"maxMembers"`
	IsPublic        bool `json:"isPublic"`
	RequireApproval bool `json:"requireApproval"`
	AllowMentors    bool `json:"allowMentors"`
}

// CommunityMember represents one entry in a community's membership set
type CommunityMember struct {
	UserID   string     `json:"userId"`
	UserType UserType   `json:"userType"`
	Role     MemberRole `json:"role"`
	JoinedAt time.Time  `json:"joinedAt"`
	Active   bool       `json:"active"`
}

// CommunityStats holds aggregate counters that must stay consistent with
// the membership set: TotalMembers == len(Members) and ActiveMembers equals
// the number of active entries at all times.
type CommunityStats struct {
	TotalMembers   int     `json:"totalMembers"`
	ActiveMembers  int     `json:"activeMembers"`
	EngagementRate float64 `json:"engagementRate"`
	TotalEvents    int     `json:"totalEvents"`
}

// CommunityResource is a shared learning resource posted by a member
type CommunityResource struct {
	Title      string    `json:"title"`
	Type       string    `json:"type" example:"article"`
	URL        string    `json:"url"`
	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// CommunityEvent is an upcoming event scheduled inside a community
type CommunityEvent struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type" example:"workshop"`
	CreatedBy   string    `json:"createdBy"`
}

// FindMember returns the membership entry for userID, or nil when the user
// is not a member.
func (c *Community) FindMember(userID string) *CommunityMember {
	for i := range c.Members {
		if c.Members[i].UserID == userID {
			return &c.Members[i]
		}
	}
	return nil
}

// AdminCount returns how many members hold the admin role, optionally
// excluding one user id.
func (c *Community) AdminCount(excludeUserID string) int {
	count := 0
	for _, m := range c.Members {
		if m.Role == RoleAdmin && m.UserID != excludeUserID {
			count++
		}
	}
	return count
}
