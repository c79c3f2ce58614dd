package dto

import (
	"time"

	"github.com/mentorlink/mentorlink/internal/app/models"
)

// --- Request DTOs ---

// CreateCommunityRequest represents community creation data
type CreateCommunityRequest struct {
	Name        string                   `json:"name" binding:"required"`
	Description string                   `json:"description"`
	Type        string                   `json:"type" binding:"required" example:"study-group"`
	Category    CommunityCategoryRequest `json:"category" binding:"required"`
	Location    CommunityLocationRequest `json:"location"`
	Settings    CommunitySettingsRequest `json:"settings"`
}

// CommunityCategoryRequest represents category data in requests
type CommunityCategoryRequest struct {
	Domain     string   `json:"domain" binding:"required"`
	SubDomains []string `json:"subDomains"`
	Tags       []string `json:"tags"`
}

// CommunityLocationRequest represents community location data in requests
type CommunityLocationRequest struct {
	LocationBased bool   `json:"locationBased"`
	Country       string `json:"country"`
	State         string `json:"state"`
	City          string `json:"city"`
	Online        bool   `json:"online"`
}

// CommunitySettingsRequest represents community settings in requests
type CommunitySettingsRequest struct {
	MaxMembers      int  `json:"maxMembers" binding:"min=0"`
	IsPublic        bool `json:"isPublic"`
	RequireApproval bool `json:"requireApproval"`
	AllowMentors    bool `json:"allowMentors"`
}

// CreateEventRequest represents a community event creation request
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" binding:"required"`
	Type        string    `json:"type" example:"workshop"`
}

// AddResourceRequest represents a shared resource submission
type AddResourceRequest struct {
	Title string `json:"title" binding:"required"`
	Type  string `json:"type" example:"article"`
	URL   string `json:"url" binding:"required,url"`
}

// CommunityFilterRequest represents community list filter parameters
type CommunityFilterRequest struct {
	Domain   *string `form:"domain,omitempty"`
	Type     *string `form:"type,omitempty"`
	Country  *string `form:"country,omitempty"`
	City     *string `form:"city,omitempty"`
	Online   *bool   `form:"online,omitempty"`
	Search   *string `form:"search,omitempty"`
	Page     int     `form:"page,default=1" binding:"min=1"`
	PageSize int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// --- Response DTOs ---

// CommunityMemberResponse represents a member entry in responses
type CommunityMemberResponse struct {
	UserID   string    `json:"userId"`
	UserType string    `json:"userType"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
	Active   bool      `json:"active"`
}

// CommunityResponse represents basic community information
type CommunityResponse struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Type        string                   `json:"type"`
	Category    models.CommunityCategory `json:"category"`
	Location    models.CommunityLocation `json:"location"`
	Settings    models.CommunitySettings `json:"settings"`
	Stats       models.CommunityStats    `json:"stats"`
	CreatedBy   string                   `json:"createdBy"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

// CommunityDetailResponse extends CommunityResponse with membership details
type CommunityDetailResponse struct {
	CommunityResponse
	Members   []CommunityMemberResponse  `json:"members,omitempty"`
	Resources []models.CommunityResource `json:"resources,omitempty"`
	Events    []models.CommunityEvent    `json:"events,omitempty"`
}

// CommunityListResponse represents a paginated community list
type CommunityListResponse struct {
	Communities []CommunityResponse `json:"communities"`
	PaginationInfo
}

// RecommendedCommunityResponse pairs a community with its relevance score
type RecommendedCommunityResponse struct {
	Community      CommunityResponse `json:"community"`
	RelevanceScore int               `json:"relevanceScore" example:"85"`
	Reason         string            `json:"reason" example:"Matches your interests in: go, backend, databases"`
}

// FromCommunity converts a models.Community to a CommunityResponse
func FromCommunity(c *models.Community) CommunityResponse {
	if c == nil {
		return CommunityResponse{}
	}
	return CommunityResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Type:        c.Type,
		Category:    c.Category,
		Location:    c.Location,
		Settings:    c.Settings,
		Stats:       c.Stats,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// FromCommunityDetail converts a models.Community including members,
// resources, and events
func FromCommunityDetail(c *models.Community) CommunityDetailResponse {
	detail := CommunityDetailResponse{CommunityResponse: FromCommunity(c)}
	if c == nil {
		return detail
	}
	detail.Members = make([]CommunityMemberResponse, 0, len(c.Members))
	for _, m := range c.Members {
		detail.Members = append(detail.Members, CommunityMemberResponse{
			UserID:   m.UserID,
			UserType: string(m.UserType),
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt,
			Active:   m.Active,
		})
	}
	detail.Resources = c.Resources
	detail.Events = c.Events
	return detail
}
