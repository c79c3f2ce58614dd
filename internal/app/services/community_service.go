package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mentorlink/mentorlink/internal/app/community"
	"github.com/mentorlink/mentorlink/internal/app/models"
	"github.com/mentorlink/mentorlink/internal/app/models/dto"
	"github.com/mentorlink/mentorlink/internal/app/repositories"
	"github.com/mentorlink/mentorlink/internal/pkg/helpers"
)

// CommunityService defines the interface for community operations. All
// membership and stats mutations go through the lifecycle manager, which is
// the sole writer of those fields.
type CommunityService interface {
	CreateCommunity(ctx context.Context, creatorID string, creatorType models.UserType, req *dto.CreateCommunityRequest) (*dto.CommunityResponse, error)
	GetCommunityByID(ctx context.Context, id string) (*dto.CommunityDetailResponse, error)
	GetAllCommunities(ctx context.Context, filter *dto.CommunityFilterRequest) (*dto.CommunityListResponse, error)
	JoinCommunity(ctx context.Context, communityID, userID string, userType models.UserType) (*dto.CommunityDetailResponse, error)
	LeaveCommunity(ctx context.Context, communityID, userID string) (*dto.CommunityDetailResponse, error)
	CreateEvent(ctx context.Context, communityID, userID string, req *dto.CreateEventRequest) (*dto.CommunityDetailResponse, error)
	AddResource(ctx context.Context, communityID, userID string, req *dto.AddResourceRequest) (*dto.CommunityDetailResponse, error)
	UpdateSettings(ctx context.Context, communityID, userID string, req *dto.CommunitySettingsRequest) (*dto.CommunityDetailResponse, error)
}

// communityServiceImpl implements CommunityService
type communityServiceImpl struct {
	communityRepo *repositories.CommunityRepository
	lifecycle     *community.LifecycleManager
	logger        zerolog.Logger
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(communityRepo *repositories.CommunityRepository, lifecycle *community.LifecycleManager, logger zerolog.Logger) CommunityService {
	return &communityServiceImpl{
		communityRepo: communityRepo,
		lifecycle:     lifecycle,
		logger:        logger,
	}
}

// CreateCommunity creates a new community with the creator as its first
// admin member
func (s *communityServiceImpl) CreateCommunity(ctx context.Context, creatorID string, creatorType models.UserType, req *dto.CreateCommunityRequest) (*dto.CommunityResponse, error) {
	now := time.Now()
	c := &models.Community{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		CreatedBy:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Revision:    1,
		Active:      true,
		Category: models.CommunityCategory{
			Domain:     req.Category.Domain,
			SubDomains: req.Category.SubDomains,
			Tags:       req.Category.Tags,
		},
		Location: models.CommunityLocation{
			LocationBased: req.Location.LocationBased,
			Country:       req.Location.Country,
			State:         req.Location.State,
			City:          req.Location.City,
			Online:        req.Location.Online,
		},
		Settings: models.CommunitySettings{
			MaxMembers:      req.Settings.MaxMembers,
			IsPublic:        req.Settings.IsPublic,
			RequireApproval: req.Settings.RequireApproval,
			AllowMentors:    req.Settings.AllowMentors,
		},
		Members: []models.CommunityMember{
			{
				UserID:   creatorID,
				UserType: creatorType,
				Role:     models.RoleAdmin,
				JoinedAt: now,
				Active:   true,
			},
		},
		Stats: models.CommunityStats{
			TotalMembers:  1,
			ActiveMembers: 1,
		},
		Resources: []models.CommunityResource{},
		Events:    []models.CommunityEvent{},
	}

	if err := s.communityRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("communityId", c.ID).
		Str("createdBy", creatorID).
		Msg("Community created")
	response := dto.FromCommunity(c)
	return &response, nil
}

// GetCommunityByID retrieves a community with full membership detail
func (s *communityServiceImpl) GetCommunityByID(ctx context.Context, id string) (*dto.CommunityDetailResponse, error) {
	c, err := s.communityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := dto.FromCommunityDetail(c)
	return &response, nil
}

// GetAllCommunities retrieves communities matching the filter with
// pagination
func (s *communityServiceImpl) GetAllCommunities(ctx context.Context, filter *dto.CommunityFilterRequest) (*dto.CommunityListResponse, error) {
	communities, total, err := s.communityRepo.Find(ctx, repositories.CommunityFilter{
		Domain:     filter.Domain,
		Type:       filter.Type,
		Country:    filter.Country,
		City:       filter.City,
		OnlineOnly: filter.Online,
		Search:     filter.Search,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	})
	if err != nil {
		s.logger.Error().Err(err).Interface("filter", filter).Msg("Failed to list communities")
		return nil, err
	}

	responses := make([]dto.CommunityResponse, 0, len(communities))
	for _, c := range communities {
		responses = append(responses, dto.FromCommunity(c))
	}
	return &dto.CommunityListResponse{
		Communities:    responses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// JoinCommunity adds the user as a member
func (s *communityServiceImpl) JoinCommunity(ctx context.Context, communityID, userID string, userType models.UserType) (*dto.CommunityDetailResponse, error) {
	c, err := s.lifecycle.Join(ctx, communityID, userID, userType)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("communityId", communityID).
		Str("userId", userID).
		Int("totalMembers", c.Stats.TotalMembers).
		Msg("User joined community")
	response := dto.FromCommunityDetail(c)
	return &response, nil
}

// LeaveCommunity removes the user from the membership set
func (s *communityServiceImpl) LeaveCommunity(ctx context.Context, communityID, userID string) (*dto.CommunityDetailResponse, error) {
	c, err := s.lifecycle.Leave(ctx, communityID, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("communityId", communityID).
		Str("userId", userID).
		Int("totalMembers", c.Stats.TotalMembers).
		Msg("User left community")
	response := dto.FromCommunityDetail(c)
	return &response, nil
}

// CreateEvent schedules a community event
func (s *communityServiceImpl) CreateEvent(ctx context.Context, communityID, userID string, req *dto.CreateEventRequest) (*dto.CommunityDetailResponse, error) {
	c, err := s.lifecycle.CreateEvent(ctx, communityID, userID, models.CommunityEvent{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Type:        req.Type,
	})
	if err != nil {
		return nil, err
	}
	response := dto.FromCommunityDetail(c)
	return &response, nil
}

// AddResource shares a learning resource inside a community
func (s *communityServiceImpl) AddResource(ctx context.Context, communityID, userID string, req *dto.AddResourceRequest) (*dto.CommunityDetailResponse, error) {
	c, err := s.lifecycle.AddResource(ctx, communityID, userID, models.CommunityResource{
		Title: req.Title,
		Type:  req.Type,
		URL:   req.URL,
	})
	if err != nil {
		return nil, err
	}
	response := dto.FromCommunityDetail(c)
	return &response, nil
}

// UpdateSettings replaces the community settings on behalf of an admin
func (s *communityServiceImpl) UpdateSettings(ctx context.Context, communityID, userID string, req *dto.CommunitySettingsRequest) (*dto.CommunityDetailResponse, error) {
	c, err := s.lifecycle.UpdateSettings(ctx, communityID, userID, models.CommunitySettings{
		MaxMembers:      req.MaxMembers,
		IsPublic:        req.IsPublic,
		RequireApproval: req.RequireApproval,
		AllowMentors:    req.AllowMentors,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("communityId", communityID).
		Str("updatedBy", userID).
		Msg("Community settings updated")
	response := dto.FromCommunityDetail(c)
	return &response, nil
}
