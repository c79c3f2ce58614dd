package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorlink/mentorlink/internal/app/models"
	"github.com/mentorlink/mentorlink/internal/app/models/dto"
	"github.com/mentorlink/mentorlink/internal/app/services"
	"github.com/mentorlink/mentorlink/internal/middleware"
	"github.com/mentorlink/mentorlink/internal/pkg/apperrors"
)

// CommunityController handles community related operations
type CommunityController struct {
	communityService services.CommunityService
}

// NewCommunityController creates a new CommunityController
func NewCommunityController(communityService services.CommunityService) *CommunityController {
	return &CommunityController{
		communityService: communityService,
	}
}

// requestUser pulls the authenticated user's identity from the request context.
func requestUser(ctx *gin.Context) (string, models.UserType) {
	return ctx.GetString(middleware.ContextUserID), models.UserType(ctx.GetString(middleware.ContextUserType))
}

// CreateCommunity handles community creation
// @Summary Create community
// @Description Creates a new community with the authenticated user as its first admin
// @Tags communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCommunityRequest true "Community details"
// @Success 201 {object} dto.APIResponse{data=dto.CommunityResponse} "Community created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Router /communities [post]
func (c *CommunityController) CreateCommunity(ctx *gin.Context) {
	userID, userType := requestUser(ctx)

	var req dto.CreateCommunityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	response, err := c.communityService.CreateCommunity(ctx, userID, userType, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(response))
}

// GetAllCommunities handles retrieving all communities with optional filtering
// @Summary Get all communities
// @Description Retrieves a list of communities with optional filtering and pagination
// @Tags communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param domain query string false "Filter by category domain"
// @Param type query string false "Filter by community type"
// @Param search query string false "Search by name or description"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param pageSize query int false "Page size (default: 10, max: 100)" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.CommunityListResponse} "Communities retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Router /communities [get]
func (c *CommunityController) GetAllCommunities(ctx *gin.Context) {
	var filter dto.CommunityFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	response, err := c.communityService.GetAllCommunities(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetCommunityByID handles retrieving a specific community by ID
// @Summary Get community by ID
// @Description Retrieves a specific community with its members, events and resources
// @Tags communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Community ID"
// @Success 200 {object} dto.APIResponse{data=dto.CommunityDetailResponse} "Community retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Router /communities/{id} [get]
func (c *CommunityController) GetCommunityByID(ctx *gin.Context) {
	id := ctx.Param("id")

	response, err := c.communityService.GetCommunityByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// JoinCommunity handles a user joining a community
// @Summary Join community
// @Description Adds the authenticated user to the community as an active member
// @Tags communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Community ID"
// @Success 200 {object} dto.APIResponse{data=dto.CommunityDetailResponse} "Joined successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Failure 409 {object} dto.ErrorResponse "Already a member or community is full"
// @Router /communities/{id}/join [post]
func (c *CommunityController) JoinCommunity(ctx *gin.Context) {
	id := ctx.Param("id")
	userID, userType := requestUser(ctx)

	response, err := c.communityService.JoinCommunity(ctx, id, userID, userType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// LeaveCommunity handles a user leaving a community
// @Summary Leave community
// @Description Removes the authenticated user from the community. The last admin cannot leave.
// @Tags communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Community ID"
// @Success 200 {object} dto.APIResponse{data=dto.CommunityDetailResponse} "Left successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Failure 409 {object} dto.ErrorResponse "Not a member or sole admin"
// @Router /communities/{id}/leave [post]
func (c *CommunityController) LeaveCommunity(ctx *gin.Context) {
	id := ctx.Param("id")
	userID := ctx.GetString(middleware.ContextUserID)

	response, err := c.communityService.LeaveCommunity(ctx, id, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// CreateEvent handles scheduling a community event
// @Summary Create community event
// @Description Schedules a new event. Requires a role allowed to create events.
// @Tags communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Community ID"
// @Param request body dto.CreateEventRequest true "Event details"
// @Success 201 {object} dto.APIResponse{data=dto.CommunityDetailResponse} "Event created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 403 {object} dto.ErrorResponse "Role cannot create events"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Router /communities/{id}/events [post]
func (c *CommunityController) CreateEvent(ctx *gin.Context) {
	id := ctx.Param("id")
	userID := ctx.GetString(middleware.ContextUserID)

	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	response, err := c.communityService.CreateEvent(ctx, id, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(response))
}

// AddResource handles sharing a resource with a community
// @Summary Add community resource
// @Description Shares a resource with the community. Requires active membership.
// @Tags communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Community ID"
// @Param request body dto.AddResourceRequest true "Resource details"
// @Success 201 {object} dto.APIResponse{data=dto.CommunityDetailResponse} "Resource added successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 403 {object} dto.ErrorResponse "Membership is not active"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Router /communities/{id}/resources [post]
func (c *CommunityController) AddResource(ctx *gin.Context) {
	id := ctx.Param("id")
	userID := ctx.GetString(middleware.ContextUserID)

	var req dto.AddResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	response, err := c.communityService.AddResource(ctx, id, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(response))
}

// UpdateSettings handles community settings changes
// @Summary Update community settings
// @Description Replaces the community settings. Only community admins may change them.
// @Tags communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Community ID"
// @Param request body dto.CommunitySettingsRequest true "New settings"
// @Success 200 {object} dto.APIResponse{data=dto.CommunityDetailResponse} "Settings updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a community admin"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Router /communities/{id}/settings [patch]
func (c *CommunityController) UpdateSettings(ctx *gin.Context) {
	id := ctx.Param("id")
	userID := ctx.GetString(middleware.ContextUserID)

	var req dto.CommunitySettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	response, err := c.communityService.UpdateSettings(ctx, id, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
