package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorlink/mentorlink/internal/app/models/dto"
	"github.com/mentorlink/mentorlink/internal/app/services"
	"github.com/mentorlink/mentorlink/internal/middleware"
	"github.com/mentorlink/mentorlink/internal/pkg/apperrors"
)

// MatchingController handles mentor matching and recommendation operations
type MatchingController struct {
	matchingService services.MatchingService
}

// NewMatchingController creates a new MatchingController
func NewMatchingController(matchingService services.MatchingService) *MatchingController {
	return &MatchingController{
		matchingService: matchingService,
	}
}

// FindMentors handles ranking mentors for the authenticated student
// @Summary Find compatible mentors
// @Description Scores all active mentors against the student's profile and returns the best matches
// @Tags matching
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of matches" default(10) minimum(1) maximum(50)
// @Success 200 {object} dto.APIResponse{data=[]dto.MentorMatchResponse} "Matches computed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /matching/mentors [get]
func (c *MatchingController) FindMentors(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)

	var req dto.FindMentorsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	response, err := c.matchingService.FindMentors(ctx, userID, req.Limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// RecommendCommunities handles community recommendations for the authenticated user
// @Summary Recommend communities
// @Description Ranks active communities by relevance to the user's profile, excluding communities the user already belongs to
// @Tags matching
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of recommendations" default(10) minimum(1) maximum(50)
// @Success 200 {object} dto.APIResponse{data=[]dto.RecommendedCommunityResponse} "Recommendations computed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /matching/communities [get]
func (c *MatchingController) RecommendCommunities(ctx *gin.Context) {
	userID, userType := requestUser(ctx)

	var req dto.RecommendCommunitiesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	response, err := c.matchingService.RecommendCommunities(ctx, userID, userType, req.Limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// CreateRequest handles a student sending a mentorship request
// @Summary Create mentorship request
// @Description Sends a mentorship request from the authenticated student to a mentor
// @Tags matching
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMatchingRequestRequest true "Request details"
// @Success 201 {object} dto.APIResponse{data=dto.MatchingRequestResponse} "Request created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Student or mentor not found"
// @Failure 409 {object} dto.ErrorResponse "An open request to this mentor already exists"
// @Failure 422 {object} dto.ErrorResponse "Mentor is not accepting new mentees"
// @Router /matching/requests [post]
func (c *MatchingController) CreateRequest(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)

	var req dto.CreateMatchingRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	response, err := c.matchingService.CreateRequest(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(response))
}

// RespondRequest handles a mentor accepting or declining a request
// @Summary Respond to mentorship request
// @Description Accepts or declines a pending mentorship request addressed to the authenticated mentor
// @Tags matching
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body dto.RespondMatchingRequestRequest true "Accept or decline"
// @Success 200 {object} dto.APIResponse{data=dto.MatchingRequestResponse} "Request updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 403 {object} dto.ErrorResponse "Request belongs to another mentor"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request is no longer pending"
// @Router /matching/requests/{id}/respond [post]
func (c *MatchingController) RespondRequest(ctx *gin.Context) {
	id := ctx.Param("id")
	userID := ctx.GetString(middleware.ContextUserID)

	var req dto.RespondMatchingRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	response, err := c.matchingService.RespondRequest(ctx, id, userID, req.Accept)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// CompleteRequest handles a student closing out an accepted mentorship
// @Summary Complete mentorship request
// @Description Marks an accepted mentorship as completed, optionally rating the mentor
// @Tags matching
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body dto.CompleteMatchingRequestRequest true "Optional rating (1-5)"
// @Success 200 {object} dto.APIResponse{data=dto.MatchingRequestResponse} "Request completed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or rating"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 403 {object} dto.ErrorResponse "Request belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request is not in an accepted state"
// @Router /matching/requests/{id}/complete [post]
func (c *MatchingController) CompleteRequest(ctx *gin.Context) {
	id := ctx.Param("id")
	userID := ctx.GetString(middleware.ContextUserID)

	var req dto.CompleteMatchingRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	response, err := c.matchingService.CompleteRequest(ctx, id, userID, req.Rating)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetMyRequests handles listing the authenticated student's mentorship requests
// @Summary List own mentorship requests
// @Description Retrieves all mentorship requests created by the authenticated student
// @Tags matching
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.MatchingRequestResponse} "Requests retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Router /matching/requests [get]
func (c *MatchingController) GetMyRequests(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)

	response, err := c.matchingService.GetStudentRequests(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetIncomingRequests handles listing requests addressed to the authenticated mentor
// @Summary List incoming mentorship requests
// @Description Retrieves all mentorship requests addressed to the authenticated mentor
// @Tags matching
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.MatchingRequestResponse} "Requests retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Router /matching/requests/incoming [get]
func (c *MatchingController) GetIncomingRequests(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)

	response, err := c.matchingService.GetMentorRequests(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetMentorStats handles aggregating a mentor's request statistics
// @Summary Get mentor statistics
// @Description Aggregates acceptance rate, completed sessions and response time for a mentor
// @Tags matching
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mentor ID"
// @Success 200 {object} dto.APIResponse{data=dto.MentorStatsResponse} "Statistics computed successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Mentor not found"
// @Router /mentors/{id}/stats [get]
func (c *MatchingController) GetMentorStats(ctx *gin.Context) {
	id := ctx.Param("id")

	response, err := c.matchingService.GetMentorStats(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
