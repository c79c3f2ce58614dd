package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorlink/mentorlink/internal/app/models/dto"
	"github.com/mentorlink/mentorlink/internal/app/services"
	"github.com/mentorlink/mentorlink/internal/middleware"
	"github.com/mentorlink/mentorlink/internal/pkg/apperrors"
)

// maxUploadSize limits profile picture and document uploads to 5 MB.
const maxUploadSize = 5 << 20

// MentorController handles mentor profile operations
type MentorController struct {
	mentorService services.MentorService
}

// NewMentorController creates a new MentorController
func NewMentorController(mentorService services.MentorService) *MentorController {
	return &MentorController{
		mentorService: mentorService,
	}
}

// CreateMentor handles mentor profile creation
// @Summary Create mentor profile
// @Description Creates a new mentor profile for the authenticated user
// @Tags mentors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMentorRequest true "Mentor profile details"
// @Success 201 {object} dto.APIResponse{data=dto.MentorResponse} "Mentor created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /mentors [post]
func (c *MentorController) CreateMentor(ctx *gin.Context) {
	req := ctx.MustGet(middleware.ContextValidatedBody).(*dto.CreateMentorRequest)

	response, err := c.mentorService.CreateMentor(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(response))
}

// GetMentorByID handles retrieving a mentor profile by ID
// @Summary Get mentor by ID
// @Description Retrieves a mentor profile by its ID
// @Tags mentors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mentor ID"
// @Success 200 {object} dto.APIResponse{data=dto.MentorResponse} "Mentor retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Mentor not found"
// @Router /mentors/{id} [get]
func (c *MentorController) GetMentorByID(ctx *gin.Context) {
	id := ctx.Param("id")

	response, err := c.mentorService.GetMentorByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// FindMentors handles listing mentors with filtering and pagination
// @Summary List mentors
// @Description Retrieves mentors matching the given filters, sorted and paginated
// @Tags mentors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param domain query string false "Filter by expertise domain"
// @Param country query string false "Filter by country"
// @Param city query string false "Filter by city"
// @Param verified query bool false "Only verified mentors"
// @Param free query bool false "Only mentors offering free sessions"
// @Param minRating query number false "Minimum average rating"
// @Param minExperience query int false "Minimum years of experience"
// @Param sortBy query string false "Sort order" Enums(rating, experience, reviews, newest) default(rating)
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param pageSize query int false "Page size (default: 10, max: 100)" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.MentorListResponse} "Mentors retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Router /mentors [get]
func (c *MentorController) FindMentors(ctx *gin.Context) {
	var filter dto.MentorFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	response, err := c.mentorService.FindMentors(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// UpdateAvailability handles partial updates of a mentor's availability
// @Summary Update mentor availability
// @Description Partially updates the availability of the authenticated mentor
// @Tags mentors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateAvailabilityRequest true "Availability fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.MentorResponse} "Availability updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Mentor not found"
// @Router /mentors/me/availability [patch]
func (c *MentorController) UpdateAvailability(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)

	var req dto.UpdateAvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	response, err := c.mentorService.UpdateAvailability(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// VerifyMentor handles marking a mentor's credentials as verified
// @Summary Verify mentor credentials
// @Description Marks the mentor's credentials as verified. Verification is permanent.
// @Tags mentors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mentor ID"
// @Param request body dto.VerifyMentorRequest true "Verification method"
// @Success 200 {object} dto.APIResponse{data=dto.MentorResponse} "Mentor verified successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Mentor not found"
// @Router /mentors/{id}/verify [post]
func (c *MentorController) VerifyMentor(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.VerifyMentorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	response, err := c.mentorService.VerifyMentor(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// UploadProfilePicture handles profile picture uploads for the authenticated mentor
// @Summary Upload mentor profile picture
// @Description Uploads a new profile picture for the authenticated mentor
// @Tags mentors
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Profile picture (max 5 MB)"
// @Success 200 {object} dto.APIResponse{data=dto.MentorResponse} "Profile picture updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing or oversized file"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Mentor not found"
// @Router /mentors/me/profile-picture [post]
func (c *MentorController) UploadProfilePicture(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)

	file, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("profile picture file is required"))
		return
	}
	if file.Size > maxUploadSize {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("file exceeds the 5 MB upload limit"))
		return
	}

	response, err := c.mentorService.UploadProfilePicture(ctx, userID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// UploadVerificationDocument handles verification document uploads
// @Summary Upload verification document
// @Description Uploads a credential document supporting the mentor's verification
// @Tags mentors
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Verification document (max 5 MB)"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Document uploaded successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing or oversized file"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Mentor not found"
// @Router /mentors/me/verification-documents [post]
func (c *MentorController) UploadVerificationDocument(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)

	file, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("verification document file is required"))
		return
	}
	if file.Size > maxUploadSize {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("file exceeds the 5 MB upload limit"))
		return
	}

	if err := c.mentorService.UploadVerificationDocument(ctx, userID, file); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Verification document uploaded"}))
}

// DeactivateMentor handles mentor profile deactivation
// @Summary Deactivate mentor profile
// @Description Soft deletes the authenticated mentor's profile. The profile stays readable by id but no longer appears in search or matching.
// @Tags mentors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Profile deactivated successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Mentor not found"
// @Router /mentors/me [delete]
func (c *MentorController) DeactivateMentor(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)

	if err := c.mentorService.DeactivateMentor(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Mentor profile deactivated"}))
}
