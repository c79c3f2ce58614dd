package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mentorlink/mentorlink/internal/app/models"
	"github.com/mentorlink/mentorlink/internal/app/models/dto"
	"github.com/mentorlink/mentorlink/internal/app/repositories"
	"github.com/mentorlink/mentorlink/internal/pkg/apperrors"
	"github.com/mentorlink/mentorlink/internal/pkg/filestorage"
	"github.com/mentorlink/mentorlink/internal/pkg/helpers"
)

// MentorService defines the interface for mentor profile operations
type MentorService interface {
	CreateMentor(ctx context.Context, req *dto.CreateMentorRequest) (*dto.MentorResponse, error)
	GetMentorByID(ctx context.Context, id string) (*dto.MentorResponse, error)
	FindMentors(ctx context.Context, filter *dto.MentorFilterRequest) (*dto.MentorListResponse, error)
	UpdateAvailability(ctx context.Context, id string, req *dto.UpdateAvailabilityRequest) (*dto.MentorResponse, error)
	VerifyMentor(ctx context.Context, id string, req *dto.VerifyMentorRequest) (*dto.MentorResponse, error)
	UploadProfilePicture(ctx context.Context, id string, file *multipart.FileHeader) (*dto.MentorResponse, error)
	UploadVerificationDocument(ctx context.Context, id string, file *multipart.FileHeader) error
	DeactivateMentor(ctx context.Context, id string) error
}

// mentorServiceImpl implements MentorService
type mentorServiceImpl struct {
	mentorRepo  *repositories.MentorRepository
	fileStorage *filestorage.LocalStorage
	logger      zerolog.Logger
}

// NewMentorService creates a new MentorService
func NewMentorService(mentorRepo *repositories.MentorRepository, fileStorage *filestorage.LocalStorage, logger zerolog.Logger) MentorService {
	return &mentorServiceImpl{
		mentorRepo:  mentorRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// CreateMentor creates a new mentor profile in the unverified state
func (s *mentorServiceImpl) CreateMentor(ctx context.Context, req *dto.CreateMentorRequest) (*dto.MentorResponse, error) {
	if len(req.Expertise.Domains) == 0 {
		return nil, apperrors.NewValidationError("at least one expertise domain is required")
	}

	now := time.Now()
	mentor := &models.MentorProfile{
		ID:    uuid.New().String(),
		Name:  req.Name,
		Email: req.Email,
		Bio:   req.Bio,
		Expertise: models.Expertise{
			Domains:           req.Expertise.Domains,
			Skills:            req.Expertise.Skills,
			Industries:        req.Expertise.Industries,
			YearsOfExperience: req.Expertise.YearsOfExperience,
		},
		Availability: models.Availability{
			HoursPerWeek:  req.Availability.HoursPerWeek,
			PreferredDays: req.Availability.PreferredDays,
			Timezone:      req.Availability.Timezone,
		},
		Style: models.MentorshipStyle{
			Approach:        req.Style.Approach,
			Specializations: req.Style.Specializations,
		},
		Location: req.Location.ToLocation(),
		Verification: models.MentorVerification{
			Status: models.VerificationUnverified,
		},
		Pricing: models.Pricing{
			IsFree:     req.Pricing.IsFree,
			HourlyRate: req.Pricing.HourlyRate,
		},
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.mentorRepo.Create(ctx, mentor); err != nil {
		return nil, err
	}

	s.logger.Info().Str("mentorId", mentor.ID).Msg("Mentor profile created")
	response := dto.FromMentor(mentor)
	return &response, nil
}

// GetMentorByID retrieves a mentor profile
func (s *mentorServiceImpl) GetMentorByID(ctx context.Context, id string) (*dto.MentorResponse, error) {
	mentor, err := s.mentorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := dto.FromMentor(mentor)
	return &response, nil
}

// FindMentors retrieves mentors matching the filter with pagination
func (s *mentorServiceImpl) FindMentors(ctx context.Context, filter *dto.MentorFilterRequest) (*dto.MentorListResponse, error) {
	mentors, total, err := s.mentorRepo.Find(ctx, repositories.MentorFilter{
		Domain:        filter.Domain,
		Country:       filter.Country,
		City:          filter.City,
		VerifiedOnly:  filter.VerifiedOnly,
		FreeOnly:      filter.FreeOnly,
		MinRating:     filter.MinRating,
		MinExperience: filter.MinExperience,
		SortBy:        filter.SortBy,
		Page:          filter.Page,
		PageSize:      filter.PageSize,
	})
	if err != nil {
		s.logger.Error().Err(err).Interface("filter", filter).Msg("Failed to search mentors")
		return nil, err
	}

	return &dto.MentorListResponse{
		Mentors:        dto.FromMentors(mentors),
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// UpdateAvailability applies a partial update to a mentor's availability
func (s *mentorServiceImpl) UpdateAvailability(ctx context.Context, id string, req *dto.UpdateAvailabilityRequest) (*dto.MentorResponse, error) {
	mentor, err := s.mentorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	availability := mentor.Availability
	if req.HoursPerWeek != nil {
		availability.HoursPerWeek = *req.HoursPerWeek
	}
	if req.PreferredDays != nil {
		availability.PreferredDays = req.PreferredDays
	}
	if req.Timezone != nil {
		availability.Timezone = *req.Timezone
	}

	if err := s.mentorRepo.UpdateAvailability(ctx, id, availability); err != nil {
		return nil, err
	}
	mentor.Availability = availability

	response := dto.FromMentor(mentor)
	return &response, nil
}

// VerifyMentor marks a mentor as verified. Verification is monotonic; a
// verified mentor stays verified.
func (s *mentorServiceImpl) VerifyMentor(ctx context.Context, id string, req *dto.VerifyMentorRequest) (*dto.MentorResponse, error) {
	mentor, err := s.mentorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mentor.Verification.IsVerified() {
		response := dto.FromMentor(mentor)
		return &response, nil
	}

	now := time.Now()
	verification := models.MentorVerification{
		Status:     models.VerificationVerified,
		Method:     req.Method,
		VerifiedAt: &now,
	}
	if err := s.mentorRepo.UpdateVerification(ctx, id, verification); err != nil {
		return nil, err
	}
	mentor.Verification = verification

	s.logger.Info().
		Str("mentorId", id).
		Str("method", req.Method).
		Msg("Mentor verified")
	response := dto.FromMentor(mentor)
	return &response, nil
}

// UploadProfilePicture stores a mentor's profile picture and records its URL
func (s *mentorServiceImpl) UploadProfilePicture(ctx context.Context, id string, file *multipart.FileHeader) (*dto.MentorResponse, error) {
	mentor, err := s.mentorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.fileStorage.SaveFileWithPath(file, "profile_pictures")
	if err != nil {
		return nil, err
	}
	if err := s.mentorRepo.UpdateProfilePicture(ctx, id, url); err != nil {
		return nil, err
	}
	mentor.ProfilePictureURL = url

	response := dto.FromMentor(mentor)
	return &response, nil
}

// UploadVerificationDocument stores a supporting document for manual
// verification review
func (s *mentorServiceImpl) UploadVerificationDocument(ctx context.Context, id string, file *multipart.FileHeader) error {
	if _, err := s.mentorRepo.GetByID(ctx, id); err != nil {
		return err
	}

	url, err := s.fileStorage.SaveFileWithPath(file, "verification_documents")
	if err != nil {
		return err
	}
	if err := s.mentorRepo.AddVerificationDocument(ctx, id, url); err != nil {
		return err
	}

	s.logger.Info().Str("mentorId", id).Msg("Verification document uploaded")
	return nil
}

// DeactivateMentor soft deletes the mentor's profile
func (s *mentorServiceImpl) DeactivateMentor(ctx context.Context, id string) error {
	mentor, err := s.mentorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !mentor.Active {
		return nil
	}

	if err := s.mentorRepo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("mentorId", id).Msg("Mentor profile deactivated")
	return nil
}
