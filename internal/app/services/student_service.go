package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mentorlink/mentorlink/internal/app/models"
	"github.com/mentorlink/mentorlink/internal/app/models/dto"
	"github.com/mentorlink/mentorlink/internal/app/repositories"
	"github.com/mentorlink/mentorlink/internal/pkg/apperrors"
)

// StudentService defines the interface for student profile operations
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetStudentByID(ctx context.Context, id string) (*dto.StudentResponse, error)
	UpdateStudent(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	studentRepo *repositories.StudentRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo *repositories.StudentRepository, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// CreateStudent creates a new student profile
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if _, err := s.studentRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, err
	}

	now := time.Now()
	student := &models.StudentProfile{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Email:         req.Email,
		Bio:           req.Bio,
		Interests:     req.Interests,
		Goals:         req.Goals,
		TargetDomains: req.TargetDomains,
		Location:      req.Location.ToLocation(),
		Preferences:   req.Preferences.ToPreferences(),
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Str("studentId", student.ID).Msg("Student profile created")
	response := dto.FromStudent(student)
	return &response, nil
}

// GetStudentByID retrieves a student profile
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id string) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := dto.FromStudent(student)
	return &response, nil
}

// UpdateStudent applies a partial update to a student profile
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Bio != nil {
		student.Bio = *req.Bio
	}
	if req.Interests != nil {
		student.Interests = req.Interests
	}
	if req.Goals != nil {
		student.Goals = req.Goals
	}
	if req.TargetDomains != nil {
		student.TargetDomains = req.TargetDomains
	}
	if req.Location != nil {
		student.Location = req.Location.ToLocation()
	}
	if req.Preferences != nil {
		student.Preferences = req.Preferences.ToPreferences()
	}
	student.UpdatedAt = time.Now()

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	response := dto.FromStudent(student)
	return &response, nil
}
