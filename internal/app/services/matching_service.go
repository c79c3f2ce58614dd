package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mentorlink/mentorlink/internal/app/matching"
	"github.com/mentorlink/mentorlink/internal/app/models"
	"github.com/mentorlink/mentorlink/internal/app/models/dto"
	"github.com/mentorlink/mentorlink/internal/app/repositories"
	"github.com/mentorlink/mentorlink/internal/pkg/apperrors"
	"github.com/mentorlink/mentorlink/internal/pkg/cache"
)

// MatchingService defines the interface for matching and recommendation
// operations
type MatchingService interface {
	FindMentors(ctx context.Context, studentID string, limit int) ([]dto.MentorMatchResponse, error)
	RecommendCommunities(ctx context.Context, userID string, userType models.UserType, limit int) ([]dto.RecommendedCommunityResponse, error)
	CreateRequest(ctx context.Context, studentID string, req *dto.CreateMatchingRequestRequest) (*dto.MatchingRequestResponse, error)
	RespondRequest(ctx context.Context, requestID, mentorID string, accept bool) (*dto.MatchingRequestResponse, error)
	CompleteRequest(ctx context.Context, requestID, studentID string, rating *float64) (*dto.MatchingRequestResponse, error)
	GetStudentRequests(ctx context.Context, studentID string) ([]dto.MatchingRequestResponse, error)
	GetMentorRequests(ctx context.Context, mentorID string) ([]dto.MatchingRequestResponse, error)
	GetMentorStats(ctx context.Context, mentorID string) (*dto.MentorStatsResponse, error)
}

// matchingServiceImpl implements MatchingService
type matchingServiceImpl struct {
	studentRepo   *repositories.StudentRepository
	mentorRepo    *repositories.MentorRepository
	communityRepo *repositories.CommunityRepository
	requestRepo   *repositories.MatchingRequestRepository
	scorer        *matching.CompatibilityScorer
	relevance     *matching.RelevanceScorer
	statsCache    *cache.StatsCache
	logger        zerolog.Logger
}

// NewMatchingService creates a new MatchingService. statsCache may be nil
// when Redis is not configured; stats are then recomputed on every call.
func NewMatchingService(
	studentRepo *repositories.StudentRepository,
	mentorRepo *repositories.MentorRepository,
	communityRepo *repositories.CommunityRepository,
	requestRepo *repositories.MatchingRequestRepository,
	scorer *matching.CompatibilityScorer,
	relevance *matching.RelevanceScorer,
	statsCache *cache.StatsCache,
	logger zerolog.Logger,
) MatchingService {
	return &matchingServiceImpl{
		studentRepo:   studentRepo,
		mentorRepo:    mentorRepo,
		communityRepo: communityRepo,
		requestRepo:   requestRepo,
		scorer:        scorer,
		relevance:     relevance,
		statsCache:    statsCache,
		logger:        logger,
	}
}

// FindMentors scores all active mentors against the student's profile and
// returns the ranked top matches
func (s *matchingServiceImpl) FindMentors(ctx context.Context, studentID string, limit int) ([]dto.MentorMatchResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.mentorRepo.GetAllActive(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("studentId", studentID).Msg("Failed to load mentor candidates")
		return nil, err
	}

	results, err := s.scorer.RankMentors(student, candidates, limit)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.MentorProfile, len(candidates))
	for _, m := range candidates {
		byID[m.ID] = m
	}

	responses := make([]dto.MentorMatchResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, dto.FromMatchResult(result, byID[result.MentorID]))
	}

	s.logger.Debug().
		Str("studentId", studentID).
		Int("candidates", len(candidates)).
		Int("matches", len(responses)).
		Msg("Ranked mentor matches")
	return responses, nil
}

// RecommendCommunities ranks all active communities for the given user
func (s *matchingServiceImpl) RecommendCommunities(ctx context.Context, userID string, userType models.UserType, limit int) ([]dto.RecommendedCommunityResponse, error) {
	var userTokens []string
	switch userType {
	case models.UserTypeMentor:
		mentor, err := s.mentorRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		userTokens = matching.UserTokens(nil, mentor)
	default:
		student, err := s.studentRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		userTokens = matching.UserTokens(student, nil)
	}

	candidates, err := s.communityRepo.GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	// Only public communities the user does not already belong to are
	// candidates.
	filtered := make([]*models.Community, 0, len(candidates))
	for _, c := range candidates {
		if c.Settings.IsPublic && c.FindMember(userID) == nil {
			filtered = append(filtered, c)
		}
	}

	ranked := s.relevance.RankCommunities(ctx, userTokens, filtered, limit)
	responses := make([]dto.RecommendedCommunityResponse, 0, len(ranked))
	for _, rc := range ranked {
		responses = append(responses, dto.FromRankedCommunity(rc))
	}
	return responses, nil
}

// CreateRequest creates a mentorship request from a student to a mentor,
// stamping the compatibility score at creation time
func (s *matchingServiceImpl) CreateRequest(ctx context.Context, studentID string, req *dto.CreateMatchingRequestRequest) (*dto.MatchingRequestResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	mentor, err := s.mentorRepo.GetByID(ctx, req.MentorID)
	if err != nil {
		return nil, err
	}
	if !mentor.Active {
		return nil, apperrors.ErrMentorInactive
	}

	open, err := s.requestRepo.HasOpenRequest(ctx, studentID, req.MentorID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, apperrors.NewConflictError("an open request to this mentor already exists")
	}

	result, err := s.scorer.ScoreMentor(student, mentor)
	if err != nil {
		return nil, err
	}

	request := &models.MatchingRequest{
		ID:         uuid.New().String(),
		StudentID:  studentID,
		MentorID:   req.MentorID,
		Message:    req.Message,
		MatchScore: int(math.Round(result.TotalScore)),
		Status:     models.RequestPending,
		CreatedAt:  time.Now(),
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, req.MentorID)
	s.logger.Info().
		Str("requestId", request.ID).
		Str("studentId", studentID).
		Str("mentorId", req.MentorID).
		Int("matchScore", request.MatchScore).
		Msg("Matching request created")

	response := dto.FromMatchingRequest(request)
	return &response, nil
}

// RespondRequest records the mentor's accept or decline decision
func (s *matchingServiceImpl) RespondRequest(ctx context.Context, requestID, mentorID string, accept bool) (*dto.MatchingRequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.MentorID != mentorID {
		return nil, apperrors.NewForbiddenError("request belongs to another mentor")
	}
	if request.Status != models.RequestPending {
		return nil, apperrors.ErrRequestAlreadyClosed
	}

	now := time.Now()
	status := models.RequestDeclined
	if accept {
		status = models.RequestAccepted
	}
	if err := s.requestRepo.UpdateStatus(ctx, requestID, status, &now); err != nil {
		return nil, err
	}
	request.Status = status
	request.RespondedAt = &now

	s.invalidateStats(ctx, mentorID)
	s.logger.Info().
		Str("requestId", requestID).
		Str("mentorId", mentorID).
		Str("status", string(status)).
		Msg("Matching request responded")

	response := dto.FromMatchingRequest(request)
	return &response, nil
}

// CompleteRequest closes out an accepted mentorship on the student's side,
// optionally recording a rating and folding it into the mentor's rolling
// average
func (s *matchingServiceImpl) CompleteRequest(ctx context.Context, requestID, studentID string, rating *float64) (*dto.MatchingRequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.StudentID != studentID {
		return nil, apperrors.NewForbiddenError("request belongs to another student")
	}
	if request.Status != models.RequestAccepted {
		return nil, apperrors.ErrRequestAlreadyClosed
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, apperrors.ErrInvalidRating
	}

	if err := s.requestRepo.UpdateStatus(ctx, requestID, models.RequestCompleted, nil); err != nil {
		return nil, err
	}
	request.Status = models.RequestCompleted

	if rating != nil {
		if err := s.requestRepo.SetRating(ctx, requestID, *rating); err != nil {
			return nil, err
		}
		request.Rating = rating
		if err := s.applyRating(ctx, request.MentorID, *rating); err != nil {
			s.logger.Error().Err(err).
				Str("mentorId", request.MentorID).
				Msg("Failed to fold rating into mentor stats")
		}
	}

	s.invalidateStats(ctx, request.MentorID)
	response := dto.FromMatchingRequest(request)
	return &response, nil
}

// GetStudentRequests lists all requests created by a student
func (s *matchingServiceImpl) GetStudentRequests(ctx context.Context, studentID string) ([]dto.MatchingRequestResponse, error) {
	requests, err := s.requestRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return toRequestResponses(requests), nil
}

// GetMentorRequests lists all requests targeting a mentor
func (s *matchingServiceImpl) GetMentorRequests(ctx context.Context, mentorID string) ([]dto.MatchingRequestResponse, error) {
	requests, err := s.requestRepo.GetByMentorID(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	return toRequestResponses(requests), nil
}

// GetMentorStats derives the mentor's acceptance rate and average response
// time from the request history, served from cache when fresh
func (s *matchingServiceImpl) GetMentorStats(ctx context.Context, mentorID string) (*dto.MentorStatsResponse, error) {
	if s.statsCache != nil {
		report, err := s.statsCache.Get(ctx, mentorID)
		if err == nil {
			response := dto.FromStatsReport(mentorID, report)
			return &response, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn().Err(err).Str("mentorId", mentorID).Msg("Stats cache read failed")
		}
	}

	if _, err := s.mentorRepo.GetByID(ctx, mentorID); err != nil {
		return nil, err
	}
	requests, err := s.requestRepo.GetByMentorID(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	report := matching.AggregateMentorStats(requests)
	if s.statsCache != nil {
		if err := s.statsCache.Set(ctx, mentorID, report); err != nil {
			s.logger.Warn().Err(err).Str("mentorId", mentorID).Msg("Stats cache write failed")
		}
	}

	response := dto.FromStatsReport(mentorID, report)
	return &response, nil
}

// applyRating folds a new review into the mentor's rolling average
func (s *matchingServiceImpl) applyRating(ctx context.Context, mentorID string, rating float64) error {
	mentor, err := s.mentorRepo.GetByID(ctx, mentorID)
	if err != nil {
		return err
	}

	stats := mentor.Stats
	total := float64(stats.TotalReviews)
	stats.AverageRating = (stats.AverageRating*total + rating) / (total + 1)
	stats.TotalReviews++
	return s.mentorRepo.UpdateStats(ctx, mentorID, stats)
}

func (s *matchingServiceImpl) invalidateStats(ctx context.Context, mentorID string) {
	if s.statsCache == nil {
		return
	}
	if err := s.statsCache.Invalidate(ctx, mentorID); err != nil {
		s.logger.Warn().Err(err).Str("mentorId", mentorID).Msg("Stats cache invalidation failed")
	}
}

func toRequestResponses(requests []*models.MatchingRequest) []dto.MatchingRequestResponse {
	responses := make([]dto.MatchingRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, dto.FromMatchingRequest(r))
	}
	return responses
}
