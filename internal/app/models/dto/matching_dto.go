package dto

import (
	"time"

	"github.com/mentorlink/mentorlink/internal/app/matching"
	"github.com/mentorlink/mentorlink/internal/app/models"
)

// --- Request DTOs ---

// FindMentorsRequest represents mentor matching query parameters
type FindMentorsRequest struct {
	Limit int `form:"limit,default=10" binding:"min=1,max=50"`
}

// RecommendCommunitiesRequest represents recommendation query parameters
type RecommendCommunitiesRequest struct {
	Limit int `form:"limit,default=10" binding:"min=1,max=50"`
}

// CreateMatchingRequestRequest represents a student's mentorship request
type CreateMatchingRequestRequest struct {
	MentorID string `json:"mentorId" binding:"required"`
	Message  string `json:"message"`
}

// RespondMatchingRequestRequest represents a mentor's accept/decline action
type RespondMatchingRequestRequest struct {
	Accept bool `json:"accept"`
}

// CompleteMatchingRequestRequest closes out an accepted mentorship with an
// optional rating
type CompleteMatchingRequestRequest struct {
	Rating *float64 `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
}

// --- Response DTOs ---

// MatchBreakdownResponse mirrors the per-factor score breakdown
type MatchBreakdownResponse struct {
	DomainMatch       float64 `json:"domainMatch"`
	LocationMatch     float64 `json:"locationMatch"`
	AvailabilityMatch float64 `json:"availabilityMatch"`
	ExperienceMatch   float64 `json:"experienceMatch"`
	GoalAlignment     float64 `json:"goalAlignment"`
}

// MentorMatchResponse represents one ranked mentor with scoring detail
type MentorMatchResponse struct {
	Mentor       MentorResponse         `json:"mentor"`
	TotalScore   float64                `json:"totalScore" example:"82"`
	Breakdown    MatchBreakdownResponse `json:"breakdown"`
	Explanations []string               `json:"explanations"`
}

// MatchingRequestResponse represents a mentorship request in API responses
type MatchingRequestResponse struct {
	ID          string     `json:"id"`
	StudentID   string     `json:"studentId"`
	MentorID    string     `json:"mentorId"`
	Message     string     `json:"message,omitempty"`
	MatchScore  int        `json:"matchScore"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	RespondedAt *time.Time `json:"respondedAt,omitempty"`
	Rating      *float64   `json:"rating,omitempty"`
}

// FromMatchingRequest converts a models.MatchingRequest to a response
func FromMatchingRequest(r *models.MatchingRequest) MatchingRequestResponse {
	if r == nil {
		return MatchingRequestResponse{}
	}
	return MatchingRequestResponse{
		ID:          r.ID,
		StudentID:   r.StudentID,
		MentorID:    r.MentorID,
		Message:     r.Message,
		MatchScore:  r.MatchScore,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		RespondedAt: r.RespondedAt,
		Rating:      r.Rating,
	}
}

// FromMatchResult builds a MentorMatchResponse from a scoring result and the
// matched mentor profile
func FromMatchResult(result *matching.MatchResult, mentor *models.MentorProfile) MentorMatchResponse {
	return MentorMatchResponse{
		Mentor:     FromMentor(mentor),
		TotalScore: result.TotalScore,
		Breakdown: MatchBreakdownResponse{
			DomainMatch:       result.Breakdown.DomainMatch,
			LocationMatch:     result.Breakdown.LocationMatch,
			AvailabilityMatch: result.Breakdown.AvailabilityMatch,
			ExperienceMatch:   result.Breakdown.ExperienceMatch,
			GoalAlignment:     result.Breakdown.GoalAlignment,
		},
		Explanations: result.Explanations,
	}
}

// FromRankedCommunity builds a RecommendedCommunityResponse from a ranked
// scoring result
func FromRankedCommunity(ranked *matching.RankedCommunity) RecommendedCommunityResponse {
	return RecommendedCommunityResponse{
		Community:      FromCommunity(ranked.Community),
		RelevanceScore: ranked.RelevanceScore,
		Reason:         ranked.Reason,
	}
}

// FromStatsReport builds a MentorStatsResponse from the aggregated report
func FromStatsReport(mentorID string, report *matching.StatsReport) MentorStatsResponse {
	reviews := make([]ReviewResponse, 0, len(report.RecentReviews))
	for _, review := range report.RecentReviews {
		reviews = append(reviews, ReviewResponse{
			StudentID: review.StudentID,
			Rating:    review.Rating,
			CreatedAt: review.CreatedAt,
		})
	}
	return MentorStatsResponse{
		MentorID:             mentorID,
		TotalRequests:        report.TotalRequests,
		AcceptedRequests:     report.AcceptedRequests,
		CompletedSessions:    report.CompletedSessions,
		AcceptanceRate:       report.AcceptanceRate,
		AvgResponseTimeHours: report.AvgResponseTimeHours,
		RecentReviews:        reviews,
	}
}
