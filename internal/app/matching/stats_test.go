package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mentorlink/mentorlink/internal/app/models"
)

func requestWithResponse(status models.RequestStatus, responseDelay time.Duration) *models.MatchingRequest {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	responded := created.Add(responseDelay)
	return &models.MatchingRequest{
		Status:      status,
		CreatedAt:   created,
		RespondedAt: &responded,
	}
}

func TestAggregateMentorStats_AcceptanceRate(t *testing.T) {
	requests := make([]*models.MatchingRequest, 0, 10)
	for i := 0; i < 4; i++ {
		requests = append(requests, requestWithResponse(models.RequestAccepted, time.Hour))
	}
	for i := 0; i < 6; i++ {
		requests = append(requests, &models.MatchingRequest{Status: models.RequestPending})
	}

	report := AggregateMentorStats(requests)

	assert.Equal(t, 10, report.TotalRequests)
	assert.Equal(t, 4, report.AcceptedRequests)
	assert.Equal(t, 40, report.AcceptanceRate)
}

func TestAggregateMentorStats_Empty(t *testing.T) {
	report := AggregateMentorStats(nil)

	assert.Equal(t, 0, report.TotalRequests)
	assert.Equal(t, 0, report.AcceptanceRate)
	assert.Equal(t, 0, report.AvgResponseTimeHours)
}

func TestAggregateMentorStats_ResponseTime(t *testing.T) {
	requests := []*models.MatchingRequest{
		requestWithResponse(models.RequestAccepted, 2*time.Hour),
		requestWithResponse(models.RequestDeclined, 4*time.Hour),
		{Status: models.RequestPending},
	}

	report := AggregateMentorStats(requests)

	assert.Equal(t, 3, report.AvgResponseTimeHours)
	assert.InDelta(t, 3.0, report.PreciseAvgResponseHours, 1e-9)
}

func TestAggregateMentorStats_CompletedCountsSessionsOnly(t *testing.T) {
	requests := make([]*models.MatchingRequest, 0, 10)
	for i := 0; i < 4; i++ {
		requests = append(requests, requestWithResponse(models.RequestAccepted, time.Hour))
	}
	for i := 0; i < 2; i++ {
		requests = append(requests, requestWithResponse(models.RequestCompleted, time.Hour))
	}
	for i := 0; i < 4; i++ {
		requests = append(requests, &models.MatchingRequest{Status: models.RequestPending})
	}

	report := AggregateMentorStats(requests)

	assert.Equal(t, 4, report.AcceptedRequests, "completed requests do not count as accepted")
	assert.Equal(t, 2, report.CompletedSessions)
	assert.Equal(t, 40, report.AcceptanceRate)
}

func TestAggregateMentorStats_NoDoubleRounding(t *testing.T) {
	requests := []*models.MatchingRequest{
		requestWithResponse(models.RequestAccepted, 90*time.Minute),
		requestWithResponse(models.RequestDeclined, 30*time.Minute),
		{Status: models.RequestPending},
	}

	report := AggregateMentorStats(requests)

	assert.InDelta(t, 1.0, report.PreciseAvgResponseHours, 1e-9)
	assert.InDelta(t, 100.0/3.0, report.PreciseAcceptanceRate, 1e-9)
	assert.Equal(t, 33, report.AcceptanceRate)
	assert.Equal(t, 1, report.AvgResponseTimeHours)
}

func TestAggregateMentorStats_RecentReviews(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	requests := make([]*models.MatchingRequest, 0, 8)
	for i := 0; i < 7; i++ {
		rating := float64(i%5) + 1
		created := base.Add(time.Duration(i) * 24 * time.Hour)
		responded := created.Add(time.Hour)
		requests = append(requests, &models.MatchingRequest{
			StudentID:   "stu-" + string(rune('a'+i)),
			Status:      models.RequestCompleted,
			CreatedAt:   created,
			RespondedAt: &responded,
			Rating:      &rating,
		})
	}
	// Completed without a rating must not appear as a review.
	requests = append(requests, requestWithResponse(models.RequestCompleted, time.Hour))

	report := AggregateMentorStats(requests)

	assert.Equal(t, 8, report.CompletedSessions)
	assert.Len(t, report.RecentReviews, 5, "reviews are capped at the most recent five")
	assert.Equal(t, "stu-g", report.RecentReviews[0].StudentID, "newest review comes first")
	assert.Equal(t, "stu-c", report.RecentReviews[4].StudentID)
	for i := 1; i < len(report.RecentReviews); i++ {
		assert.False(t, report.RecentReviews[i].CreatedAt.After(report.RecentReviews[i-1].CreatedAt))
	}
}
