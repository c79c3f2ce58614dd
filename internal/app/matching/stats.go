package matching

import (
	"math"
	"sort"
	"time"

	"github.com/mentorlink/mentorlink/internal/app/models"
)

// maxRecentReviews caps how many completed-session ratings a report carries.
const maxRecentReviews = 5

// Review is one completed-session rating left by a student.
type Review struct {
	StudentID string    `json:"studentId"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// StatsReport summarizes a mentor's matching-request history. The rounded
// integer fields are for display; the precise float fields are retained so
// downstream computation never compounds rounding error.
type StatsReport struct {
	TotalRequests     int `json:"totalRequests"`
	AcceptedRequests  int `json:"acceptedRequests"`
	CompletedSessions int `json:"completedSessions"`

	AcceptanceRate       int `json:"acceptanceRate"`
	AvgResponseTimeHours int `json:"avgResponseTimeHours"`

	RecentReviews []Review `json:"recentReviews,omitempty"`

	PreciseAcceptanceRate   float64 `json:"-"`
	PreciseAvgResponseHours float64 `json:"-"`
}

// AggregateMentorStats derives acceptance rate and average response time from
// a mentor's request history. Acceptance rate is 100 * accepted / total, 0
// when there are no requests; completed requests count toward
// completedSessions only, not toward the rate. Average response time is the mean of
// respondedAt - createdAt in hours over responded requests, 0 when none have
// a response. Completed requests with a rating surface as the most recent
// reviews, newest first.
func AggregateMentorStats(requests []*models.MatchingRequest) *StatsReport {
	report := &StatsReport{}
	var totalResponseHours float64
	respondedCount := 0

	for _, req := range requests {
		if req == nil {
			continue
		}
		report.TotalRequests++
		switch req.Status {
		case models.RequestAccepted:
			report.AcceptedRequests++
		case models.RequestCompleted:
			report.CompletedSessions++
			if req.Rating != nil {
				report.RecentReviews = append(report.RecentReviews, Review{
					StudentID: req.StudentID,
					Rating:    *req.Rating,
					CreatedAt: req.CreatedAt,
				})
			}
		}
		if req.HasResponse() {
			totalResponseHours += req.RespondedAt.Sub(req.CreatedAt).Hours()
			respondedCount++
		}
	}

	sort.Slice(report.RecentReviews, func(i, j int) bool {
		return report.RecentReviews[i].CreatedAt.After(report.RecentReviews[j].CreatedAt)
	})
	if len(report.RecentReviews) > maxRecentReviews {
		report.RecentReviews = report.RecentReviews[:maxRecentReviews]
	}

	if report.TotalRequests > 0 {
		report.PreciseAcceptanceRate = 100 * float64(report.AcceptedRequests) / float64(report.TotalRequests)
	}
	if respondedCount > 0 {
		report.PreciseAvgResponseHours = totalResponseHours / float64(respondedCount)
	}

	report.AcceptanceRate = int(math.Round(report.PreciseAcceptanceRate))
	report.AvgResponseTimeHours = int(math.Round(report.PreciseAvgResponseHours))
	return report
}
