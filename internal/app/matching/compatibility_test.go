package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlink/mentorlink/internal/app/models"
)

func newTestStudent() *models.StudentProfile {
	return &models.StudentProfile{
		ID:            "stu-1",
		Name:          "Aida",
		Interests:     []string{"backend development"},
		Goals:         []string{"learn distributed systems"},
		TargetDomains: []string{"technology"},
		Location: models.Location{
			Country: "Kazakhstan",
			State:   "Almaty Region",
			City:    "Almaty",
		},
		Preferences: models.StudentPreferences{
			MentorExperience: "5+",
		},
	}
}

func newTestMentor() *models.MentorProfile {
	return &models.MentorProfile{
		ID: "men-1",
		Expertise: models.Expertise{
			Domains:           []string{"technology", "science"},
			Skills:            []string{"distributed systems", "go"},
			YearsOfExperience: 8,
		},
		Availability: models.Availability{HoursPerWeek: 5},
		Style: models.MentorshipStyle{
			Specializations: []string{"backend development"},
		},
		Location: models.Location{
			Country: "Kazakhstan",
			State:   "Almaty Region",
			City:    "Almaty",
		},
		Stats: models.MentorRollingStats{AverageRating: 4.9, TotalReviews: 12},
		Verification: models.MentorVerification{
			Status: models.VerificationVerified,
		},
	}
}

func TestScoreMentor_DomainMatch(t *testing.T) {
	scorer := NewCompatibilityScorer(DefaultScorerConfig())

	result, err := scorer.ScoreMentor(newTestStudent(), newTestMentor())
	require.NoError(t, err)

	assert.Equal(t, float64(100), result.Breakdown.DomainMatch,
		"single target domain present in mentor expertise scores 100")
	assert.Equal(t, float64(100), result.Breakdown.LocationMatch)
	assert.Equal(t, float64(100), result.Breakdown.AvailabilityMatch)
	assert.Equal(t, float64(100), result.Breakdown.ExperienceMatch)
	assert.Equal(t, "men-1", result.MentorID)
}

func TestScoreMentor_NoTargetDomains(t *testing.T) {
	scorer := NewCompatibilityScorer(DefaultScorerConfig())
	student := newTestStudent()
	student.TargetDomains = nil
	mentor := newTestMentor()
	mentor.Expertise.Domains = []string{"finance"}

	result, err := scorer.ScoreMentor(student, mentor)
	require.NoError(t, err)

	assert.Equal(t, float64(100), result.Breakdown.DomainMatch,
		"no recorded target domains means no preference")
}

func TestScoreMentor_PartialDomainMatch(t *testing.T) {
	scorer := NewCompatibilityScorer(DefaultScorerConfig())
	student := newTestStudent()
	student.TargetDomains = []string{"technology", "finance"}

	result, err := scorer.ScoreMentor(student, newTestMentor())
	require.NoError(t, err)

	assert.Equal(t, float64(50), result.Breakdown.DomainMatch)
}

func TestLocationMatch(t *testing.T) {
	tests := []struct {
		name    string
		student models.Location
		mentor  models.Location
		want    float64
	}{
		{
			name:    "both remote",
			student: models.Location{Country: "US", Remote: true},
			mentor:  models.Location{Country: "KZ", Remote: true},
			want:    100,
		},
		{
			name:    "same city",
			student: models.Location{Country: "KZ", City: "Almaty"},
			mentor:  models.Location{Country: "KZ", City: "Almaty"},
			want:    100,
		},
		{
			name:    "same state different city",
			student: models.Location{Country: "KZ", State: "Almaty Region", City: "Almaty"},
			mentor:  models.Location{Country: "KZ", State: "Almaty Region", City: "Taldykorgan"},
			want:    60,
		},
		{
			name:    "same country only",
			student: models.Location{Country: "KZ", City: "Almaty"},
			mentor:  models.Location{Country: "KZ", City: "Astana"},
			want:    60,
		},
		{
			name:    "no overlap no remote",
			student: models.Location{Country: "US", City: "Austin"},
			mentor:  models.Location{Country: "KZ", City: "Almaty"},
			want:    0,
		},
		{
			name:    "one-sided remote does not help",
			student: models.Location{Country: "US", Remote: true},
			mentor:  models.Location{Country: "KZ"},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			student := LocationFeatures{Country: tt.student.Country, State: tt.student.State, City: tt.student.City, Remote: tt.student.Remote}
			mentor := LocationFeatures{Country: tt.mentor.Country, State: tt.mentor.State, City: tt.mentor.City, Remote: tt.mentor.Remote}
			assert.Equal(t, tt.want, locationMatch(student, mentor))
		})
	}
}

func TestAvailabilityMatch(t *testing.T) {
	scorer := NewCompatibilityScorer(DefaultScorerConfig())

	assert.Equal(t, float64(0), scorer.availabilityMatch(0))
	assert.Equal(t, float64(40), scorer.availabilityMatch(2))
	assert.Equal(t, float64(100), scorer.availabilityMatch(5))
	assert.Equal(t, float64(100), scorer.availabilityMatch(20), "caps at the ceiling")
}

func TestExperienceMatch(t *testing.T) {
	assert.Equal(t, float64(100), experienceMatch(8, "5+"))
	assert.Equal(t, float64(100), experienceMatch(5, "5+"))
	assert.Equal(t, float64(60), experienceMatch(3, "5+"))
	assert.Equal(t, float64(100), experienceMatch(4, "3-5"), "bracket floor is the lower bound")
	assert.Equal(t, float64(100), experienceMatch(1, ""), "no bracket means no preference")
	assert.Equal(t, float64(0), experienceMatch(0, "5+"))
}

func TestGoalAlignment_Symmetry(t *testing.T) {
	student := newTestStudent()
	mentor := newTestMentor()

	forward := goalAlignment(student, mentor)

	// Swap both token sources and expect the same Jaccard value.
	swappedStudent := &models.StudentProfile{
		ID:        "stu-2",
		Goals:     mentor.Expertise.Skills,
		Interests: mentor.Style.Specializations,
	}
	swappedMentor := &models.MentorProfile{
		ID: "men-2",
		Expertise: models.Expertise{
			Skills: student.Goals,
		},
		Style: models.MentorshipStyle{
			Specializations: student.Interests,
		},
	}
	backward := goalAlignment(swappedStudent, swappedMentor)

	assert.InDelta(t, forward, backward, 1e-9)
	assert.Greater(t, forward, float64(0))
}

func TestGoalAlignment_EmptySets(t *testing.T) {
	student := newTestStudent()
	student.Goals = nil
	student.Interests = nil

	assert.Equal(t, float64(0), goalAlignment(student, newTestMentor()))
}

func TestScoreMentor_Explanations(t *testing.T) {
	scorer := NewCompatibilityScorer(DefaultScorerConfig())

	result, err := scorer.ScoreMentor(newTestStudent(), newTestMentor())
	require.NoError(t, err)

	assert.Contains(t, result.Explanations, "Highly rated mentor (4.9/5)")
	assert.Contains(t, result.Explanations, "Verified mentor credentials")
	assert.Contains(t, result.Explanations, "Strong expertise overlap with your target domains")
}

func TestScoreMentor_Deterministic(t *testing.T) {
	scorer := NewCompatibilityScorer(DefaultScorerConfig())
	student := newTestStudent()
	mentor := newTestMentor()

	first, err := scorer.ScoreMentor(student, mentor)
	require.NoError(t, err)
	second, err := scorer.ScoreMentor(student, mentor)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRankMentors(t *testing.T) {
	scorer := NewCompatibilityScorer(DefaultScorerConfig())
	student := newTestStudent()

	strong := newTestMentor()
	weak := newTestMentor()
	weak.ID = "men-weak"
	weak.Expertise.Domains = []string{"finance"}
	weak.Expertise.YearsOfExperience = 1
	weak.Location = models.Location{Country: "US"}
	weak.Style.Specializations = nil
	weak.Expertise.Skills = nil

	results, err := scorer.RankMentors(student, []*models.MentorProfile{weak, strong}, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "men-1", results[0].MentorID)
	assert.Greater(t, results[0].TotalScore, results[1].TotalScore)

	limited, err := scorer.RankMentors(student, []*models.MentorProfile{weak, strong}, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestRankMentors_SkipsInvalidCandidates(t *testing.T) {
	scorer := NewCompatibilityScorer(DefaultScorerConfig())

	results, err := scorer.RankMentors(newTestStudent(), []*models.MentorProfile{{}, newTestMentor()}, 0)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}
