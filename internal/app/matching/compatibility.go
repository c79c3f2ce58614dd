package matching

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mentorlink/mentorlink/internal/app/models"
)

// FactorWeights controls the contribution of each compatibility factor to the
// total score. Weights are expected to sum to 1.0.
type FactorWeights struct {
	Domain       float64 `yaml:"domain" json:"domain"`
	Location     float64 `yaml:"location" json:"location"`
	Availability float64 `yaml:"availability" json:"availability"`
	Experience   float64 `yaml:"experience" json:"experience"`
	Goals        float64 `yaml:"goals" json:"goals"`
}

// DefaultFactorWeights returns equal weighting across all five factors
func DefaultFactorWeights() FactorWeights {
	return FactorWeights{
		Domain:       0.2,
		Location:     0.2,
		Availability: 0.2,
		Experience:   0.2,
		Goals:        0.2,
	}
}

// ScorerConfig holds the tunable parameters of the compatibility scorer
type ScorerConfig struct {
	Weights FactorWeights
	// AvailabilityCeilingHours is the weekly hour count at which the
	// availability factor saturates at 100.
	AvailabilityCeilingHours float64
	// ExplanationThreshold is the minimum factor score that earns a
	// human-readable explanation line.
	ExplanationThreshold float64
}

// DefaultScorerConfig returns the standard scorer parameters
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		Weights:                  DefaultFactorWeights(),
		AvailabilityCeilingHours: 5,
		ExplanationThreshold:     70,
	}
}

// Breakdown carries the per-factor scores behind a total compatibility score.
// Each factor is independently 0..100.
type Breakdown struct {
	DomainMatch       float64 `json:"domainMatch"`
	LocationMatch     float64 `json:"locationMatch"`
	AvailabilityMatch float64 `json:"availabilityMatch"`
	ExperienceMatch   float64 `json:"experienceMatch"`
	GoalAlignment     float64 `json:"goalAlignment"`
}

// MatchResult is the full scoring outcome for one (student, mentor) pair
type MatchResult struct {
	MentorID     string    `json:"mentorId"`
	TotalScore   float64   `json:"totalScore"`
	Breakdown    Breakdown `json:"breakdown"`
	Explanations []string  `json:"explanations"`
}

// CompatibilityScorer computes weighted 0..100 match scores between a student
// and candidate mentors. It is stateless and safe for concurrent use.
type CompatibilityScorer struct {
	config ScorerConfig
}

// NewCompatibilityScorer creates a scorer with the given configuration.
// Zero-valued config fields fall back to defaults so a partially populated
// config from file never produces a degenerate scorer.
func NewCompatibilityScorer(config ScorerConfig) *CompatibilityScorer {
	if config.AvailabilityCeilingHours <= 0 {
		config.AvailabilityCeilingHours = 5
	}
	if config.ExplanationThreshold <= 0 {
		config.ExplanationThreshold = 70
	}
	sum := config.Weights.Domain + config.Weights.Location + config.Weights.Availability +
		config.Weights.Experience + config.Weights.Goals
	if sum <= 0 {
		config.Weights = DefaultFactorWeights()
	}
	return &CompatibilityScorer{config: config}
}

// ScoreMentor computes the compatibility score and explanation trail for one
// (student, mentor) pair. Inputs are never mutated; identical inputs always
// produce identical output.
func (s *CompatibilityScorer) ScoreMentor(student *models.StudentProfile, mentor *models.MentorProfile) (*MatchResult, error) {
	studentBag, err := NormalizeStudent(student)
	if err != nil {
		return nil, err
	}
	mentorBag, err := NormalizeMentor(mentor)
	if err != nil {
		return nil, err
	}

	breakdown := Breakdown{
		DomainMatch:       s.domainMatch(studentBag, mentorBag),
		LocationMatch:     locationMatch(studentBag.Location, mentorBag.Location),
		AvailabilityMatch: s.availabilityMatch(float64(mentor.Availability.HoursPerWeek)),
		ExperienceMatch:   experienceMatch(float64(mentor.Expertise.YearsOfExperience), student.Preferences.MentorExperience),
		GoalAlignment:     goalAlignment(student, mentor),
	}

	w := s.config.Weights
	wsum := w.Domain + w.Location + w.Availability + w.Experience + w.Goals
	total := (breakdown.DomainMatch*w.Domain +
		breakdown.LocationMatch*w.Location +
		breakdown.AvailabilityMatch*w.Availability +
		breakdown.ExperienceMatch*w.Experience +
		breakdown.GoalAlignment*w.Goals) / wsum

	return &MatchResult{
		MentorID:     mentor.ID,
		TotalScore:   math.Round(total),
		Breakdown:    breakdown,
		Explanations: s.explain(breakdown, mentor),
	}, nil
}

// RankMentors scores every candidate and returns the results ordered by total
// score descending, ties broken by average rating descending, then by input
// order. Candidates that fail normalization are skipped rather than failing
// the whole ranking. A non-positive limit means no limit.
func (s *CompatibilityScorer) RankMentors(student *models.StudentProfile, candidates []*models.MentorProfile, limit int) ([]*MatchResult, error) {
	if _, err := NormalizeStudent(student); err != nil {
		return nil, err
	}

	results := make([]*MatchResult, 0, len(candidates))
	ratings := make(map[string]float64, len(candidates))
	for _, mentor := range candidates {
		result, err := s.ScoreMentor(student, mentor)
		if err != nil {
			continue
		}
		results = append(results, result)
		ratings[mentor.ID] = mentor.Stats.AverageRating
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].TotalScore != results[j].TotalScore {
			return results[i].TotalScore > results[j].TotalScore
		}
		return ratings[results[i].MentorID] > ratings[results[j].MentorID]
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// domainMatch is the proportion of the student's target domains covered by
// the mentor's expertise, scaled to 0..100. A student with no recorded target
// domains has no preference and scores 100 against any mentor.
func (s *CompatibilityScorer) domainMatch(student, mentor *FeatureBag) float64 {
	if len(student.Domains) == 0 {
		return 100
	}
	matched := 0
	for d := range student.Domains {
		if mentor.HasDomain(d) {
			matched++
		}
	}
	return float64(matched) / float64(len(student.Domains)) * 100
}

// locationMatch compares the two location feature sets. Mutual remote
// willingness trumps geography entirely.
func locationMatch(student, mentor LocationFeatures) float64 {
	if student.Remote && mentor.Remote {
		return 100
	}
	if sameField(student.City, mentor.City) &&
		sameField(student.Country, mentor.Country) {
		return 100
	}
	if sameField(student.State, mentor.State) || sameField(student.Country, mentor.Country) {
		return 60
	}
	return 0
}

func sameField(a, b string) bool {
	a = strings.TrimSpace(strings.ToLower(a))
	b = strings.TrimSpace(strings.ToLower(b))
	return a != "" && a == b
}

// availabilityMatch grows linearly with the mentor's weekly hours and
// saturates at the configured ceiling. Student-side availability is never
// penalized.
func (s *CompatibilityScorer) availabilityMatch(hoursPerWeek float64) float64 {
	if hoursPerWeek <= 0 {
		return 0
	}
	return math.Min(100, hoursPerWeek/s.config.AvailabilityCeilingHours*100)
}

// experienceMatch scores the mentor's years of experience against the
// student's preferred bracket: meeting or exceeding the bracket floor scores
// 100, anything below scales linearly. An empty bracket means no preference.
func experienceMatch(years float64, bracket string) float64 {
	floor := bracketFloor(bracket)
	if floor <= 0 {
		return 100
	}
	if years >= floor {
		return 100
	}
	if years <= 0 {
		return 0
	}
	return years / floor * 100
}

// bracketFloor parses the lower bound out of bracket strings such as "5+",
// "3-5", or "2". Unparseable brackets yield 0, which disables the constraint.
func bracketFloor(bracket string) float64 {
	bracket = strings.TrimSpace(bracket)
	if bracket == "" {
		return 0
	}
	bracket = strings.TrimSuffix(bracket, "+")
	if idx := strings.Index(bracket, "-"); idx > 0 {
		bracket = bracket[:idx]
	}
	floor, err := strconv.ParseFloat(strings.TrimSpace(bracket), 64)
	if err != nil {
		return 0
	}
	return floor
}

// goalAlignment is the Jaccard overlap between the student's goal/interest
// token set and the mentor's skill/specialization token set, scaled to
// 0..100. Empty sets on either side score 0.
func goalAlignment(student *models.StudentProfile, mentor *models.MentorProfile) float64 {
	studentFields := append([]string{}, student.Goals...)
	studentFields = append(studentFields, student.Interests...)
	mentorFields := append([]string{}, mentor.Expertise.Skills...)
	mentorFields = append(mentorFields, mentor.Style.Specializations...)

	studentSet := toSet(Tokenize(studentFields...))
	mentorSet := toSet(Tokenize(mentorFields...))
	if len(studentSet) == 0 || len(mentorSet) == 0 {
		return 0
	}

	intersection := 0
	for t := range studentSet {
		if _, ok := mentorSet[t]; ok {
			intersection++
		}
	}
	union := len(studentSet) + len(mentorSet) - intersection
	return float64(intersection) / float64(union) * 100
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// explain projects the breakdown into human-readable justifications. The
// order is fixed (domain, location, experience, rating and verification,
// goals) and only factors above the threshold earn a line, so the trail is a
// deterministic function of the breakdown.
func (s *CompatibilityScorer) explain(b Breakdown, mentor *models.MentorProfile) []string {
	threshold := s.config.ExplanationThreshold
	explanations := make([]string, 0, 6)

	if b.DomainMatch > threshold {
		explanations = append(explanations, "Strong expertise overlap with your target domains")
	}
	if b.LocationMatch > threshold {
		explanations = append(explanations, "Conveniently located or available remotely")
	}
	if b.ExperienceMatch > threshold {
		explanations = append(explanations, fmt.Sprintf("Meets your experience preference with %d years in the field", mentor.Expertise.YearsOfExperience))
	}
	if mentor.Stats.AverageRating >= 4.5 && mentor.Stats.TotalReviews > 0 {
		explanations = append(explanations, fmt.Sprintf("Highly rated mentor (%.1f/5)", mentor.Stats.AverageRating))
	}
	if mentor.Verification.IsVerified() {
		explanations = append(explanations, "Verified mentor credentials")
	}
	if b.GoalAlignment > threshold {
		explanations = append(explanations, "Specializations closely match your goals")
	}
	return explanations
}
