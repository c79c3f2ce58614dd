// Package matching implements the compatibility and relevance scoring engine:
// profile normalization into comparable feature bags, the weighted
// student/mentor compatibility scorer, the token-overlap community relevance
// scorer, and the request-history statistics aggregator. Everything in this
// package is pure computation over snapshots; persistence and transport live
// in the surrounding service.
package matching

import (
	"strings"

	"github.com/mentorlink/mentorlink/internal/app/models"
	"github.com/mentorlink/mentorlink/internal/pkg/apperrors"
)

// LocationFeatures is the canonical location shape compared by the scorers.
// Students, mentors, and communities all normalize into this one form so
// location scoring cannot diverge between them.
type LocationFeatures struct {
	Country string
	State   string
	City    string
	Remote  bool
}

// FeatureBag is the canonical feature set extracted from a heterogeneous
// profile record. Tokens keep their original order and repetitions;
// repetition intentionally increases a token's weight in overlap scoring.
type FeatureBag struct {
	Domains  map[string]struct{}
	Location LocationFeatures
	Tokens   []string
}

// HasDomain reports whether the bag contains the given (already lower-cased) domain
func (b *FeatureBag) HasDomain(domain string) bool {
	_, ok := b.Domains[domain]
	return ok
}

// TokenSet returns the de-duplicated token set for Jaccard-style comparisons
func (b *FeatureBag) TokenSet() map[string]struct{} {
	set := make(map[string]struct{}, len(b.Tokens))
	for _, t := range b.Tokens {
		set[t] = struct{}{}
	}
	return set
}

// Tokenize splits free-text fields into lower-cased whitespace-delimited
// tokens. Duplicates are kept on purpose.
func Tokenize(fields ...string) []string {
	var tokens []string
	for _, f := range fields {
		for _, t := range strings.Fields(strings.ToLower(f)) {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// domainSet lower-cases and collects domains into a set
func domainSet(domains []string) map[string]struct{} {
	set := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		d = strings.TrimSpace(strings.ToLower(d))
		if d != "" {
			set[d] = struct{}{}
		}
	}
	return set
}

// NormalizeStudent extracts the student's comparable features. Only the
// identity field is required; absent optional fields yield empty features.
func NormalizeStudent(s *models.StudentProfile) (*FeatureBag, error) {
	if s == nil || s.ID == "" {
		return nil, apperrors.NewValidationError("student id is required")
	}

	fields := []string{s.Bio}
	fields = append(fields, s.Interests...)
	fields = append(fields, s.Goals...)

	return &FeatureBag{
		Domains: domainSet(s.TargetDomains),
		Location: LocationFeatures{
			Country: s.Location.Country,
			State:   s.Location.State,
			City:    s.Location.City,
			Remote:  s.Location.Remote,
		},
		Tokens: Tokenize(fields...),
	}, nil
}

// NormalizeMentor extracts the mentor's comparable features
func NormalizeMentor(m *models.MentorProfile) (*FeatureBag, error) {
	if m == nil || m.ID == "" {
		return nil, apperrors.NewValidationError("mentor id is required")
	}

	fields := []string{m.Bio}
	fields = append(fields, m.Expertise.Skills...)
	fields = append(fields, m.Style.Specializations...)

	return &FeatureBag{
		Domains: domainSet(m.Expertise.Domains),
		Location: LocationFeatures{
			Country: m.Location.Country,
			State:   m.Location.State,
			City:    m.Location.City,
			Remote:  m.Location.Remote,
		},
		Tokens: Tokenize(fields...),
	}, nil
}

// NormalizeCommunity extracts a community's comparable features. The token
// sequence covers name, description, and the category domain, which is what
// the relevance scorer matches user tokens against.
func NormalizeCommunity(c *models.Community) (*FeatureBag, error) {
	if c == nil || c.ID == "" {
		return nil, apperrors.NewValidationError("community id is required")
	}

	domains := append([]string{c.Category.Domain}, c.Category.SubDomains...)

	return &FeatureBag{
		Domains: domainSet(domains),
		Location: LocationFeatures{
			Country: c.Location.Country,
			State:   c.Location.State,
			City:    c.Location.City,
			Remote:  c.Location.Online,
		},
		Tokens: Tokenize(c.Name, c.Description, c.Category.Domain),
	}, nil
}
