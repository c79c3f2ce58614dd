package matching

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mentorlink/mentorlink/internal/app/models"
)

const (
	// defaultRelevanceScore is assigned when the user profile yields no
	// tokens to match against.
	defaultRelevanceScore = 50

	genericReason = "Recommended based on your profile"
)

// EnrichmentProvider supplies an optional external similarity signal for a
// (user text, community text) pair. Implementations are best effort: failures
// never propagate past the relevance scorer.
type EnrichmentProvider interface {
	// Available reports whether the provider can currently serve requests
	Available() bool
	// ScoreSimilarity returns a 0..100 similarity score for the two texts
	ScoreSimilarity(ctx context.Context, sourceText, candidateText string) (float64, error)
}

// RankedCommunity pairs a community with its relevance score and the
// human-readable reason it was recommended
type RankedCommunity struct {
	Community      *models.Community `json:"community"`
	RelevanceScore int               `json:"relevanceScore"`
	Reason         string            `json:"reason"`
}

// RelevanceScorer ranks candidate communities for a user profile using token
// overlap, optionally refined by an enrichment provider. It is stateless and
// safe for concurrent use.
type RelevanceScorer struct {
	enrichment EnrichmentProvider
	logger     zerolog.Logger
}

// NewRelevanceScorer creates a scorer. enrichment may be nil, in which case
// only token overlap is used.
func NewRelevanceScorer(enrichment EnrichmentProvider, logger zerolog.Logger) *RelevanceScorer {
	return &RelevanceScorer{enrichment: enrichment, logger: logger}
}

// RankCommunities scores every candidate against the user's profile tokens
// and returns them ordered by relevance descending, ties broken by member
// count descending, then by input order. The sort is stable so identical
// inputs always produce identical orderings. A non-positive limit means no
// limit. Candidates that fail normalization are skipped.
func (s *RelevanceScorer) RankCommunities(ctx context.Context, userTokens []string, candidates []*models.Community, limit int) []*RankedCommunity {
	ranked := make([]*RankedCommunity, 0, len(candidates))
	for _, community := range candidates {
		bag, err := NormalizeCommunity(community)
		if err != nil {
			continue
		}

		score, reason := scoreTokenOverlap(userTokens, bag.Tokens)
		if s.enrichment != nil && s.enrichment.Available() {
			enriched, err := s.enrichment.ScoreSimilarity(ctx, strings.Join(userTokens, " "), strings.Join(bag.Tokens, " "))
			if err != nil {
				s.logger.Warn().Err(err).
					Str("communityId", community.ID).
					Msg("Enrichment scoring failed, using token overlap")
			} else {
				score = int(math.Round(enriched))
				reason = genericReason
			}
		}

		ranked = append(ranked, &RankedCommunity{
			Community:      community,
			RelevanceScore: score,
			Reason:         reason,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].RelevanceScore != ranked[j].RelevanceScore {
			return ranked[i].RelevanceScore > ranked[j].RelevanceScore
		}
		return ranked[i].Community.Stats.TotalMembers > ranked[j].Community.Stats.TotalMembers
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// UserTokens builds the token sequence the scorer matches from. Students
// contribute interests and goals, mentors contribute skills and
// specializations.
func UserTokens(student *models.StudentProfile, mentor *models.MentorProfile) []string {
	switch {
	case student != nil:
		fields := append([]string{}, student.Interests...)
		fields = append(fields, student.Goals...)
		return Tokenize(fields...)
	case mentor != nil:
		fields := append([]string{}, mentor.Expertise.Skills...)
		fields = append(fields, mentor.Style.Specializations...)
		return Tokenize(fields...)
	default:
		return nil
	}
}

// scoreTokenOverlap computes the proportion of user tokens matched by any
// community token. A user token matches when it contains, or is contained by,
// a community token. An empty user token sequence yields the default score
// and the generic reason.
func scoreTokenOverlap(userTokens, communityTokens []string) (int, string) {
	if len(userTokens) == 0 {
		return defaultRelevanceScore, genericReason
	}

	matchedCount := 0
	var matchedTokens []string
	seen := make(map[string]struct{})
	for _, ut := range userTokens {
		matched := false
		for _, ct := range communityTokens {
			if strings.Contains(ct, ut) || strings.Contains(ut, ct) {
				matched = true
				break
			}
		}
		if matched {
			matchedCount++
			if _, ok := seen[ut]; !ok {
				seen[ut] = struct{}{}
				matchedTokens = append(matchedTokens, ut)
			}
		}
	}

	score := int(math.Round(float64(matchedCount) / float64(len(userTokens)) * 100))
	if len(matchedTokens) == 0 {
		return score, genericReason
	}
	if len(matchedTokens) > 3 {
		matchedTokens = matchedTokens[:3]
	}
	return score, fmt.Sprintf("Matches your interests in: %s", strings.Join(matchedTokens, ", "))
}
