package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlink/mentorlink/internal/app/models"
)

type stubEnrichment struct {
	available bool
	score     float64
	err       error
	calls     int
}

func (s *stubEnrichment) Available() bool { return s.available }

func (s *stubEnrichment) ScoreSimilarity(_ context.Context, _, _ string) (float64, error) {
	s.calls++
	return s.score, s.err
}

func newTestCommunity(id, name, description, domain string, members int) *models.Community {
	return &models.Community{
		ID:          id,
		Name:        name,
		Description: description,
		Category:    models.CommunityCategory{Domain: domain},
		Stats:       models.CommunityStats{TotalMembers: members},
	}
}

func TestRankCommunities_TokenOverlap(t *testing.T) {
	scorer := NewRelevanceScorer(nil, zerolog.Nop())
	userTokens := Tokenize("machine learning", "python")

	communities := []*models.Community{
		newTestCommunity("com-1", "Cooking Club", "Recipes and food", "lifestyle", 10),
		newTestCommunity("com-2", "ML Enthusiasts", "Machine learning and python projects", "technology", 5),
	}

	ranked := scorer.RankCommunities(context.Background(), userTokens, communities, 0)
	require.Len(t, ranked, 2)

	assert.Equal(t, "com-2", ranked[0].Community.ID)
	assert.Equal(t, 100, ranked[0].RelevanceScore)
	assert.Contains(t, ranked[0].Reason, "Matches your interests in:")
	assert.Equal(t, 0, ranked[1].RelevanceScore)
	assert.Equal(t, genericReason, ranked[1].Reason)
}

func TestRankCommunities_EmptyUserTokens(t *testing.T) {
	scorer := NewRelevanceScorer(nil, zerolog.Nop())

	ranked := scorer.RankCommunities(context.Background(), nil,
		[]*models.Community{newTestCommunity("com-1", "Anything", "", "general", 0)}, 0)
	require.Len(t, ranked, 1)

	assert.Equal(t, defaultRelevanceScore, ranked[0].RelevanceScore)
	assert.Equal(t, genericReason, ranked[0].Reason)
}

func TestRankCommunities_StableOrdering(t *testing.T) {
	scorer := NewRelevanceScorer(nil, zerolog.Nop())
	userTokens := Tokenize("go")

	// Identical scores and member counts; input order must be preserved.
	communities := []*models.Community{
		newTestCommunity("com-a", "Go North", "", "technology", 3),
		newTestCommunity("com-b", "Go South", "", "technology", 3),
		newTestCommunity("com-c", "Go West", "", "technology", 3),
	}

	first := scorer.RankCommunities(context.Background(), userTokens, communities, 0)
	second := scorer.RankCommunities(context.Background(), userTokens, communities, 0)

	require.Len(t, first, 3)
	for i := range first {
		assert.Equal(t, first[i].Community.ID, second[i].Community.ID)
	}
	assert.Equal(t, "com-a", first[0].Community.ID)
}

func TestRankCommunities_TieBrokenByMemberCount(t *testing.T) {
	scorer := NewRelevanceScorer(nil, zerolog.Nop())
	userTokens := Tokenize("go")

	communities := []*models.Community{
		newTestCommunity("com-small", "Go Club", "", "technology", 3),
		newTestCommunity("com-big", "Go Guild", "", "technology", 50),
	}

	ranked := scorer.RankCommunities(context.Background(), userTokens, communities, 0)
	require.Len(t, ranked, 2)
	assert.Equal(t, "com-big", ranked[0].Community.ID)
}

func TestRankCommunities_EnrichmentOverride(t *testing.T) {
	enrichment := &stubEnrichment{available: true, score: 87}
	scorer := NewRelevanceScorer(enrichment, zerolog.Nop())

	ranked := scorer.RankCommunities(context.Background(), Tokenize("go"),
		[]*models.Community{newTestCommunity("com-1", "Go Club", "", "technology", 1)}, 0)
	require.Len(t, ranked, 1)

	assert.Equal(t, 87, ranked[0].RelevanceScore)
	assert.Equal(t, 1, enrichment.calls)
}

func TestRankCommunities_EnrichmentFailureFallsBack(t *testing.T) {
	enrichment := &stubEnrichment{available: true, err: errors.New("upstream timeout")}
	scorer := NewRelevanceScorer(enrichment, zerolog.Nop())
	userTokens := Tokenize("machine learning")

	communities := []*models.Community{
		newTestCommunity("com-1", "ML Group", "machine learning", "technology", 2),
		newTestCommunity("com-2", "Cooking", "recipes", "lifestyle", 9),
	}

	ranked := scorer.RankCommunities(context.Background(), userTokens, communities, 0)

	require.Len(t, ranked, 2, "enrichment failure never fails the request")
	assert.Equal(t, "com-1", ranked[0].Community.ID)
	assert.Equal(t, 100, ranked[0].RelevanceScore)
	assert.Equal(t, 2, enrichment.calls)
}

func TestRankCommunities_Limit(t *testing.T) {
	scorer := NewRelevanceScorer(nil, zerolog.Nop())

	communities := []*models.Community{
		newTestCommunity("com-1", "A", "", "x", 1),
		newTestCommunity("com-2", "B", "", "x", 2),
		newTestCommunity("com-3", "C", "", "x", 3),
	}

	ranked := scorer.RankCommunities(context.Background(), nil, communities, 2)
	assert.Len(t, ranked, 2)
}

func TestScoreTokenOverlap_BidirectionalSubstring(t *testing.T) {
	score, reason := scoreTokenOverlap([]string{"learn", "machinelearning"}, []string{"learning", "machine"})
	assert.Equal(t, 100, score, "either containment direction counts as a match")
	assert.Contains(t, reason, "learn")

	score, _ = scoreTokenOverlap([]string{"a", "b", "c", "d"}, []string{"a", "b"})
	assert.Equal(t, 50, score)
}
