package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mentorlink/mentorlink/internal/app/community"
)

// The community repository must satisfy the lifecycle manager's store
// contract, revision-guarded writes included.
var _ community.CommunityStore = (*CommunityRepository)(nil)

func TestMentorOrderClause(t *testing.T) {
	assert.Equal(t, "(expertise->>'yearsOfExperience')::int DESC", mentorOrderClause("experience"))
	assert.Equal(t, "(stats->>'totalReviews')::int DESC", mentorOrderClause("reviews"))
	assert.Equal(t, "created_at DESC", mentorOrderClause("newest"))
	assert.Equal(t, "(stats->>'averageRating')::numeric DESC", mentorOrderClause("rating"))
	assert.Equal(t, "(stats->>'averageRating')::numeric DESC", mentorOrderClause(""))
}
