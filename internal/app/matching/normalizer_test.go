package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlink/mentorlink/internal/app/models"
	"github.com/mentorlink/mentorlink/internal/pkg/apperrors"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("Machine Learning", "web  development", "", "machine")
	assert.Equal(t, []string{"machine", "learning", "web", "development", "machine"}, tokens,
		"tokens keep order and repetitions")
}

func TestNormalizeStudent(t *testing.T) {
	student := &models.StudentProfile{
		ID:            "stu-1",
		Bio:           "Aspiring data scientist",
		Interests:     []string{"machine learning"},
		Goals:         []string{"become a Data engineer"},
		TargetDomains: []string{"Technology", " technology ", "Science"},
		Location: models.Location{
			Country: "Kazakhstan",
			City:    "Almaty",
			Remote:  true,
		},
	}

	bag, err := NormalizeStudent(student)
	require.NoError(t, err)

	assert.Len(t, bag.Domains, 2)
	assert.True(t, bag.HasDomain("technology"))
	assert.True(t, bag.HasDomain("science"))
	assert.Equal(t, "Almaty", bag.Location.City)
	assert.True(t, bag.Location.Remote)
	assert.Contains(t, bag.Tokens, "aspiring")
	assert.Contains(t, bag.Tokens, "data")
}

func TestNormalizeStudent_MissingIdentity(t *testing.T) {
	_, err := NormalizeStudent(&models.StudentProfile{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = NormalizeStudent(nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestNormalizeStudent_EmptyOptionalFields(t *testing.T) {
	bag, err := NormalizeStudent(&models.StudentProfile{ID: "stu-2"})
	require.NoError(t, err)

	assert.Empty(t, bag.Domains)
	assert.Empty(t, bag.Tokens)
	assert.Equal(t, LocationFeatures{}, bag.Location)
}

func TestNormalizeMentor(t *testing.T) {
	mentor := &models.MentorProfile{
		ID:  "men-1",
		Bio: "Senior engineer",
		Expertise: models.Expertise{
			Domains: []string{"Technology"},
			Skills:  []string{"Go", "Distributed Systems"},
		},
		Style: models.MentorshipStyle{
			Specializations: []string{"career growth"},
		},
	}

	bag, err := NormalizeMentor(mentor)
	require.NoError(t, err)

	assert.True(t, bag.HasDomain("technology"))
	assert.Contains(t, bag.Tokens, "go")
	assert.Contains(t, bag.Tokens, "career")
}

func TestNormalizeCommunity(t *testing.T) {
	community := &models.Community{
		ID:          "com-1",
		Name:        "Go Developers",
		Description: "A community for gophers",
		Category: models.CommunityCategory{
			Domain:     "Technology",
			SubDomains: []string{"Backend"},
		},
	}

	bag, err := NormalizeCommunity(community)
	require.NoError(t, err)

	assert.True(t, bag.HasDomain("technology"))
	assert.True(t, bag.HasDomain("backend"))
	assert.Contains(t, bag.Tokens, "gophers")

	_, err = NormalizeCommunity(&models.Community{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
