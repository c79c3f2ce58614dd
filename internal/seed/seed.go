package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/mentorlink/mentorlink/internal/app/models"
	appRepos "github.com/mentorlink/mentorlink/internal/app/repositories"
	"github.com/mentorlink/mentorlink/internal/pkg/apperrors"
)

// CreateDefaultData seeds demo profiles and a demo community so a fresh
// instance has something to match against. Existing rows are left alone.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(dbPool)

	lgr.Info().Msg("Checking/Creating default data (demo profiles)...")
	var finalErr error

	now := time.Now()

	student := &appModels.StudentProfile{
		ID:        "demo_student_001",
		Name:      "Alex Johnson",
		Email:     "alex.demo@example.com",
		Bio:       "Computer Science student passionate about AI and web development",
		Interests: []string{"Artificial Intelligence", "Web Development", "Data Science"},
		Goals: []string{
			"Learn advanced ML techniques",
			"Build portfolio projects",
			"Get internship",
		},
		TargetDomains: []string{"technology", "entrepreneurship"},
		Location: appModels.Location{
			Country: "USA",
			State:   "California",
			City:    "San Francisco",
			Remote:  true,
		},
		Preferences: appModels.StudentPreferences{
			MentorTypes:        []string{"industry", "entrepreneur"},
			MentorExperience:   "5+",
			CommunicationModes: []string{"video", "chat"},
			SessionFrequency:   "bi-weekly",
			Languages:          []string{"English"},
		},
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repos.StudentRepository.Create(ctx, student); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating demo student")
		finalErr = errors.Join(finalErr, err)
	}

	verifiedAt := now
	mentors := []*appModels.MentorProfile{
		{
			ID:    "demo_mentor_001",
			Name:  "Dr. Sarah Chen",
			Email: "sarah.chen@example.com",
			Bio:   "AI researcher with 15+ years experience in ML and deep learning. Passionate about mentoring the next generation.",
			Expertise: appModels.Expertise{
				Domains:           []string{"technology", "science"},
				Skills:            []string{"Machine Learning", "Deep Learning", "Python", "TensorFlow", "PyTorch"},
				Industries:        []string{"Tech", "Research", "Healthcare AI"},
				YearsOfExperience: 15,
			},
			Availability: appModels.Availability{
				HoursPerWeek:  4,
				PreferredDays: []string{"Saturday", "Sunday"},
				Timezone:      "PST",
			},
			Style: appModels.MentorshipStyle{
				Approach:        "structured",
				Specializations: []string{"Machine Learning", "Deep Learning", "Research Methods"},
			},
			Location: appModels.Location{
				Country: "USA",
				State:   "California",
				City:    "San Francisco",
				Remote:  true,
			},
			Verification: appModels.MentorVerification{
				Status:     appModels.VerificationVerified,
				Method:     "linkedin",
				VerifiedAt: &verifiedAt,
			},
			Pricing: appModels.Pricing{IsFree: true},
			Stats: appModels.MentorRollingStats{
				TotalMentees:  45,
				ActiveMentees: 3,
				AverageRating: 4.9,
				TotalReviews:  42,
			},
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:    "demo_mentor_002",
			Name:  "Mark Rodriguez",
			Email: "mark.r@example.com",
			Bio:   "3x startup founder, full-stack developer with expertise in building scalable web applications.",
			Expertise: appModels.Expertise{
				Domains:           []string{"technology", "entrepreneurship", "business"},
				Skills:            []string{"JavaScript", "React", "Node.js", "AWS", "System Design"},
				Industries:        []string{"SaaS", "E-commerce", "FinTech"},
				YearsOfExperience: 12,
			},
			Availability: appModels.Availability{
				HoursPerWeek:  3,
				PreferredDays: []string{"Tuesday", "Thursday"},
				Timezone:      "PST",
			},
			Style: appModels.MentorshipStyle{
				Approach:        "flexible",
				Specializations: []string{"Web Development", "Entrepreneurship", "Product Development"},
			},
			Location: appModels.Location{
				Country: "USA",
				State:   "California",
				City:    "Los Angeles",
				Remote:  true,
			},
			Verification: appModels.MentorVerification{
				Status:     appModels.VerificationVerified,
				VerifiedAt: &verifiedAt,
			},
			Pricing: appModels.Pricing{IsFree: false, HourlyRate: 50},
			Stats: appModels.MentorRollingStats{
				AverageRating: 4.7,
				TotalReviews:  28,
			},
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	for _, mentor := range mentors {
		if err := repos.MentorRepository.Create(ctx, mentor); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Str("mentor", mentor.ID).Msg("Error creating demo mentor")
			finalErr = errors.Join(finalErr, err)
		}
	}

	community := &appModels.Community{
		ID:          "demo_community_001",
		Name:        "AI/ML Enthusiasts Bay Area",
		Description: "A vibrant community of AI/ML enthusiasts, students, and professionals in the Bay Area. Weekly study sessions and project collaborations.",
		Type:        "study-group",
		CreatedBy:   "demo_admin_001",
		Category: appModels.CommunityCategory{
			Domain:     "technology",
			SubDomains: []string{"artificial-intelligence", "machine-learning"},
			Tags:       []string{"AI", "ML", "Deep Learning", "Python", "TensorFlow"},
		},
		Location: appModels.CommunityLocation{
			LocationBased: true,
			Country:       "USA",
			State:         "California",
			City:          "San Francisco",
			Online:        true,
		},
		Settings: appModels.CommunitySettings{
			MaxMembers:      200,
			IsPublic:        true,
			RequireApproval: false,
			AllowMentors:    true,
		},
		Members: []appModels.CommunityMember{
			{
				UserID:   "demo_admin_001",
				UserType: appModels.UserTypeMentor,
				Role:     appModels.RoleAdmin,
				JoinedAt: now,
				Active:   true,
			},
		},
		Stats: appModels.CommunityStats{
			TotalMembers:  1,
			ActiveMembers: 1,
		},
		Resources: []appModels.CommunityResource{},
		Events:    []appModels.CommunityEvent{},
		Revision:  1,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := repos.CommunityRepository.GetByID(ctx, community.ID); errors.Is(err, apperrors.ErrCommunityNotFound) {
		if err := repos.CommunityRepository.Create(ctx, community); err != nil {
			lgr.Error().Err(err).Msg("Error creating demo community")
			finalErr = errors.Join(finalErr, err)
		}
	} else if err != nil {
		lgr.Error().Err(err).Msg("Error checking for demo community")
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check/creation complete.")
	}
	return finalErr
}
