package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorlink/mentorlink/internal/app/models"
	"github.com/mentorlink/mentorlink/internal/pkg/apperrors"
	"github.com/mentorlink/mentorlink/internal/pkg/helpers"
)

// MentorFilter holds the mentor search criteria. Nil pointers mean the
// criterion is not applied.
type MentorFilter struct {
	Domain        *string
	Country       *string
	City          *string
	VerifiedOnly  *bool
	FreeOnly      *bool
	MinRating     *float64
	MinExperience *int
	SortBy        string
	Page          int
	PageSize      int
}

// MentorRepository handles database operations for mentor profiles
type MentorRepository struct {
	db *pgxpool.Pool
}

// NewMentorRepository creates a new MentorRepository
func NewMentorRepository(db *pgxpool.Pool) *MentorRepository {
	return &MentorRepository{db: db}
}

const mentorColumns = "id, name, email, bio, expertise, availability, style, location, verification, pricing, stats, profile_picture_url, verification_document_urls, active, created_at, updated_at"

func scanMentor(row pgx.Row) (*models.MentorProfile, error) {
	var mentor models.MentorProfile
	err := row.Scan(
		&mentor.ID,
		&mentor.Name,
		&mentor.Email,
		&mentor.Bio,
		&mentor.Expertise,
		&mentor.Availability,
		&mentor.Style,
		&mentor.Location,
		&mentor.Verification,
		&mentor.Pricing,
		&mentor.Stats,
		&mentor.ProfilePictureURL,
		&mentor.VerificationDocumentURLs,
		&mentor.Active,
		&mentor.CreatedAt,
		&mentor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &mentor, nil
}

// Create inserts a new mentor profile
func (r *MentorRepository) Create(ctx context.Context, mentor *models.MentorProfile) error {
	query := squirrel.Insert("mentors").
		Columns("id", "name", "email", "bio", "expertise", "availability", "style", "location",
			"verification", "pricing", "stats", "profile_picture_url", "verification_document_urls",
			"active", "created_at", "updated_at").
		Values(mentor.ID, mentor.Name, mentor.Email, mentor.Bio, mentor.Expertise, mentor.Availability,
			mentor.Style, mentor.Location, mentor.Verification, mentor.Pricing, mentor.Stats,
			mentor.ProfilePictureURL, mentor.VerificationDocumentURLs, mentor.Active, mentor.CreatedAt, mentor.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error executing query: %w", err)
	}
	return nil
}

// GetByID retrieves a mentor profile by id
func (r *MentorRepository) GetByID(ctx context.Context, id string) (*models.MentorProfile, error) {
	query := squirrel.Select(mentorColumns).
		From("mentors").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	mentor, err := scanMentor(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMentorNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return mentor, nil
}

// Find retrieves mentor profiles matching the filter with pagination,
// returning the matching page and the total match count
func (r *MentorRepository) Find(ctx context.Context, filter MentorFilter) ([]*models.MentorProfile, int64, error) {
	base := squirrel.Select().
		From("mentors").
		Where("active = true").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Domain != nil && *filter.Domain != "" {
		base = base.Where("expertise->'domains' @> to_jsonb(lower(?)::text)", *filter.Domain)
	}
	if filter.Country != nil && *filter.Country != "" {
		base = base.Where("location->>'country' ILIKE ?", *filter.Country)
	}
	if filter.City != nil && *filter.City != "" {
		base = base.Where("location->>'city' ILIKE ?", *filter.City)
	}
	if filter.VerifiedOnly != nil && *filter.VerifiedOnly {
		base = base.Where("verification->>'status' = 'verified'")
	}
	if filter.FreeOnly != nil && *filter.FreeOnly {
		base = base.Where("(pricing->>'isFree')::boolean = true")
	}
	if filter.MinRating != nil {
		base = base.Where("(stats->>'averageRating')::numeric >= ?", *filter.MinRating)
	}
	if filter.MinExperience != nil {
		base = base.Where("(expertise->>'yearsOfExperience')::int >= ?", *filter.MinExperience)
	}

	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)

	listQuery := base.Columns(mentorColumns).
		OrderBy(mentorOrderClause(filter.SortBy)).
		Limit(uint64(limit)).
		Offset(offset)

	sql, args, err := listQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var mentors []*models.MentorProfile
	for rows.Next() {
		mentor, err := scanMentor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		mentors = append(mentors, mentor)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}
	return mentors, total, nil
}

// GetAllActive retrieves every active mentor profile for in-process scoring
func (r *MentorRepository) GetAllActive(ctx context.Context) ([]*models.MentorProfile, error) {
	mentors, _, err := r.Find(ctx, MentorFilter{Page: 1, PageSize: 1000, SortBy: "newest"})
	return mentors, err
}

// UpdateAvailability replaces a mentor's availability block
func (r *MentorRepository) UpdateAvailability(ctx context.Context, id string, availability models.Availability) error {
	return r.update(ctx, id, map[string]interface{}{"availability": availability})
}

// UpdateVerification sets a mentor's verification state. Verification is
// monotonic: a verified mentor is never moved back.
func (r *MentorRepository) UpdateVerification(ctx context.Context, id string, verification models.MentorVerification) error {
	return r.update(ctx, id, map[string]interface{}{"verification": verification})
}

// UpdateStats replaces a mentor's rolling stats counters
func (r *MentorRepository) UpdateStats(ctx context.Context, id string, stats models.MentorRollingStats) error {
	return r.update(ctx, id, map[string]interface{}{"stats": stats})
}

// UpdateProfilePicture sets the mentor's profile picture URL
func (r *MentorRepository) UpdateProfilePicture(ctx context.Context, id string, url string) error {
	return r.update(ctx, id, map[string]interface{}{"profile_picture_url": url})
}

// AddVerificationDocument appends an uploaded document URL
func (r *MentorRepository) AddVerificationDocument(ctx context.Context, id string, url string) error {
	query := squirrel.Update("mentors").
		Set("verification_document_urls", squirrel.Expr("array_append(verification_document_urls, ?)", url)).
		Set("updated_at", time.Now()).
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMentorNotFound
	}
	return nil
}

// Deactivate soft deletes a mentor profile. Inactive mentors stay queryable
// by id but are excluded from listing and matching.
func (r *MentorRepository) Deactivate(ctx context.Context, id string) error {
	return r.update(ctx, id, map[string]interface{}{"active": false})
}

func (r *MentorRepository) update(ctx context.Context, id string, fields map[string]interface{}) error {
	query := squirrel.Update("mentors").
		Set("updated_at", time.Now()).
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)
	for column, value := range fields {
		query = query.Set(column, value)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMentorNotFound
	}
	return nil
}

func mentorOrderClause(sortBy string) string {
	switch sortBy {
	case "experience":
		return "(expertise->>'yearsOfExperience')::int DESC"
	case "reviews":
		return "(stats->>'totalReviews')::int DESC"
	case "newest":
		return "created_at DESC"
	default:
		return "(stats->>'averageRating')::numeric DESC"
	}
}
