package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorlink/mentorlink/internal/app/models"
	"github.com/mentorlink/mentorlink/internal/pkg/apperrors"
)

// StudentRepository handles database operations for student profiles.
// Nested profile structures (location, preferences) are stored as JSONB.
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = "id, name, email, bio, interests, goals, target_domains, location, preferences, active, created_at, updated_at"

// Create inserts a new student profile
func (r *StudentRepository) Create(ctx context.Context, student *models.StudentProfile) error {
	query := squirrel.Insert("students").
		Columns("id", "name", "email", "bio", "interests", "goals", "target_domains", "location", "preferences", "active", "created_at", "updated_at").
		Values(student.ID, student.Name, student.Email, student.Bio, student.Interests, student.Goals, student.TargetDomains,
			student.Location, student.Preferences, student.Active, student.CreatedAt, student.UpdatedAt).
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

// GetByID retrieves a student profile by id
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.StudentProfile, error) {
	query := squirrel.Select(studentColumns).
		From("students").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var student models.StudentProfile
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.Bio,
		&student.Interests,
		&student.Goals,
		&student.TargetDomains,
		&student.Location,
		&student.Preferences,
		&student.Active,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return &student, nil
}

// GetByEmail retrieves a student profile by email
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.StudentProfile, error) {
	query := squirrel.Select("id").
		From("students").
		Where("email = ?", email).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var id string
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Update replaces the mutable fields of a student profile
func (r *StudentRepository) Update(ctx context.Context, student *models.StudentProfile) error {
	query := squirrel.Update("students").
		Set("name", student.Name).
		Set("bio", student.Bio).
		Set("interests", student.Interests).
		Set("goals", student.Goals).
		Set("target_domains", student.TargetDomains).
		Set("location", student.Location).
		Set("preferences", student.Preferences).
		Set("active", student.Active).
		Set("updated_at", student.UpdatedAt).
		Where("id = ?", student.ID).
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
		return apperrors.ErrStudentNotFound
	}
	return nil
}
