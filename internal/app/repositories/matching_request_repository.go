package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorlink/mentorlink/internal/app/models"
	"github.com/mentorlink/mentorlink/internal/pkg/apperrors"
)

// MatchingRequestRepository handles database operations for matching
// requests. Requests are an append-and-transition audit trail and are never
// deleted.
type MatchingRequestRepository struct {
	db *pgxpool.Pool
}

// NewMatchingRequestRepository creates a new MatchingRequestRepository
func NewMatchingRequestRepository(db *pgxpool.Pool) *MatchingRequestRepository {
	return &MatchingRequestRepository{db: db}
}

const requestColumns = "id, student_id, mentor_id, message, match_score, status, created_at, responded_at, rating"

func scanRequest(row pgx.Row) (*models.MatchingRequest, error) {
	var request models.MatchingRequest
	err := row.Scan(
		&request.ID,
		&request.StudentID,
		&request.MentorID,
		&request.Message,
		&request.MatchScore,
		&request.Status,
		&request.CreatedAt,
		&request.RespondedAt,
		&request.Rating,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Create inserts a new matching request
func (r *MatchingRequestRepository) Create(ctx context.Context, request *models.MatchingRequest) error {
	query := squirrel.Insert("matching_requests").
		Columns("id", "student_id", "mentor_id", "message", "match_score", "status", "created_at", "responded_at", "rating").
		Values(request.ID, request.StudentID, request.MentorID, request.Message, request.MatchScore,
			request.Status, request.CreatedAt, request.RespondedAt, request.Rating).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	return nil
}

// GetByID retrieves a matching request by id
func (r *MatchingRequestRepository) GetByID(ctx context.Context, id string) (*models.MatchingRequest, error) {
	query := squirrel.Select(requestColumns).
		From("matching_requests").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	request, err := scanRequest(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return request, nil
}

// GetByMentorID retrieves the full request history for a mentor
func (r *MatchingRequestRepository) GetByMentorID(ctx context.Context, mentorID string) ([]*models.MatchingRequest, error) {
	return r.list(ctx, squirrel.Eq{"mentor_id": mentorID})
}

// GetByStudentID retrieves all requests created by a student
func (r *MatchingRequestRepository) GetByStudentID(ctx context.Context, studentID string) ([]*models.MatchingRequest, error) {
	return r.list(ctx, squirrel.Eq{"student_id": studentID})
}

// HasOpenRequest reports whether the student already has a pending or
// accepted request targeting the mentor
func (r *MatchingRequestRepository) HasOpenRequest(ctx context.Context, studentID, mentorID string) (bool, error) {
	query := squirrel.Select("COUNT(*)").
		From("matching_requests").
		Where(squirrel.Eq{
			"student_id": studentID,
			"mentor_id":  mentorID,
			"status":     []models.RequestStatus{models.RequestPending, models.RequestAccepted},
		}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}
	return count > 0, nil
}

// UpdateStatus transitions a request to a new status, stamping the response
// time when one is provided
func (r *MatchingRequestRepository) UpdateStatus(ctx context.Context, id string, status models.RequestStatus, respondedAt *time.Time) error {
	query := squirrel.Update("matching_requests").
		Set("status", status).
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)
	if respondedAt != nil {
		query = query.Set("responded_at", *respondedAt)
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
		return apperrors.ErrRequestNotFound
	}
	return nil
}

// SetRating records the student's post-completion rating
func (r *MatchingRequestRepository) SetRating(ctx context.Context, id string, rating float64) error {
	query := squirrel.Update("matching_requests").
		Set("rating", rating).
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
		return apperrors.ErrRequestNotFound
	}
	return nil
}

func (r *MatchingRequestRepository) list(ctx context.Context, where squirrel.Eq) ([]*models.MatchingRequest, error) {
	query := squirrel.Select(requestColumns).
		From("matching_requests").
		Where(where).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var requests []*models.MatchingRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return requests, nil
}
