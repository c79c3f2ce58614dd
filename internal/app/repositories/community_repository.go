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
	"github.com/mentorlink/mentorlink/internal/pkg/helpers"
)

// CommunityFilter holds community list filter criteria
type CommunityFilter struct {
	Domain     *string
	Type       *string
	Country    *string
	City       *string
	OnlineOnly *bool
	Search     *string
	Page       int
	PageSize   int
}

// CommunityRepository handles database operations for communities. The
// membership set, stats, resources, and events are stored as JSONB columns;
// every membership or stats write is guarded by the revision column so
// concurrent mutations surface as ErrRevisionConflict instead of lost
// updates.
type CommunityRepository struct {
	db *pgxpool.Pool
}

// NewCommunityRepository creates a new CommunityRepository
func NewCommunityRepository(db *pgxpool.Pool) *CommunityRepository {
	return &CommunityRepository{db: db}
}

const communityColumns = "id, name, description, type, created_by, created_at, updated_at, revision, active, category, location, settings, members, stats, resources, events"

func scanCommunity(row pgx.Row) (*models.Community, error) {
	var community models.Community
	err := row.Scan(
		&community.ID,
		&community.Name,
		&community.Description,
		&community.Type,
		&community.CreatedBy,
		&community.CreatedAt,
		&community.UpdatedAt,
		&community.Revision,
		&community.Active,
		&community.Category,
		&community.Location,
		&community.Settings,
		&community.Members,
		&community.Stats,
		&community.Resources,
		&community.Events,
	)
	if err != nil {
		return nil, err
	}
	return &community, nil
}

// Create inserts a new community
func (r *CommunityRepository) Create(ctx context.Context, community *models.Community) error {
	query := squirrel.Insert("communities").
		Columns("id", "name", "description", "type", "created_by", "created_at", "updated_at",
			"revision", "active", "category", "location", "settings", "members", "stats", "resources", "events").
		Values(community.ID, community.Name, community.Description, community.Type, community.CreatedBy,
			community.CreatedAt, community.UpdatedAt, community.Revision, community.Active, community.Category,
			community.Location, community.Settings, community.Members, community.Stats, community.Resources, community.Events).
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

// GetByID retrieves a community by id
func (r *CommunityRepository) GetByID(ctx context.Context, id string) (*models.Community, error) {
	query := squirrel.Select(communityColumns).
		From("communities").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	community, err := scanCommunity(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommunityNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return community, nil
}

// Find retrieves active communities matching the filter with pagination
func (r *CommunityRepository) Find(ctx context.Context, filter CommunityFilter) ([]*models.Community, int64, error) {
	base := squirrel.Select().
		From("communities").
		Where("active = true").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Domain != nil && *filter.Domain != "" {
		base = base.Where("category->>'domain' ILIKE ?", *filter.Domain)
	}
	if filter.Type != nil && *filter.Type != "" {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.Country != nil && *filter.Country != "" {
		base = base.Where("location->>'country' ILIKE ?", *filter.Country)
	}
	if filter.City != nil && *filter.City != "" {
		base = base.Where("location->>'city' ILIKE ?", *filter.City)
	}
	if filter.OnlineOnly != nil && *filter.OnlineOnly {
		base = base.Where("(location->>'online')::boolean = true")
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		base = base.Where("(name ILIKE ? OR description ILIKE ?)", pattern, pattern)
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

	sql, args, err := base.Columns(communityColumns).
		OrderBy("(stats->>'totalMembers')::int DESC, created_at DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var communities []*models.Community
	for rows.Next() {
		community, err := scanCommunity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		communities = append(communities, community)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}
	return communities, total, nil
}

// GetAllActive retrieves every active community for in-process scoring
func (r *CommunityRepository) GetAllActive(ctx context.Context) ([]*models.Community, error) {
	communities, _, err := r.Find(ctx, CommunityFilter{Page: 1, PageSize: 1000})
	return communities, err
}

// SaveMembershipDelta atomically replaces the membership set and stats,
// conditional on the stored revision matching expectedRevision. Zero rows
// updated means another writer got there first.
func (r *CommunityRepository) SaveMembershipDelta(ctx context.Context, communityID string, members []models.CommunityMember, stats models.CommunityStats, expectedRevision int64) error {
	query := squirrel.Update("communities").
		Set("members", members).
		Set("stats", stats).
		Set("revision", expectedRevision+1).
		Set("updated_at", time.Now()).
		Where("id = ? AND revision = ?", communityID, expectedRevision).
		PlaceholderFormat(squirrel.Dollar)

	return r.execConditional(ctx, communityID, query)
}

// AppendEvent atomically appends an event and replaces stats, conditional on
// the revision
func (r *CommunityRepository) AppendEvent(ctx context.Context, communityID string, event models.CommunityEvent, stats models.CommunityStats, expectedRevision int64) error {
	query := squirrel.Update("communities").
		Set("events", squirrel.Expr("events || to_jsonb(?::jsonb)", event)).
		Set("stats", stats).
		Set("revision", expectedRevision+1).
		Set("updated_at", time.Now()).
		Where("id = ? AND revision = ?", communityID, expectedRevision).
		PlaceholderFormat(squirrel.Dollar)

	return r.execConditional(ctx, communityID, query)
}

// AppendResource atomically appends a resource, conditional on the revision
func (r *CommunityRepository) AppendResource(ctx context.Context, communityID string, resource models.CommunityResource, expectedRevision int64) error {
	query := squirrel.Update("communities").
		Set("resources", squirrel.Expr("resources || to_jsonb(?::jsonb)", resource)).
		Set("revision", expectedRevision+1).
		Set("updated_at", time.Now()).
		Where("id = ? AND revision = ?", communityID, expectedRevision).
		PlaceholderFormat(squirrel.Dollar)

	return r.execConditional(ctx, communityID, query)
}

// SaveSettings replaces the community settings, conditional on the revision
func (r *CommunityRepository) SaveSettings(ctx context.Context, communityID string, settings models.CommunitySettings, expectedRevision int64) error {
	query := squirrel.Update("communities").
		Set("settings", settings).
		Set("revision", expectedRevision+1).
		Set("updated_at", time.Now()).
		Where("id = ? AND revision = ?", communityID, expectedRevision).
		PlaceholderFormat(squirrel.Dollar)

	return r.execConditional(ctx, communityID, query)
}

// execConditional runs a revision-guarded update. When no row matched, it
// distinguishes a missing community from a revision race.
func (r *CommunityRepository) execConditional(ctx context.Context, communityID string, query squirrel.UpdateBuilder) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, communityID); err != nil {
			return err
		}
		return apperrors.ErrRevisionConflict
	}
	return nil
}
