// Package community implements the membership lifecycle rules: join/leave
// invariants, capacity limits, role gating for events and resources, and the
// aggregate-stats consistency guarantees that hold under concurrent
// mutations.
package community

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mentorlink/mentorlink/internal/app/models"
	"github.com/mentorlink/mentorlink/internal/pkg/apperrors"
)

// CommunityStore is the persistence contract the lifecycle manager relies
// on. SaveMembershipDelta and the append operations must apply membership
// and stats changes atomically, and must return
// apperrors.ErrRevisionConflict when expectedRevision no longer matches the
// stored record.
type CommunityStore interface {
	GetByID(ctx context.Context, id string) (*models.Community, error)
	SaveMembershipDelta(ctx context.Context, communityID string, members []models.CommunityMember, stats models.CommunityStats, expectedRevision int64) error
	AppendEvent(ctx context.Context, communityID string, event models.CommunityEvent, stats models.CommunityStats, expectedRevision int64) error
	AppendResource(ctx context.Context, communityID string, resource models.CommunityResource, expectedRevision int64) error
	SaveSettings(ctx context.Context, communityID string, settings models.CommunitySettings, expectedRevision int64) error
}

// LifecycleManager is the sole writer of community membership sets and
// stats. Every mutation follows the same pattern: read a fresh snapshot,
// validate against it, write conditionally on the snapshot's revision, and
// retry the whole operation on a revision conflict. Operations on different
// communities never block one another.
type LifecycleManager struct {
	store      CommunityStore
	maxRetries int
	logger     zerolog.Logger
	now        func() time.Time
}

// NewLifecycleManager creates a manager with the given conflict retry
// budget. A non-positive maxRetries falls back to 3.
func NewLifecycleManager(store CommunityStore, maxRetries int, logger zerolog.Logger) *LifecycleManager {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &LifecycleManager{
		store:      store,
		maxRetries: maxRetries,
		logger:     logger,
		now:        time.Now,
	}
}

// Join adds userID to the community as a regular member. It fails with
// ErrAlreadyMember when the user is already present and ErrCommunityFull
// when the membership set has reached settings.maxMembers.
func (m *LifecycleManager) Join(ctx context.Context, communityID, userID string, userType models.UserType) (*models.Community, error) {
	if !userType.IsValid() {
		return nil, apperrors.NewValidationError("invalid user type")
	}

	return m.withRetry(ctx, communityID, "join", func(community *models.Community) error {
		if community.FindMember(userID) != nil {
			return apperrors.ErrAlreadyMember
		}
		if community.Settings.MaxMembers > 0 && len(community.Members) >= community.Settings.MaxMembers {
			return apperrors.ErrCommunityFull
		}

		members := append(cloneMembers(community.Members), models.CommunityMember{
			UserID:   userID,
			UserType: userType,
			Role:     models.RoleMember,
			JoinedAt: m.now(),
			Active:   true,
		})
		stats := community.Stats
		stats.TotalMembers++
		stats.ActiveMembers++

		if err := m.store.SaveMembershipDelta(ctx, communityID, members, stats, community.Revision); err != nil {
			return err
		}
		community.Members = members
		community.Stats = stats
		return nil
	})
}

// Leave removes userID from the community. It fails with ErrNotMember when
// the user is not present and ErrSoleAdmin when the leaving member is the
// only admin, which would strand the community without one.
func (m *LifecycleManager) Leave(ctx context.Context, communityID, userID string) (*models.Community, error) {
	return m.withRetry(ctx, communityID, "leave", func(community *models.Community) error {
		member := community.FindMember(userID)
		if member == nil {
			return apperrors.ErrNotMember
		}
		if member.Role == models.RoleAdmin && community.AdminCount(userID) == 0 {
			return apperrors.ErrSoleAdmin
		}

		wasActive := member.Active
		members := make([]models.CommunityMember, 0, len(community.Members)-1)
		for _, existing := range community.Members {
			if existing.UserID != userID {
				members = append(members, existing)
			}
		}
		stats := community.Stats
		stats.TotalMembers--
		if wasActive {
			stats.ActiveMembers--
		}

		if err := m.store.SaveMembershipDelta(ctx, communityID, members, stats, community.Revision); err != nil {
			return err
		}
		community.Members = members
		community.Stats = stats
		return nil
	})
}

// CreateEvent appends an event to the community. Only admins and moderators
// may create events; everyone else gets ErrPermissionDenied.
func (m *LifecycleManager) CreateEvent(ctx context.Context, communityID, userID string, event models.CommunityEvent) (*models.Community, error) {
	return m.withRetry(ctx, communityID, "createEvent", func(community *models.Community) error {
		member := community.FindMember(userID)
		if member == nil {
			return apperrors.ErrNotMember
		}
		if !member.Role.CanCreateEvents() {
			return apperrors.NewForbiddenError("only admins and moderators can create events")
		}

		event.CreatedBy = userID
		stats := community.Stats
		stats.TotalEvents++

		if err := m.store.AppendEvent(ctx, communityID, event, stats, community.Revision); err != nil {
			return err
		}
		community.Events = append(community.Events, event)
		community.Stats = stats
		return nil
	})
}

// AddResource appends a shared resource. Any active member may add
// resources.
func (m *LifecycleManager) AddResource(ctx context.Context, communityID, userID string, resource models.CommunityResource) (*models.Community, error) {
	return m.withRetry(ctx, communityID, "addResource", func(community *models.Community) error {
		member := community.FindMember(userID)
		if member == nil || !member.Active {
			return apperrors.NewForbiddenError("only active members can add resources")
		}

		resource.UploadedBy = userID
		resource.UploadedAt = m.now()

		if err := m.store.AppendResource(ctx, communityID, resource, community.Revision); err != nil {
			return err
		}
		community.Resources = append(community.Resources, resource)
		return nil
	})
}

// UpdateSettings replaces the community settings. Only admins may change
// settings, and maxMembers cannot drop below the current member count.
func (m *LifecycleManager) UpdateSettings(ctx context.Context, communityID, userID string, settings models.CommunitySettings) (*models.Community, error) {
	return m.withRetry(ctx, communityID, "updateSettings", func(community *models.Community) error {
		member := community.FindMember(userID)
		if member == nil || member.Role != models.RoleAdmin {
			return apperrors.NewForbiddenError("only admins can update settings")
		}
		if settings.MaxMembers > 0 && settings.MaxMembers < community.Stats.TotalMembers {
			return apperrors.NewValidationError("maxMembers cannot be lower than the current member count")
		}

		if err := m.store.SaveSettings(ctx, communityID, settings, community.Revision); err != nil {
			return err
		}
		community.Settings = settings
		return nil
	})
}

// withRetry runs mutate against a fresh snapshot, retrying the whole
// read-validate-write cycle on revision conflicts. Validation errors are
// returned immediately; only the optimistic-write race is retried.
func (m *LifecycleManager) withRetry(ctx context.Context, communityID, operation string, mutate func(*models.Community) error) (*models.Community, error) {
	var lastErr error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		community, err := m.store.GetByID(ctx, communityID)
		if err != nil {
			return nil, err
		}

		err = mutate(community)
		if err == nil {
			return community, nil
		}
		if !apperrors.Is(err, apperrors.ErrRevisionConflict) {
			return nil, err
		}

		lastErr = err
		m.logger.Debug().
			Str("communityId", communityID).
			Str("operation", operation).
			Int("attempt", attempt+1).
			Msg("Revision conflict, retrying")
	}

	m.logger.Warn().
		Str("communityId", communityID).
		Str("operation", operation).
		Int("maxRetries", m.maxRetries).
		Msg("Giving up after repeated revision conflicts")
	return nil, lastErr
}

func cloneMembers(members []models.CommunityMember) []models.CommunityMember {
	cloned := make([]models.CommunityMember, len(members))
	copy(cloned, members)
	return cloned
}
