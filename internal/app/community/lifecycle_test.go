package community

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlink/mentorlink/internal/app/models"
	"github.com/mentorlink/mentorlink/internal/pkg/apperrors"
)

// memoryStore is an in-memory CommunityStore with real optimistic
// concurrency semantics, used to exercise the manager's retry loop.
type memoryStore struct {
	mu          sync.Mutex
	communities map[string]*models.Community
}

func newMemoryStore(communities ...*models.Community) *memoryStore {
	store := &memoryStore{communities: make(map[string]*models.Community)}
	for _, c := range communities {
		store.communities[c.ID] = c
	}
	return store
}

func (s *memoryStore) GetByID(_ context.Context, id string) (*models.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	community, ok := s.communities[id]
	if !ok {
		return nil, apperrors.ErrCommunityNotFound
	}
	snapshot := *community
	snapshot.Members = append([]models.CommunityMember(nil), community.Members...)
	snapshot.Events = append([]models.CommunityEvent(nil), community.Events...)
	snapshot.Resources = append([]models.CommunityResource(nil), community.Resources...)
	return &snapshot, nil
}

func (s *memoryStore) SaveMembershipDelta(_ context.Context, communityID string, members []models.CommunityMember, stats models.CommunityStats, expectedRevision int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	community, ok := s.communities[communityID]
	if !ok {
		return apperrors.ErrCommunityNotFound
	}
	if community.Revision != expectedRevision {
		return apperrors.ErrRevisionConflict
	}
	community.Members = members
	community.Stats = stats
	community.Revision++
	return nil
}

func (s *memoryStore) AppendEvent(_ context.Context, communityID string, event models.CommunityEvent, stats models.CommunityStats, expectedRevision int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	community, ok := s.communities[communityID]
	if !ok {
		return apperrors.ErrCommunityNotFound
	}
	if community.Revision != expectedRevision {
		return apperrors.ErrRevisionConflict
	}
	community.Events = append(community.Events, event)
	community.Stats = stats
	community.Revision++
	return nil
}

func (s *memoryStore) AppendResource(_ context.Context, communityID string, resource models.CommunityResource, expectedRevision int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	community, ok := s.communities[communityID]
	if !ok {
		return apperrors.ErrCommunityNotFound
	}
	if community.Revision != expectedRevision {
		return apperrors.ErrRevisionConflict
	}
	community.Resources = append(community.Resources, resource)
	community.Revision++
	return nil
}

func (s *memoryStore) SaveSettings(_ context.Context, communityID string, settings models.CommunitySettings, expectedRevision int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	community, ok := s.communities[communityID]
	if !ok {
		return apperrors.ErrCommunityNotFound
	}
	if community.Revision != expectedRevision {
		return apperrors.ErrRevisionConflict
	}
	community.Settings = settings
	community.Revision++
	return nil
}

func (s *memoryStore) current(t *testing.T, id string) *models.Community {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	community, ok := s.communities[id]
	require.True(t, ok)
	return community
}

func newCommunityFixture(maxMembers int) *models.Community {
	return &models.Community{
		ID:     "com-1",
		Name:   "Go Study Group",
		Active: true,
		Settings: models.CommunitySettings{
			MaxMembers: maxMembers,
			IsPublic:   true,
		},
		Members: []models.CommunityMember{
			{UserID: "founder", UserType: models.UserTypeMentor, Role: models.RoleAdmin, JoinedAt: time.Now(), Active: true},
		},
		Stats: models.CommunityStats{TotalMembers: 1, ActiveMembers: 1},
	}
}

func newManager(store CommunityStore) *LifecycleManager {
	return NewLifecycleManager(store, 3, zerolog.Nop())
}

func assertStatsConsistent(t *testing.T, c *models.Community) {
	t.Helper()
	assert.Equal(t, len(c.Members), c.Stats.TotalMembers, "totalMembers must equal membership set size")
	active := 0
	admins := 0
	for _, m := range c.Members {
		if m.Active {
			active++
		}
		if m.Role == models.RoleAdmin {
			admins++
		}
	}
	assert.Equal(t, active, c.Stats.ActiveMembers)
	if len(c.Members) > 0 {
		assert.GreaterOrEqual(t, admins, 1, "non-empty community must keep an admin")
	}
}

func TestJoin(t *testing.T) {
	store := newMemoryStore(newCommunityFixture(10))
	manager := newManager(store)

	community, err := manager.Join(context.Background(), "com-1", "stu-1", models.UserTypeStudent)
	require.NoError(t, err)

	assert.Len(t, community.Members, 2)
	member := community.FindMember("stu-1")
	require.NotNil(t, member)
	assert.Equal(t, models.RoleMember, member.Role)
	assert.True(t, member.Active)
	assertStatsConsistent(t, store.current(t, "com-1"))
}

func TestJoin_AlreadyMember(t *testing.T) {
	store := newMemoryStore(newCommunityFixture(10))
	manager := newManager(store)

	_, err := manager.Join(context.Background(), "com-1", "founder", models.UserTypeMentor)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyMember)

	assert.Equal(t, 1, store.current(t, "com-1").Stats.TotalMembers,
		"failed join must not change stats")
}

func TestJoin_CommunityFull(t *testing.T) {
	store := newMemoryStore(newCommunityFixture(1))
	manager := newManager(store)

	_, err := manager.Join(context.Background(), "com-1", "stu-1", models.UserTypeStudent)
	assert.ErrorIs(t, err, apperrors.ErrCommunityFull)

	current := store.current(t, "com-1")
	assert.Equal(t, 1, current.Stats.TotalMembers)
	assert.Len(t, current.Members, 1)
}

func TestJoin_NotFound(t *testing.T) {
	manager := newManager(newMemoryStore())

	_, err := manager.Join(context.Background(), "missing", "stu-1", models.UserTypeStudent)
	assert.ErrorIs(t, err, apperrors.ErrCommunityNotFound)
}

func TestJoin_InvalidUserType(t *testing.T) {
	manager := newManager(newMemoryStore(newCommunityFixture(10)))

	_, err := manager.Join(context.Background(), "com-1", "stu-1", models.UserType("alien"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestLeave(t *testing.T) {
	store := newMemoryStore(newCommunityFixture(10))
	manager := newManager(store)

	_, err := manager.Join(context.Background(), "com-1", "stu-1", models.UserTypeStudent)
	require.NoError(t, err)

	community, err := manager.Leave(context.Background(), "com-1", "stu-1")
	require.NoError(t, err)

	assert.Nil(t, community.FindMember("stu-1"))
	assertStatsConsistent(t, store.current(t, "com-1"))
}

func TestLeave_NotMember(t *testing.T) {
	manager := newManager(newMemoryStore(newCommunityFixture(10)))

	_, err := manager.Leave(context.Background(), "com-1", "stranger")
	assert.ErrorIs(t, err, apperrors.ErrNotMember)
}

func TestLeave_SoleAdmin(t *testing.T) {
	store := newMemoryStore(newCommunityFixture(10))
	manager := newManager(store)

	_, err := manager.Leave(context.Background(), "com-1", "founder")
	assert.ErrorIs(t, err, apperrors.ErrSoleAdmin)

	current := store.current(t, "com-1")
	assert.Len(t, current.Members, 1, "membership list unchanged")
	assert.Equal(t, 1, current.Stats.TotalMembers)
}

func TestLeave_AdminWithAnotherAdmin(t *testing.T) {
	fixture := newCommunityFixture(10)
	fixture.Members = append(fixture.Members, models.CommunityMember{
		UserID: "cofounder", UserType: models.UserTypeMentor, Role: models.RoleAdmin, Active: true,
	})
	fixture.Stats = models.CommunityStats{TotalMembers: 2, ActiveMembers: 2}
	store := newMemoryStore(fixture)
	manager := newManager(store)

	_, err := manager.Leave(context.Background(), "com-1", "founder")
	require.NoError(t, err)
	assertStatsConsistent(t, store.current(t, "com-1"))
}

func TestLeave_InactiveMemberKeepsActiveCount(t *testing.T) {
	fixture := newCommunityFixture(10)
	fixture.Members = append(fixture.Members, models.CommunityMember{
		UserID: "dormant", UserType: models.UserTypeStudent, Role: models.RoleMember, Active: false,
	})
	fixture.Stats = models.CommunityStats{TotalMembers: 2, ActiveMembers: 1}
	store := newMemoryStore(fixture)
	manager := newManager(store)

	community, err := manager.Leave(context.Background(), "com-1", "dormant")
	require.NoError(t, err)

	assert.Equal(t, 1, community.Stats.TotalMembers)
	assert.Equal(t, 1, community.Stats.ActiveMembers,
		"removing an inactive member must not touch activeMembers")
}

func TestCreateEvent_RoleGating(t *testing.T) {
	store := newMemoryStore(newCommunityFixture(10))
	manager := newManager(store)

	_, err := manager.Join(context.Background(), "com-1", "stu-1", models.UserTypeStudent)
	require.NoError(t, err)

	event := models.CommunityEvent{Title: "Intro workshop", Date: time.Now().Add(24 * time.Hour)}

	_, err = manager.CreateEvent(context.Background(), "com-1", "stu-1", event)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, "regular members cannot create events")

	community, err := manager.CreateEvent(context.Background(), "com-1", "founder", event)
	require.NoError(t, err)
	require.Len(t, community.Events, 1)
	assert.Equal(t, "founder", community.Events[0].CreatedBy)
	assert.Equal(t, 1, community.Stats.TotalEvents)
}

func TestCreateEvent_NonMember(t *testing.T) {
	manager := newManager(newMemoryStore(newCommunityFixture(10)))

	_, err := manager.CreateEvent(context.Background(), "com-1", "stranger", models.CommunityEvent{Title: "x"})
	assert.ErrorIs(t, err, apperrors.ErrNotMember)
}

func TestAddResource(t *testing.T) {
	store := newMemoryStore(newCommunityFixture(10))
	manager := newManager(store)

	_, err := manager.Join(context.Background(), "com-1", "stu-1", models.UserTypeStudent)
	require.NoError(t, err)

	community, err := manager.AddResource(context.Background(), "com-1", "stu-1", models.CommunityResource{
		Title: "Effective Go",
		Type:  "article",
		URL:   "https://go.dev/doc/effective_go",
	})
	require.NoError(t, err)

	require.Len(t, community.Resources, 1)
	assert.Equal(t, "stu-1", community.Resources[0].UploadedBy)
	assert.False(t, community.Resources[0].UploadedAt.IsZero())

	_, err = manager.AddResource(context.Background(), "com-1", "stranger", models.CommunityResource{Title: "x"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestUpdateSettings(t *testing.T) {
	store := newMemoryStore(newCommunityFixture(10))
	manager := newManager(store)

	community, err := manager.UpdateSettings(context.Background(), "com-1", "founder", models.CommunitySettings{
		MaxMembers:   25,
		IsPublic:     false,
		AllowMentors: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 25, community.Settings.MaxMembers)
	assert.False(t, community.Settings.IsPublic)
	assert.Equal(t, 25, store.current(t, "com-1").Settings.MaxMembers)
}

func TestUpdateSettings_AdminOnly(t *testing.T) {
	store := newMemoryStore(newCommunityFixture(10))
	manager := newManager(store)

	_, err := manager.Join(context.Background(), "com-1", "stu-1", models.UserTypeStudent)
	require.NoError(t, err)

	_, err = manager.UpdateSettings(context.Background(), "com-1", "stu-1", models.CommunitySettings{MaxMembers: 25})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestUpdateSettings_MaxMembersBelowCurrentCount(t *testing.T) {
	store := newMemoryStore(newCommunityFixture(10))
	manager := newManager(store)

	_, err := manager.Join(context.Background(), "com-1", "stu-1", models.UserTypeStudent)
	require.NoError(t, err)

	_, err = manager.UpdateSettings(context.Background(), "com-1", "founder", models.CommunitySettings{MaxMembers: 1})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestJoin_ConcurrentJoinsKeepInvariant(t *testing.T) {
	store := newMemoryStore(newCommunityFixture(0))
	manager := NewLifecycleManager(store, 50, zerolog.Nop())

	const joiners = 20
	var wg sync.WaitGroup
	errs := make(chan error, joiners)
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := "stu-" + string(rune('a'+n))
			_, err := manager.Join(context.Background(), "com-1", userID, models.UserTypeStudent)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	current := store.current(t, "com-1")
	assert.Len(t, current.Members, joiners+1)
	assertStatsConsistent(t, current)
}

func TestJoin_ConcurrentJoinsRespectCapacity(t *testing.T) {
	store := newMemoryStore(newCommunityFixture(2))
	manager := NewLifecycleManager(store, 50, zerolog.Nop())

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := "stu-" + string(rune('a'+n))
			_, err := manager.Join(context.Background(), "com-1", userID, models.UserTypeStudent)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrCommunityFull)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one join fits under maxMembers = 2")

	current := store.current(t, "com-1")
	assert.Equal(t, 2, current.Stats.TotalMembers)
	assertStatsConsistent(t, current)
}
