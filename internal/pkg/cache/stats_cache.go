package cache

import (
	"context"
	"time"

	"github.com/mentorlink/mentorlink/internal/app/matching"
)

const (
	statsKeyPrefix = "mentor:stats:"

	// DefaultStatsTTL bounds how stale a cached stats report may be
	DefaultStatsTTL = 10 * time.Minute
)

// StatsCache caches derived mentor statistics so repeated profile views do
// not rescan the request history.
type StatsCache struct {
	cache *Cache
	ttl   time.Duration
}

// NewStatsCache creates a StatsCache with the given TTL. A non-positive TTL
// falls back to DefaultStatsTTL.
func NewStatsCache(cache *Cache, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	return &StatsCache{cache: cache, ttl: ttl}
}

// Get returns the cached report for mentorID, or ErrCacheMiss
func (s *StatsCache) Get(ctx context.Context, mentorID string) (*matching.StatsReport, error) {
	var report matching.StatsReport
	if err := s.cache.Get(ctx, statsKeyPrefix+mentorID, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Set stores the report for mentorID
func (s *StatsCache) Set(ctx context.Context, mentorID string, report *matching.StatsReport) error {
	return s.cache.Set(ctx, statsKeyPrefix+mentorID, report, s.ttl)
}

// Invalidate drops the cached report for mentorID. Called whenever a
// matching request transitions state.
func (s *StatsCache) Invalidate(ctx context.Context, mentorID string) error {
	return s.cache.Delete(ctx, statsKeyPrefix+mentorID)
}
