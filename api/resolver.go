/*
resolver.go - Cached resolution service

PURPOSE:
  Owns the current schedule on behalf of the HTTP layer and answers
  day-resolution queries through an LRU cache. The calendar views hammer
  the same dates (a month view is 42 resolves, most of them repeated on
  every page load), so resolutions are cached per (schedule version,
  date).

CACHE INVALIDATION:
  Every Update bumps a version counter that is part of the cache key, so
  a schedule change invalidates all prior entries without an explicit
  flush. Stale entries age out of the LRU on their own.

CONCURRENCY:
  RWMutex around the schedule value and version. Resolution itself is
  pure, so reads only need the read lock long enough to snapshot.

USAGE:
  resolver, err := NewResolver(logger)
  resolver.Update(sched, warnings)
  day := resolver.Resolve(date)

SEE ALSO:
  - handlers.go: the HTTP layer feeding this service
  - schedule/resolve.go: the underlying pure resolution
*/
package api

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/warp/schedule-engine/schedule"
)

// resolutionCacheSize covers several months of calendar views.
const resolutionCacheSize = 512

// Resolver serves day resolutions for the current schedule.
type Resolver struct {
	mu      sync.RWMutex
	current schedule.Schedule
	version uint64

	cache  *lru.Cache[string, schedule.DayResolution]
	logger *zap.Logger
}

// NewResolver creates a resolver with an empty schedule.
func NewResolver(logger *zap.Logger) (*Resolver, error) {
	cache, err := lru.New[string, schedule.DayResolution](resolutionCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create resolution cache: %w", err)
	}
	return &Resolver{cache: cache, logger: logger}, nil
}

// Update replaces the current schedule and invalidates cached
// resolutions. The warnings are whatever normalization reported for the
// incoming document; they are logged here so every update path surfaces
// them the same way.
func (r *Resolver) Update(s schedule.Schedule, warnings []string) {
	r.mu.Lock()
	r.current = s
	r.version++
	version := r.version
	r.mu.Unlock()

	for _, warning := range warnings {
		r.logger.Warn("schedule normalization",
			zap.String("warning", warning),
			zap.Uint64("version", version))
	}
}

// Schedule returns the current schedule.
func (r *Resolver) Schedule() schedule.Schedule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Resolve returns the effective schedule for one date, from cache when
// the current schedule has already answered for it.
func (r *Resolver) Resolve(date time.Time) schedule.DayResolution {
	r.mu.RLock()
	current := r.current
	version := r.version
	r.mu.RUnlock()

	key := fmt.Sprintf("%d:%s", version, schedule.FormatISODate(schedule.DateOnly(date)))
	if cached, ok := r.cache.Get(key); ok {
		return cached
	}

	resolution := schedule.Resolve(current, date)
	if !resolution.Matched {
		r.logger.Debug("no rule matched", zap.String("date", resolution.Date))
	}
	r.cache.Add(key, resolution)
	return resolution
}

// Range resolves consecutive days starting at from, each through the
// cache.
func (r *Resolver) Range(from time.Time, days int) []schedule.DayResolution {
	out := make([]schedule.DayResolution, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, r.Resolve(schedule.AddDays(from, i)))
	}
	return out
}

// Summarize aggregates open time over a date range against the current
// schedule.
func (r *Resolver) Summarize(from time.Time, days int) schedule.RangeSummary {
	return schedule.Summarize(r.Schedule(), from, days)
}
