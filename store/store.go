/*
Package store defines schedule persistence for the embedding server.

PURPOSE:
  The engine core owns no I/O; where the current schedule document lives
  is the embedding application's concern. This package is that boundary:
  a single-document store interface plus its sentinel errors, implemented
  in-memory (tests, default) and on SQLite (the server).

SEE ALSO:
  - store/memory: in-memory implementation
  - store/sqlite: SQLite-backed implementation
*/
package store

import (
	"context"
	"errors"

	"github.com/warp/schedule-engine/schedule"
)

// ErrNotFound is returned by Load when no schedule has been saved yet.
// Callers typically seed the factory default on this error.
var ErrNotFound = errors.New("no schedule stored")

// ScheduleStore persists the single current V2 schedule document.
type ScheduleStore interface {
	// Load returns the stored schedule, or ErrNotFound.
	Load(ctx context.Context) (schedule.Schedule, error)

	// Save replaces the stored schedule.
	Save(ctx context.Context, s schedule.Schedule) error
}
