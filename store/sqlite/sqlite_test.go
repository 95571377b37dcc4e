package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/schedule-engine/factory"
	"github.com/warp/schedule-engine/schedule"
	"github.com/warp/schedule-engine/store"
	"github.com/warp/schedule-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSQLiteStore_EmptyLoadReturnsNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Load(context.Background())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLiteStore_RoundTripIsResolutionIdentical(t *testing.T) {
	// GIVEN: A saved schedule
	ctx := context.Background()
	st := newTestStore(t)
	sched := factory.DefaultSchedule()

	require.NoError(t, st.Save(ctx, sched))

	// WHEN: Loaded back
	loaded, err := st.Load(ctx)
	require.NoError(t, err)

	// THEN: It resolves identically across a full year
	start, err := schedule.ParseDate("2026-01-01")
	require.NoError(t, err)
	for i := 0; i < 365; i++ {
		day := schedule.AddDays(start, i)
		require.Equal(t, schedule.Resolve(sched, day), schedule.Resolve(loaded, day),
			"resolution diverged on %s", schedule.FormatISODate(day))
	}
}

func TestSQLiteStore_SaveOverwritesPrevious(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	first := factory.DefaultSchedule()
	require.NoError(t, st.Save(ctx, first))

	second := first
	second.Timezone = "Europe/Stockholm"
	require.NoError(t, st.Save(ctx, second))

	loaded, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Stockholm", loaded.Timezone)
}
