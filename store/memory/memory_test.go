package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/schedule-engine/factory"
	"github.com/warp/schedule-engine/store"
	"github.com/warp/schedule-engine/store/memory"
)

func TestMemoryStore_EmptyLoadReturnsNotFound(t *testing.T) {
	st := memory.New()

	_, err := st.Load(context.Background())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	sched := factory.DefaultSchedule()

	require.NoError(t, st.Save(ctx, sched))

	loaded, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sched.Timezone, loaded.Timezone)
	assert.Equal(t, sched.ExitOutcomes, loaded.ExitOutcomes)
	require.Len(t, loaded.Rules, len(sched.Rules))
	for i := range sched.Rules {
		assert.Equal(t, sched.Rules[i].Name, loaded.Rules[i].Name)
		assert.Equal(t, sched.Rules[i].AppliesOn, loaded.Rules[i].AppliesOn)
	}
}

func TestMemoryStore_LoadedValueIsIndependent(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	require.NoError(t, st.Save(ctx, factory.DefaultSchedule()))

	first, err := st.Load(ctx)
	require.NoError(t, err)
	first.Rules[0].Name = "mutated"

	second, err := st.Load(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second.Rules[0].Name,
		"mutating a loaded schedule must not corrupt the stored copy")
}
