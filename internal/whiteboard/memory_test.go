package whiteboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock returns strictly increasing timestamps one millisecond apart.
func fakeClock() func() time.Time {
	t := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Millisecond)
		return t
	}
}

func TestMemoryStoreWriteGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	snap, err := store.Write(ctx, "north_star", "architect", "proj-1", "the goal")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Len(t, snap.ID, 16)

	got, err := store.Get(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "north_star", got.Phase)
	assert.Equal(t, "architect", got.AgentName)
	assert.Equal(t, "proj-1", got.Project)
	assert.Equal(t, "the goal", got.Text)
}

func TestMemoryStoreGetUnknownID(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "deadbeefdeadbeef")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreContentAddressing(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.now = fakeClock()

	first, err := store.Write(ctx, "critique", "critic", "proj", "same text")
	require.NoError(t, err)
	second, err := store.Write(ctx, "critique", "critic", "proj", "same text")
	require.NoError(t, err)

	// Identical fields collide to the same id; the second write wins.
	assert.Equal(t, first.ID, second.ID)
	got, err := store.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, second.CreatedAt, got.CreatedAt)

	other, err := store.Write(ctx, "critique", "critic", "proj", "other text")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestMemoryStoreLatest(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.now = fakeClock()

	_, err := store.Write(ctx, "north_star", "architect", "alpha", "a1")
	require.NoError(t, err)
	_, err = store.Write(ctx, "dev_plan", "planner", "beta", "b1")
	require.NoError(t, err)
	_, err = store.Write(ctx, "north_star", "architect", "alpha", "a2")
	require.NoError(t, err)
	_, err = store.Write(ctx, "dev_plan", "planner", "beta", "b2")
	require.NoError(t, err)

	tests := []struct {
		name     string
		phase    string
		project  string
		wantText string
	}{
		{name: "no filters", wantText: "b2"},
		{name: "by project", project: "alpha", wantText: "a2"},
		{name: "by phase", phase: "dev_plan", wantText: "b2"},
		{name: "by phase and project", phase: "north_star", project: "alpha", wantText: "a2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := store.Latest(ctx, tt.phase, tt.project)
			require.NoError(t, err)
			require.NotNil(t, snap)
			assert.Equal(t, tt.wantText, snap.Text)
		})
	}
}

func TestMemoryStoreLatestNoMatch(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	snap, err := store.Latest(ctx, "", "")
	require.NoError(t, err)
	assert.Nil(t, snap)

	_, err = store.Write(ctx, "upgrade", "agent", "proj", "text")
	require.NoError(t, err)

	snap, err = store.Latest(ctx, "nonexistent", "")
	require.NoError(t, err)
	assert.Nil(t, snap)
}
