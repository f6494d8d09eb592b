package presence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T) (*Tracker, *miniredis.Miniredis) {
	t.Helper()
	mockRedis := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mockRedis.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewTracker(client, 15*time.Second), mockRedis
}

func TestTracker_TouchMarksOnline(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.Touch(ctx, "user-1"))

	online, err := tracker.Online(ctx, []string{"user-1", "user-2"})
	require.NoError(t, err)
	assert.True(t, online["user-1"])
	assert.False(t, online["user-2"], "never-seen users read as offline")
}

func TestTracker_PresenceExpires(t *testing.T) {
	tracker, mockRedis := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.Touch(ctx, "user-1"))
	mockRedis.FastForward(16 * time.Second)

	online, err := tracker.Online(ctx, []string{"user-1"})
	require.NoError(t, err)
	assert.False(t, online["user-1"], "silence past the window means offline")
}

func TestTracker_TouchRefreshesWindow(t *testing.T) {
	tracker, mockRedis := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.Touch(ctx, "user-1"))
	mockRedis.FastForward(10 * time.Second)
	require.NoError(t, tracker.Touch(ctx, "user-1"))
	mockRedis.FastForward(10 * time.Second)

	online, err := tracker.Online(ctx, []string{"user-1"})
	require.NoError(t, err)
	assert.True(t, online["user-1"], "each touch restarts the window")
}

func TestTracker_OnlineEmptyInput(t *testing.T) {
	tracker, _ := newTestTracker(t)

	online, err := tracker.Online(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, online)
}
