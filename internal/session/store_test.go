package session

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mockRedis := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mockRedis.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client, time.Hour), mockRedis
}

func TestStore_CreateAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "user-1", "alice")
	require.Nil(t, err)
	require.NotEmpty(t, sess.ID)

	got, err := store.Get(ctx, sess.ID)
	require.Nil(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "alice", got.Username)
	assert.Empty(t, got.CurrentRoomID, "a fresh session has no pinned room")
}

func TestStore_GetMissingSession(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Get(context.Background(), "does-not-exist")
	assert.Nil(t, err, "a cache miss is not an error")
	assert.Nil(t, got)
}

func TestStore_SavePersistsRoomPin(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "user-1", "alice")
	require.Nil(t, err)

	sess.CurrentRoomID = "room-1"
	sess.CurrentRoomName = "general"
	require.Nil(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, sess.ID)
	require.Nil(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "room-1", got.CurrentRoomID)
	assert.Equal(t, "general", got.CurrentRoomName)
}

func TestStore_SessionExpires(t *testing.T) {
	store, mockRedis := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "user-1", "alice")
	require.Nil(t, err)

	mockRedis.FastForward(2 * time.Hour)

	got, err := store.Get(ctx, sess.ID)
	assert.Nil(t, err)
	assert.Nil(t, got, "expired sessions read as missing")
}

func TestStore_SaveResetsTTL(t *testing.T) {
	store, mockRedis := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "user-1", "alice")
	require.Nil(t, err)

	// sit just short of expiry, then touch; the session must survive
	// past the original deadline
	mockRedis.FastForward(50 * time.Minute)
	require.Nil(t, store.Save(ctx, sess))
	mockRedis.FastForward(50 * time.Minute)

	got, err := store.Get(ctx, sess.ID)
	require.Nil(t, err)
	assert.NotNil(t, got, "rolling expiry: saving extends the session")
}

func TestStore_Destroy(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "user-1", "alice")
	require.Nil(t, err)
	require.Nil(t, store.Destroy(ctx, sess.ID))

	got, err := store.Get(ctx, sess.ID)
	assert.Nil(t, err)
	assert.Nil(t, got)
}

func TestStore_Cookies(t *testing.T) {
	store, _ := newTestStore(t)

	sess, err := store.Create(context.Background(), "user-1", "alice")
	require.Nil(t, err)

	rec := httptest.NewRecorder()
	store.SetCookie(rec, sess)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, sess.ID, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	rec = httptest.NewRecorder()
	store.ClearCookie(rec)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
