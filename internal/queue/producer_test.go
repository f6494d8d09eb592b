package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueue_StoresDrainableJob(t *testing.T) {
	mockRedis := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mockRedis.Addr()})
	defer client.Close()

	producer := NewProducer(client)
	ctx := context.Background()

	now := time.Now().Unix()
	job := Job{
		ID:   "job-1",
		Type: JobRoomActivity,
		Payload: MustMarshal(RoomActivityPayload{
			RoomID:   "room-1",
			AuthorID: "user-1",
			SentAt:   now,
		}),
		Priority:  1,
		MaxRetry:  5,
		CreatedAt: now,
		ExpireAt:  time.Now().Add(5 * time.Minute).Unix(),
	}

	require.NoError(t, producer.Enqueue(ctx, job))

	members, err := client.ZRangeWithScores(ctx, QueueKey, 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, members, 1)

	// a fresh job must be poppable immediately: score <= now
	assert.LessOrEqual(t, members[0].Score, float64(now), "enqueued job must be due")

	var stored Job
	require.NoError(t, json.Unmarshal([]byte(members[0].Member.(string)), &stored))
	assert.Equal(t, "job-1", stored.ID)
	assert.Equal(t, JobRoomActivity, stored.Type)

	var payload RoomActivityPayload
	require.NoError(t, json.Unmarshal(stored.Payload, &payload))
	assert.Equal(t, "room-1", payload.RoomID)
	assert.Equal(t, "user-1", payload.AuthorID)
}

func TestEnqueue_HigherPriorityDrainsFirst(t *testing.T) {
	mockRedis := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mockRedis.Addr()})
	defer client.Close()

	producer := NewProducer(client)
	ctx := context.Background()

	now := time.Now().Unix()
	low := Job{ID: "low", Type: JobRoomActivity, Priority: 1, CreatedAt: now}
	high := Job{ID: "high", Type: JobRoomActivity, Priority: 3, CreatedAt: now}

	require.NoError(t, producer.Enqueue(ctx, low))
	require.NoError(t, producer.Enqueue(ctx, high))

	// the worker pops ascending by score, so the lowest score wins
	members, err := client.ZRange(ctx, QueueKey, 0, 0).Result()
	require.NoError(t, err)
	require.Len(t, members, 1)

	var first Job
	require.NoError(t, json.Unmarshal([]byte(members[0]), &first))
	assert.Equal(t, "high", first.ID, "same ready time, higher priority drains first")
}
