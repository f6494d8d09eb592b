package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Tracker derives an approximate "online" signal from per-user recency
// keys. A key's TTL is the presence window, so expiry alone moves a
// user offline. Never authoritative.
type Tracker struct {
	Redis  *redis.Client
	Window time.Duration
}

func NewTracker(rdb *redis.Client, window time.Duration) *Tracker {
	return &Tracker{Redis: rdb, Window: window}
}

func presenceKey(userID string) string {
	return fmt.Sprintf("presence:%s", userID)
}

// Touch records activity for the user. Called on every authenticated
// request.
func (t *Tracker) Touch(ctx context.Context, userID string) error {
	now := time.Now().Unix()
	return t.Redis.Set(ctx, presenceKey(userID), now, t.Window).Err()
}

// Online filters the given user ids down to those with a live presence
// key.
func (t *Tracker) Online(ctx context.Context, userIDs []string) (map[string]bool, error) {
	if len(userIDs) == 0 {
		return map[string]bool{}, nil
	}

	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = presenceKey(id)
	}

	vals, err := t.Redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	online := make(map[string]bool, len(userIDs))
	for i, v := range vals {
		online[userIDs[i]] = v != nil
	}
	return online, nil
}
