package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	app_error "github.com/xenn00/room-chat/internal/errors"
	"github.com/xenn00/room-chat/internal/utils"
)

const CookieName = "chat_session"

// Session is the server-side record behind the cookie. It pins at most
// one "current" room per authenticated session.
type Session struct {
	ID              string `json:"id"`
	UserID          string `json:"userId"`
	Username        string `json:"username"`
	CurrentRoomID   string `json:"currentRoomId,omitempty"`
	CurrentRoomName string `json:"currentRoomName,omitempty"`
}

type Store struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{Redis: rdb, TTL: ttl}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (s *Store) Create(ctx context.Context, userID, username string) (*Session, *app_error.AppError) {
	sess := &Session{
		ID:       uuid.New().String(),
		UserID:   userID,
		Username: username,
	}

	if err := utils.SetCacheData(ctx, s.Redis, sessionKey(sess.ID), sess, s.TTL); err != nil {
		return nil, app_error.Internal("failed to save session", "redis-session")
	}
	return sess, nil
}

// Get returns (nil, nil) for a missing or expired session.
func (s *Store) Get(ctx context.Context, id string) (*Session, *app_error.AppError) {
	return utils.GetCacheData[Session](ctx, s.Redis, sessionKey(id))
}

// Save rewrites the session record and resets its TTL (rolling expiry).
func (s *Store) Save(ctx context.Context, sess *Session) *app_error.AppError {
	if err := utils.SetCacheData(ctx, s.Redis, sessionKey(sess.ID), sess, s.TTL); err != nil {
		return app_error.Internal("failed to save session", "redis-session")
	}
	return nil
}

func (s *Store) Destroy(ctx context.Context, id string) *app_error.AppError {
	if err := utils.DeleteCacheData(ctx, s.Redis, sessionKey(id)); err != nil {
		return app_error.Internal("failed to destroy session", "redis-session")
	}
	return nil
}

func (s *Store) SetCookie(w http.ResponseWriter, sess *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		Expires:  time.Now().Add(s.TTL),
	})
}

func (s *Store) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
