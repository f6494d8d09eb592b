package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
	app_error "github.com/xenn00/room-chat/internal/errors"
	"github.com/xenn00/room-chat/internal/presence"
	"github.com/xenn00/room-chat/internal/session"
)

type sessionCtxKey string

const SessionKey sessionCtxKey = "chatSession"

// SessionAuth resolves the session cookie against the store, refreshes
// the rolling TTL and touches presence. 401 when the cookie is missing
// or the record expired.
func SessionAuth(store *session.Store, tracker *presence.Tracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				writeAppError(w, app_error.Unauthorized("authentication required"))
				return
			}

			sess, appErr := store.Get(r.Context(), cookie.Value)
			if appErr != nil {
				writeAppError(w, appErr)
				return
			}
			if sess == nil {
				writeAppError(w, app_error.Unauthorized("session expired, please log in again"))
				return
			}

			// rolling expiry, mirrored on the cookie
			if appErr := store.Save(r.Context(), sess); appErr != nil {
				writeAppError(w, appErr)
				return
			}
			store.SetCookie(w, sess)

			if err := tracker.Touch(r.Context(), sess.UserID); err != nil {
				log.Error().Err(err).Str("userID", sess.UserID).Msg("failed to touch presence")
			}

			ctx := context.WithValue(r.Context(), SessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the authenticated session, or nil outside
// the SessionAuth chain.
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(SessionKey).(*session.Session)
	return sess
}

func writeAppError(w http.ResponseWriter, appErr *app_error.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	_ = appErr.JSON(w)
}
