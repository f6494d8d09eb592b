package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xenn00/room-chat/config"
	"github.com/xenn00/room-chat/internal/middleware"
	"github.com/xenn00/room-chat/internal/presence"
	"github.com/xenn00/room-chat/internal/session"
	"github.com/xenn00/room-chat/internal/websocket"
	"github.com/xenn00/room-chat/state"
)

func NewRouter(state *state.AppState, hub *websocket.Hub) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestId)

	sessions := session.NewStore(state.Redis, config.Conf.SESSION.TTL)
	tracker := presence.NewTracker(state.Redis, config.Conf.PRESENCE.Window)
	auth := middleware.SessionAuth(sessions, tracker)

	UserRouter(r, state, sessions, auth)
	RoomRouter(r, state, sessions, auth)
	ChatRouter(r, state, hub, auth)
	return r
}
