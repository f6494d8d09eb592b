package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xenn00/room-chat/internal/handlers"
	room_handler "github.com/xenn00/room-chat/internal/handlers/room-handler"
	"github.com/xenn00/room-chat/internal/session"
	"github.com/xenn00/room-chat/state"
)

func RoomRouter(r chi.Router, state *state.AppState, sessions *session.Store, auth func(http.Handler) http.Handler) {
	roomHandler := room_handler.NewRoomHandler(state, sessions)

	r.Group(func(protected chi.Router) {
		protected.Use(auth)
		protected.Post("/api/chatrooms/create", handlers.WrapHandler(roomHandler.CreateRoom))
		protected.Post("/api/chatrooms/join", handlers.WrapHandler(roomHandler.JoinRoom))
		protected.Get("/api/chatrooms/{roomId}/online-users", handlers.WrapHandler(roomHandler.OnlineUsers))
	})
}
