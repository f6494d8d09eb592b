package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xenn00/room-chat/internal/handlers"
	user_handler "github.com/xenn00/room-chat/internal/handlers/user-handler"
	"github.com/xenn00/room-chat/internal/session"
	"github.com/xenn00/room-chat/state"
)

func UserRouter(r chi.Router, state *state.AppState, sessions *session.Store, auth func(http.Handler) http.Handler) {
	userHandler := user_handler.NewUserHandler(state, sessions)

	r.Post("/api/auth/register", handlers.WrapHandler(userHandler.Register))
	r.Post("/api/auth/login", handlers.WrapHandler(userHandler.Login))

	r.Group(func(protected chi.Router) {
		protected.Use(auth)
		protected.Post("/api/auth/logout", handlers.WrapHandler(userHandler.Logout))
		protected.Get("/api/user/me", handlers.WrapHandler(userHandler.Me))
	})
}
