package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xenn00/room-chat/internal/handlers"
	image_handler "github.com/xenn00/room-chat/internal/handlers/image-handler"
	message_handler "github.com/xenn00/room-chat/internal/handlers/message-handler"
	"github.com/xenn00/room-chat/internal/websocket"
	"github.com/xenn00/room-chat/state"
)

func ChatRouter(r chi.Router, state *state.AppState, hub *websocket.Hub, auth func(http.Handler) http.Handler) {
	messageHandler := message_handler.NewMessageHandler(state, hub)
	imageHandler := image_handler.NewImageHandler(state)

	r.Group(func(protected chi.Router) {
		protected.Use(auth)
		protected.Get("/api/messages/{roomId}", handlers.WrapHandler(messageHandler.ListMessages))
		protected.Post("/api/messages/{roomId}", handlers.WrapHandler(messageHandler.SendMessage))
		protected.Post("/api/messages/{roomId}/{messageId}/like", handlers.WrapHandler(messageHandler.ToggleLike))
		protected.Post("/api/upload-image", handlers.WrapHandler(imageHandler.UploadImage))

		// push-mode wakeup channel; poll-mode clients never touch it
		protected.Get("/api/ws", hub.HandleWS)
	})
}
