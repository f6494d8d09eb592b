package websocket

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/xenn00/room-chat/internal/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HandleWS upgrades an authenticated request and subscribes it to the
// session's pinned room. Runs behind SessionAuth, so the session is
// always present.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil || sess.CurrentRoomID == "" {
		http.Error(w, "no chat room selected", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws: upgrade failed")
		return
	}

	client := &Client{
		ID:     uuid.New().String(),
		UserID: sess.UserID,
		RoomID: sess.CurrentRoomID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.Register(sess.CurrentRoomID, client)
}
