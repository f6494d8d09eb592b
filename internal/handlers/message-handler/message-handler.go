package message_handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xenn00/room-chat/internal/dtos/message_dto"
	app_error "github.com/xenn00/room-chat/internal/errors"
	"github.com/xenn00/room-chat/internal/handlers"
	"github.com/xenn00/room-chat/internal/middleware"
	"github.com/xenn00/room-chat/internal/queue"
	chat_service "github.com/xenn00/room-chat/internal/use-case/chat-case"
	"github.com/xenn00/room-chat/internal/websocket"
	"github.com/xenn00/room-chat/state"
)

type MessageHandler struct {
	State    *state.AppState
	Producer queue.Producer
	Validate *validator.Validate
	Service  chat_service.ChatServiceContract
	Hub      *websocket.Hub
}

func NewMessageHandler(state *state.AppState, hub *websocket.Hub) *MessageHandler {
	validate := validator.New()
	_ = validate.RegisterValidation("objectID", message_dto.ObjectIDValidator)
	return &MessageHandler{
		State:    state,
		Producer: queue.NewProducer(state.Redis),
		Validate: validate,
		Service:  chat_service.NewChatService(state),
		Hub:      hub,
	}
}

// requirePinnedRoom: the session must be pinned to the room it
// addresses. A stale or foreign room id is a membership problem (403),
// which the clients translate into a bounce to the room picker.
func requirePinnedRoom(r *http.Request, roomID string) *app_error.AppError {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		return app_error.Unauthorized("authentication required")
	}
	if sess.CurrentRoomID != roomID {
		return app_error.Forbidden("Access denied to this chat room.")
	}
	return nil
}

func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomID := chi.URLParam(r, "roomId")

	if appErr := requirePinnedRoom(r, roomID); appErr != nil {
		return appErr
	}
	sess := middleware.SessionFromContext(r.Context())

	messages, appErr := h.Service.ListMessages(r.Context(), roomID, sess.UserID)
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusOK, message_dto.MessagesResponse{Messages: messages})
	return nil
}

func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req message_dto.SendMessageRequest
	defer r.Body.Close()

	roomID := chi.URLParam(r, "roomId")

	if appErr := requirePinnedRoom(r, roomID); appErr != nil {
		return appErr
	}
	sess := middleware.SessionFromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest(fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	view, appErr := h.Service.AppendMessage(r.Context(), req, roomID, sess.UserID, sess.Username)
	if appErr != nil {
		return appErr
	}

	// the full message rides back on the response so clients can swap
	// their optimistic echo in place
	handlers.WriteJSON(w, http.StatusCreated, message_dto.SendMessageResponse{
		Message:    "Message sent successfully!",
		NewMessage: *view,
	})

	go h.afterSend(roomID, sess.UserID, view)

	return nil
}

// afterSend fans out the side effects that don't belong on the request
// path: member metadata bookkeeping via the worker queue, and the push
// wakeup for subscribed clients.
func (h *MessageHandler) afterSend(roomID, authorID string, view *message_dto.MessageView) {
	job := queue.Job{
		ID:   uuid.New().String(),
		Type: queue.JobRoomActivity,
		Payload: queue.MustMarshal(queue.RoomActivityPayload{
			RoomID:   roomID,
			AuthorID: authorID,
			SentAt:   view.Timestamp.Unix(),
		}),
		Priority:  1,
		Retry:     0,
		MaxRetry:  5,
		CreatedAt: time.Now().Unix(),
		ExpireAt:  time.Now().Add(5 * time.Minute).Unix(),
	}

	if err := h.Producer.Enqueue(h.State.Ctx, job); err != nil {
		log.Error().Err(err).Msg("Failed to enqueue room activity job")
	}

	h.Hub.BroadcastToRoom(roomID, websocket.Event{
		Type:    websocket.EventMessageCreated,
		Payload: queue.MustMarshal(view),
	})
}

func (h *MessageHandler) ToggleLike(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomID := chi.URLParam(r, "roomId")
	messageID := chi.URLParam(r, "messageId")

	if appErr := requirePinnedRoom(r, roomID); appErr != nil {
		return appErr
	}
	sess := middleware.SessionFromContext(r.Context())

	view, appErr := h.Service.ToggleLike(r.Context(), roomID, messageID, sess.UserID)
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusOK, message_dto.SendMessageResponse{
		Message:    "Reaction updated.",
		NewMessage: *view,
	})
	return nil
}
