package room_handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/xenn00/room-chat/internal/dtos/room_dto"
	"github.com/xenn00/room-chat/internal/dtos/user_dto"
	app_error "github.com/xenn00/room-chat/internal/errors"
	"github.com/xenn00/room-chat/internal/handlers"
	"github.com/xenn00/room-chat/internal/middleware"
	"github.com/xenn00/room-chat/internal/session"
	room_service "github.com/xenn00/room-chat/internal/use-case/room-case"
	"github.com/xenn00/room-chat/state"
)

type RoomHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  room_service.RoomServiceContract
	Sessions *session.Store
}

func NewRoomHandler(state *state.AppState, sessions *session.Store) *RoomHandler {
	return &RoomHandler{
		State:    state,
		Validate: validator.New(),
		Service:  room_service.NewRoomService(state),
		Sessions: sessions,
	}
}

// pinRoom points the session at the room; every later message/presence
// call is checked against this pin.
func (h *RoomHandler) pinRoom(r *http.Request, sess *session.Session, roomID, roomName string) *app_error.AppError {
	sess.CurrentRoomID = roomID
	sess.CurrentRoomName = roomName
	return h.Sessions.Save(r.Context(), sess)
}

func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req room_dto.CreateRoomRequest
	defer r.Body.Close()

	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		return app_error.Unauthorized("authentication required")
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest("Chat name must be at least 3 characters and PIN at least 4 characters.", "validation")
	}

	room, appErr := h.Service.CreateRoom(r.Context(), req, sess.UserID)
	if appErr != nil {
		return appErr
	}

	if appErr := h.pinRoom(r, sess, room.ID.String(), room.Name); appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusCreated, user_dto.AuthResponse{
		Message:  "Chat room created and joined!",
		Redirect: "/chat",
	})
	return nil
}

func (h *RoomHandler) JoinRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req room_dto.JoinRoomRequest
	defer r.Body.Close()

	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		return app_error.Unauthorized("authentication required")
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest("Chat name and PIN are required.", "validation")
	}

	room, appErr := h.Service.JoinRoom(r.Context(), req, sess.UserID)
	if appErr != nil {
		return appErr
	}

	if appErr := h.pinRoom(r, sess, room.ID.String(), room.Name); appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusOK, user_dto.AuthResponse{
		Message:  "Joined chat room!",
		Redirect: "/chat",
	})
	return nil
}

func (h *RoomHandler) OnlineUsers(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomID := chi.URLParam(r, "roomId")

	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		return app_error.Unauthorized("authentication required")
	}

	users, appErr := h.Service.OnlineUsers(r.Context(), roomID, sess.UserID)
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusOK, room_dto.OnlineUsersResponse{OnlineUsers: users})
	return nil
}
