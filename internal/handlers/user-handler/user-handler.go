package user_handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/xenn00/room-chat/internal/dtos/user_dto"
	app_error "github.com/xenn00/room-chat/internal/errors"
	"github.com/xenn00/room-chat/internal/handlers"
	"github.com/xenn00/room-chat/internal/middleware"
	"github.com/xenn00/room-chat/internal/session"
	user_service "github.com/xenn00/room-chat/internal/use-case/user-case"
	"github.com/xenn00/room-chat/state"
)

type UserHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  user_service.UserServiceContract
	Sessions *session.Store
}

func NewUserHandler(state *state.AppState, sessions *session.Store) *UserHandler {
	return &UserHandler{
		State:    state,
		Validate: validator.New(),
		Service:  user_service.NewUserService(state),
		Sessions: sessions,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req user_dto.RegisterRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest("Username must be at least 3 characters and PIN at least 4 characters.", "validation")
	}

	user, appErr := h.Service.Register(r.Context(), req)
	if appErr != nil {
		return appErr
	}

	sess, appErr := h.Sessions.Create(r.Context(), user.ID, user.Username)
	if appErr != nil {
		return appErr
	}
	h.Sessions.SetCookie(w, sess)

	handlers.WriteJSON(w, http.StatusCreated, user_dto.AuthResponse{
		Message:  "Registration successful!",
		Redirect: "/chat-rooms",
	})
	return nil
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req user_dto.LoginRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest("Username and PIN are required.", "validation")
	}

	user, appErr := h.Service.Login(r.Context(), req)
	if appErr != nil {
		return appErr
	}

	sess, appErr := h.Sessions.Create(r.Context(), user.ID, user.Username)
	if appErr != nil {
		return appErr
	}
	h.Sessions.SetCookie(w, sess)

	handlers.WriteJSON(w, http.StatusOK, user_dto.AuthResponse{
		Message:  "Login successful!",
		Redirect: "/chat-rooms",
	})
	return nil
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		return app_error.Unauthorized("authentication required")
	}

	if appErr := h.Sessions.Destroy(r.Context(), sess.ID); appErr != nil {
		return appErr
	}
	h.Sessions.ClearCookie(w)

	handlers.WriteJSON(w, http.StatusOK, user_dto.AuthResponse{
		Message:  "Logged out successfully!",
		Redirect: "/",
	})
	return nil
}

// Me is the session introspection endpoint the clients bootstrap from.
// A session whose user vanished is destroyed on sight.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		return app_error.Unauthorized("authentication required")
	}

	user, appErr := h.Service.CurrentUser(r.Context(), sess.UserID)
	if appErr != nil {
		if appErr.Code == http.StatusUnauthorized {
			_ = h.Sessions.Destroy(r.Context(), sess.ID)
			h.Sessions.ClearCookie(w)
		}
		return appErr
	}

	resp := user_dto.MeResponse{
		UserID:   user.ID,
		Username: user.Username,
	}
	if sess.CurrentRoomID != "" {
		resp.CurrentChatRoomID = &sess.CurrentRoomID
		resp.CurrentChatRoomName = &sess.CurrentRoomName
	}

	handlers.WriteJSON(w, http.StatusOK, resp)
	return nil
}
