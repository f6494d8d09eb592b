package room_service

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/xenn00/room-chat/config"
	"github.com/xenn00/room-chat/internal/dtos/room_dto"
	"github.com/xenn00/room-chat/internal/entity"
	app_error "github.com/xenn00/room-chat/internal/errors"
	"github.com/xenn00/room-chat/internal/presence"
	room_repo "github.com/xenn00/room-chat/internal/repo/room"
	user_repo "github.com/xenn00/room-chat/internal/repo/user"
	"github.com/xenn00/room-chat/internal/utils"
	"github.com/xenn00/room-chat/state"
)

type RoomService struct {
	AppState *state.AppState
	RoomRepo room_repo.RoomRepoContract
	UserRepo user_repo.UserRepoContract
	Tracker  *presence.Tracker
}

func NewRoomService(appState *state.AppState) RoomServiceContract {
	return &RoomService{
		AppState: appState,
		RoomRepo: room_repo.NewRoomRepo(appState),
		UserRepo: user_repo.NewUserRepo(appState),
		Tracker:  presence.NewTracker(appState.Redis, config.Conf.PRESENCE.Window),
	}
}

func (s *RoomService) CreateRoom(ctx context.Context, req room_dto.CreateRoomRequest, creatorID string) (*entity.Room, *app_error.AppError) {
	existing, err := s.RoomRepo.FindRoomByName(ctx, req.Name)
	if err != nil && err.Code != http.StatusNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, app_error.NewAppError(http.StatusConflict, "Chat room with this name already exists.", "room-name")
	}

	hashed, hashErr := utils.GenerateHash(req.Pin)
	if hashErr != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, hashErr.Error(), "pin")
	}

	room := &entity.Room{
		ID:        uuid.New(),
		Name:      req.Name,
		PinHash:   hashed,
		CreatedBy: creatorID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.RoomRepo.CreateRoomWithCreator(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

func (s *RoomService) JoinRoom(ctx context.Context, req room_dto.JoinRoomRequest, userID string) (*entity.Room, *app_error.AppError) {
	room, err := s.RoomRepo.FindRoomByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	ok, verifyErr := utils.VerifyHash(room.PinHash, req.Pin)
	if verifyErr != nil {
		return nil, app_error.Internal("failed to verify room PIN", "pin")
	}
	if !ok {
		return nil, app_error.Unauthorized("Invalid PIN for this chat room.")
	}

	// joining a room you already belong to succeeds silently
	if err := s.RoomRepo.AddMember(ctx, room.ID.String(), userID); err != nil {
		return nil, err
	}

	return room, nil
}

// OnlineUsers returns the room participants seen within the presence
// window, excluding the caller. Callers outside the room get 403.
func (s *RoomService) OnlineUsers(ctx context.Context, roomID, callerID string) ([]room_dto.OnlineUser, *app_error.AppError) {
	isMember, err := s.RoomRepo.IsParticipant(ctx, roomID, callerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, app_error.Forbidden("Access denied to this chat room.")
	}

	memberIDs, err := s.RoomRepo.ListMemberIDs(ctx, roomID)
	if err != nil {
		return nil, err
	}

	online, presErr := s.Tracker.Online(ctx, memberIDs)
	if presErr != nil {
		return nil, app_error.Internal("failed to fetch presence data", "redis-presence")
	}

	var onlineIDs []string
	for _, id := range memberIDs {
		if id != callerID && online[id] {
			onlineIDs = append(onlineIDs, id)
		}
	}

	users, err := s.UserRepo.ListUsersByIDs(ctx, onlineIDs)
	if err != nil {
		return nil, err
	}

	result := make([]room_dto.OnlineUser, 0, len(users))
	for _, u := range users {
		result = append(result, room_dto.OnlineUser{UserID: u.ID, Username: u.Username})
	}
	return result, nil
}
