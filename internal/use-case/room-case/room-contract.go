package room_service

import (
	"context"

	"github.com/xenn00/room-chat/internal/dtos/room_dto"
	"github.com/xenn00/room-chat/internal/entity"
	app_error "github.com/xenn00/room-chat/internal/errors"
)

type RoomServiceContract interface {
	CreateRoom(ctx context.Context, req room_dto.CreateRoomRequest, creatorID string) (*entity.Room, *app_error.AppError)
	JoinRoom(ctx context.Context, req room_dto.JoinRoomRequest, userID string) (*entity.Room, *app_error.AppError)
	OnlineUsers(ctx context.Context, roomID, callerID string) ([]room_dto.OnlineUser, *app_error.AppError)
}
