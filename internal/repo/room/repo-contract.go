package room_repo

import (
	"context"
	"time"

	"github.com/xenn00/room-chat/internal/entity"
	app_error "github.com/xenn00/room-chat/internal/errors"
)

type RoomRepoContract interface {
	FindRoomByName(ctx context.Context, name string) (*entity.Room, *app_error.AppError)
	FindRoomByID(ctx context.Context, roomID string) (*entity.Room, *app_error.AppError)
	CreateRoomWithCreator(ctx context.Context, room *entity.Room) *app_error.AppError
	AddMember(ctx context.Context, roomID, userID string) *app_error.AppError
	IsParticipant(ctx context.Context, roomID, userID string) (bool, *app_error.AppError)
	ListMemberIDs(ctx context.Context, roomID string) ([]string, *app_error.AppError)
	BumpActivity(ctx context.Context, roomID, authorID string, at time.Time) *app_error.AppError
}
