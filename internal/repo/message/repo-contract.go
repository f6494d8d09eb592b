package message_repo

import (
	"context"

	"github.com/xenn00/room-chat/internal/entity"
	app_error "github.com/xenn00/room-chat/internal/errors"
)

type MessageRepoContract interface {
	InsertMessage(ctx context.Context, msg *entity.Message) (*entity.Message, *app_error.AppError)
	ListByRoom(ctx context.Context, roomID string) ([]*entity.Message, *app_error.AppError)
	FindMessageByID(ctx context.Context, messageID string) (*entity.Message, *app_error.AppError)
	ToggleLike(ctx context.Context, messageID, userID string) (*entity.Message, *app_error.AppError)
}
