package chat_service

import (
	"context"

	"github.com/xenn00/room-chat/internal/dtos/message_dto"
	app_error "github.com/xenn00/room-chat/internal/errors"
)

type ChatServiceContract interface {
	ListMessages(ctx context.Context, roomID, callerID string) ([]message_dto.MessageView, *app_error.AppError)
	AppendMessage(ctx context.Context, req message_dto.SendMessageRequest, roomID, authorID, authorName string) (*message_dto.MessageView, *app_error.AppError)
	ToggleLike(ctx context.Context, roomID, messageID, callerID string) (*message_dto.MessageView, *app_error.AppError)
}
