package user_service

import (
	"context"

	"github.com/xenn00/room-chat/internal/dtos/user_dto"
	"github.com/xenn00/room-chat/internal/entity"
	app_error "github.com/xenn00/room-chat/internal/errors"
)

type UserServiceContract interface {
	Register(ctx context.Context, req user_dto.RegisterRequest) (*entity.User, *app_error.AppError)
	Login(ctx context.Context, req user_dto.LoginRequest) (*entity.User, *app_error.AppError)
	CurrentUser(ctx context.Context, userID string) (*entity.User, *app_error.AppError)
}
