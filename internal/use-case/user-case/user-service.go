package user_service

import (
	"net/http"
	"time"

	"context"

	"github.com/google/uuid"
	"github.com/xenn00/room-chat/internal/dtos/user_dto"
	"github.com/xenn00/room-chat/internal/entity"
	app_error "github.com/xenn00/room-chat/internal/errors"
	user_repo "github.com/xenn00/room-chat/internal/repo/user"
	"github.com/xenn00/room-chat/internal/utils"
	"github.com/xenn00/room-chat/state"
)

type UserService struct {
	AppState *state.AppState
	UserRepo user_repo.UserRepoContract
}

func NewUserService(appState *state.AppState) UserServiceContract {
	return &UserService{
		AppState: appState,
		UserRepo: user_repo.NewUserRepo(appState),
	}
}

func (u *UserService) Register(ctx context.Context, req user_dto.RegisterRequest) (*entity.User, *app_error.AppError) {
	filter := &entity.UserFilter{
		Username: &req.Username,
	}
	count, err := u.UserRepo.CountUser(ctx, *filter)
	if err != nil {
		return nil, err
	}

	if count > 0 {
		return nil, app_error.NewAppError(http.StatusConflict, "Username already exists. Please choose a different one.", "username")
	}

	hashed, hashErr := utils.GenerateHash(req.Pin)
	if hashErr != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, hashErr.Error(), "pin")
	}

	user := &entity.User{
		ID:        uuid.New().String(),
		Username:  req.Username,
		PinHash:   hashed,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := u.UserRepo.SaveUser(ctx, *user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login deliberately answers unknown usernames and wrong PINs with the
// same message, so the endpoint cannot be used to enumerate accounts.
func (u *UserService) Login(ctx context.Context, req user_dto.LoginRequest) (*entity.User, *app_error.AppError) {
	user, err := u.UserRepo.FindUserByCredential(ctx, req.Username)
	if err != nil {
		if err.Code == http.StatusNotFound {
			return nil, app_error.Unauthorized("Invalid username or PIN.")
		}
		return nil, err
	}

	ok, verifyErr := utils.VerifyHash(user.PinHash, req.Pin)
	if verifyErr != nil {
		return nil, app_error.Internal("failed to verify credentials", "pin")
	}
	if !ok {
		return nil, app_error.Unauthorized("Invalid username or PIN.")
	}

	return user, nil
}

func (u *UserService) CurrentUser(ctx context.Context, userID string) (*entity.User, *app_error.AppError) {
	user, err := u.UserRepo.FindUserByID(ctx, userID)
	if err != nil {
		if err.Code == http.StatusNotFound {
			return nil, app_error.Unauthorized("User not found, please log in again.")
		}
		return nil, err
	}
	return user, nil
}
