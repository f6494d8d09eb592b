package user_service

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xenn00/room-chat/internal/dtos/user_dto"
	"github.com/xenn00/room-chat/internal/entity"
	user_repo "github.com/xenn00/room-chat/internal/repo/user"
	"github.com/xenn00/room-chat/state"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *UserService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.User{}))

	appState := &state.AppState{Ctx: context.Background(), DB: db}
	return &UserService{
		AppState: appState,
		UserRepo: user_repo.NewUserRepo(appState),
	}
}

func TestRegister_Success(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Register(context.Background(), user_dto.RegisterRequest{Username: "alice", Pin: "1234"})
	require.Nil(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "1234", user.PinHash, "PIN must never be stored in the clear")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, user_dto.RegisterRequest{Username: "alice", Pin: "1234"})
	require.Nil(t, err)

	_, err = svc.Register(ctx, user_dto.RegisterRequest{Username: "alice", Pin: "9999"})
	require.NotNil(t, err)
	assert.Equal(t, http.StatusConflict, err.Code)
	assert.Equal(t, "Username already exists. Please choose a different one.", err.Message)
}

func TestLogin_Success(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, user_dto.RegisterRequest{Username: "alice", Pin: "1234"})
	require.Nil(t, err)

	user, err := svc.Login(ctx, user_dto.LoginRequest{Username: "alice", Pin: "1234"})
	require.Nil(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestLogin_WrongPinAndUnknownUserAreIndistinguishable(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, user_dto.RegisterRequest{Username: "alice", Pin: "1234"})
	require.Nil(t, err)

	_, wrongPin := svc.Login(ctx, user_dto.LoginRequest{Username: "alice", Pin: "0000"})
	require.NotNil(t, wrongPin)
	_, unknownUser := svc.Login(ctx, user_dto.LoginRequest{Username: "nobody", Pin: "1234"})
	require.NotNil(t, unknownUser)

	assert.Equal(t, http.StatusUnauthorized, wrongPin.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPin.Message, unknownUser.Message, "login failures must not leak which accounts exist")
}

func TestCurrentUser_VanishedUser(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CurrentUser(context.Background(), "no-such-id")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusUnauthorized, err.Code, "a stale session reads as logged out, not as a 404")
}
