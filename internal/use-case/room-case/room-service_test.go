package room_service

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xenn00/room-chat/internal/dtos/room_dto"
	"github.com/xenn00/room-chat/internal/entity"
	"github.com/xenn00/room-chat/internal/presence"
	room_repo "github.com/xenn00/room-chat/internal/repo/room"
	user_repo "github.com/xenn00/room-chat/internal/repo/user"
	"github.com/xenn00/room-chat/state"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*RoomService, *miniredis.Miniredis) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.Room{}, &entity.RoomMember{}))

	mockRedis := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mockRedis.Addr()})
	t.Cleanup(func() { client.Close() })

	appState := &state.AppState{Ctx: context.Background(), DB: db, Redis: client}
	svc := &RoomService{
		AppState: appState,
		RoomRepo: room_repo.NewRoomRepo(appState),
		UserRepo: user_repo.NewUserRepo(appState),
		Tracker:  presence.NewTracker(client, 15*time.Second),
	}
	return svc, mockRedis
}

func seedUser(t *testing.T, svc *RoomService, username string) string {
	t.Helper()
	user := entity.User{ID: uuid.New().String(), Username: username, PinHash: "x"}
	require.Nil(t, svc.UserRepo.SaveUser(context.Background(), user))
	return user.ID
}

func TestCreateRoom_CreatorIsMember(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	creator := seedUser(t, svc, "alice")

	room, err := svc.CreateRoom(ctx, room_dto.CreateRoomRequest{Name: "general", Pin: "4321"}, creator)
	require.Nil(t, err)
	assert.Equal(t, "general", room.Name)
	assert.NotEqual(t, "4321", room.PinHash, "room PIN must be hashed")

	isMember, err := svc.RoomRepo.IsParticipant(ctx, room.ID.String(), creator)
	require.Nil(t, err)
	assert.True(t, isMember, "creating a room joins it")
}

func TestCreateRoom_DuplicateName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	creator := seedUser(t, svc, "alice")

	_, err := svc.CreateRoom(ctx, room_dto.CreateRoomRequest{Name: "general", Pin: "4321"}, creator)
	require.Nil(t, err)

	_, err = svc.CreateRoom(ctx, room_dto.CreateRoomRequest{Name: "general", Pin: "9999"}, creator)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusConflict, err.Code)
	assert.Equal(t, "Chat room with this name already exists.", err.Message)
}

func TestJoinRoom_WrongPin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	creator := seedUser(t, svc, "alice")
	joiner := seedUser(t, svc, "bob")

	_, err := svc.CreateRoom(ctx, room_dto.CreateRoomRequest{Name: "general", Pin: "4321"}, creator)
	require.Nil(t, err)

	_, err = svc.JoinRoom(ctx, room_dto.JoinRoomRequest{Name: "general", Pin: "0000"}, joiner)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusUnauthorized, err.Code)
	assert.Equal(t, "Invalid PIN for this chat room.", err.Message)
}

func TestJoinRoom_UnknownRoom(t *testing.T) {
	svc, _ := newTestService(t)
	joiner := seedUser(t, svc, "bob")

	_, err := svc.JoinRoom(context.Background(), room_dto.JoinRoomRequest{Name: "nowhere", Pin: "1234"}, joiner)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.Code)
}

func TestJoinRoom_Rejoining_IsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	creator := seedUser(t, svc, "alice")
	joiner := seedUser(t, svc, "bob")

	created, err := svc.CreateRoom(ctx, room_dto.CreateRoomRequest{Name: "general", Pin: "4321"}, creator)
	require.Nil(t, err)

	_, err = svc.JoinRoom(ctx, room_dto.JoinRoomRequest{Name: "general", Pin: "4321"}, joiner)
	require.Nil(t, err)
	_, err = svc.JoinRoom(ctx, room_dto.JoinRoomRequest{Name: "general", Pin: "4321"}, joiner)
	require.Nil(t, err, "rejoining must succeed silently")

	members, err := svc.RoomRepo.ListMemberIDs(ctx, created.ID.String())
	require.Nil(t, err)
	assert.Len(t, members, 2, "rejoining must not duplicate membership")
}

func TestOnlineUsers_NonMemberIsRejected(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	creator := seedUser(t, svc, "alice")
	outsider := seedUser(t, svc, "eve")

	room, err := svc.CreateRoom(ctx, room_dto.CreateRoomRequest{Name: "general", Pin: "4321"}, creator)
	require.Nil(t, err)

	_, err = svc.OnlineUsers(ctx, room.ID.String(), outsider)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusForbidden, err.Code)
	assert.Equal(t, "Access denied to this chat room.", err.Message)
}

func TestOnlineUsers_ExcludesCallerAndOffline(t *testing.T) {
	svc, mockRedis := newTestService(t)
	ctx := context.Background()
	creator := seedUser(t, svc, "alice")
	bob := seedUser(t, svc, "bob")
	carol := seedUser(t, svc, "carol")

	room, err := svc.CreateRoom(ctx, room_dto.CreateRoomRequest{Name: "general", Pin: "4321"}, creator)
	require.Nil(t, err)
	_, err = svc.JoinRoom(ctx, room_dto.JoinRoomRequest{Name: "general", Pin: "4321"}, bob)
	require.Nil(t, err)
	_, err = svc.JoinRoom(ctx, room_dto.JoinRoomRequest{Name: "general", Pin: "4321"}, carol)
	require.Nil(t, err)

	// everyone was seen recently, then carol goes quiet past the window
	require.NoError(t, svc.Tracker.Touch(ctx, creator))
	require.NoError(t, svc.Tracker.Touch(ctx, bob))
	require.NoError(t, svc.Tracker.Touch(ctx, carol))
	mockRedis.FastForward(10 * time.Second)
	require.NoError(t, svc.Tracker.Touch(ctx, creator))
	require.NoError(t, svc.Tracker.Touch(ctx, bob))
	mockRedis.FastForward(10 * time.Second)

	users, appErr := svc.OnlineUsers(ctx, room.ID.String(), creator)
	require.Nil(t, appErr)
	require.Len(t, users, 1, "caller and silent members are excluded")
	assert.Equal(t, "bob", users[0].Username)
}
