package room_repo

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/xenn00/room-chat/internal/entity"
	app_error "github.com/xenn00/room-chat/internal/errors"
	"github.com/xenn00/room-chat/state"
	"gorm.io/gorm"
)

type RoomRepo struct {
	AppState *state.AppState
}

func NewRoomRepo(appState *state.AppState) RoomRepoContract {
	return &RoomRepo{
		AppState: appState,
	}
}

func (r *RoomRepo) FindRoomByName(ctx context.Context, name string) (*entity.Room, *app_error.AppError) {
	var room entity.Room
	if err := r.AppState.DB.WithContext(ctx).Where("name = ?", name).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NewAppError(http.StatusNotFound, "Chat room not found.", "room-name")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "unexpected error occur when fetch room", "db-error")
	}
	return &room, nil
}

func (r *RoomRepo) FindRoomByID(ctx context.Context, roomID string) (*entity.Room, *app_error.AppError) {
	var room entity.Room
	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", roomID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NewAppError(http.StatusNotFound, "Chat room not found.", "room-id")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "unexpected error occur when fetch room", "db-error")
	}
	return &room, nil
}

// CreateRoomWithCreator inserts the room and its first membership row
// in one transaction, so a room can never exist without its creator as
// a participant.
func (r *RoomRepo) CreateRoomWithCreator(ctx context.Context, room *entity.Room) *app_error.AppError {
	tx := r.AppState.DB.WithContext(ctx).Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(room).Error; err != nil {
		tx.Rollback()
		return app_error.NewAppError(http.StatusInternalServerError, "failed to create chat room", "db-error")
	}

	member := &entity.RoomMember{
		RoomID: room.ID.String(),
		UserID: room.CreatedBy,
	}
	if err := tx.Create(member).Error; err != nil {
		tx.Rollback()
		return app_error.NewAppError(http.StatusInternalServerError, "failed to add creator to chat room", "db-error")
	}

	if err := tx.Commit().Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to commit room creation", "db-error")
	}

	return nil
}

// AddMember is idempotent: joining an already-joined room is a no-op.
func (r *RoomRepo) AddMember(ctx context.Context, roomID, userID string) *app_error.AppError {
	var count int64
	if err := r.AppState.DB.WithContext(ctx).Model(&entity.RoomMember{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to check room membership", "db-error")
	}

	if count > 0 {
		return nil
	}

	member := &entity.RoomMember{RoomID: roomID, UserID: userID}
	if err := r.AppState.DB.WithContext(ctx).Create(member).Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to join chat room", "db-error")
	}

	return nil
}

func (r *RoomRepo) IsParticipant(ctx context.Context, roomID, userID string) (bool, *app_error.AppError) {
	var count int64
	if err := r.AppState.DB.WithContext(ctx).Model(&entity.RoomMember{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error; err != nil {
		return false, app_error.NewAppError(http.StatusInternalServerError, "failed to check room membership", "db-error")
	}
	return count > 0, nil
}

func (r *RoomRepo) ListMemberIDs(ctx context.Context, roomID string) ([]string, *app_error.AppError) {
	var ids []string
	if err := r.AppState.DB.WithContext(ctx).Model(&entity.RoomMember{}).
		Where("room_id = ?", roomID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch room members", "db-error")
	}
	return ids, nil
}

// BumpActivity updates member metadata after a message lands: the
// author's last_message_at, everyone else's unread counter. Runs on the
// worker, off the request path.
func (r *RoomRepo) BumpActivity(ctx context.Context, roomID, authorID string, at time.Time) *app_error.AppError {
	tx := r.AppState.DB.WithContext(ctx).Begin()

	if err := tx.Model(&entity.RoomMember{}).
		Where("room_id = ? AND user_id = ?", roomID, authorID).
		Update("last_message_at", at).Error; err != nil {
		tx.Rollback()
		return app_error.NewAppError(http.StatusInternalServerError, "failed to update author activity", "db-error")
	}

	if err := tx.Model(&entity.RoomMember{}).
		Where("room_id = ? AND user_id <> ?", roomID, authorID).
		Update("unread_count", gorm.Expr("unread_count + ?", 1)).Error; err != nil {
		tx.Rollback()
		return app_error.NewAppError(http.StatusInternalServerError, "failed to update unread counters", "db-error")
	}

	if err := tx.Commit().Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to commit activity update", "db-error")
	}
	return nil
}
