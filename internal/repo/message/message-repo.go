package message_repo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/xenn00/room-chat/internal/entity"
	app_error "github.com/xenn00/room-chat/internal/errors"
	"github.com/xenn00/room-chat/state"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	databaseName   = "chat_room"
	collectionName = "messages"
)

type MessageRepo struct {
	AppState *state.AppState
}

func NewMessageRepo(appState *state.AppState) MessageRepoContract {
	return &MessageRepo{
		AppState: appState,
	}
}

func (r *MessageRepo) collection() *mongo.Collection {
	return r.AppState.Mongo.Database(databaseName).Collection(collectionName)
}

// nextSeq hands out the per-room monotonic counter that breaks
// createdAt ties. Redis INCR is atomic across server instances.
func (r *MessageRepo) nextSeq(ctx context.Context, roomID string) (int64, *app_error.AppError) {
	seq, err := r.AppState.Redis.Incr(ctx, fmt.Sprintf("room_seq:%s", roomID)).Result()
	if err != nil {
		return 0, app_error.NewAppError(http.StatusInternalServerError, "failed to assign message sequence", "redis-seq")
	}
	return seq, nil
}

func (r *MessageRepo) InsertMessage(ctx context.Context, msg *entity.Message) (*entity.Message, *app_error.AppError) {
	seq, appErr := r.nextSeq(ctx, msg.RoomID)
	if appErr != nil {
		return nil, appErr
	}

	msg.Seq = seq
	if msg.ID.IsZero() {
		msg.ID = bson.NewObjectID()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection().InsertOne(ctx, msg); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to create message: %v", err), "mongo")
	}
	return msg, nil
}

// ListByRoom returns the room's full history, oldest to newest. The
// polling contract re-transfers the whole list on every call; there is
// no cursor.
func (r *MessageRepo) ListByRoom(ctx context.Context, roomID string) ([]*entity.Message, *app_error.AppError) {
	filter := bson.M{"roomId": roomID}
	sort := bson.D{{Key: "createdAt", Value: 1}, {Key: "seq", Value: 1}}

	cur, err := r.collection().Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to fetch messages: %v", err), "mongo")
	}
	defer cur.Close(ctx)

	var messages []*entity.Message
	if err := cur.All(ctx, &messages); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to decode messages: %v", err), "mongo")
	}

	return messages, nil
}

func (r *MessageRepo) FindMessageByID(ctx context.Context, messageID string) (*entity.Message, *app_error.AppError) {
	objID, err := bson.ObjectIDFromHex(messageID)
	if err != nil {
		return nil, app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("invalid message ID: %v", err), "invalid-id")
	}

	var message entity.Message
	if err := r.collection().FindOne(ctx, bson.M{"_id": objID}).Decode(&message); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewAppError(http.StatusNotFound, "message not found", "not-found")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to fetch message: %v", err), "mongo")
	}

	return &message, nil
}

// ToggleLike flips the user's membership in the likedBy set and returns
// the updated document.
func (r *MessageRepo) ToggleLike(ctx context.Context, messageID, userID string) (*entity.Message, *app_error.AppError) {
	msg, appErr := r.FindMessageByID(ctx, messageID)
	if appErr != nil {
		return nil, appErr
	}

	liked := false
	for _, id := range msg.LikedBy {
		if id == userID {
			liked = true
			break
		}
	}

	var update bson.M
	if liked {
		update = bson.M{"$pull": bson.M{"likedBy": userID}}
	} else {
		update = bson.M{"$addToSet": bson.M{"likedBy": userID}}
	}

	if _, err := r.collection().UpdateOne(ctx, bson.M{"_id": msg.ID}, update); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to update reaction: %v", err), "mongo")
	}

	return r.FindMessageByID(ctx, messageID)
}
