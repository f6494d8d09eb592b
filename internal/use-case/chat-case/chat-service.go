package chat_service

import (
	"context"
	"strings"

	"github.com/xenn00/room-chat/internal/dtos/message_dto"
	"github.com/xenn00/room-chat/internal/entity"
	app_error "github.com/xenn00/room-chat/internal/errors"
	"github.com/xenn00/room-chat/internal/imaging"
	message_repo "github.com/xenn00/room-chat/internal/repo/message"
	room_repo "github.com/xenn00/room-chat/internal/repo/room"
	"github.com/xenn00/room-chat/state"
)

type ChatService struct {
	AppState    *state.AppState
	MessageRepo message_repo.MessageRepoContract
	RoomRepo    room_repo.RoomRepoContract
}

func NewChatService(appState *state.AppState) ChatServiceContract {
	return &ChatService{
		AppState:    appState,
		MessageRepo: message_repo.NewMessageRepo(appState),
		RoomRepo:    room_repo.NewRoomRepo(appState),
	}
}

func (s *ChatService) requireParticipant(ctx context.Context, roomID, userID string) *app_error.AppError {
	isMember, err := s.RoomRepo.IsParticipant(ctx, roomID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return app_error.Forbidden("Access denied to this chat room.")
	}
	return nil
}

func (s *ChatService) ListMessages(ctx context.Context, roomID, callerID string) ([]message_dto.MessageView, *app_error.AppError) {
	if err := s.requireParticipant(ctx, roomID, callerID); err != nil {
		return nil, err
	}

	messages, err := s.MessageRepo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	views := make([]message_dto.MessageView, 0, len(messages))
	for _, msg := range messages {
		views = append(views, toView(msg))
	}
	return views, nil
}

// AppendMessage validates and persists a message. A reply target must
// exist and live in the same room; this rejects rather than silently
// drops the reference.
func (s *ChatService) AppendMessage(ctx context.Context, req message_dto.SendMessageRequest, roomID, authorID, authorName string) (*message_dto.MessageView, *app_error.AppError) {
	if err := s.requireParticipant(ctx, roomID, authorID); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" && req.ImageData == "" {
		return nil, app_error.BadRequest("Message content or image is required.", "content")
	}

	msg := &entity.Message{
		RoomID:     roomID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    content,
		Kind:       entity.MessageKindText,
	}

	if req.ImageData != "" {
		data, contentType, parseErr := imaging.ParseDataURL(req.ImageData)
		if parseErr != nil {
			return nil, app_error.BadRequest("Invalid image payload.", "imageData")
		}
		msg.Image = &entity.ImagePayload{Data: data, ContentType: contentType}
		msg.Kind = entity.MessageKindImage
	}

	if req.ReplyTo != "" {
		target, err := s.MessageRepo.FindMessageByID(ctx, req.ReplyTo)
		if err != nil {
			return nil, app_error.BadRequest("Reply target does not exist.", "replyTo")
		}
		if target.RoomID != roomID {
			return nil, app_error.BadRequest("Reply target belongs to a different chat room.", "replyTo")
		}
		msg.ReplyTo = &entity.ReplyRef{
			MessageID:  target.ID,
			AuthorName: target.AuthorName,
			Content:    target.Content,
		}
	}

	saved, err := s.MessageRepo.InsertMessage(ctx, msg)
	if err != nil {
		return nil, err
	}

	view := toView(saved)
	return &view, nil
}

func (s *ChatService) ToggleLike(ctx context.Context, roomID, messageID, callerID string) (*message_dto.MessageView, *app_error.AppError) {
	if err := s.requireParticipant(ctx, roomID, callerID); err != nil {
		return nil, err
	}

	msg, err := s.MessageRepo.FindMessageByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.RoomID != roomID {
		return nil, app_error.NotFound("message not found", "not-found")
	}

	updated, err := s.MessageRepo.ToggleLike(ctx, messageID, callerID)
	if err != nil {
		return nil, err
	}

	view := toView(updated)
	return &view, nil
}

func toView(msg *entity.Message) message_dto.MessageView {
	view := message_dto.MessageView{
		ID:          msg.ID.Hex(),
		RoomID:      msg.RoomID,
		UserID:      msg.AuthorID,
		Username:    msg.AuthorName,
		Content:     msg.Content,
		MessageType: msg.Kind,
		LikedBy:     msg.LikedBy,
		Timestamp:   msg.CreatedAt,
	}

	if msg.Image != nil {
		enc := imaging.Encoded{Data: msg.Image.Data, ContentType: msg.Image.ContentType}
		view.ImageData = enc.DataURL()
	}

	if msg.ReplyTo != nil {
		view.ReplyTo = &message_dto.ReplyView{
			ID:       msg.ReplyTo.MessageID.Hex(),
			Username: msg.ReplyTo.AuthorName,
			Content:  msg.ReplyTo.Content,
		}
	}

	return view
}
