package message_dto

import "time"

// MessageView is the wire shape of a message. Field names match what
// the polling clients consume; structural equality over the full list
// drives their change detection, so every field here participates.
type MessageView struct {
	ID          string     `json:"_id"`
	RoomID      string     `json:"chatRoomId"`
	UserID      string     `json:"userId"`
	Username    string     `json:"username"`
	Content     string     `json:"content"`
	MessageType string     `json:"messageType"`
	ImageData   string     `json:"imageData,omitempty"`
	ReplyTo     *ReplyView `json:"replyTo"`
	LikedBy     []string   `json:"likedBy,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
}

type ReplyView struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Content  string `json:"content"`
}

type MessagesResponse struct {
	Messages []MessageView `json:"messages"`
}

type SendMessageResponse struct {
	Message    string      `json:"message"`
	NewMessage MessageView `json:"newMessage"`
}
