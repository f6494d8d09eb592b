package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	MessageKindText  = "text"
	MessageKindImage = "image"
)

// Message documents are immutable after insert, except for the likedBy
// reaction set. Room ordering is createdAt ascending with seq (a
// server-assigned per-room counter) breaking ties.
type Message struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	RoomID     string        `bson:"roomId"`
	AuthorID   string        `bson:"authorId"`
	AuthorName string        `bson:"authorName"`
	Content    string        `bson:"content"`
	Kind       string        `bson:"kind"`
	Image      *ImagePayload `bson:"image,omitempty"`
	ReplyTo    *ReplyRef     `bson:"replyTo,omitempty"`
	LikedBy    []string      `bson:"likedBy,omitempty"`
	Seq        int64         `bson:"seq"`
	CreatedAt  time.Time     `bson:"createdAt"`
}

type ImagePayload struct {
	Data        []byte `bson:"data"`
	ContentType string `bson:"contentType"`
}

// ReplyRef is a denormalized snapshot of the replied-to message, taken
// at write time. The target is validated to live in the same room.
type ReplyRef struct {
	MessageID  bson.ObjectID `bson:"messageId"`
	AuthorName string        `bson:"authorName"`
	Content    string        `bson:"content"`
}
