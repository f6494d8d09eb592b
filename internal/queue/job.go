package queue

import "encoding/json"

const (
	QueueKey        = "priority_queue"
	DLQKey          = "priority_queue_dlq"
	JobRoomActivity = "room_activity"
)

type Job struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Priority  int             `json:"priority"`
	Retry     int             `json:"retry"`
	MaxRetry  int             `json:"max_retry"`
	ErrorMsg  string          `json:"error_msg,omitempty"`
	CreatedAt int64           `json:"created_at"`
	ExpireAt  int64           `json:"expired_at"`
}

// RoomActivityPayload is what a message append hands to the worker:
// enough to bump member metadata without re-reading the message.
type RoomActivityPayload struct {
	RoomID   string `json:"room_id"`
	AuthorID string `json:"author_id"`
	SentAt   int64  `json:"sent_at"`
}

func MustMarshal(payload any) json.RawMessage {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil
	}

	return b
}
