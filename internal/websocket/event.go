package websocket

import "encoding/json"

const EventMessageCreated = "message.created"

// Event is a wakeup notification, not a data channel: subscribers are
// expected to re-fetch the room history and reconcile, exactly as the
// polling path does.
type Event struct {
	Type    string          `json:"type"`
	RoomID  string          `json:"roomId"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
