// Package sync implements the client-side render loop for a chat room:
// snapshot comparison, viewport tracking, optimistic sends, and the
// poll/push refresh drivers. Everything rendering-related is expressed
// as data so UIs of any kind can sit on top.
package sync

import "github.com/xenn00/room-chat/sdk"

// Snapshot is the ordered message list for a room as one poll saw it.
type Snapshot []sdk.Message

// Equal reports whether two snapshots would render identically. Likes
// and reply metadata count: a like toggle changes the snapshot even
// though the message ids are the same.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !messageEqual(s[i], other[i]) {
			return false
		}
	}
	return true
}

func messageEqual(a, b sdk.Message) bool {
	if a.ID != b.ID || a.Content != b.Content || a.MessageType != b.MessageType {
		return false
	}
	if a.ImageData != b.ImageData {
		return false
	}
	if (a.ReplyTo == nil) != (b.ReplyTo == nil) {
		return false
	}
	if a.ReplyTo != nil && *a.ReplyTo != *b.ReplyTo {
		return false
	}
	if len(a.LikedBy) != len(b.LikedBy) {
		return false
	}
	for i := range a.LikedBy {
		if a.LikedBy[i] != b.LikedBy[i] {
			return false
		}
	}
	return true
}

// IndexOf returns the position of the message with the given id, or -1.
func (s Snapshot) IndexOf(id string) int {
	for i := range s {
		if s[i].ID == id {
			return i
		}
	}
	return -1
}
