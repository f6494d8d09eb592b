package entity

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex"`
	PinHash   string    `gorm:"not null"`
	CreatedBy string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// RoomMember rows are append-only: membership never shrinks, a user who
// joined a room stays a participant.
type RoomMember struct {
	ID            int64     `gorm:"primaryKey"`
	RoomID        string    `gorm:"not null;uniqueIndex:idx_room_member"`
	UserID        string    `gorm:"not null;uniqueIndex:idx_room_member"`
	JoinedAt      time.Time `gorm:"autoCreateTime"`
	LastMessageAt time.Time
	UnreadCount   int64
}
