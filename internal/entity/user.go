package entity

import (
	"time"
)

// User activity (the "last seen" signal) is not recorded here: it
// lives in Redis as a presence key with a TTL, refreshed per request.
type User struct {
	ID        string    `gorm:"primaryKey"`
	Username  string    `gorm:"uniqueIndex"`
	PinHash   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type UserFilter struct {
	Username *string
}
