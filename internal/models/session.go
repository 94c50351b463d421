package models

import "time"

// Session is a server-side login session row referenced by an opaque cookie.
// Kept in the database so restarts do not sign users out.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Data      []byte    `gorm:"type:bytes" json:"-"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
