package repository

import "github.com/google/uuid"

// Quote is a versioned Santa quote. CreatedAt is an RFC 3339 timestamp.
type Quote struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Quote     string    `json:"quote"`
	CreatedAt string    `json:"created_at"`
	Version   int64     `json:"version"`
}
