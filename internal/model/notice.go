package model

import (
	"time"

	"github.com/google/uuid"
)

// Notice is an announcement published to the school notice board.
// A notice with a past ExpiresAt is eligible for retention cleanup.
type Notice struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	AuthorID  uuid.UUID  `json:"author_id"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// CreateNoticeRequest is the payload for publishing a notice.
type CreateNoticeRequest struct {
	Title     string `json:"title" binding:"required,min=2,max=200"`
	Body      string `json:"body" binding:"required,min=1,max=5000"`
	ExpiresAt string `json:"expires_at" binding:"omitempty,datetime=2006-01-02"`
}
