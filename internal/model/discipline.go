package model

import (
	"time"

	"github.com/google/uuid"
)

// Discipline represents a subject taught at the school.
type Discipline struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateDisciplineRequest is the payload for creating or updating a discipline.
type CreateDisciplineRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}
