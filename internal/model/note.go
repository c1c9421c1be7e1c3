package model

import (
	"time"

	"github.com/google/uuid"
)

// Note is one recorded grade for a student in a discipline.
type Note struct {
	ID           uuid.UUID `json:"id"`
	StudentID    uuid.UUID `json:"student_id"`
	DisciplineID uuid.UUID `json:"discipline_id"`
	Term         int       `json:"term"`
	Value        float64   `json:"value"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateNoteRequest is the payload for recording a grade.
type CreateNoteRequest struct {
	StudentID    uuid.UUID `json:"student_id" binding:"required"`
	DisciplineID uuid.UUID `json:"discipline_id" binding:"required"`
	Term         int       `json:"term" binding:"required,min=1,max=4"`
	Value        float64   `json:"value" binding:"min=0,max=10"`
}
