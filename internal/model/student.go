package model

import (
	"time"

	"github.com/google/uuid"
)

// Student represents an enrolled student, optionally assigned to a class.
type Student struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Enrollment string     `json:"enrollment"`
	BirthDate  time.Time  `json:"birth_date"`
	ClassID    *uuid.UUID `json:"class_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CreateStudentRequest is the payload for creating or updating a student.
type CreateStudentRequest struct {
	Name       string     `json:"name" binding:"required,min=2,max=100"`
	Enrollment string     `json:"enrollment" binding:"required,min=4,max=20"`
	BirthDate  string     `json:"birth_date" binding:"required,datetime=2006-01-02"`
	ClassID    *uuid.UUID `json:"class_id" binding:"omitempty"`
}
