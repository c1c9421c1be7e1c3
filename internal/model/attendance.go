package model

import (
	"time"

	"github.com/google/uuid"
)

// Attendance is one presence record for a student on a class event date.
// At most one record exists per (student, class event, date).
type Attendance struct {
	ID           uuid.UUID `json:"id"`
	StudentID    uuid.UUID `json:"student_id"`
	ClassEventID uuid.UUID `json:"class_event_id"`
	Date         time.Time `json:"date"`
	Present      bool      `json:"present"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateAttendanceRequest is the payload for recording attendance.
type CreateAttendanceRequest struct {
	StudentID    uuid.UUID `json:"student_id" binding:"required"`
	ClassEventID uuid.UUID `json:"class_event_id" binding:"required"`
	Date         string    `json:"date" binding:"required,datetime=2006-01-02"`
	Present      *bool     `json:"present" binding:"required"`
}
