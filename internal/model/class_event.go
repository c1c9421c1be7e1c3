package model

import (
	"time"

	"github.com/google/uuid"
)

// ClassEvent is one teaching assignment: a single discipline taught by a
// single teacher to a single class over a date range.
type ClassEvent struct {
	ID           uuid.UUID `json:"id"`
	ClassID      uuid.UUID `json:"class_id"`
	DisciplineID uuid.UUID `json:"discipline_id"`
	TeacherID    uuid.UUID `json:"teacher_id"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ClassEventView is the enriched read model for a class event: the stored
// fields plus the teacher and discipline display names and the recurrence
// list, resolved through explicit read-side joins.
type ClassEventView struct {
	ClassEvent
	TeacherName    string       `json:"teacher_name"`
	DisciplineName string       `json:"discipline_name"`
	Recurrences    []Recurrence `json:"recurrences"`
}

// CreateClassEventRequest is the payload for creating teaching assignments.
// One ClassEvent row is created per discipline id, all sharing the class,
// teacher and date range.
type CreateClassEventRequest struct {
	ClassID       uuid.UUID         `json:"class_id" binding:"required"`
	TeacherID     uuid.UUID         `json:"teacher_id" binding:"required"`
	DisciplineIDs []uuid.UUID       `json:"discipline_ids" binding:"required,min=1,dive,required"`
	StartDate     string            `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate       string            `json:"end_date" binding:"required,datetime=2006-01-02"`
	Recurrences   []RecurrenceInput `json:"recurrences" binding:"omitempty,dive"`
}

// UpdateClassEventRequest is the payload for updating an event's scalar
// fields. Recurrences are never mutated through an update; they are managed
// through the dedicated recurrence endpoints.
type UpdateClassEventRequest struct {
	ClassID      uuid.UUID `json:"class_id" binding:"required"`
	TeacherID    uuid.UUID `json:"teacher_id" binding:"required"`
	DisciplineID uuid.UUID `json:"discipline_id" binding:"required"`
	StartDate    string    `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate      string    `json:"end_date" binding:"required,datetime=2006-01-02"`
}
