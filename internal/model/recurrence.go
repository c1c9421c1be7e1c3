package model

import (
	"time"

	"github.com/google/uuid"
)

// Weekday enumerates the day-of-week slots a recurrence can occupy.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Recurrence is a weekly repeating time slot owned by exactly one ClassEvent.
// Times are "HH:MM" 24-hour strings with no date component; the fixed width
// makes lexical ordering equal chronological ordering.
// Two recurrences on the same event collide when they share (day, start_time);
// end_time is not part of the duplicate key.
type Recurrence struct {
	ID           uuid.UUID `json:"id"`
	ClassEventID uuid.UUID `json:"class_event_id"`
	Day          Weekday   `json:"day"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	CreatedAt    time.Time `json:"created_at"`
}

// RecurrenceInput is one proposed weekly slot in a batch request.
type RecurrenceInput struct {
	Day       Weekday `json:"day" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime string  `json:"start_time" binding:"required,hhmm"`
	EndTime   string  `json:"end_time" binding:"required,hhmm"`
}

// RecurrenceBatchRequest carries the slots for a batch add or delete.
type RecurrenceBatchRequest struct {
	Recurrences []RecurrenceInput `json:"recurrences" binding:"required,min=1,dive"`
}
