package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EducationLevel enumerates the academic stages a class can belong to.
type EducationLevel string

const (
	LevelElementary EducationLevel = "elementary"
	LevelMiddle     EducationLevel = "middle"
	LevelHigh       EducationLevel = "high"
)

// Shift enumerates the period of the day a class meets.
type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
	ShiftNight     Shift = "night"
)

// Class represents one student cohort for an academic period.
// The (name, section) pair is unique across all classes.
type Class struct {
	ID          uuid.UUID      `json:"id"`
	Level       EducationLevel `json:"level"`
	Name        string         `json:"name"`
	Section     string         `json:"section"`
	Shift       Shift          `json:"shift"`
	MaxStudents int            `json:"max_students"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Info returns the display string shown to users, e.g. "5th Grade A".
func (c *Class) Info() string {
	return fmt.Sprintf("%s %s", c.Name, c.Section)
}

// ClassView is the enriched read model for a class: the stored fields plus
// the derived display string and the class's teaching assignments.
type ClassView struct {
	Class
	ClassInfo string           `json:"class_info"`
	Events    []ClassEventView `json:"events"`
}

// CreateClassRequest is the payload for creating or fully updating a class.
type CreateClassRequest struct {
	Level       EducationLevel `json:"level" binding:"required,oneof=elementary middle high"`
	Name        string         `json:"name" binding:"required,min=1,max=100"`
	Section     string         `json:"section" binding:"required,min=1,max=10"`
	Shift       Shift          `json:"shift" binding:"required,oneof=morning afternoon night"`
	MaxStudents int            `json:"max_students" binding:"required,min=1"`
}
