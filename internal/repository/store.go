package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/escolar-app/escolar-backend/internal/model"
)

// ScheduleStore opens transactional sessions against the scheduling tables.
// Every scheduling operation owns exactly one session for its duration:
// writes are staged against the session and become visible to other callers
// only on Commit. Rollback after Commit is a no-op, so sessions can be
// released unconditionally with a deferred Rollback.
type ScheduleStore interface {
	Begin(ctx context.Context) (ScheduleTx, error)
}

// ScheduleTx is one transactional persistence session. Reads observe writes
// staged earlier in the same session. Single-row lookups (GetClass, GetEvent,
// FindRecurrence) return (nil, nil) when no row matches; the caller decides
// whether that is a NotFound outcome.
type ScheduleTx interface {
	// Classes
	ClassNameSectionExists(ctx context.Context, name, section string) (bool, error)
	InsertClass(ctx context.Context, c *model.Class) error
	GetClass(ctx context.Context, id uuid.UUID) (*model.Class, error)
	ListClasses(ctx context.Context) ([]model.Class, error)
	UpdateClass(ctx context.Context, c *model.Class) error
	DeleteClass(ctx context.Context, id uuid.UUID) error

	// Class events
	EventExists(ctx context.Context, classID, disciplineID, teacherID uuid.UUID, startDate, endDate time.Time) (bool, error)
	InsertEvent(ctx context.Context, ev *model.ClassEvent) error
	GetEvent(ctx context.Context, id uuid.UUID) (*model.ClassEvent, error)
	ListEvents(ctx context.Context) ([]model.ClassEvent, error)
	ListEventsByClass(ctx context.Context, classID uuid.UUID) ([]model.ClassEvent, error)
	UpdateEvent(ctx context.Context, ev *model.ClassEvent) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	// Recurrences
	RecurrenceSlotExists(ctx context.Context, eventID uuid.UUID, day model.Weekday, startTime string) (bool, error)
	FindRecurrence(ctx context.Context, eventID uuid.UUID, day model.Weekday, startTime, endTime string) (*model.Recurrence, error)
	InsertRecurrence(ctx context.Context, r *model.Recurrence) error
	DeleteRecurrence(ctx context.Context, id uuid.UUID) error
	ListRecurrences(ctx context.Context, eventID uuid.UUID) ([]model.Recurrence, error)

	// Referenced entities owned by collaborators
	DisciplineExists(ctx context.Context, id uuid.UUID) (bool, error)
	TeacherExists(ctx context.Context, id uuid.UUID) (bool, error)
	GetDisciplineName(ctx context.Context, id uuid.UUID) (string, error)
	GetTeacherName(ctx context.Context, id uuid.UUID) (string, error)

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
