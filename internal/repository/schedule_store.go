package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/escolar-app/escolar-backend/internal/model"
)

// pgScheduleStore is the PostgreSQL-backed scheduling store. Each Begin opens
// one pgx transaction; composite uniqueness constraints on classes,
// class_events and recurrences make the database the final arbiter for
// concurrent check-then-write races.
type pgScheduleStore struct {
	pool *pgxpool.Pool
}

// NewScheduleStore creates the PostgreSQL-backed ScheduleStore.
func NewScheduleStore(pool *pgxpool.Pool) ScheduleStore {
	return &pgScheduleStore{pool: pool}
}

// Begin opens a transactional session.
func (s *pgScheduleStore) Begin(ctx context.Context) (ScheduleTx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &scheduleTx{tx: tx}, nil
}

type scheduleTx struct {
	tx pgx.Tx
}

func (t *scheduleTx) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t *scheduleTx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }

// ─── Classes ────────────────────────────────────────────────────────

func (t *scheduleTx) ClassNameSectionExists(ctx context.Context, name, section string) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM classes WHERE name = $1 AND section = $2)`,
		name, section,
	).Scan(&exists)
	return exists, err
}

func (t *scheduleTx) InsertClass(ctx context.Context, c *model.Class) error {
	return t.tx.QueryRow(ctx,
		`INSERT INTO classes (id, level, name, section, shift, max_students)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		c.ID, c.Level, c.Name, c.Section, c.Shift, c.MaxStudents,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (t *scheduleTx) GetClass(ctx context.Context, id uuid.UUID) (*model.Class, error) {
	c := &model.Class{}
	err := t.tx.QueryRow(ctx,
		`SELECT id, level, name, section, shift, max_students, created_at, updated_at
		 FROM classes WHERE id = $1`, id,
	).Scan(&c.ID, &c.Level, &c.Name, &c.Section, &c.Shift, &c.MaxStudents, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (t *scheduleTx) ListClasses(ctx context.Context) ([]model.Class, error) {
	rows, err := t.tx.Query(ctx,
		`SELECT id, level, name, section, shift, max_students, created_at, updated_at
		 FROM classes ORDER BY name, section`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.Level, &c.Name, &c.Section, &c.Shift, &c.MaxStudents, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

func (t *scheduleTx) UpdateClass(ctx context.Context, c *model.Class) error {
	return t.tx.QueryRow(ctx,
		`UPDATE classes
		 SET level = $1, name = $2, section = $3, shift = $4, max_students = $5,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6
		 RETURNING updated_at`,
		c.Level, c.Name, c.Section, c.Shift, c.MaxStudents, c.ID,
	).Scan(&c.UpdatedAt)
}

func (t *scheduleTx) DeleteClass(ctx context.Context, id uuid.UUID) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	return err
}

// ─── Class events ───────────────────────────────────────────────────

func (t *scheduleTx) EventExists(ctx context.Context, classID, disciplineID, teacherID uuid.UUID, startDate, endDate time.Time) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM class_events
		   WHERE class_id = $1 AND discipline_id = $2 AND teacher_id = $3
		     AND start_date = $4 AND end_date = $5
		 )`,
		classID, disciplineID, teacherID, startDate, endDate,
	).Scan(&exists)
	return exists, err
}

func (t *scheduleTx) InsertEvent(ctx context.Context, ev *model.ClassEvent) error {
	return t.tx.QueryRow(ctx,
		`INSERT INTO class_events (id, class_id, discipline_id, teacher_id, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		ev.ID, ev.ClassID, ev.DisciplineID, ev.TeacherID, ev.StartDate, ev.EndDate,
	).Scan(&ev.CreatedAt, &ev.UpdatedAt)
}

func (t *scheduleTx) GetEvent(ctx context.Context, id uuid.UUID) (*model.ClassEvent, error) {
	ev := &model.ClassEvent{}
	err := t.tx.QueryRow(ctx,
		`SELECT id, class_id, discipline_id, teacher_id, start_date, end_date, created_at, updated_at
		 FROM class_events WHERE id = $1`, id,
	).Scan(&ev.ID, &ev.ClassID, &ev.DisciplineID, &ev.TeacherID, &ev.StartDate, &ev.EndDate, &ev.CreatedAt, &ev.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func (t *scheduleTx) ListEvents(ctx context.Context) ([]model.ClassEvent, error) {
	return t.queryEvents(ctx,
		`SELECT id, class_id, discipline_id, teacher_id, start_date, end_date, created_at, updated_at
		 FROM class_events ORDER BY start_date, created_at`)
}

func (t *scheduleTx) ListEventsByClass(ctx context.Context, classID uuid.UUID) ([]model.ClassEvent, error) {
	return t.queryEvents(ctx,
		`SELECT id, class_id, discipline_id, teacher_id, start_date, end_date, created_at, updated_at
		 FROM class_events WHERE class_id = $1 ORDER BY start_date, created_at`, classID)
}

func (t *scheduleTx) queryEvents(ctx context.Context, sql string, args ...interface{}) ([]model.ClassEvent, error) {
	rows, err := t.tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.ClassEvent
	for rows.Next() {
		var ev model.ClassEvent
		if err := rows.Scan(&ev.ID, &ev.ClassID, &ev.DisciplineID, &ev.TeacherID, &ev.StartDate, &ev.EndDate, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (t *scheduleTx) UpdateEvent(ctx context.Context, ev *model.ClassEvent) error {
	return t.tx.QueryRow(ctx,
		`UPDATE class_events
		 SET class_id = $1, discipline_id = $2, teacher_id = $3,
		     start_date = $4, end_date = $5, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6
		 RETURNING updated_at`,
		ev.ClassID, ev.DisciplineID, ev.TeacherID, ev.StartDate, ev.EndDate, ev.ID,
	).Scan(&ev.UpdatedAt)
}

func (t *scheduleTx) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM class_events WHERE id = $1`, id)
	return err
}

// ─── Recurrences ────────────────────────────────────────────────────

func (t *scheduleTx) RecurrenceSlotExists(ctx context.Context, eventID uuid.UUID, day model.Weekday, startTime string) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM recurrences
		   WHERE class_event_id = $1 AND day_of_week = $2 AND start_time = $3
		 )`,
		eventID, day, startTime,
	).Scan(&exists)
	return exists, err
}

func (t *scheduleTx) FindRecurrence(ctx context.Context, eventID uuid.UUID, day model.Weekday, startTime, endTime string) (*model.Recurrence, error) {
	r := &model.Recurrence{}
	err := t.tx.QueryRow(ctx,
		`SELECT id, class_event_id, day_of_week, start_time, end_time, created_at
		 FROM recurrences
		 WHERE class_event_id = $1 AND day_of_week = $2 AND start_time = $3 AND end_time = $4`,
		eventID, day, startTime, endTime,
	).Scan(&r.ID, &r.ClassEventID, &r.Day, &r.StartTime, &r.EndTime, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (t *scheduleTx) InsertRecurrence(ctx context.Context, r *model.Recurrence) error {
	return t.tx.QueryRow(ctx,
		`INSERT INTO recurrences (id, class_event_id, day_of_week, start_time, end_time)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		r.ID, r.ClassEventID, r.Day, r.StartTime, r.EndTime,
	).Scan(&r.CreatedAt)
}

func (t *scheduleTx) DeleteRecurrence(ctx context.Context, id uuid.UUID) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM recurrences WHERE id = $1`, id)
	return err
}

func (t *scheduleTx) ListRecurrences(ctx context.Context, eventID uuid.UUID) ([]model.Recurrence, error) {
	rows, err := t.tx.Query(ctx,
		`SELECT id, class_event_id, day_of_week, start_time, end_time, created_at
		 FROM recurrences WHERE class_event_id = $1
		 ORDER BY day_of_week, start_time`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recurrences []model.Recurrence
	for rows.Next() {
		var r model.Recurrence
		if err := rows.Scan(&r.ID, &r.ClassEventID, &r.Day, &r.StartTime, &r.EndTime, &r.CreatedAt); err != nil {
			return nil, err
		}
		recurrences = append(recurrences, r)
	}
	return recurrences, rows.Err()
}

// ─── Referenced entities ────────────────────────────────────────────

func (t *scheduleTx) DisciplineExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM disciplines WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

func (t *scheduleTx) TeacherExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND role = 'teacher')`, id,
	).Scan(&exists)
	return exists, err
}

func (t *scheduleTx) GetDisciplineName(ctx context.Context, id uuid.UUID) (string, error) {
	var name string
	err := t.tx.QueryRow(ctx, `SELECT name FROM disciplines WHERE id = $1`, id).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return name, err
}

func (t *scheduleTx) GetTeacherName(ctx context.Context, id uuid.UUID) (string, error) {
	var name string
	err := t.tx.QueryRow(ctx, `SELECT name FROM users WHERE id = $1`, id).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return name, err
}
