package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/escolar-app/escolar-backend/internal/model"
	"github.com/escolar-app/escolar-backend/internal/repository"
)

// memStore is an in-memory ScheduleStore for exercising the scheduler
// without Postgres. Sessions copy the committed state on Begin, stage all
// writes against the copy and swap it back in on Commit, mirroring the
// visibility rules of the real transactional store.
type memStore struct {
	mu          sync.Mutex
	classes     map[uuid.UUID]model.Class
	events      map[uuid.UUID]model.ClassEvent
	recurrences map[uuid.UUID]model.Recurrence
	disciplines map[uuid.UUID]string
	teachers    map[uuid.UUID]string
}

func newMemStore() *memStore {
	return &memStore{
		classes:     make(map[uuid.UUID]model.Class),
		events:      make(map[uuid.UUID]model.ClassEvent),
		recurrences: make(map[uuid.UUID]model.Recurrence),
		disciplines: make(map[uuid.UUID]string),
		teachers:    make(map[uuid.UUID]string),
	}
}

func (s *memStore) addDiscipline(name string) uuid.UUID {
	id := uuid.New()
	s.disciplines[id] = name
	return id
}

func (s *memStore) addTeacher(name string) uuid.UUID {
	id := uuid.New()
	s.teachers[id] = name
	return id
}

func (s *memStore) Begin(ctx context.Context) (repository.ScheduleTx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		store:       s,
		classes:     make(map[uuid.UUID]model.Class, len(s.classes)),
		events:      make(map[uuid.UUID]model.ClassEvent, len(s.events)),
		recurrences: make(map[uuid.UUID]model.Recurrence, len(s.recurrences)),
	}
	for id, c := range s.classes {
		tx.classes[id] = c
	}
	for id, ev := range s.events {
		tx.events[id] = ev
	}
	for id, r := range s.recurrences {
		tx.recurrences[id] = r
	}
	return tx, nil
}

type memTx struct {
	store       *memStore
	classes     map[uuid.UUID]model.Class
	events      map[uuid.UUID]model.ClassEvent
	recurrences map[uuid.UUID]model.Recurrence
	done        bool
}

func (t *memTx) Commit(ctx context.Context) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.done {
		return nil
	}
	t.store.classes = t.classes
	t.store.events = t.events
	t.store.recurrences = t.recurrences
	t.done = true
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	t.done = true
	return nil
}

// ─── Classes ────────────────────────────────────────────────────────

func (t *memTx) ClassNameSectionExists(ctx context.Context, name, section string) (bool, error) {
	for _, c := range t.classes {
		if c.Name == name && c.Section == section {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) InsertClass(ctx context.Context, c *model.Class) error {
	t.classes[c.ID] = *c
	return nil
}

func (t *memTx) GetClass(ctx context.Context, id uuid.UUID) (*model.Class, error) {
	c, ok := t.classes[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (t *memTx) ListClasses(ctx context.Context) ([]model.Class, error) {
	out := make([]model.Class, 0, len(t.classes))
	for _, c := range t.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (t *memTx) UpdateClass(ctx context.Context, c *model.Class) error {
	t.classes[c.ID] = *c
	return nil
}

func (t *memTx) DeleteClass(ctx context.Context, id uuid.UUID) error {
	delete(t.classes, id)
	return nil
}

// ─── Class events ───────────────────────────────────────────────────

func (t *memTx) EventExists(ctx context.Context, classID, disciplineID, teacherID uuid.UUID, startDate, endDate time.Time) (bool, error) {
	for _, ev := range t.events {
		if ev.ClassID == classID && ev.DisciplineID == disciplineID && ev.TeacherID == teacherID &&
			ev.StartDate.Equal(startDate) && ev.EndDate.Equal(endDate) {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) InsertEvent(ctx context.Context, ev *model.ClassEvent) error {
	t.events[ev.ID] = *ev
	return nil
}

func (t *memTx) GetEvent(ctx context.Context, id uuid.UUID) (*model.ClassEvent, error) {
	ev, ok := t.events[id]
	if !ok {
		return nil, nil
	}
	return &ev, nil
}

func (t *memTx) ListEvents(ctx context.Context) ([]model.ClassEvent, error) {
	out := make([]model.ClassEvent, 0, len(t.events))
	for _, ev := range t.events {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (t *memTx) ListEventsByClass(ctx context.Context, classID uuid.UUID) ([]model.ClassEvent, error) {
	out := make([]model.ClassEvent, 0)
	for _, ev := range t.events {
		if ev.ClassID == classID {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (t *memTx) UpdateEvent(ctx context.Context, ev *model.ClassEvent) error {
	t.events[ev.ID] = *ev
	return nil
}

func (t *memTx) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	delete(t.events, id)
	for rid, r := range t.recurrences {
		if r.ClassEventID == id {
			delete(t.recurrences, rid)
		}
	}
	return nil
}

// ─── Recurrences ────────────────────────────────────────────────────

func (t *memTx) RecurrenceSlotExists(ctx context.Context, eventID uuid.UUID, day model.Weekday, startTime string) (bool, error) {
	for _, r := range t.recurrences {
		if r.ClassEventID == eventID && r.Day == day && r.StartTime == startTime {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) FindRecurrence(ctx context.Context, eventID uuid.UUID, day model.Weekday, startTime, endTime string) (*model.Recurrence, error) {
	for _, r := range t.recurrences {
		if r.ClassEventID == eventID && r.Day == day && r.StartTime == startTime && r.EndTime == endTime {
			rec := r
			return &rec, nil
		}
	}
	return nil, nil
}

func (t *memTx) InsertRecurrence(ctx context.Context, r *model.Recurrence) error {
	t.recurrences[r.ID] = *r
	return nil
}

func (t *memTx) DeleteRecurrence(ctx context.Context, id uuid.UUID) error {
	delete(t.recurrences, id)
	return nil
}

func (t *memTx) ListRecurrences(ctx context.Context, eventID uuid.UUID) ([]model.Recurrence, error) {
	out := make([]model.Recurrence, 0)
	for _, r := range t.recurrences {
		if r.ClassEventID == eventID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

// ─── Referenced entities ────────────────────────────────────────────

func (t *memTx) DisciplineExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := t.store.disciplines[id]
	return ok, nil
}

func (t *memTx) TeacherExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := t.store.teachers[id]
	return ok, nil
}

func (t *memTx) GetDisciplineName(ctx context.Context, id uuid.UUID) (string, error) {
	return t.store.disciplines[id], nil
}

func (t *memTx) GetTeacherName(ctx context.Context, id uuid.UUID) (string, error) {
	return t.store.teachers[id], nil
}
