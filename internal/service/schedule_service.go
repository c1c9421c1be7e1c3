package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/escolar-app/escolar-backend/internal/model"
	"github.com/escolar-app/escolar-backend/internal/repository"
)

// Fixed acknowledgment messages returned on successful write operations.
const (
	MsgClassCreated       = "class created successfully"
	MsgClassDeleted       = "class deleted successfully"
	MsgEventCreated       = "class event created successfully"
	MsgEventDeleted       = "class event deleted successfully"
	MsgRecurrencesCreated = "recurrences created successfully"
	MsgRecurrencesDeleted = "recurrences deleted successfully"
)

const dateLayout = "2006-01-02"

// ScheduleService is the class-event scheduler: it owns class CRUD, teaching
// assignment (class event) CRUD and recurrence batch management, including
// conflict detection and cross-entity reference validation.
//
// Every operation runs inside a single store session: writes are staged and
// committed exactly once on the success path, so mid-batch failures leave the
// store untouched.
type ScheduleService struct {
	store repository.ScheduleStore
	log   zerolog.Logger

	// attachAll selects where the recurrences of a multi-discipline create
	// request land: on every created event, or only on the event for the
	// last discipline in the list. The historical behavior is last-only.
	attachAll bool
}

// NewScheduleService creates a new ScheduleService. attachAll toggles the
// recurrence attachment mode for multi-discipline event creation.
func NewScheduleService(store repository.ScheduleStore, attachAll bool, log zerolog.Logger) *ScheduleService {
	return &ScheduleService{
		store:     store,
		attachAll: attachAll,
		log:       log.With().Str("component", "schedule_service").Logger(),
	}
}

// ─── Class operations ───────────────────────────────────────────────

// AddClass creates a class. Returns a ConflictError when a class with the
// same (name, section) pair already exists.
func (s *ScheduleService) AddClass(ctx context.Context, req *model.CreateClassRequest) (string, error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin session: %w", err)
	}
	defer tx.Rollback(ctx)

	exists, err := tx.ClassNameSectionExists(ctx, req.Name, req.Section)
	if err != nil {
		return "", fmt.Errorf("check class uniqueness: %w", err)
	}
	if exists {
		return "", ConflictError{Reason: fmt.Sprintf("class %s %s already exists", req.Name, req.Section)}
	}

	class := &model.Class{
		ID:          uuid.New(),
		Level:       req.Level,
		Name:        req.Name,
		Section:     req.Section,
		Shift:       req.Shift,
		MaxStudents: req.MaxStudents,
	}
	if err := tx.InsertClass(ctx, class); err != nil {
		return "", fmt.Errorf("insert class: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	s.log.Info().Str("class_id", class.ID.String()).Str("class", class.Info()).Msg("Class created")
	return MsgClassCreated, nil
}

// GetClass returns the enriched view of one class.
func (s *ScheduleService) GetClass(ctx context.Context, id uuid.UUID) (*model.ClassView, error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin session: %w", err)
	}
	defer tx.Rollback(ctx)

	view, err := s.assembleClassView(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	return view, tx.Commit(ctx)
}

// GetAllClasses returns the enriched views of every class. An empty store is
// reported as NotFound.
func (s *ScheduleService) GetAllClasses(ctx context.Context) ([]model.ClassView, error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin session: %w", err)
	}
	defer tx.Rollback(ctx)

	classes, err := tx.ListClasses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	if len(classes) == 0 {
		return nil, NotFoundError{Entity: "classes"}
	}

	views := make([]model.ClassView, 0, len(classes))
	for i := range classes {
		view, err := s.assembleClassView(ctx, tx, classes[i].ID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, tx.Commit(ctx)
}

// UpdateClass overwrites every field of a class and returns the refreshed
// enriched view.
func (s *ScheduleService) UpdateClass(ctx context.Context, id uuid.UUID, req *model.CreateClassRequest) (*model.ClassView, error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin session: %w", err)
	}
	defer tx.Rollback(ctx)

	class, err := tx.GetClass(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get class: %w", err)
	}
	if class == nil {
		return nil, NotFoundError{Entity: "class"}
	}

	class.Level = req.Level
	class.Name = req.Name
	class.Section = req.Section
	class.Shift = req.Shift
	class.MaxStudents = req.MaxStudents

	if err := tx.UpdateClass(ctx, class); err != nil {
		return nil, fmt.Errorf("update class: %w", err)
	}

	view, err := s.assembleClassView(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.log.Info().Str("class_id", id.String()).Msg("Class updated")
	return view, nil
}

// DeleteClass removes a class by id.
func (s *ScheduleService) DeleteClass(ctx context.Context, id uuid.UUID) (string, error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin session: %w", err)
	}
	defer tx.Rollback(ctx)

	class, err := tx.GetClass(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get class: %w", err)
	}
	if class == nil {
		return "", NotFoundError{Entity: "class"}
	}

	if err := tx.DeleteClass(ctx, id); err != nil {
		return "", fmt.Errorf("delete class: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	s.log.Info().Str("class_id", id.String()).Msg("Class deleted")
	return MsgClassDeleted, nil
}

// ─── Class event operations ─────────────────────────────────────────

// AddEvent creates one ClassEvent per discipline id in the request, all
// sharing the class, teacher and date range. The requested recurrences are
// attached to the event of the last discipline in the list unless the
// service was configured to attach them to every event.
func (s *ScheduleService) AddEvent(ctx context.Context, req *model.CreateClassEventRequest) (string, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return "", fmt.Errorf("parse start date: %w", err)
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return "", fmt.Errorf("parse end date: %w", err)
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin session: %w", err)
	}
	defer tx.Rollback(ctx)

	// Duplicate-event pre-check, in discipline list order.
	for _, disciplineID := range req.DisciplineIDs {
		exists, err := tx.EventExists(ctx, req.ClassID, disciplineID, req.TeacherID, startDate, endDate)
		if err != nil {
			return "", fmt.Errorf("check event uniqueness: %w", err)
		}
		if exists {
			return "", ConflictError{Reason: "class event already exists"}
		}
	}

	if err := s.validateEventRefs(ctx, tx, req.ClassID, req.DisciplineIDs, req.TeacherID); err != nil {
		return "", err
	}

	for i, disciplineID := range req.DisciplineIDs {
		event := &model.ClassEvent{
			ID:           uuid.New(),
			ClassID:      req.ClassID,
			DisciplineID: disciplineID,
			TeacherID:    req.TeacherID,
			StartDate:    startDate,
			EndDate:      endDate,
		}
		if err := tx.InsertEvent(ctx, event); err != nil {
			return "", fmt.Errorf("insert event: %w", err)
		}

		last := i == len(req.DisciplineIDs)-1
		if !s.attachAll && !last {
			continue
		}
		for _, in := range req.Recurrences {
			rec := &model.Recurrence{
				ID:           uuid.New(),
				ClassEventID: event.ID,
				Day:          in.Day,
				StartTime:    in.StartTime,
				EndTime:      in.EndTime,
			}
			if err := tx.InsertRecurrence(ctx, rec); err != nil {
				return "", fmt.Errorf("insert recurrence: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	s.log.Info().
		Str("class_id", req.ClassID.String()).
		Str("teacher_id", req.TeacherID.String()).
		Int("disciplines", len(req.DisciplineIDs)).
		Msg("Class events created")
	return MsgEventCreated, nil
}

// GetEvent returns the enriched view of one class event.
func (s *ScheduleService) GetEvent(ctx context.Context, id uuid.UUID) (*model.ClassEventView, error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin session: %w", err)
	}
	defer tx.Rollback(ctx)

	event, err := tx.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event == nil {
		return nil, NotFoundError{Entity: "class event"}
	}

	view, err := s.assembleEventView(ctx, tx, event)
	if err != nil {
		return nil, err
	}
	return view, tx.Commit(ctx)
}

// GetAllEvents returns the enriched views of every class event. An empty
// store is reported as NotFound.
func (s *ScheduleService) GetAllEvents(ctx context.Context) ([]model.ClassEventView, error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin session: %w", err)
	}
	defer tx.Rollback(ctx)

	events, err := tx.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if len(events) == 0 {
		return nil, NotFoundError{Entity: "class events"}
	}

	views := make([]model.ClassEventView, 0, len(events))
	for i := range events {
		view, err := s.assembleEventView(ctx, tx, &events[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, tx.Commit(ctx)
}

// UpdateEvent overwrites the scalar fields of a class event. Recurrences are
// never mutated through this path. Returns the refreshed enriched view.
func (s *ScheduleService) UpdateEvent(ctx context.Context, id uuid.UUID, req *model.UpdateClassEventRequest) (*model.ClassEventView, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parse start date: %w", err)
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("parse end date: %w", err)
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin session: %w", err)
	}
	defer tx.Rollback(ctx)

	event, err := tx.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event == nil {
		return nil, NotFoundError{Entity: "class event"}
	}

	if err := s.validateEventRefs(ctx, tx, req.ClassID, []uuid.UUID{req.DisciplineID}, req.TeacherID); err != nil {
		return nil, err
	}

	event.ClassID = req.ClassID
	event.DisciplineID = req.DisciplineID
	event.TeacherID = req.TeacherID
	event.StartDate = startDate
	event.EndDate = endDate

	if err := tx.UpdateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	view, err := s.assembleEventView(ctx, tx, event)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.log.Info().Str("event_id", id.String()).Msg("Class event updated")
	return view, nil
}

// DeleteEvent removes a class event by id. Owned recurrences are removed by
// the storage-level cascade.
func (s *ScheduleService) DeleteEvent(ctx context.Context, id uuid.UUID) (string, error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin session: %w", err)
	}
	defer tx.Rollback(ctx)

	event, err := tx.GetEvent(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get event: %w", err)
	}
	if event == nil {
		return "", NotFoundError{Entity: "class event"}
	}

	if err := tx.DeleteEvent(ctx, id); err != nil {
		return "", fmt.Errorf("delete event: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	s.log.Info().Str("event_id", id.String()).Msg("Class event deleted")
	return MsgEventDeleted, nil
}

// ─── Recurrence operations ──────────────────────────────────────────

// AddRecurrences attaches a batch of weekly slots to an event. Proposals are
// checked in list order against the (event, day, start_time) key; the first
// collision aborts the whole call with a ConflictError and nothing is
// persisted. End times play no part in duplicate detection.
func (s *ScheduleService) AddRecurrences(ctx context.Context, eventID uuid.UUID, recurrences []model.RecurrenceInput) (string, error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin session: %w", err)
	}
	defer tx.Rollback(ctx)

	event, err := tx.GetEvent(ctx, eventID)
	if err != nil {
		return "", fmt.Errorf("get event: %w", err)
	}
	if event == nil {
		return "", NotFoundError{Entity: "class event"}
	}

	for _, in := range recurrences {
		exists, err := tx.RecurrenceSlotExists(ctx, eventID, in.Day, in.StartTime)
		if err != nil {
			return "", fmt.Errorf("check recurrence slot: %w", err)
		}
		if exists {
			return "", ConflictError{
				Reason: fmt.Sprintf("recurrence on %s at %s already exists", in.Day, in.StartTime),
			}
		}
		rec := &model.Recurrence{
			ID:           uuid.New(),
			ClassEventID: eventID,
			Day:          in.Day,
			StartTime:    in.StartTime,
			EndTime:      in.EndTime,
		}
		if err := tx.InsertRecurrence(ctx, rec); err != nil {
			return "", fmt.Errorf("insert recurrence: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	s.log.Info().Str("event_id", eventID.String()).Int("count", len(recurrences)).Msg("Recurrences added")
	return MsgRecurrencesCreated, nil
}

// DeleteRecurrences removes a batch of weekly slots from an event. Targets
// are matched in list order by exact (day, start_time, end_time); the first
// miss aborts the whole call with a NotFoundError and nothing is deleted.
func (s *ScheduleService) DeleteRecurrences(ctx context.Context, eventID uuid.UUID, recurrences []model.RecurrenceInput) (string, error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin session: %w", err)
	}
	defer tx.Rollback(ctx)

	event, err := tx.GetEvent(ctx, eventID)
	if err != nil {
		return "", fmt.Errorf("get event: %w", err)
	}
	if event == nil {
		return "", NotFoundError{Entity: "class event"}
	}

	for _, in := range recurrences {
		rec, err := tx.FindRecurrence(ctx, eventID, in.Day, in.StartTime, in.EndTime)
		if err != nil {
			return "", fmt.Errorf("find recurrence: %w", err)
		}
		if rec == nil {
			return "", NotFoundError{Entity: "recurrence"}
		}
		if err := tx.DeleteRecurrence(ctx, rec.ID); err != nil {
			return "", fmt.Errorf("delete recurrence: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	s.log.Info().Str("event_id", eventID.String()).Int("count", len(recurrences)).Msg("Recurrences deleted")
	return MsgRecurrencesDeleted, nil
}

// ─── Internal helpers ───────────────────────────────────────────────

// validateEventRefs confirms the referenced class, disciplines and teacher
// exist, failing fast on the first missing reference in that fixed order.
func (s *ScheduleService) validateEventRefs(ctx context.Context, tx repository.ScheduleTx, classID uuid.UUID, disciplineIDs []uuid.UUID, teacherID uuid.UUID) error {
	class, err := tx.GetClass(ctx, classID)
	if err != nil {
		return fmt.Errorf("check class: %w", err)
	}
	if class == nil {
		return NotFoundError{Entity: "class"}
	}

	for _, id := range disciplineIDs {
		exists, err := tx.DisciplineExists(ctx, id)
		if err != nil {
			return fmt.Errorf("check discipline: %w", err)
		}
		if !exists {
			return NotFoundError{Entity: "discipline"}
		}
	}

	exists, err := tx.TeacherExists(ctx, teacherID)
	if err != nil {
		return fmt.Errorf("check teacher: %w", err)
	}
	if !exists {
		return NotFoundError{Entity: "teacher"}
	}
	return nil
}

// assembleClassView builds the read model for one class: the derived display
// string plus every event enriched with its recurrences and related names.
func (s *ScheduleService) assembleClassView(ctx context.Context, tx repository.ScheduleTx, id uuid.UUID) (*model.ClassView, error) {
	class, err := tx.GetClass(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get class: %w", err)
	}
	if class == nil {
		return nil, NotFoundError{Entity: "class"}
	}

	events, err := tx.ListEventsByClass(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list class events: %w", err)
	}

	eventViews := make([]model.ClassEventView, 0, len(events))
	for i := range events {
		view, err := s.assembleEventView(ctx, tx, &events[i])
		if err != nil {
			return nil, err
		}
		eventViews = append(eventViews, *view)
	}

	return &model.ClassView{
		Class:     *class,
		ClassInfo: class.Info(),
		Events:    eventViews,
	}, nil
}

// assembleEventView builds the read model for one event by joining in the
// teacher name, discipline name and recurrence list.
func (s *ScheduleService) assembleEventView(ctx context.Context, tx repository.ScheduleTx, event *model.ClassEvent) (*model.ClassEventView, error) {
	teacherName, err := tx.GetTeacherName(ctx, event.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("get teacher name: %w", err)
	}
	disciplineName, err := tx.GetDisciplineName(ctx, event.DisciplineID)
	if err != nil {
		return nil, fmt.Errorf("get discipline name: %w", err)
	}
	recurrences, err := tx.ListRecurrences(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("list recurrences: %w", err)
	}
	if recurrences == nil {
		recurrences = []model.Recurrence{}
	}

	return &model.ClassEventView{
		ClassEvent:     *event,
		TeacherName:    teacherName,
		DisciplineName: disciplineName,
		Recurrences:    recurrences,
	}, nil
}
