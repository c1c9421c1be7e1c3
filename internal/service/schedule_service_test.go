package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolar-app/escolar-backend/internal/model"
)

func newTestScheduler(t *testing.T, attachAll bool) (*ScheduleService, *memStore) {
	t.Helper()
	store := newMemStore()
	return NewScheduleService(store, attachAll, zerolog.Nop()), store
}

func classRequest() *model.CreateClassRequest {
	return &model.CreateClassRequest{
		Level:       model.LevelHigh,
		Name:        "10th Grade",
		Section:     "A",
		Shift:       model.ShiftMorning,
		MaxStudents: 35,
	}
}

func seedClass(t *testing.T, svc *ScheduleService) uuid.UUID {
	t.Helper()
	_, err := svc.AddClass(context.Background(), classRequest())
	require.NoError(t, err)
	views, err := svc.GetAllClasses(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	return views[0].ID
}

func eventRequest(classID, teacherID uuid.UUID, disciplineIDs []uuid.UUID, recs []model.RecurrenceInput) *model.CreateClassEventRequest {
	return &model.CreateClassEventRequest{
		ClassID:       classID,
		TeacherID:     teacherID,
		DisciplineIDs: disciplineIDs,
		StartDate:     "2026-02-02",
		EndDate:       "2026-12-11",
		Recurrences:   recs,
	}
}

// ─── Classes ────────────────────────────────────────────────────────

func TestAddClassReturnsAck(t *testing.T) {
	svc, _ := newTestScheduler(t, false)

	msg, err := svc.AddClass(context.Background(), classRequest())
	require.NoError(t, err)
	assert.Equal(t, MsgClassCreated, msg)
}

func TestAddClassDuplicateNameSection(t *testing.T) {
	svc, _ := newTestScheduler(t, false)

	_, err := svc.AddClass(context.Background(), classRequest())
	require.NoError(t, err)

	_, err = svc.AddClass(context.Background(), classRequest())
	var conflict ConflictError
	require.ErrorAs(t, err, &conflict)

	// Same name, different section is fine.
	req := classRequest()
	req.Section = "B"
	_, err = svc.AddClass(context.Background(), req)
	assert.NoError(t, err)
}

func TestGetAllClassesEmptyIsNotFound(t *testing.T) {
	svc, _ := newTestScheduler(t, false)

	_, err := svc.GetAllClasses(context.Background())
	var nf NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestGetClassViewDerivesInfo(t *testing.T) {
	svc, _ := newTestScheduler(t, false)
	classID := seedClass(t, svc)

	view, err := svc.GetClass(context.Background(), classID)
	require.NoError(t, err)
	assert.Equal(t, "10th Grade A", view.ClassInfo)
	assert.Empty(t, view.Events)
}

func TestUpdateClassRefreshesView(t *testing.T) {
	svc, _ := newTestScheduler(t, false)
	classID := seedClass(t, svc)

	req := classRequest()
	req.Name = "11th Grade"
	req.Shift = model.ShiftAfternoon

	view, err := svc.UpdateClass(context.Background(), classID, req)
	require.NoError(t, err)
	assert.Equal(t, "11th Grade A", view.ClassInfo)
	assert.Equal(t, model.ShiftAfternoon, view.Shift)
}

func TestDeleteClassUnknownIsNotFound(t *testing.T) {
	svc, _ := newTestScheduler(t, false)

	_, err := svc.DeleteClass(context.Background(), uuid.New())
	var nf NotFoundError
	require.ErrorAs(t, err, &nf)
}

// ─── Events ─────────────────────────────────────────────────────────

func TestAddEventCreatesOnePerDiscipline(t *testing.T) {
	svc, store := newTestScheduler(t, false)
	classID := seedClass(t, svc)
	teacherID := store.addTeacher("Maria Souza")
	math := store.addDiscipline("Mathematics")
	physics := store.addDiscipline("Physics")

	msg, err := svc.AddEvent(context.Background(), eventRequest(classID, teacherID, []uuid.UUID{math, physics}, nil))
	require.NoError(t, err)
	assert.Equal(t, MsgEventCreated, msg)

	views, err := svc.GetAllEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, v := range views {
		assert.Equal(t, classID, v.ClassID)
		assert.Equal(t, teacherID, v.TeacherID)
		assert.Equal(t, "Maria Souza", v.TeacherName)
	}
}

func TestAddEventAttachesRecurrencesToLastDiscipline(t *testing.T) {
	svc, store := newTestScheduler(t, false)
	classID := seedClass(t, svc)
	teacherID := store.addTeacher("Maria Souza")
	math := store.addDiscipline("Mathematics")
	physics := store.addDiscipline("Physics")

	recs := []model.RecurrenceInput{
		{Day: model.Monday, StartTime: "08:00", EndTime: "09:40"},
		{Day: model.Thursday, StartTime: "10:00", EndTime: "11:40"},
	}
	_, err := svc.AddEvent(context.Background(), eventRequest(classID, teacherID, []uuid.UUID{math, physics}, recs))
	require.NoError(t, err)

	views, err := svc.GetAllEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)

	// Only the event for the last discipline in the list carries the slots.
	byDiscipline := map[uuid.UUID]int{}
	for _, v := range views {
		byDiscipline[v.DisciplineID] = len(v.Recurrences)
	}
	assert.Equal(t, 0, byDiscipline[math])
	assert.Equal(t, 2, byDiscipline[physics])
}

func TestAddEventAttachAllMode(t *testing.T) {
	svc, store := newTestScheduler(t, true)
	classID := seedClass(t, svc)
	teacherID := store.addTeacher("Maria Souza")
	math := store.addDiscipline("Mathematics")
	physics := store.addDiscipline("Physics")

	recs := []model.RecurrenceInput{{Day: model.Monday, StartTime: "08:00", EndTime: "09:40"}}
	_, err := svc.AddEvent(context.Background(), eventRequest(classID, teacherID, []uuid.UUID{math, physics}, recs))
	require.NoError(t, err)

	views, err := svc.GetAllEvents(context.Background())
	require.NoError(t, err)
	for _, v := range views {
		assert.Len(t, v.Recurrences, 1)
	}
}

func TestAddEventDuplicateIsConflictBeforeRefChecks(t *testing.T) {
	svc, store := newTestScheduler(t, false)
	classID := seedClass(t, svc)
	teacherID := store.addTeacher("Maria Souza")
	math := store.addDiscipline("Mathematics")

	_, err := svc.AddEvent(context.Background(), eventRequest(classID, teacherID, []uuid.UUID{math}, nil))
	require.NoError(t, err)

	// Repeat with one extra discipline that does not exist. The duplicate
	// pre-check runs before reference validation, so the outcome is a
	// conflict rather than a missing-discipline NotFound.
	_, err = svc.AddEvent(context.Background(), eventRequest(classID, teacherID, []uuid.UUID{math, uuid.New()}, nil))
	var conflict ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestAddEventValidatesRefsInOrder(t *testing.T) {
	svc, store := newTestScheduler(t, false)
	classID := seedClass(t, svc)
	teacherID := store.addTeacher("Maria Souza")
	math := store.addDiscipline("Mathematics")

	var nf NotFoundError

	// Unknown class fails first even when the discipline is also unknown.
	_, err := svc.AddEvent(context.Background(), eventRequest(uuid.New(), teacherID, []uuid.UUID{uuid.New()}, nil))
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "class", nf.Entity)

	// Unknown discipline fails before the unknown teacher.
	_, err = svc.AddEvent(context.Background(), eventRequest(classID, uuid.New(), []uuid.UUID{uuid.New()}, nil))
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "discipline", nf.Entity)

	// Unknown teacher is the last check.
	_, err = svc.AddEvent(context.Background(), eventRequest(classID, uuid.New(), []uuid.UUID{math}, nil))
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "teacher", nf.Entity)
}

func TestAddEventFailureLeavesNothingBehind(t *testing.T) {
	svc, store := newTestScheduler(t, false)
	classID := seedClass(t, svc)
	teacherID := store.addTeacher("Maria Souza")
	math := store.addDiscipline("Mathematics")

	// Second discipline is unknown, so the whole batch must roll back.
	_, err := svc.AddEvent(context.Background(), eventRequest(classID, teacherID, []uuid.UUID{math, uuid.New()}, nil))
	require.Error(t, err)

	_, err = svc.GetAllEvents(context.Background())
	var nf NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestUpdateEventKeepsRecurrences(t *testing.T) {
	svc, store := newTestScheduler(t, false)
	classID := seedClass(t, svc)
	teacherID := store.addTeacher("Maria Souza")
	math := store.addDiscipline("Mathematics")

	recs := []model.RecurrenceInput{{Day: model.Monday, StartTime: "08:00", EndTime: "09:40"}}
	_, err := svc.AddEvent(context.Background(), eventRequest(classID, teacherID, []uuid.UUID{math}, recs))
	require.NoError(t, err)

	views, err := svc.GetAllEvents(context.Background())
	require.NoError(t, err)
	eventID := views[0].ID

	updated, err := svc.UpdateEvent(context.Background(), eventID, &model.UpdateClassEventRequest{
		ClassID:      classID,
		TeacherID:    teacherID,
		DisciplineID: math,
		StartDate:    "2026-03-02",
		EndDate:      "2026-11-27",
	})
	require.NoError(t, err)
	assert.Len(t, updated.Recurrences, 1)
	assert.Equal(t, "2026-03-02", updated.StartDate.Format("2006-01-02"))
}

func TestDeleteEventRemovesRecurrences(t *testing.T) {
	svc, store := newTestScheduler(t, false)
	classID := seedClass(t, svc)
	teacherID := store.addTeacher("Maria Souza")
	math := store.addDiscipline("Mathematics")

	recs := []model.RecurrenceInput{{Day: model.Monday, StartTime: "08:00", EndTime: "09:40"}}
	_, err := svc.AddEvent(context.Background(), eventRequest(classID, teacherID, []uuid.UUID{math}, recs))
	require.NoError(t, err)

	views, err := svc.GetAllEvents(context.Background())
	require.NoError(t, err)
	eventID := views[0].ID

	msg, err := svc.DeleteEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, MsgEventDeleted, msg)

	_, err = svc.GetEvent(context.Background(), eventID)
	var nf NotFoundError
	require.ErrorAs(t, err, &nf)
}

// ─── Recurrences ────────────────────────────────────────────────────

func seedEvent(t *testing.T, svc *ScheduleService, store *memStore) uuid.UUID {
	t.Helper()
	classID := seedClass(t, svc)
	teacherID := store.addTeacher("Maria Souza")
	math := store.addDiscipline("Mathematics")

	_, err := svc.AddEvent(context.Background(), eventRequest(classID, teacherID, []uuid.UUID{math}, nil))
	require.NoError(t, err)

	views, err := svc.GetAllEvents(context.Background())
	require.NoError(t, err)
	return views[0].ID
}

func TestAddRecurrencesBatch(t *testing.T) {
	svc, store := newTestScheduler(t, false)
	eventID := seedEvent(t, svc, store)

	msg, err := svc.AddRecurrences(context.Background(), eventID, []model.RecurrenceInput{
		{Day: model.Monday, StartTime: "08:00", EndTime: "09:40"},
		{Day: model.Wednesday, StartTime: "08:00", EndTime: "09:40"},
	})
	require.NoError(t, err)
	assert.Equal(t, MsgRecurrencesCreated, msg)

	view, err := svc.GetEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.Len(t, view.Recurrences, 2)
}

func TestAddRecurrencesDuplicateSlotAbortsBatch(t *testing.T) {
	svc, store := newTestScheduler(t, false)
	eventID := seedEvent(t, svc, store)

	_, err := svc.AddRecurrences(context.Background(), eventID, []model.RecurrenceInput{
		{Day: model.Monday, StartTime: "08:00", EndTime: "09:40"},
	})
	require.NoError(t, err)

	// Same (day, start) with a different end still collides: end times play
	// no part in duplicate detection. The valid Tuesday slot after it must
	// not survive the abort.
	_, err = svc.AddRecurrences(context.Background(), eventID, []model.RecurrenceInput{
		{Day: model.Monday, StartTime: "08:00", EndTime: "10:30"},
		{Day: model.Tuesday, StartTime: "08:00", EndTime: "09:40"},
	})
	var conflict ConflictError
	require.ErrorAs(t, err, &conflict)

	view, err := svc.GetEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.Len(t, view.Recurrences, 1)
}

func TestAddRecurrencesDuplicateWithinBatch(t *testing.T) {
	svc, store := newTestScheduler(t, false)
	eventID := seedEvent(t, svc, store)

	// The second proposal collides with the first one staged in the same
	// batch, not just with persisted rows.
	_, err := svc.AddRecurrences(context.Background(), eventID, []model.RecurrenceInput{
		{Day: model.Friday, StartTime: "13:00", EndTime: "14:40"},
		{Day: model.Friday, StartTime: "13:00", EndTime: "15:00"},
	})
	var conflict ConflictError
	require.ErrorAs(t, err, &conflict)

	view, err := svc.GetEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.Empty(t, view.Recurrences)
}

func TestDeleteRecurrencesMatchesExactTimes(t *testing.T) {
	svc, store := newTestScheduler(t, false)
	eventID := seedEvent(t, svc, store)

	_, err := svc.AddRecurrences(context.Background(), eventID, []model.RecurrenceInput{
		{Day: model.Monday, StartTime: "08:00", EndTime: "09:40"},
	})
	require.NoError(t, err)

	// Deletion matches on exact (day, start, end); a wrong end time misses.
	_, err = svc.DeleteRecurrences(context.Background(), eventID, []model.RecurrenceInput{
		{Day: model.Monday, StartTime: "08:00", EndTime: "10:00"},
	})
	var nf NotFoundError
	require.ErrorAs(t, err, &nf)

	msg, err := svc.DeleteRecurrences(context.Background(), eventID, []model.RecurrenceInput{
		{Day: model.Monday, StartTime: "08:00", EndTime: "09:40"},
	})
	require.NoError(t, err)
	assert.Equal(t, MsgRecurrencesDeleted, msg)

	view, err := svc.GetEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.Empty(t, view.Recurrences)
}

func TestDeleteRecurrencesMissAbortsBatch(t *testing.T) {
	svc, store := newTestScheduler(t, false)
	eventID := seedEvent(t, svc, store)

	_, err := svc.AddRecurrences(context.Background(), eventID, []model.RecurrenceInput{
		{Day: model.Monday, StartTime: "08:00", EndTime: "09:40"},
		{Day: model.Thursday, StartTime: "10:00", EndTime: "11:40"},
	})
	require.NoError(t, err)

	// First target exists, second does not: nothing may be deleted.
	_, err = svc.DeleteRecurrences(context.Background(), eventID, []model.RecurrenceInput{
		{Day: model.Monday, StartTime: "08:00", EndTime: "09:40"},
		{Day: model.Sunday, StartTime: "08:00", EndTime: "09:40"},
	})
	var nf NotFoundError
	require.ErrorAs(t, err, &nf)

	view, err := svc.GetEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.Len(t, view.Recurrences, 2)
}

func TestRecurrenceOpsOnUnknownEvent(t *testing.T) {
	svc, _ := newTestScheduler(t, false)

	slots := []model.RecurrenceInput{{Day: model.Monday, StartTime: "08:00", EndTime: "09:40"}}
	var nf NotFoundError

	_, err := svc.AddRecurrences(context.Background(), uuid.New(), slots)
	require.ErrorAs(t, err, &nf)

	_, err = svc.DeleteRecurrences(context.Background(), uuid.New(), slots)
	require.ErrorAs(t, err, &nf)
}

// ─── Class view assembly ────────────────────────────────────────────

func TestClassViewIncludesEventsAndNames(t *testing.T) {
	svc, store := newTestScheduler(t, false)
	classID := seedClass(t, svc)
	teacherID := store.addTeacher("Maria Souza")
	math := store.addDiscipline("Mathematics")

	recs := []model.RecurrenceInput{{Day: model.Monday, StartTime: "08:00", EndTime: "09:40"}}
	_, err := svc.AddEvent(context.Background(), eventRequest(classID, teacherID, []uuid.UUID{math}, recs))
	require.NoError(t, err)

	view, err := svc.GetClass(context.Background(), classID)
	require.NoError(t, err)
	require.Len(t, view.Events, 1)
	assert.Equal(t, "Maria Souza", view.Events[0].TeacherName)
	assert.Equal(t, "Mathematics", view.Events[0].DisciplineName)
	assert.Len(t, view.Events[0].Recurrences, 1)
}
