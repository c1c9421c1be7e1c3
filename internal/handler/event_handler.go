package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/escolar-app/escolar-backend/internal/model"
	"github.com/escolar-app/escolar-backend/internal/response"
	"github.com/escolar-app/escolar-backend/internal/service"
	"github.com/escolar-app/escolar-backend/internal/validator"
)

// EventHandler handles class event and recurrence endpoints.
type EventHandler struct {
	scheduleService *service.ScheduleService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(scheduleService *service.ScheduleService) *EventHandler {
	return &EventHandler{scheduleService: scheduleService}
}

// CreateEvent godoc
// POST /api/v1/events
// Creates one class event per discipline id, all sharing the class, teacher
// and date range. Duplicate events are rejected before references are
// validated, and a single failure rolls back the whole batch.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req model.CreateClassEventRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	msg, err := h.scheduleService.AddEvent(c.Request.Context(), &req)
	if err != nil {
		failScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": msg})
}

// ListEvents godoc
// GET /api/v1/events
// Lists every class event with its enriched view. An empty registry is 404.
func (h *EventHandler) ListEvents(c *gin.Context) {
	views, err := h.scheduleService.GetAllEvents(c.Request.Context())
	if err != nil {
		failScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"events": views})
}

// GetEvent godoc
// GET /api/v1/events/:id
// Returns one class event with teacher name, discipline name and recurrences.
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	view, err := h.scheduleService.GetEvent(c.Request.Context(), id)
	if err != nil {
		failScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"event": view})
}

// UpdateEvent godoc
// PUT /api/v1/events/:id
// Overwrites the scalar fields of an event. Recurrences are managed through
// the dedicated recurrence endpoints and stay untouched here.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateClassEventRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.scheduleService.UpdateEvent(c.Request.Context(), id, &req)
	if err != nil {
		failScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"event": view})
}

// DeleteEvent godoc
// DELETE /api/v1/events/:id
// Deletes a class event. Owned recurrences go with it.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	msg, err := h.scheduleService.DeleteEvent(c.Request.Context(), id)
	if err != nil {
		failScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": msg})
}

// AddRecurrences godoc
// POST /api/v1/events/:id/recurrences
// Attaches a batch of weekly slots to an event. The first duplicate
// (day, start_time) aborts the whole batch with 409.
func (h *EventHandler) AddRecurrences(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.RecurrenceBatchRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	msg, err := h.scheduleService.AddRecurrences(c.Request.Context(), id, req.Recurrences)
	if err != nil {
		failScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": msg})
}

// DeleteRecurrences godoc
// DELETE /api/v1/events/:id/recurrences
// Removes a batch of weekly slots, matched by exact (day, start, end).
// The first miss aborts the whole batch with 404.
func (h *EventHandler) DeleteRecurrences(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.RecurrenceBatchRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	msg, err := h.scheduleService.DeleteRecurrences(c.Request.Context(), id, req.Recurrences)
	if err != nil {
		failScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": msg})
}
