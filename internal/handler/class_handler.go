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

// ClassHandler handles class management (CRUD) through the scheduler.
type ClassHandler struct {
	scheduleService *service.ScheduleService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(scheduleService *service.ScheduleService) *ClassHandler {
	return &ClassHandler{scheduleService: scheduleService}
}

// CreateClass godoc
// POST /api/v1/classes
// Creates a class. The (name, section) pair must be unique.
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	msg, err := h.scheduleService.AddClass(c.Request.Context(), &req)
	if err != nil {
		failScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": msg})
}

// ListClasses godoc
// GET /api/v1/classes
// Lists every class with its enriched view. An empty registry is 404.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	views, err := h.scheduleService.GetAllClasses(c.Request.Context())
	if err != nil {
		failScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classes": views})
}

// GetClass godoc
// GET /api/v1/classes/:id
// Returns one class with its events and recurrences.
func (h *ClassHandler) GetClass(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	view, err := h.scheduleService.GetClass(c.Request.Context(), id)
	if err != nil {
		failScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": view})
}

// UpdateClass godoc
// PUT /api/v1/classes/:id
// Overwrites every field of a class and returns the refreshed view.
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.scheduleService.UpdateClass(c.Request.Context(), id, &req)
	if err != nil {
		failScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": view})
}

// DeleteClass godoc
// DELETE /api/v1/classes/:id
// Deletes a class. Fails with 409 while class events still reference it.
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	msg, err := h.scheduleService.DeleteClass(c.Request.Context(), id)
	if err != nil {
		failScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": msg})
}
