package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/escolar-app/escolar-backend/internal/model"
	"github.com/escolar-app/escolar-backend/internal/repository"
	"github.com/escolar-app/escolar-backend/internal/response"
	"github.com/escolar-app/escolar-backend/internal/service"
	"github.com/escolar-app/escolar-backend/internal/validator"
)

// AttendanceHandler handles attendance record endpoints.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// CreateAttendance godoc
// POST /api/v1/attendances
// Records attendance. At most one record exists per (student, event, date).
func (h *AttendanceHandler) CreateAttendance(c *gin.Context) {
	var req model.CreateAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	record, err := h.attendanceService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateAttendance) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		failPgError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"attendance": record})
}

// ListEventAttendances godoc
// GET /api/v1/events/:id/attendances?date=2026-03-02
// Lists attendance records for one class event, optionally for one date.
func (h *AttendanceHandler) ListEventAttendances(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		date = &parsed
	}

	records, err := h.attendanceService.ListByEvent(c.Request.Context(), eventID, date)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendances": records})
}

// DeleteAttendance godoc
// DELETE /api/v1/attendances/:id
func (h *AttendanceHandler) DeleteAttendance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.attendanceService.Delete(c.Request.Context(), id); err != nil {
		failPgError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "attendance deleted successfully"})
}
