package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/escolar-app/escolar-backend/internal/model"
	"github.com/escolar-app/escolar-backend/internal/repository"
	"github.com/escolar-app/escolar-backend/internal/response"
	"github.com/escolar-app/escolar-backend/internal/service"
	"github.com/escolar-app/escolar-backend/internal/validator"
)

// NoteHandler handles grade record endpoints.
type NoteHandler struct {
	noteService *service.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// CreateNote godoc
// POST /api/v1/notes
// Records a grade. At most one note exists per (student, discipline, term).
func (h *NoteHandler) CreateNote(c *gin.Context) {
	var req model.CreateNoteRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateNote) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		failPgError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"note": note})
}

// ListStudentNotes godoc
// GET /api/v1/students/:id/notes
// Lists all grades recorded for one student.
func (h *NoteHandler) ListStudentNotes(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	notes, err := h.noteService.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notes": notes})
}

// UpdateNoteRequest is the payload for overwriting a grade value.
type UpdateNoteRequest struct {
	Value float64 `json:"value" binding:"min=0,max=10"`
}

// UpdateNote godoc
// PUT /api/v1/notes/:id
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req UpdateNoteRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.noteService.UpdateValue(c.Request.Context(), id, req.Value); err != nil {
		failPgError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "note updated successfully"})
}

// DeleteNote godoc
// DELETE /api/v1/notes/:id
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), id); err != nil {
		failPgError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "note deleted successfully"})
}
