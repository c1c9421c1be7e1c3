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

// DisciplineHandler handles discipline management (CRUD).
type DisciplineHandler struct {
	disciplineService *service.DisciplineService
}

// NewDisciplineHandler creates a new DisciplineHandler.
func NewDisciplineHandler(disciplineService *service.DisciplineService) *DisciplineHandler {
	return &DisciplineHandler{disciplineService: disciplineService}
}

// ListDisciplines godoc
// GET /api/v1/disciplines
func (h *DisciplineHandler) ListDisciplines(c *gin.Context) {
	disciplines, err := h.disciplineService.GetAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if disciplines == nil {
		disciplines = []model.Discipline{}
	}

	response.Success(c, http.StatusOK, gin.H{"disciplines": disciplines})
}

// CreateDiscipline godoc
// POST /api/v1/disciplines
func (h *DisciplineHandler) CreateDiscipline(c *gin.Context) {
	var req model.CreateDisciplineRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	discipline, err := h.disciplineService.Create(c.Request.Context(), &req)
	if err != nil {
		failPgError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"discipline": discipline})
}

// UpdateDiscipline godoc
// PUT /api/v1/disciplines/:id
func (h *DisciplineHandler) UpdateDiscipline(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateDisciplineRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	discipline, err := h.disciplineService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failPgError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"discipline": discipline})
}

// DeleteDiscipline godoc
// DELETE /api/v1/disciplines/:id
// Fails with 409 while class events or notes reference the discipline.
func (h *DisciplineHandler) DeleteDiscipline(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.disciplineService.Delete(c.Request.Context(), id); err != nil {
		failPgError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "discipline deleted successfully"})
}
