package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/escolar-app/escolar-backend/internal/middleware"
	"github.com/escolar-app/escolar-backend/internal/model"
	"github.com/escolar-app/escolar-backend/internal/response"
	"github.com/escolar-app/escolar-backend/internal/service"
	"github.com/escolar-app/escolar-backend/internal/validator"
)

// NoticeHandler handles notice board endpoints.
type NoticeHandler struct {
	noticeService *service.NoticeService
}

// NewNoticeHandler creates a new NoticeHandler.
func NewNoticeHandler(noticeService *service.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeService: noticeService}
}

// PublishNotice godoc
// POST /api/v1/notices
// Publishes a notice and broadcasts it to notice stream subscribers.
func (h *NoticeHandler) PublishNotice(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateNoticeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	notice, err := h.noticeService.Publish(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		failPgError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"notice": notice})
}

// ListNotices godoc
// GET /api/v1/notices
// Lists current (non-expired) notices, newest first.
func (h *NoticeHandler) ListNotices(c *gin.Context) {
	notices, err := h.noticeService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notices": notices})
}

// DeleteNotice godoc
// DELETE /api/v1/notices/:id
func (h *NoticeHandler) DeleteNotice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.noticeService.Delete(c.Request.Context(), id); err != nil {
		failPgError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "notice deleted successfully"})
}
