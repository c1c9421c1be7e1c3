package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/escolar-app/escolar-backend/internal/response"
	"github.com/escolar-app/escolar-backend/internal/service"
)

// failScheduleError maps scheduler errors onto the response envelope:
// missing entities become 404, conflicts 409, anything else 500.
func failScheduleError(c *gin.Context, err error) {
	var nf service.NotFoundError
	if errors.As(err, &nf) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	var conflict service.ConflictError
	if errors.As(err, &conflict) {
		// Conflicts carry the exact reason ("class 5th Grade A already
		// exists"); surface it instead of the generic message.
		response.FailWithMessage(c, http.StatusConflict, response.ErrConflict, conflict.Reason)
		return
	}
	failPgError(c, err)
}

// failPgError maps Postgres constraint violations onto the response
// envelope: unique violations become 409 Conflict, foreign key violations
// 409 DependencyExists, anything else 500.
func failPgError(c *gin.Context, err error) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		case "23503":
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		}
	}
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
