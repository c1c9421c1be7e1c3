package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolar-app/escolar-backend/internal/response"
	"github.com/escolar-app/escolar-backend/internal/service"
)

func mapError(t *testing.T, err error) (int, response.Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	failScheduleError(c, err)

	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestFailScheduleErrorSurfacesConflictReason(t *testing.T) {
	reason := "class 5th Grade A already exists"
	status, body := mapError(t, service.ConflictError{Reason: reason})

	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, response.ErrConflict, body.Error.Code)
	assert.Equal(t, reason, body.Error.Message)
}

func TestFailScheduleErrorMapping(t *testing.T) {
	status, body := mapError(t, service.NotFoundError{Entity: "class"})
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, response.ErrNotFound, body.Error.Code)

	status, body = mapError(t, &pgconn.PgError{Code: "23505"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, response.ErrConflict, body.Error.Code)

	status, body = mapError(t, &pgconn.PgError{Code: "23503"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, response.ErrDependencyExists, body.Error.Code)

	status, body = mapError(t, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, response.ErrInternal, body.Error.Code)
}
