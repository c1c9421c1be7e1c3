package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/escolar-app/escolar-backend/internal/model"
)

func TestHHMMPattern(t *testing.T) {
	valid := []string{"00:00", "08:00", "09:59", "10:30", "19:05", "23:59"}
	for _, v := range valid {
		assert.True(t, hhmmPattern.MatchString(v), v)
	}

	invalid := []string{"24:00", "8:00", "08:60", "0800", "08:00:00", "", "ab:cd", "-1:00"}
	for _, v := range invalid {
		assert.False(t, hhmmPattern.MatchString(v), v)
	}
}

type slotPayload struct {
	StartTime string `json:"start_time" binding:"required,hhmm"`
}

func TestBindAppliesHHMMRule(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Setup()

	bind := func(body string) map[string]string {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		var payload slotPayload
		return Bind(c, &payload)
	}

	assert.Nil(t, bind(`{"start_time":"08:00"}`))

	fields := bind(`{"start_time":"25:00"}`)
	assert.Contains(t, fields, "start_time")

	fields = bind(`{}`)
	assert.Contains(t, fields, "start_time")
}

func bindJSON(t *testing.T, body string, dst interface{}) map[string]string {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return Bind(c, dst)
}

func TestBindRejectsInvertedEventDates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Setup()

	payload := func(start, end string) string {
		return `{"class_id":"` + uuid.NewString() + `","teacher_id":"` + uuid.NewString() +
			`","discipline_ids":["` + uuid.NewString() + `"],"start_date":"` + start +
			`","end_date":"` + end + `"}`
	}

	var create model.CreateClassEventRequest
	assert.Nil(t, bindJSON(t, payload("2026-02-02", "2026-12-11"), &create))

	create = model.CreateClassEventRequest{}
	fields := bindJSON(t, payload("2026-12-11", "2026-02-02"), &create)
	assert.Contains(t, fields, "end_date")

	create = model.CreateClassEventRequest{}
	fields = bindJSON(t, payload("2026-02-02", "2026-02-02"), &create)
	assert.Contains(t, fields, "end_date")

	updatePayload := func(start, end string) string {
		return `{"class_id":"` + uuid.NewString() + `","teacher_id":"` + uuid.NewString() +
			`","discipline_id":"` + uuid.NewString() + `","start_date":"` + start +
			`","end_date":"` + end + `"}`
	}

	var update model.UpdateClassEventRequest
	assert.Nil(t, bindJSON(t, updatePayload("2026-02-02", "2026-12-11"), &update))

	update = model.UpdateClassEventRequest{}
	fields = bindJSON(t, updatePayload("2026-12-11", "2026-02-02"), &update)
	assert.Contains(t, fields, "end_date")
}

func TestBindRejectsInvertedRecurrenceTimes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Setup()

	payload := func(start, end string) string {
		return `{"recurrences":[{"day":"monday","start_time":"` + start +
			`","end_time":"` + end + `"}]}`
	}

	var batch model.RecurrenceBatchRequest
	assert.Nil(t, bindJSON(t, payload("08:00", "09:40"), &batch))

	batch = model.RecurrenceBatchRequest{}
	fields := bindJSON(t, payload("09:40", "08:00"), &batch)
	assert.Contains(t, fields, "end_time")
	assert.Equal(t, "end_time must be after start_time", fields["end_time"])

	batch = model.RecurrenceBatchRequest{}
	fields = bindJSON(t, payload("08:00", "08:00"), &batch)
	assert.Contains(t, fields, "end_time")
}
