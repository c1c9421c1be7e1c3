package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/escolar-app/escolar-backend/internal/model"
)

// trans is the singleton English translator for validation errors.
var trans ut.Translator

// Setup registers the validator with English translations on Gin's binding engine.
// Call once during application startup.
func Setup() {
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		// Use JSON tag name for field names in error messages.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		// Register English translations.
		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		en_translations.RegisterDefaultTranslations(v, trans)

		// hhmm validates 24-hour wall-clock strings ("08:00", "23:59").
		// Scheduling times are stored as fixed-width strings so that
		// lexical comparison matches chronological order.
		v.RegisterValidation("hhmm", validateHHMM)
		v.RegisterTranslation("hhmm", trans,
			func(ut ut.Translator) error {
				return ut.Add("hhmm", "{0} must be a time in HH:MM 24-hour format", true)
			},
			func(ut ut.Translator, fe govalidator.FieldError) string {
				t, _ := ut.T("hhmm", fe.Field())
				return t
			})

		// Range ordering: an event's start date precedes its end date, a
		// recurrence's start time precedes its end time.
		v.RegisterStructValidation(validateEventDates,
			model.CreateClassEventRequest{}, model.UpdateClassEventRequest{})
		v.RegisterStructValidation(validateRecurrenceWindow, model.RecurrenceInput{})
		v.RegisterTranslation("daterange", trans,
			func(ut ut.Translator) error {
				return ut.Add("daterange", "{0} must be after start_date", true)
			},
			func(ut ut.Translator, fe govalidator.FieldError) string {
				t, _ := ut.T("daterange", fe.Field())
				return t
			})
		v.RegisterTranslation("timerange", trans,
			func(ut ut.Translator) error {
				return ut.Add("timerange", "{0} must be after start_time", true)
			},
			func(ut ut.Translator, fe govalidator.FieldError) string {
				t, _ := ut.T("timerange", fe.Field())
				return t
			})
	}
}

// validateEventDates rejects date ranges that do not move forward. Both
// fields are "2006-01-02" strings vetted by the datetime rule, so lexical
// order equals chronological order.
func validateEventDates(sl govalidator.StructLevel) {
	var start, end string
	switch req := sl.Current().Interface().(type) {
	case model.CreateClassEventRequest:
		start, end = req.StartDate, req.EndDate
	case model.UpdateClassEventRequest:
		start, end = req.StartDate, req.EndDate
	}
	if start != "" && end != "" && end <= start {
		sl.ReportError(end, "end_date", "EndDate", "daterange", "")
	}
}

// validateRecurrenceWindow rejects zero-length or inverted time slots.
func validateRecurrenceWindow(sl govalidator.StructLevel) {
	in, ok := sl.Current().Interface().(model.RecurrenceInput)
	if !ok {
		return
	}
	if hhmmPattern.MatchString(in.StartTime) && hhmmPattern.MatchString(in.EndTime) && in.EndTime <= in.StartTime {
		sl.ReportError(in.EndTime, "end_time", "EndTime", "timerange", "")
	}
}

var hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func validateHHMM(fl govalidator.FieldLevel) bool {
	return hhmmPattern.MatchString(fl.Field().String())
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name â†’ human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(trans)
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
