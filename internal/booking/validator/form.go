package validator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"securebook/pkg/logger"
	"securebook/pkg/model"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

const (
	msgFillOut     = "Please fill out this field."
	msgSelectItem  = "Please select an item in the list."
	msgEmail       = "Please enter an email address."
	msgNumber      = "Please enter a number."
	msgValidDate   = "Please enter a valid date."
	msgMinFmt      = "Value must be greater than or equal to %s."
	msgMaxFmt      = "Value must be less than or equal to %s."
	msgMinDateFmt  = "Value must be %s or later."
	tagRequired    = "required"
	tagEmail       = "email"
	tagNumeric     = "numeric"
	tagDate        = "datetime=" + dateLayout
	tagMinDateName = "min_date"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// ByField indexes the messages by field name, for rendering next to inputs.
func (v ValidationErrors) ByField() map[string]string {
	out := make(map[string]string, len(v))
	for _, err := range v {
		out[err.Field] = err.Message
	}
	return out
}

// FormValidator runs the checks a browser performs on the native controls
// before it lets a form submit. It reports at most one message per field,
// in form order.
type FormValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewFormValidator(log *logger.Logger) *FormValidator {
	v := validator.New()

	if err := v.RegisterValidation(tagMinDateName, validateMinDate); err != nil {
		log.Fatal("Failed to register 'min_date' validator",
			"error", err,
		)
	}

	log.Debug("Form validator initialized")

	return &FormValidator{
		validate: v,
		logger:   log,
	}
}

// validateMinDate compares two YYYY-MM-DD strings; they order lexically.
func validateMinDate(fl validator.FieldLevel) bool {
	return fl.Field().String() >= fl.Param()
}

// Validate returns ValidationErrors, or nil when the draft would submit.
func (v *FormValidator) Validate(spec *model.FormSpec, draft model.Draft, today time.Time) error {
	var errs ValidationErrors

	for _, field := range spec.Fields {
		if msg := v.checkField(spec, field, draft, today); msg != "" {
			errs = append(errs, ValidationError{Field: field.Name, Message: msg})
		}
	}

	if len(errs) > 0 {
		v.logger.Debug("Form failed constraint check",
			"category", spec.Category,
			"violations", len(errs),
		)
		return errs
	}
	return nil
}

func (v *FormValidator) checkField(spec *model.FormSpec, field model.FieldSpec, draft model.Draft, today time.Time) string {
	value := draft[field.Name]
	if field.Kind == model.KindEmail || field.Kind == model.KindNumber || field.Kind == model.KindDate {
		value = strings.TrimSpace(value)
	}

	if value == "" {
		if !field.Required {
			return ""
		}
		if err := v.validate.Var(value, tagRequired); err != nil {
			return v.translate(field, err)
		}
	}

	switch field.Kind {
	case model.KindEmail:
		return v.translate(field, v.validate.Var(value, tagEmail))
	case model.KindNumber:
		return v.checkNumber(field, value)
	case model.KindDate:
		if err := v.validate.Var(value, tagDate); err != nil {
			return v.translate(field, err)
		}
		if field.MinToday {
			tag := tagMinDateName + "=" + today.Format(dateLayout)
			return v.translate(field, v.validate.Var(value, tag))
		}
	case model.KindSelect:
		if !contains(offeredOptions(spec, field, draft), value) {
			return msgSelectItem
		}
	}
	return ""
}

func (v *FormValidator) checkNumber(field model.FieldSpec, value string) string {
	if err := v.validate.Var(value, tagNumeric); err != nil {
		return v.translate(field, err)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return msgNumber
	}
	if field.Min != nil {
		if err := v.validate.Var(n, fmt.Sprintf("min=%d", *field.Min)); err != nil {
			return v.translate(field, err)
		}
	}
	if field.Max != nil {
		if err := v.validate.Var(n, fmt.Sprintf("max=%d", *field.Max)); err != nil {
			return v.translate(field, err)
		}
	}
	return ""
}

func (v *FormValidator) translate(field model.FieldSpec, err error) string {
	if err == nil {
		return ""
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		v.logger.Warn("Unexpected validator error",
			"field", field.Name,
			"error", err,
		)
		return msgFillOut
	}

	fe := validationErrs[0]
	switch fe.Tag() {
	case "required":
		if field.IsSelect() {
			return msgSelectItem
		}
		return msgFillOut
	case "email":
		return msgEmail
	case "numeric":
		return msgNumber
	case "datetime":
		return msgValidDate
	case "min":
		return fmt.Sprintf(msgMinFmt, fe.Param())
	case "max":
		return fmt.Sprintf(msgMaxFmt, fe.Param())
	case tagMinDateName:
		return fmt.Sprintf(msgMinDateFmt, fe.Param())
	}
	return fe.Error()
}

// offeredOptions is what the select control lists: the static options, or
// the venues of the selected region for the dependent venue select.
func offeredOptions(spec *model.FormSpec, field model.FieldSpec, draft model.Draft) []string {
	if field.DependsOn != "" {
		return spec.Venues[draft[field.DependsOn]]
	}
	return field.Options
}

func contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
