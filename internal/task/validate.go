package task

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use once built.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so errors line up with the load source.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	mustRegister(v, "task_id", func(fl validator.FieldLevel) bool {
		_, ok := numericID(fl.Field().String())
		return ok
	})
	mustRegister(v, "task_status", func(fl validator.FieldLevel) bool {
		return Status(fl.Field().String()).Valid()
	})
	mustRegister(v, "task_priority", func(fl validator.FieldLevel) bool {
		return Priority(fl.Field().String()).Valid()
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// validateTask checks a full record.
func validateTask(t *Task) error {
	return toValidationError(t.ID, validate.Struct(t))
}

// validateInput checks Add input after defaults are applied.
func validateInput(in *TaskInput) error {
	return toValidationError("", validate.Struct(in))
}

func toValidationError(id string, err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		panic(fmt.Sprintf("validator misuse: %v", err))
	}

	out := &ValidationError{ID: id, Fields: make([]FieldError, 0, len(fieldErrs))}

	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldError{
			Field:  fe.Field(),
			Value:  fmt.Sprint(fe.Value()),
			Reason: reasonForTag(fe.Tag()),
		})
	}

	return out
}

func reasonForTag(tag string) string {
	switch tag {
	case "required":
		return ReasonRequired
	case "task_id":
		return ReasonInvalidID
	case "datetime":
		return ReasonInvalidDate
	case "task_status":
		return ReasonInvalidStatus
	case "task_priority":
		return ReasonInvalidPriority
	default:
		return tag
	}
}
