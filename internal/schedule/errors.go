package schedule

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotFound          = errors.New("event not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrDuplicateID       = errors.New("duplicate event id")
	ErrNoReminder        = errors.New("event has no reminder")
)

// FieldError describes a problem with a single input field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError is returned when a candidate or edited event is rejected.
type ValidationError struct {
	Fields []FieldError
}

func newValidationError(flds ...FieldError) error {
	return &ValidationError{Fields: flds}
}

func (err *ValidationError) Error() string {
	parts := make([]string, 0, len(err.Fields))
	for _, f := range err.Fields {
		parts = append(parts, f.Field+": "+f.Error)
	}
	return "invalid event: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err (or its cause) is a *ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsNotFound reports whether err was caused by a missing event id.
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}

// IsInvalidTransition reports whether err was caused by a refused status change.
func IsInvalidTransition(err error) bool {
	return errors.Cause(err) == ErrInvalidTransition
}
