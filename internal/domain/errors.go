package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is the base lookup failure. ErrTaskListNotFound and
// ErrTaskNotFound both match it through errors.Is.
var ErrNotFound = errors.New("not found")

var (
	ErrTaskListNotFound = fmt.Errorf("task list %w", ErrNotFound)
	ErrTaskNotFound     = fmt.Errorf("task %w", ErrNotFound)
)

// Machine-readable reason codes surfaced to callers on 400 responses.
const (
	CodeBlankTitle   = "blank_title"
	CodeTitleTooLong = "title_too_long"
	CodeDueDatePast  = "due_date_past"
	CodeBadPriority  = "bad_priority"
	CodeBadStatus    = "bad_status"
)

// ValidationError reports a caller mistake. Never retried, reported verbatim.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidationCode returns the reason code of a validation error, or "".
func ValidationCode(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	return ""
}
