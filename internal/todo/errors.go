package todo

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyDescription = errors.New("task description is required")
	ErrInvalidDueDate   = errors.New("invalid due date (YYYY-MM-DD)")
	ErrInvalidPriority  = errors.New("priority must be Low, Medium or High")
)

// ValidationError reports rejected input for a single field.
type ValidationError struct {
	Field string // description, priority or due_date
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a position that does not address a task. Position
// is -1 when an ID could not be resolved.
type NotFoundError struct {
	Position int
	Len      int
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("task %s not found", e.ID)
	}
	if e.Position < 0 {
		return "no task selected"
	}
	return fmt.Sprintf("no task at position %d (list has %d)", e.Position, e.Len)
}
