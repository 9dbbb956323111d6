package todo

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// DefaultPriority is preselected for new tasks.
const DefaultPriority = PriorityLow

// Priorities lists every priority in selector order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// DateLayout is the only accepted due date format.
const DateLayout = "2006-01-02"

// ParsePriority returns the priority named s, matching case-insensitively.
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// Valid reports whether p is one of the defined priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (p Priority) String() string {
	return string(p)
}

// Next returns the following priority, wrapping from High to Low.
func (p Priority) Next() Priority {
	for i, q := range Priorities {
		if q == p {
			return Priorities[(i+1)%len(Priorities)]
		}
	}
	return DefaultPriority
}

// Prev returns the preceding priority, wrapping from Low to High.
func (p Priority) Prev() Priority {
	for i, q := range Priorities {
		if q == p {
			return Priorities[(i+len(Priorities)-1)%len(Priorities)]
		}
	}
	return DefaultPriority
}

// ParseDueDate trims s and checks that it names a real date in DateLayout.
// The trimmed text is returned unchanged on success.
func ParseDueDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDueDate, s)
	}
	// time.Parse accepts some non-canonical forms; require an exact match.
	if d.Format(DateLayout) != s {
		return "", fmt.Errorf("%w: %q", ErrInvalidDueDate, s)
	}
	return s, nil
}

// Today returns the current local date in DateLayout.
func Today() string {
	return time.Now().Format(DateLayout)
}

// Task is one to-do item.
type Task struct {
	// ID is assigned when the task enters a Store and is never persisted.
	ID          string
	Description string
	Completed   bool
	Priority    Priority
	DueDate     string
}

// Status returns "Completed" or "Pending".
func (t Task) Status() string {
	if t.Completed {
		return "Completed"
	}
	return "Pending"
}

// String renders the task as a single list line.
func (t Task) String() string {
	return fmt.Sprintf("%s [P: %s, Due: %s, %s]", t.Description, t.Priority, t.DueDate, t.Status())
}

// IsOverdue reports whether a pending task's due date is before today.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Completed {
		return false
	}
	return t.DueDate < now.Format(DateLayout)
}

// validate checks user input and returns the normalized description and date.
func validate(description string, priority Priority, dueDate string) (string, string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", "", &ValidationError{Field: "description", Err: ErrEmptyDescription}
	}
	if !priority.Valid() {
		return "", "", &ValidationError{Field: "priority", Err: fmt.Errorf("%w: %q", ErrInvalidPriority, priority)}
	}
	date, err := ParseDueDate(dueDate)
	if err != nil {
		return "", "", &ValidationError{Field: "due_date", Err: err}
	}
	return description, date, nil
}
