// Package storage persists the task list as a whole.
//
// Every backend loads the full list once and rewrites it completely on each
// save. There is no incremental persistence.
package storage

// Record is one task exactly as it appears on disk.
type Record struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
}

// Backend defines the interface that every task store backend implements
type Backend interface {
	// Name returns the backend identifier (e.g., "json", "sqlite")
	Name() string

	// Load returns the persisted list. A missing or unreadable store yields
	// an empty list, never an error.
	Load() []Record

	// Save overwrites the whole store with records
	Save(records []Record) error

	// Close releases any resources held by the backend
	Close() error
}
