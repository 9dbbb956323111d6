// Package todo holds the task list and the rules every task must satisfy.
//
// A Store owns the ordered list in memory and writes the whole list through
// a storage.Backend after each successful mutation. Tasks are addressed by
// zero-based position; each task also carries an in-memory ID that stays
// valid while other tasks are added or deleted.
//
// # Validation
//
//   - description must be non-empty after trimming whitespace
//   - priority must be Low, Medium or High
//   - due date must be a real calendar date written as YYYY-MM-DD
//
// Invalid input is rejected with a *ValidationError before anything is
// changed. A position outside the list yields a *NotFoundError.
//
// # Completion
//
// Completion only moves from pending to completed. There is no operation to
// reopen a task.
package todo
