package todo

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/pdxmph/todo-tui/internal/storage"
)

// Store is the in-memory task list backed by a storage.Backend.
type Store struct {
	mu      sync.Mutex
	backend storage.Backend
	logger  *log.Logger
	tasks   []Task
}

// NewStore loads the task list from backend. Records that fail validation
// are dropped.
func NewStore(backend storage.Backend, logger *log.Logger) (*Store, error) {
	if backend == nil {
		return nil, errors.New("todo: nil storage backend")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Store{backend: backend, logger: logger}
	for i, r := range backend.Load() {
		task, err := fromRecord(r)
		if err != nil {
			logger.Warn("dropping invalid stored task", "backend", backend.Name(), "index", i, "err", err)
			continue
		}
		s.tasks = append(s.tasks, task)
	}

	logger.Info("task list loaded", "backend", backend.Name(), "count", len(s.tasks))
	return s, nil
}

// Add appends a new pending task and returns its position.
func (s *Store) Add(description string, priority Priority, dueDate string) (int, error) {
	description, dueDate, err := validate(description, priority, dueDate)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := Task{
		ID:          uuid.NewString(),
		Description: description,
		Priority:    priority,
		DueDate:     dueDate,
	}

	err = s.mutate(func() {
		s.tasks = append(s.tasks, task)
	})
	if err != nil {
		return 0, err
	}

	pos := len(s.tasks) - 1
	s.logger.Debug("task added", "position", pos, "id", task.ID)
	return pos, nil
}

// Update replaces the description, priority and due date of the task at
// position. Completion state is kept.
func (s *Store) Update(position int, description string, priority Priority, dueDate string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.update(position, description, priority, dueDate)
}

// UpdateByID is Update addressed by task ID.
func (s *Store) UpdateByID(id, description string, priority Priority, dueDate string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, err := s.indexOf(id)
	if err != nil {
		return err
	}
	return s.update(pos, description, priority, dueDate)
}

func (s *Store) update(position int, description string, priority Priority, dueDate string) error {
	if err := s.checkBounds(position); err != nil {
		return err
	}
	description, dueDate, err := validate(description, priority, dueDate)
	if err != nil {
		return err
	}

	err = s.mutate(func() {
		t := &s.tasks[position]
		t.Description = description
		t.Priority = priority
		t.DueDate = dueDate
	})
	if err != nil {
		return err
	}

	s.logger.Debug("task updated", "position", position, "id", s.tasks[position].ID)
	return nil
}

// MarkComplete marks the task at position as completed. Marking a task that
// is already complete succeeds without touching storage.
func (s *Store) MarkComplete(position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.markComplete(position)
}

// MarkCompleteByID is MarkComplete addressed by task ID.
func (s *Store) MarkCompleteByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, err := s.indexOf(id)
	if err != nil {
		return err
	}
	return s.markComplete(pos)
}

func (s *Store) markComplete(position int) error {
	if err := s.checkBounds(position); err != nil {
		return err
	}
	if s.tasks[position].Completed {
		return nil
	}

	err := s.mutate(func() {
		s.tasks[position].Completed = true
	})
	if err != nil {
		return err
	}

	s.logger.Debug("task completed", "position", position, "id", s.tasks[position].ID)
	return nil
}

// Delete removes the task at position. Later tasks move down by one.
func (s *Store) Delete(position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.delete(position)
}

// DeleteByID is Delete addressed by task ID.
func (s *Store) DeleteByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, err := s.indexOf(id)
	if err != nil {
		return err
	}
	return s.delete(pos)
}

func (s *Store) delete(position int) error {
	if err := s.checkBounds(position); err != nil {
		return err
	}

	id := s.tasks[position].ID
	err := s.mutate(func() {
		s.tasks = append(s.tasks[:position], s.tasks[position+1:]...)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("task deleted", "position", position, "id", id)
	return nil
}

// List returns a copy of the tasks in order.
func (s *Store) List() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.tasks)
}

// Position returns the current position of the task with id.
func (s *Store) Position(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.indexOf(id)
}

// Backend returns the name of the storage backend in use.
func (s *Store) Backend() string {
	return s.backend.Name()
}

func (s *Store) indexOf(id string) (int, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i, nil
		}
	}
	return -1, &NotFoundError{Position: -1, Len: len(s.tasks), ID: id}
}

func (s *Store) checkBounds(position int) error {
	if position < 0 || position >= len(s.tasks) {
		return &NotFoundError{Position: position, Len: len(s.tasks)}
	}
	return nil
}

// mutate applies change and persists the result. If the save fails the list
// is restored, so memory always matches what is on disk.
func (s *Store) mutate(change func()) error {
	before := make([]Task, len(s.tasks))
	copy(before, s.tasks)

	change()

	if err := s.backend.Save(toRecords(s.tasks)); err != nil {
		s.tasks = before
		s.logger.Error("saving tasks failed, change reverted", "backend", s.backend.Name(), "err", err)
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func toRecords(tasks []Task) []storage.Record {
	records := make([]storage.Record, len(tasks))
	for i, t := range tasks {
		records[i] = storage.Record{
			Description: t.Description,
			Completed:   t.Completed,
			Priority:    string(t.Priority),
			DueDate:     t.DueDate,
		}
	}
	return records
}

func fromRecord(r storage.Record) (Task, error) {
	priority := Priority(r.Priority)
	description, dueDate, err := validate(r.Description, priority, r.DueDate)
	if err != nil {
		return Task{}, err
	}
	return Task{
		ID:          uuid.NewString(),
		Description: description,
		Completed:   r.Completed,
		Priority:    priority,
		DueDate:     dueDate,
	}, nil
}
