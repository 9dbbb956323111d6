package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tasks (
    position INTEGER PRIMARY KEY,
    description TEXT NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT 0,
    priority TEXT CHECK (priority IN ('Low', 'Medium', 'High')) NOT NULL,
    due_date TEXT NOT NULL
);`

// SQLite stores the task list in a single table, one row per position.
type SQLite struct {
	path   string
	conn   *sql.DB
	logger *log.Logger
}

// NewSQLite prepares a connection to the database at path. The file is not
// created until the first Save.
func NewSQLite(path string, logger *log.Logger) (*SQLite, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &SQLite{path: path, conn: conn, logger: orDiscard(logger)}, nil
}

// Name returns the backend identifier
func (s *SQLite) Name() string {
	return "sqlite"
}

// Load returns every row ordered by position
func (s *SQLite) Load() []Record {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("no task database yet", "path", s.path)
		return []Record{}
	}

	records, err := s.listRecords()
	if err != nil {
		s.logger.Warn("cannot read task database, starting empty", "path", s.path, "err", err)
		return []Record{}
	}

	s.logger.Debug("loaded tasks", "path", s.path, "count", len(records))
	return records
}

func (s *SQLite) listRecords() ([]Record, error) {
	if _, err := s.conn.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	rows, err := s.conn.Query(`
		SELECT description, completed, priority, due_date
		FROM tasks
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Description, &r.Completed, &r.Priority, &r.DueDate); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// Save replaces every row in one transaction
func (s *SQLite) Save(records []Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}

	if _, err := s.conn.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO tasks (position, description, completed, priority, due_date)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(i, r.Description, r.Completed, r.Priority, r.DueDate); err != nil {
			return fmt.Errorf("inserting task %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Close closes the database connection
func (s *SQLite) Close() error {
	return s.conn.Close()
}

func init() {
	Register("sqlite", func(path string, logger *log.Logger) (Backend, error) {
		db, err := NewSQLite(path, logger)
		if err != nil {
			return nil, err
		}
		return db, nil
	})
}
