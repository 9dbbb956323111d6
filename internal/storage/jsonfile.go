package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// corruptSuffixLayout names the copy kept when a task file cannot be parsed.
const corruptSuffixLayout = "20060102-150405"

// JSONFile stores the task list as a single JSON array.
type JSONFile struct {
	path   string
	logger *log.Logger
	now    func() time.Time
}

// NewJSONFile returns a backend that reads and writes path.
func NewJSONFile(path string, logger *log.Logger) *JSONFile {
	return &JSONFile{path: path, logger: orDiscard(logger), now: time.Now}
}

// Name returns the backend identifier
func (j *JSONFile) Name() string {
	return "json"
}

// Path returns the backing file.
func (j *JSONFile) Path() string {
	return j.path
}

// Load reads the task file. A missing file is the normal first-run case. A
// file that cannot be parsed is moved aside so the next save does not
// destroy it.
func (j *JSONFile) Load() []Record {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			j.logger.Debug("no task file yet", "path", j.path)
		} else {
			j.logger.Warn("cannot read task file, starting empty", "path", j.path, "err", err)
		}
		return []Record{}
	}

	records, err := decodeRecords(data)
	if err != nil {
		backup := j.path + ".corrupt-" + j.now().Format(corruptSuffixLayout)
		if rerr := os.Rename(j.path, backup); rerr != nil {
			j.logger.Error("cannot preserve corrupt task file", "path", j.path, "err", rerr)
		} else {
			j.logger.Warn("task file is corrupt, starting empty", "path", j.path, "backup", backup, "err", err)
		}
		return []Record{}
	}

	j.logger.Debug("loaded tasks", "path", j.path, "count", len(records))
	return records
}

// Save overwrites the task file with records in a single write.
func (j *JSONFile) Save(records []Record) error {
	if records == nil {
		records = []Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(j.path), 0755); err != nil {
		return fmt.Errorf("creating task directory: %w", err)
	}

	if err := os.WriteFile(j.path, data, 0644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}

	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (j *JSONFile) Close() error {
	return nil
}

func init() {
	Register("json", func(path string, logger *log.Logger) (Backend, error) {
		return NewJSONFile(path, logger), nil
	})
}

// orDiscard keeps backends usable when the caller has no logger.
func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
