package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"previewgen/internal/logging"
)

// ErrNotFound indicates the catalog file does not exist. There is no implicit
// empty catalog: a missing file is fatal at the CLI layer.
var ErrNotFound = errors.New("catalog file not found")

// Store loads and saves the catalog file with a backup-then-write discipline.
type Store struct {
	path       string
	backupPath string
	logger     *slog.Logger
}

// NewStore creates a store for the catalog at path. Saves rename any existing
// file to backupPath before writing.
func NewStore(path, backupPath string, logger *slog.Logger) *Store {
	if backupPath == "" {
		backupPath = path + ".bak"
	}
	return &Store{
		path:       path,
		backupPath: backupPath,
		logger:     logging.NewComponentLogger(logger, "catalog"),
	}
}

// Path returns the primary catalog location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the full catalog. A missing file returns ErrNotFound.
func (s *Store) Load() (*Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	cat := &Catalog{Entries: entries}
	if dups := cat.DuplicateIDs(); len(dups) > 0 {
		s.logger.Warn("catalog contains duplicate ids",
			logging.Any("ids", dups),
			logging.String(logging.FieldErrorHint, "later entries shadow earlier ones during lookup"))
	}
	s.logger.Debug("catalog loaded",
		logging.Int("entry_count", len(entries)),
		logging.String("path", s.path))
	return cat, nil
}

// Save writes the full catalog, pretty-printed. If a prior file exists it is
// renamed to the backup path first; a failed backup is logged and does not
// block the write.
func (s *Store) Save(cat *Catalog) error {
	if _, err := os.Stat(s.path); err == nil {
		if err := os.Rename(s.path, s.backupPath); err != nil {
			s.logger.Warn("could not create catalog backup",
				logging.Error(err),
				logging.String("backup_path", s.backupPath))
		}
	}

	data, err := json.MarshalIndent(cat.Entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create catalog directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}

	s.logger.Debug("catalog saved",
		logging.Int("entry_count", len(cat.Entries)),
		logging.String("path", s.path))
	return nil
}
