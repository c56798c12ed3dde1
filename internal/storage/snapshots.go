// Package storage handles data persistence: whole-collection JSON
// snapshots, PDF binary storage, and the ephemeral SQLite query cache.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/paperdesk/paperdesk/internal/paper"
	"github.com/paperdesk/paperdesk/internal/project"
)

// ErrCorruptSnapshot indicates a persisted snapshot exists but cannot
// be parsed. This is distinct from a missing file (first run), which
// seeds a default database. Callers must not fall back to an empty
// database when they see this error.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// LoadPapers reads the paper collection snapshot at path.
// A missing file returns the seeded default database.
func LoadPapers(path string) (*paper.Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return paper.NewDatabase(), nil
		}
		return nil, fmt.Errorf("reading papers snapshot: %w", err)
	}

	var db paper.Database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrCorruptSnapshot, path, err)
	}

	if db.Papers == nil {
		db.Papers = []paper.Paper{}
	}
	if db.Categories == nil {
		db.Categories = []paper.Category{}
	}

	return &db, nil
}

// SavePapers writes the paper collection snapshot to path, replacing
// prior content. The write is atomic: a temp file in the same
// directory is renamed over the target.
func SavePapers(path string, db *paper.Database) error {
	return writeSnapshot(path, db)
}

// LoadProjects reads the project collection snapshot at path.
// A missing file returns the empty default database.
func LoadProjects(path string) (*project.Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return project.NewDatabase(), nil
		}
		return nil, fmt.Errorf("reading projects snapshot: %w", err)
	}

	var db project.Database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrCorruptSnapshot, path, err)
	}

	if db.Projects == nil {
		db.Projects = []project.Project{}
	}

	return &db, nil
}

// SaveProjects writes the project collection snapshot to path.
func SaveProjects(path string, db *project.Database) error {
	return writeSnapshot(path, db)
}

// writeSnapshot marshals v and atomically replaces the file at path.
func writeSnapshot(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	// Unique temp name so a crashed writer never clobbers a concurrent one.
	tmp := path + ".tmp." + uuid.NewString()
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing snapshot: %w", err)
	}

	return nil
}
