// Package project defines the core domain types for paper projects.
package project

import "errors"

// Project is a user-defined collection of papers, independent of
// category tagging. PaperIDs preserves insertion order and holds no
// duplicates; PaperCount is derived and kept equal to len(PaperIDs) by
// every membership mutation.
type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	DateCreated string   `json:"dateCreated"` // RFC3339, set on create
	PaperIDs    []string `json:"paperIds"`
	PaperCount  int      `json:"paperCount"`
}

// Database is the whole-collection snapshot for projects. LastID is
// the monotonic id counter for stringified project ids.
type Database struct {
	Projects []Project `json:"projects"`
	LastID   int       `json:"lastProjectId"`
}

// Validation errors.
var (
	ErrEmptyName       = errors.New("project name is required")
	ErrProjectNotFound = errors.New("project not found")
)

// NewDatabase returns the empty default snapshot for a first run.
func NewDatabase() *Database {
	return &Database{Projects: []Project{}, LastID: 0}
}

// HasPaper reports whether the project contains the given paper id.
func (p *Project) HasPaper(paperID string) bool {
	for _, id := range p.PaperIDs {
		if id == paperID {
			return true
		}
	}
	return false
}

// ValidateForCreate validates a project for creation.
func (p *Project) ValidateForCreate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	return nil
}
