// Package paper defines the core domain types for the paper catalog.
package paper

import "errors"

// Paper is the catalog record for a single stored PDF. The binary file
// itself lives under the storage directory; FilePath points at it and
// is opaque to the catalog.
type Paper struct {
	ID           string   `json:"id"`
	FileName     string   `json:"fileName"`
	OriginalName string   `json:"originalName"` // user's uploaded filename, preserved
	FilePath     string   `json:"filePath"`
	DateAdded    string   `json:"dateAdded"` // RFC3339, set on add, never mutated
	Tags         []string `json:"tags"`
	FileSize     int64    `json:"fileSize"`
	ProjectIDs   []string `json:"projectIds"`

	// Bibliographic fields, pre-filled by the metadata extractor and
	// user-editable afterwards. Never validated against a registry.
	Authors string `json:"authors,omitempty"`
	Journal string `json:"journal,omitempty"`
	Year    string `json:"year,omitempty"`
	DOI     string `json:"doi,omitempty"`
}

// Category is a named grouping applied to papers. PaperCount is
// derived: it must equal the number of papers whose Tags contain Name,
// and is recomputed after every structural paper mutation.
type Category struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	PaperCount int    `json:"paperCount"`
}

// Database is the whole-collection snapshot for the paper side of the
// catalog. LastID is the monotonic id counter; ids are its stringified
// values and are never reused after deletion.
type Database struct {
	Papers     []Paper    `json:"papers"`
	Categories []Category `json:"categories"`
	LastID     int        `json:"lastId"`
}

// Lookup errors.
var (
	ErrPaperNotFound     = errors.New("paper not found")
	ErrEmptyCategoryName = errors.New("category name is required")
)

// Palette is the cyclic color palette for new categories. The tokens
// are opaque strings chosen by index mod len(Palette).
var Palette = []string{
	"bg-blue-500", "bg-green-500", "bg-purple-500", "bg-red-500",
	"bg-emerald-500", "bg-orange-500", "bg-cyan-500", "bg-indigo-500",
	"bg-pink-500", "bg-yellow-500",
}

// DefaultCategories returns the starter categories seeded into a fresh
// database, each with a zero paper count.
func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Machine Learning", Color: "bg-blue-500"},
		{ID: "2", Name: "Computer Science", Color: "bg-green-500"},
		{ID: "3", Name: "Mathematics", Color: "bg-purple-500"},
		{ID: "4", Name: "Physics", Color: "bg-red-500"},
		{ID: "5", Name: "Biology", Color: "bg-emerald-500"},
		{ID: "6", Name: "Chemistry", Color: "bg-orange-500"},
		{ID: "7", Name: "Engineering", Color: "bg-cyan-500"},
		{ID: "8", Name: "Research Methods", Color: "bg-indigo-500"},
	}
}

// NewDatabase returns the seeded default snapshot for a first run.
func NewDatabase() *Database {
	return &Database{
		Papers:     []Paper{},
		Categories: DefaultCategories(),
		LastID:     0,
	}
}

// HasTag reports whether the paper carries the given tag (exact match;
// tag names are category names).
func (p *Paper) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// InProject reports whether the paper is a member of the given project.
func (p *Paper) InProject(projectID string) bool {
	for _, id := range p.ProjectIDs {
		if id == projectID {
			return true
		}
	}
	return false
}
