// Package catalog is the query/mutation API over the paper collection:
// reads, search, paper add/delete, and category management. Every
// operation re-reads the snapshot from disk, so the persisted snapshot
// stays the single source of truth.
package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/paperdesk/paperdesk/internal/metadata"
	"github.com/paperdesk/paperdesk/internal/paper"
	"github.com/paperdesk/paperdesk/internal/storage"
)

// Catalog operates on the paper collection snapshot at a fixed path.
type Catalog struct {
	path string
}

// New creates a catalog over the snapshot at path.
func New(path string) *Catalog {
	return &Catalog{path: path}
}

// FileMeta describes an uploaded file. Path is the storage location of
// the binary; when empty a deterministic simulated path is used.
type FileMeta struct {
	Name string
	Size int64
	Path string
}

// AllPapers returns every paper sorted by DateAdded descending.
func (c *Catalog) AllPapers() ([]paper.Paper, error) {
	db, err := storage.LoadPapers(c.path)
	if err != nil {
		return nil, err
	}
	sortByDateAddedDesc(db.Papers)
	return db.Papers, nil
}

// PapersByCategory returns the papers tagged with the given category
// name, sorted by DateAdded descending.
func (c *Catalog) PapersByCategory(name string) ([]paper.Paper, error) {
	papers, err := c.AllPapers()
	if err != nil {
		return nil, err
	}

	var matched []paper.Paper
	for _, p := range papers {
		if p.HasTag(name) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Search returns the papers where query is a case-insensitive
// substring of the file name, the original name, or any tag.
func (c *Catalog) Search(query string) ([]paper.Paper, error) {
	papers, err := c.AllPapers()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var matched []paper.Paper
	for _, p := range papers {
		if matchesQuery(&p, q) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// GetPaper returns the paper with the given id.
func (c *Catalog) GetPaper(id string) (*paper.Paper, error) {
	db, err := storage.LoadPapers(c.path)
	if err != nil {
		return nil, err
	}

	for i := range db.Papers {
		if db.Papers[i].ID == id {
			return &db.Papers[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", paper.ErrPaperNotFound, id)
}

// AddPaper allocates the next id, appends the paper, recomputes
// category counts, and persists. Ids are the stringified values of a
// monotonic counter and are never reused after deletion.
func (c *Catalog) AddPaper(file FileMeta, tags, projectIDs []string, bib metadata.Metadata) (*paper.Paper, error) {
	db, err := storage.LoadPapers(c.path)
	if err != nil {
		return nil, err
	}

	db.LastID++
	id := strconv.Itoa(db.LastID)

	filePath := file.Path
	if filePath == "" {
		filePath = fmt.Sprintf("papers/%d_%s", db.LastID, file.Name)
	}

	p := paper.Paper{
		ID:           id,
		FileName:     file.Name,
		OriginalName: file.Name,
		FilePath:     filePath,
		DateAdded:    time.Now().Format(time.RFC3339),
		Tags:         dedupe(tags),
		FileSize:     file.Size,
		ProjectIDs:   dedupe(projectIDs),
		Authors:      bib.Authors,
		Journal:      bib.Journal,
		Year:         bib.Year,
		DOI:          bib.DOI,
	}

	db.Papers = append(db.Papers, p)
	recomputeCategoryCounts(db)

	if err := storage.SavePapers(c.path, db); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePaper removes the paper, recomputes category counts, and
// persists. Project membership cascade is handled one level up by the
// library service, which also owns the project snapshot.
func (c *Catalog) DeletePaper(id string) error {
	db, err := storage.LoadPapers(c.path)
	if err != nil {
		return err
	}

	found := false
	kept := db.Papers[:0]
	for _, p := range db.Papers {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return fmt.Errorf("%w: %s", paper.ErrPaperNotFound, id)
	}

	db.Papers = kept
	recomputeCategoryCounts(db)
	return storage.SavePapers(c.path, db)
}

// UpdateMetadata replaces the user-editable bibliographic fields of a
// paper and persists.
func (c *Catalog) UpdateMetadata(id string, bib metadata.Metadata) (*paper.Paper, error) {
	db, err := storage.LoadPapers(c.path)
	if err != nil {
		return nil, err
	}

	for i := range db.Papers {
		if db.Papers[i].ID != id {
			continue
		}
		db.Papers[i].Authors = bib.Authors
		db.Papers[i].Journal = bib.Journal
		db.Papers[i].Year = bib.Year
		db.Papers[i].DOI = bib.DOI

		if err := storage.SavePapers(c.path, db); err != nil {
			return nil, err
		}
		return &db.Papers[i], nil
	}
	return nil, fmt.Errorf("%w: %s", paper.ErrPaperNotFound, id)
}

// AddCategory returns the existing category matching name
// case-insensitively, or appends a new one with the next sequential id
// and the next palette color.
func (c *Catalog) AddCategory(name string) (*paper.Category, error) {
	if name == "" {
		return nil, paper.ErrEmptyCategoryName
	}

	db, err := storage.LoadPapers(c.path)
	if err != nil {
		return nil, err
	}

	for i := range db.Categories {
		if strings.EqualFold(db.Categories[i].Name, name) {
			return &db.Categories[i], nil
		}
	}

	cat := paper.Category{
		ID:    strconv.Itoa(len(db.Categories) + 1),
		Name:  name,
		Color: paper.Palette[len(db.Categories)%len(paper.Palette)],
	}
	db.Categories = append(db.Categories, cat)

	if err := storage.SavePapers(c.path, db); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Categories returns the categories with at least one paper.
func (c *Catalog) Categories() ([]paper.Category, error) {
	db, err := storage.LoadPapers(c.path)
	if err != nil {
		return nil, err
	}

	var active []paper.Category
	for _, cat := range db.Categories {
		if cat.PaperCount > 0 {
			active = append(active, cat)
		}
	}
	return active, nil
}

// CategoriesWithEmpty returns every category, including empty ones.
func (c *Catalog) CategoriesWithEmpty() ([]paper.Category, error) {
	db, err := storage.LoadPapers(c.path)
	if err != nil {
		return nil, err
	}
	return db.Categories, nil
}

// CategoryNames returns the names of every category.
func (c *Catalog) CategoryNames() ([]string, error) {
	db, err := storage.LoadPapers(c.path)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(db.Categories))
	for i, cat := range db.Categories {
		names[i] = cat.Name
	}
	return names, nil
}

// SetProjectRef records a paper's membership in a project on the paper
// side. Idempotent.
func (c *Catalog) SetProjectRef(paperID, projectID string) error {
	db, err := storage.LoadPapers(c.path)
	if err != nil {
		return err
	}

	for i := range db.Papers {
		if db.Papers[i].ID != paperID {
			continue
		}
		if db.Papers[i].InProject(projectID) {
			return nil
		}
		db.Papers[i].ProjectIDs = append(db.Papers[i].ProjectIDs, projectID)
		return storage.SavePapers(c.path, db)
	}
	return fmt.Errorf("%w: %s", paper.ErrPaperNotFound, paperID)
}

// RemoveProjectRef removes a paper's membership record for a project.
// Idempotent; unknown papers are a no-op so cascades stay tolerant of
// stale ids.
func (c *Catalog) RemoveProjectRef(paperID, projectID string) error {
	db, err := storage.LoadPapers(c.path)
	if err != nil {
		return err
	}

	for i := range db.Papers {
		if db.Papers[i].ID != paperID {
			continue
		}
		kept := removeString(db.Papers[i].ProjectIDs, projectID)
		if len(kept) == len(db.Papers[i].ProjectIDs) {
			return nil
		}
		db.Papers[i].ProjectIDs = kept
		return storage.SavePapers(c.path, db)
	}
	return nil
}

// ClearProjectRefs removes the given project id from every paper.
// Used when a project is deleted.
func (c *Catalog) ClearProjectRefs(projectID string) error {
	db, err := storage.LoadPapers(c.path)
	if err != nil {
		return err
	}

	changed := false
	for i := range db.Papers {
		kept := removeString(db.Papers[i].ProjectIDs, projectID)
		if len(kept) != len(db.Papers[i].ProjectIDs) {
			db.Papers[i].ProjectIDs = kept
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return storage.SavePapers(c.path, db)
}

// recomputeCategoryCounts re-derives every category's paper count from
// the tag sets. Runs after every structural paper mutation.
func recomputeCategoryCounts(db *paper.Database) {
	for i := range db.Categories {
		count := 0
		for j := range db.Papers {
			if db.Papers[j].HasTag(db.Categories[i].Name) {
				count++
			}
		}
		db.Categories[i].PaperCount = count
	}
}

// matchesQuery checks a paper against a lower-cased query.
func matchesQuery(p *paper.Paper, q string) bool {
	if strings.Contains(strings.ToLower(p.FileName), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.OriginalName), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// sortByDateAddedDesc sorts papers newest-first. Ties keep insertion
// order.
func sortByDateAddedDesc(papers []paper.Paper) {
	sort.SliceStable(papers, func(i, j int) bool {
		ti, _ := time.Parse(time.RFC3339, papers[i].DateAdded)
		tj, _ := time.Parse(time.RFC3339, papers[j].DateAdded)
		return ti.After(tj)
	})
}

// dedupe returns a copy of values with duplicates removed, preserving
// first-occurrence order.
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// removeString returns values without any occurrence of target.
func removeString(values []string, target string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}
