// Package projects is the query/mutation API over the project
// collection: membership management and paper-count derivation. Paper
// data is reached only through the PaperLookup collaborator, keeping
// the two repositories independently testable.
package projects

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/paperdesk/paperdesk/internal/paper"
	"github.com/paperdesk/paperdesk/internal/project"
	"github.com/paperdesk/paperdesk/internal/storage"
)

// PaperLookup is the read-only capability the repository needs from
// the paper side.
type PaperLookup interface {
	AllPapers() ([]paper.Paper, error)
}

// Repository operates on the project collection snapshot at a fixed
// path.
type Repository struct {
	path   string
	papers PaperLookup
}

// New creates a project repository over the snapshot at path.
func New(path string, papers PaperLookup) *Repository {
	return &Repository{path: path, papers: papers}
}

// AllProjects returns every project sorted by DateCreated descending.
func (r *Repository) AllProjects() ([]project.Project, error) {
	db, err := storage.LoadProjects(r.path)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(db.Projects, func(i, j int) bool {
		ti, _ := time.Parse(time.RFC3339, db.Projects[i].DateCreated)
		tj, _ := time.Parse(time.RFC3339, db.Projects[j].DateCreated)
		return ti.After(tj)
	})
	return db.Projects, nil
}

// Get returns the project with the given id.
func (r *Repository) Get(id string) (*project.Project, error) {
	db, err := storage.LoadProjects(r.path)
	if err != nil {
		return nil, err
	}

	for i := range db.Projects {
		if db.Projects[i].ID == id {
			return &db.Projects[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", project.ErrProjectNotFound, id)
}

// Create allocates the next id, stamps the creation time, and persists
// a project with no members.
func (r *Repository) Create(name, description, color string) (*project.Project, error) {
	p := project.Project{
		Name:        name,
		Description: description,
		Color:       color,
	}
	if err := p.ValidateForCreate(); err != nil {
		return nil, err
	}

	db, err := storage.LoadProjects(r.path)
	if err != nil {
		return nil, err
	}

	db.LastID++
	p.ID = strconv.Itoa(db.LastID)
	p.DateCreated = time.Now().Format(time.RFC3339)
	p.PaperIDs = []string{}

	db.Projects = append(db.Projects, p)
	if err := storage.SaveProjects(r.path, db); err != nil {
		return nil, err
	}
	return &p, nil
}

// AddPaper adds a paper to a project's membership. Idempotent: adding
// an existing member is a no-op. PaperCount tracks len(PaperIDs) in
// lock-step.
func (r *Repository) AddPaper(projectID, paperID string) error {
	db, err := storage.LoadProjects(r.path)
	if err != nil {
		return err
	}

	for i := range db.Projects {
		if db.Projects[i].ID != projectID {
			continue
		}
		if db.Projects[i].HasPaper(paperID) {
			return nil
		}
		db.Projects[i].PaperIDs = append(db.Projects[i].PaperIDs, paperID)
		db.Projects[i].PaperCount = len(db.Projects[i].PaperIDs)
		return storage.SaveProjects(r.path, db)
	}
	return fmt.Errorf("%w: %s", project.ErrProjectNotFound, projectID)
}

// RemovePaper removes a paper from a project's membership. Idempotent.
func (r *Repository) RemovePaper(projectID, paperID string) error {
	db, err := storage.LoadProjects(r.path)
	if err != nil {
		return err
	}

	for i := range db.Projects {
		if db.Projects[i].ID != projectID {
			continue
		}
		if !db.Projects[i].HasPaper(paperID) {
			return nil
		}

		kept := db.Projects[i].PaperIDs[:0:0]
		for _, id := range db.Projects[i].PaperIDs {
			if id != paperID {
				kept = append(kept, id)
			}
		}
		db.Projects[i].PaperIDs = kept
		db.Projects[i].PaperCount = len(kept)
		return storage.SaveProjects(r.path, db)
	}
	return fmt.Errorf("%w: %s", project.ErrProjectNotFound, projectID)
}

// RemovePaperEverywhere removes a paper from every project that holds
// it. Used when a paper is deleted from the catalog.
func (r *Repository) RemovePaperEverywhere(paperID string) error {
	db, err := storage.LoadProjects(r.path)
	if err != nil {
		return err
	}

	changed := false
	for i := range db.Projects {
		if !db.Projects[i].HasPaper(paperID) {
			continue
		}
		kept := db.Projects[i].PaperIDs[:0:0]
		for _, id := range db.Projects[i].PaperIDs {
			if id != paperID {
				kept = append(kept, id)
			}
		}
		db.Projects[i].PaperIDs = kept
		db.Projects[i].PaperCount = len(kept)
		changed = true
	}
	if !changed {
		return nil
	}
	return storage.SaveProjects(r.path, db)
}

// ProjectPapers returns the member papers of a project, in membership
// order.
func (r *Repository) ProjectPapers(projectID string) ([]paper.Paper, error) {
	proj, err := r.Get(projectID)
	if err != nil {
		return nil, err
	}

	all, err := r.papers.AllPapers()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]paper.Paper, len(all))
	for _, p := range all {
		byID[p.ID] = p
	}

	var members []paper.Paper
	for _, id := range proj.PaperIDs {
		if p, ok := byID[id]; ok {
			members = append(members, p)
		}
	}
	return members, nil
}

// Delete removes the project record. Clearing the project id off
// member papers is handled one level up by the library service.
func (r *Repository) Delete(projectID string) error {
	db, err := storage.LoadProjects(r.path)
	if err != nil {
		return err
	}

	found := false
	kept := db.Projects[:0]
	for _, p := range db.Projects {
		if p.ID == projectID {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return fmt.Errorf("%w: %s", project.ErrProjectNotFound, projectID)
	}

	db.Projects = kept
	return storage.SaveProjects(r.path, db)
}
