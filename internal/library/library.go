// Package library wires the catalog, the project repository, and the
// storage gateway into the user-facing operations: importing a PDF,
// deleting papers and projects with referential cascades, and
// rebuilding the query cache.
package library

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/paperdesk/paperdesk/internal/catalog"
	"github.com/paperdesk/paperdesk/internal/config"
	"github.com/paperdesk/paperdesk/internal/metadata"
	"github.com/paperdesk/paperdesk/internal/paper"
	"github.com/paperdesk/paperdesk/internal/projects"
	"github.com/paperdesk/paperdesk/internal/storage"
)

// Library holds the constructed repositories for one library root.
// Repositories are explicit collaborators passed by reference; there
// is no module-level state.
type Library struct {
	Root     string
	Catalog  *catalog.Catalog
	Projects *projects.Repository
	Gateway  *storage.Gateway
}

// Open constructs a library rooted at root, reading its configuration
// for the PDF storage directory.
func Open(root string) (*Library, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	cat := catalog.New(config.PapersPath(root))
	return &Library{
		Root:     root,
		Catalog:  cat,
		Projects: projects.New(config.ProjectsPath(root), cat),
		Gateway:  storage.NewGateway(cfg.ResolvePDFDir(root)),
	}, nil
}

// ImportResult reports an import: the created paper and whether the
// metadata heuristics had to be skipped.
type ImportResult struct {
	Paper            *paper.Paper
	ExtractionFailed bool
}

// ImportPDF copies the PDF at srcPath into storage and adds a catalog
// record with heuristically extracted metadata. The two writes are a
// two-phase commit: the binary is stored first, and removed again if
// the catalog write fails, so no orphaned file survives a failed
// import. Target project ids are checked before anything is written,
// so an unknown project fails the import with no partial state.
// Metadata extraction failure never fails the import; it only leaves
// the bibliographic fields blank.
func (l *Library) ImportPDF(srcPath string, tags, projectIDs []string) (*ImportResult, error) {
	data, err := l.Gateway.ReadFile(srcPath)
	if err != nil {
		return nil, err
	}

	// Check every target project up front so a bad id fails the import
	// before anything is written.
	for _, projectID := range projectIDs {
		if _, err := l.Projects.Get(projectID); err != nil {
			return nil, err
		}
	}

	result := &ImportResult{}
	bib, err := metadata.ExtractFromFile(srcPath)
	if err != nil {
		result.ExtractionFailed = true
		bib = metadata.Metadata{}
	}

	name := filepath.Base(srcPath)
	storedPath, err := l.Gateway.Store(name, data)
	if err != nil {
		return nil, err
	}

	p, err := l.Catalog.AddPaper(catalog.FileMeta{
		Name: name,
		Size: int64(len(data)),
		Path: storedPath,
	}, tags, projectIDs, bib)
	if err != nil {
		// Roll back the binary so a failed catalog write leaves no
		// orphaned file.
		if rmErr := l.Gateway.Remove(name); rmErr != nil {
			return nil, fmt.Errorf("%w (rollback failed: %v)", err, rmErr)
		}
		return nil, err
	}

	for _, projectID := range projectIDs {
		if err := l.Projects.AddPaper(projectID, p.ID); err != nil {
			return nil, err
		}
	}

	result.Paper = p
	return result, nil
}

// DeletePaper removes a paper from the catalog and cascades the
// removal through every project's membership list.
func (l *Library) DeletePaper(id string) error {
	if err := l.Catalog.DeletePaper(id); err != nil {
		return err
	}
	return l.Projects.RemovePaperEverywhere(id)
}

// AddPaperToProject records membership on both sides: the project's
// paper list and the paper's project list. Idempotent.
func (l *Library) AddPaperToProject(projectID, paperID string) error {
	if _, err := l.Catalog.GetPaper(paperID); err != nil {
		return err
	}
	if err := l.Projects.AddPaper(projectID, paperID); err != nil {
		return err
	}
	return l.Catalog.SetProjectRef(paperID, projectID)
}

// RemovePaperFromProject removes membership on both sides. Idempotent.
func (l *Library) RemovePaperFromProject(projectID, paperID string) error {
	if err := l.Projects.RemovePaper(projectID, paperID); err != nil {
		return err
	}
	return l.Catalog.RemoveProjectRef(paperID, projectID)
}

// DeleteProject removes the project record and cascades the project id
// off every member paper.
func (l *Library) DeleteProject(projectID string) error {
	if err := l.Projects.Delete(projectID); err != nil {
		return err
	}
	return l.Catalog.ClearProjectRefs(projectID)
}

// RebuildCache rebuilds the SQLite query cache from the snapshots.
// Returns the number of papers indexed.
func (l *Library) RebuildCache() (int, error) {
	pdb, err := storage.LoadPapers(config.PapersPath(l.Root))
	if err != nil {
		return 0, err
	}
	jdb, err := storage.LoadProjects(config.ProjectsPath(l.Root))
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(config.CachePath(l.Root), 0755); err != nil {
		return 0, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := storage.OpenDB(config.CacheDBPath(l.Root))
	if err != nil {
		return 0, err
	}
	defer db.Close()

	return db.Rebuild(pdb, jdb)
}
