package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperdesk/paperdesk/internal/config"
	"github.com/paperdesk/paperdesk/internal/project"
	"github.com/paperdesk/paperdesk/internal/storage"
)

// newTestLibrary sets up a library root with a source file to import.
func newTestLibrary(t *testing.T) (*Library, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(config.PaperdeskPath(root), 0755))

	src := filepath.Join(t.TempDir(), "upload.pdf")
	require.NoError(t, os.WriteFile(src, []byte("not really a pdf"), 0644))

	lib, err := Open(root)
	require.NoError(t, err)
	return lib, src
}

func TestImportPDF(t *testing.T) {
	lib, src := newTestLibrary(t)

	result, err := lib.ImportPDF(src, []string{"Physics"}, nil)
	require.NoError(t, err)

	// Garbage bytes: extraction fails, fields stay blank, import succeeds.
	assert.True(t, result.ExtractionFailed)
	assert.Empty(t, result.Paper.Authors)

	assert.Equal(t, "1", result.Paper.ID)
	assert.Equal(t, "upload.pdf", result.Paper.OriginalName)
	assert.Equal(t, []string{"Physics"}, result.Paper.Tags)
	assert.Equal(t, int64(len("not really a pdf")), result.Paper.FileSize)

	// The binary landed in storage and the catalog points at it.
	assert.True(t, lib.Gateway.Exists(result.Paper.FilePath))

	got, err := lib.Catalog.GetPaper("1")
	require.NoError(t, err)
	assert.Equal(t, result.Paper.FilePath, got.FilePath)
}

func TestImportPDF_IntoProject(t *testing.T) {
	lib, src := newTestLibrary(t)

	proj, err := lib.Projects.Create("thesis", "", "")
	require.NoError(t, err)

	result, err := lib.ImportPDF(src, nil, []string{proj.ID})
	require.NoError(t, err)

	// Membership is recorded on both sides.
	assert.Equal(t, []string{proj.ID}, result.Paper.ProjectIDs)

	got, err := lib.Projects.Get(proj.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{result.Paper.ID}, got.PaperIDs)
	assert.Equal(t, 1, got.PaperCount)
}

func TestImportPDF_RollbackOnCatalogFailure(t *testing.T) {
	lib, src := newTestLibrary(t)

	// A corrupt catalog snapshot makes the catalog write fail after the
	// binary is stored; the import must remove the stored file again.
	require.NoError(t, os.WriteFile(config.PapersPath(lib.Root), []byte("{broken"), 0644))

	_, err := lib.ImportPDF(src, nil, nil)
	require.ErrorIs(t, err, storage.ErrCorruptSnapshot)

	assert.False(t, lib.Gateway.Exists(filepath.Join(lib.Gateway.Dir(), "upload.pdf")),
		"orphaned binary left behind after failed import")
}

func TestImportPDF_UnknownProjectWritesNothing(t *testing.T) {
	lib, src := newTestLibrary(t)

	_, err := lib.ImportPDF(src, nil, []string{"99"})
	require.ErrorIs(t, err, project.ErrProjectNotFound)

	// Neither the catalog record nor the binary survives the failure.
	papers, err := lib.Catalog.AllPapers()
	require.NoError(t, err)
	assert.Empty(t, papers, "catalog record committed despite failed import")
	assert.False(t, lib.Gateway.Exists(filepath.Join(lib.Gateway.Dir(), "upload.pdf")),
		"binary left behind after failed import")
}

func TestDeletePaper_CascadesOutOfProjects(t *testing.T) {
	lib, src := newTestLibrary(t)

	proj, err := lib.Projects.Create("thesis", "", "")
	require.NoError(t, err)

	result, err := lib.ImportPDF(src, nil, []string{proj.ID})
	require.NoError(t, err)

	require.NoError(t, lib.DeletePaper(result.Paper.ID))

	got, err := lib.Projects.Get(proj.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PaperIDs)
	assert.Zero(t, got.PaperCount)
}

func TestDeleteProject_CascadesOffPapers(t *testing.T) {
	lib, src := newTestLibrary(t)

	proj, err := lib.Projects.Create("thesis", "", "")
	require.NoError(t, err)

	result, err := lib.ImportPDF(src, nil, []string{proj.ID})
	require.NoError(t, err)

	require.NoError(t, lib.DeleteProject(proj.ID))

	got, err := lib.Catalog.GetPaper(result.Paper.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ProjectIDs, "stale project reference survived delete")
}

func TestAddRemovePaperToProject(t *testing.T) {
	lib, src := newTestLibrary(t)

	proj, err := lib.Projects.Create("thesis", "", "")
	require.NoError(t, err)
	result, err := lib.ImportPDF(src, nil, nil)
	require.NoError(t, err)

	require.NoError(t, lib.AddPaperToProject(proj.ID, result.Paper.ID))
	require.NoError(t, lib.AddPaperToProject(proj.ID, result.Paper.ID)) // idempotent

	gotProj, err := lib.Projects.Get(proj.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{result.Paper.ID}, gotProj.PaperIDs)

	gotPaper, err := lib.Catalog.GetPaper(result.Paper.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{proj.ID}, gotPaper.ProjectIDs)

	require.NoError(t, lib.RemovePaperFromProject(proj.ID, result.Paper.ID))

	gotProj, err = lib.Projects.Get(proj.ID)
	require.NoError(t, err)
	assert.Empty(t, gotProj.PaperIDs)

	gotPaper, err = lib.Catalog.GetPaper(result.Paper.ID)
	require.NoError(t, err)
	assert.Empty(t, gotPaper.ProjectIDs)
}

func TestRebuildCache(t *testing.T) {
	lib, src := newTestLibrary(t)

	_, err := lib.ImportPDF(src, []string{"Physics"}, nil)
	require.NoError(t, err)

	n, err := lib.RebuildCache()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	db, err := storage.OpenDB(config.CacheDBPath(lib.Root))
	require.NoError(t, err)
	defer db.Close()

	count, err := db.CountPapers()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	hits, err := db.Search("upload", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "upload.pdf", hits[0].OriginalName)
}
