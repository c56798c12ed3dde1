package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/paperdesk/paperdesk/internal/paper"
	"github.com/paperdesk/paperdesk/internal/project"
)

// DB wraps the SQLite query cache. The cache is ephemeral: it is
// rebuilt wholesale from the JSON snapshots and never written to
// directly by catalog mutations.
type DB struct {
	db *sql.DB
}

// selectPaperFields contains the standard field list for SELECT queries.
const selectPaperFields = `id, file_name, original_name, file_path,
	date_added, file_size, tags_json, project_ids_json,
	authors, journal, year, doi`

// OpenDB opens or creates the query cache at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the cache schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS papers (
			id TEXT PRIMARY KEY,
			file_name TEXT NOT NULL,
			original_name TEXT NOT NULL,
			file_path TEXT,
			date_added TEXT NOT NULL,
			file_size INTEGER NOT NULL,
			tags_json TEXT NOT NULL,
			project_ids_json TEXT,
			authors TEXT,
			journal TEXT,
			year TEXT,
			doi TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_papers_doi ON papers(doi) WHERE doi IS NOT NULL AND doi != '';

		CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			color TEXT,
			paper_count INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			color TEXT,
			date_created TEXT,
			paper_ids_json TEXT,
			paper_count INTEGER NOT NULL
		);

		-- Full-text search virtual table (standalone, not external content)
		CREATE VIRTUAL TABLE IF NOT EXISTS papers_fts USING fts5(
			id,
			file_name,
			original_name,
			tags_text,
			authors,
			journal
		);
	`

	_, err := db.Exec(schema)
	return err
}

// Rebuild clears the cache and repopulates it from the snapshots.
// Returns the number of papers indexed.
func (d *DB) Rebuild(pdb *paper.Database, jdb *project.Database) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning rebuild: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"papers", "papers_fts", "categories", "projects"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return 0, fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	paperStmt, err := tx.Prepare(`
		INSERT INTO papers (` + selectPaperFields + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing papers insert: %w", err)
	}
	defer paperStmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO papers_fts (id, file_name, original_name, tags_text, authors, journal)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for _, p := range pdb.Papers {
		tagsJSON, err := json.Marshal(p.Tags)
		if err != nil {
			return 0, fmt.Errorf("encoding tags for %s: %w", p.ID, err)
		}
		projectIDsJSON, err := json.Marshal(p.ProjectIDs)
		if err != nil {
			return 0, fmt.Errorf("encoding project ids for %s: %w", p.ID, err)
		}

		_, err = paperStmt.Exec(p.ID, p.FileName, p.OriginalName, p.FilePath,
			p.DateAdded, p.FileSize, string(tagsJSON), string(projectIDsJSON),
			nullableString(p.Authors), nullableString(p.Journal),
			nullableString(p.Year), nullableString(p.DOI))
		if err != nil {
			return 0, fmt.Errorf("inserting paper %s: %w", p.ID, err)
		}

		_, err = ftsStmt.Exec(p.ID, p.FileName, p.OriginalName,
			strings.Join(p.Tags, " "), p.Authors, p.Journal)
		if err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", p.ID, err)
		}
	}

	catStmt, err := tx.Prepare(`
		INSERT INTO categories (id, name, color, paper_count)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing categories insert: %w", err)
	}
	defer catStmt.Close()

	for _, c := range pdb.Categories {
		if _, err := catStmt.Exec(c.ID, c.Name, c.Color, c.PaperCount); err != nil {
			return 0, fmt.Errorf("inserting category %s: %w", c.ID, err)
		}
	}

	projStmt, err := tx.Prepare(`
		INSERT INTO projects (id, name, description, color, date_created, paper_ids_json, paper_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing projects insert: %w", err)
	}
	defer projStmt.Close()

	for _, pr := range jdb.Projects {
		paperIDsJSON, err := json.Marshal(pr.PaperIDs)
		if err != nil {
			return 0, fmt.Errorf("encoding paper ids for %s: %w", pr.ID, err)
		}
		_, err = projStmt.Exec(pr.ID, pr.Name, nullableString(pr.Description),
			pr.Color, pr.DateCreated, string(paperIDsJSON), pr.PaperCount)
		if err != nil {
			return 0, fmt.Errorf("inserting project %s: %w", pr.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}

	return len(pdb.Papers), nil
}

// GetPaperByID retrieves a cached paper by its ID.
func (d *DB) GetPaperByID(id string) (*paper.Paper, error) {
	row := d.db.QueryRow(`
		SELECT `+selectPaperFields+`
		FROM papers
		WHERE id = ?
	`, id)

	return scanPaper(row)
}

// Search performs a full-text search over the cached papers. An empty
// query matches nothing; FTS5 rejects "" as a syntax error.
func (d *DB) Search(query string, limit int) ([]paper.Paper, error) {
	ftsQuery := prepareFTSQuery(query)
	if ftsQuery == "" {
		return nil, nil
	}

	rows, err := d.db.Query(`
		SELECT `+selectPaperFields+`
		FROM papers
		WHERE id IN (SELECT id FROM papers_fts WHERE papers_fts MATCH ?)
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanPapers(rows)
}

// CountPapers returns the number of cached papers.
func (d *DB) CountPapers() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM papers").Scan(&count)
	return count, err
}

// CountProjects returns the number of cached projects.
func (d *DB) CountProjects() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM projects").Scan(&count)
	return count, err
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPaper(s scanner) (*paper.Paper, error) {
	var p paper.Paper
	var filePath, tagsJSON, projectIDsJSON sql.NullString
	var authors, journal, year, doi sql.NullString

	err := s.Scan(
		&p.ID, &p.FileName, &p.OriginalName, &filePath,
		&p.DateAdded, &p.FileSize, &tagsJSON, &projectIDsJSON,
		&authors, &journal, &year, &doi,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	p.FilePath = filePath.String
	p.Authors = authors.String
	p.Journal = journal.String
	p.Year = year.String
	p.DOI = doi.String

	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &p.Tags); err != nil {
			return nil, fmt.Errorf("parsing tags for %s: %w", p.ID, err)
		}
	}
	if projectIDsJSON.Valid && projectIDsJSON.String != "" {
		if err := json.Unmarshal([]byte(projectIDsJSON.String), &p.ProjectIDs); err != nil {
			return nil, fmt.Errorf("parsing project ids for %s: %w", p.ID, err)
		}
	}

	return &p, nil
}

func scanPapers(rows *sql.Rows) ([]paper.Paper, error) {
	var papers []paper.Paper
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		papers = append(papers, *p)
	}
	return papers, rows.Err()
}

// nullableString converts an empty string to a SQL NULL.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// prepareFTSQuery prepares a user query for FTS5 matching.
func prepareFTSQuery(query string) string {
	// FTS5 uses double quotes for phrase matching
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// If query contains special chars, quote it
	if strings.ContainsAny(query, "\"*+-:(){}[]^~") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
