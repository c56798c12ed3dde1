// Package config handles library configuration and path resolution.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents library configuration stored in .paperdesk/config.json.
type Config struct {
	PDFDir string `json:"pdf_dir,omitempty"` // PDF storage directory; defaults to <root>/papers
}

const (
	PaperdeskDir = ".paperdesk"
	ConfigFile   = "config.json"
	PapersFile   = "papers.json"
	ProjectsFile = "projects.json"
	CacheDir     = "cache"
	CacheDBFile  = "catalog.db"
	PDFDirName   = "papers"
)

// PaperdeskPath returns the path to the .paperdesk directory from a root path.
func PaperdeskPath(root string) string {
	return filepath.Join(root, PaperdeskDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, PaperdeskDir, ConfigFile)
}

// PapersPath returns the path to the paper collection snapshot.
func PapersPath(root string) string {
	return filepath.Join(root, PaperdeskDir, PapersFile)
}

// ProjectsPath returns the path to the project collection snapshot.
func ProjectsPath(root string) string {
	return filepath.Join(root, PaperdeskDir, ProjectsFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, PaperdeskDir, CacheDir)
}

// CacheDBPath returns the path to the SQLite query cache.
func CacheDBPath(root string) string {
	return filepath.Join(root, PaperdeskDir, CacheDir, CacheDBFile)
}

// IsLibrary checks if the given path contains a paperdesk library.
func IsLibrary(root string) bool {
	info, err := os.Stat(PaperdeskPath(root))
	return err == nil && info.IsDir()
}

// FindLibrary walks up from the given path to find a paperdesk library.
// Returns the library root path or an error if not found.
func FindLibrary(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsLibrary(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a paperdesk library (no .paperdesk directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the library at the given root.
// A missing config file yields the default configuration.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the library at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ResolvePDFDir returns the PDF storage directory for a library,
// falling back to <root>/papers when not configured.
func (c *Config) ResolvePDFDir(root string) string {
	if c.PDFDir != "" {
		return ExpandPath(c.PDFDir)
	}
	return filepath.Join(root, PDFDirName)
}

// ValidatePDFDir checks that a configured PDF directory exists.
func ValidatePDFDir(path string) error {
	if path == "" {
		return nil // Empty is allowed (defaults apply)
	}

	expandedPath := ExpandPath(path)

	info, err := os.Stat(expandedPath)
	if err != nil {
		return fmt.Errorf("path does not exist: %s", expandedPath)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", expandedPath)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
