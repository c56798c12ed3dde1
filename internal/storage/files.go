package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Gateway persists PDF binaries under a storage directory. It is a
// byte-for-byte pass-through to the filesystem: reads fail when the
// path is missing, writes overwrite unconditionally.
type Gateway struct {
	dir string
}

// NewGateway creates a gateway rooted at dir.
func NewGateway(dir string) *Gateway {
	return &Gateway{dir: dir}
}

// Dir returns the storage directory.
func (g *Gateway) Dir() string {
	return g.dir
}

// EnsureDir creates the storage directory if it does not exist.
func (g *Gateway) EnsureDir() error {
	if err := os.MkdirAll(g.dir, 0755); err != nil {
		return fmt.Errorf("creating storage directory: %w", err)
	}
	return nil
}

// Store writes data to <dir>/<name> and returns the absolute path
// written. The storage directory is created on demand.
func (g *Gateway) Store(name string, data []byte) (string, error) {
	if err := g.EnsureDir(); err != nil {
		return "", err
	}

	path := filepath.Join(g.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}

// Remove deletes a stored file by name. Used to roll back a binary
// write when the catalog write that follows it fails.
func (g *Gateway) Remove(name string) error {
	if err := os.Remove(filepath.Join(g.dir, name)); err != nil {
		return fmt.Errorf("removing %s: %w", name, err)
	}
	return nil
}

// Exists reports whether a file exists at path.
func (g *Gateway) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ReadFile reads the file at path.
func (g *Gateway) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes data to path, overwriting any existing content.
func (g *Gateway) WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
