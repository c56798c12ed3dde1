package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PDFDir != "" {
		t.Errorf("PDFDir = %q, want empty default", cfg.PDFDir)
	}
	if got, want := cfg.ResolvePDFDir(root), filepath.Join(root, PDFDirName); got != want {
		t.Errorf("ResolvePDFDir() = %q, want %q", got, want)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(PaperdeskPath(root), 0755); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{PDFDir: "/somewhere/pdfs"}
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.PDFDir != cfg.PDFDir {
		t.Errorf("PDFDir = %q, want %q", got.PDFDir, cfg.PDFDir)
	}
	if got.ResolvePDFDir(root) != "/somewhere/pdfs" {
		t.Errorf("ResolvePDFDir() = %q", got.ResolvePDFDir(root))
	}
}

func TestFindLibrary(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, PaperdeskDir), 0755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindLibrary(nested)
	if err != nil {
		t.Fatalf("FindLibrary() error = %v", err)
	}
	// Resolve symlinks on both sides (macOS tempdirs).
	wantResolved, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(found)
	if gotResolved != wantResolved {
		t.Errorf("FindLibrary() = %q, want %q", found, root)
	}
}

func TestFindLibrary_NotFound(t *testing.T) {
	if _, err := FindLibrary(t.TempDir()); err == nil {
		t.Error("FindLibrary() expected error outside a library")
	}
}

func TestIsLibrary(t *testing.T) {
	root := t.TempDir()
	if IsLibrary(root) {
		t.Error("IsLibrary() = true for plain directory")
	}

	if err := os.MkdirAll(filepath.Join(root, PaperdeskDir), 0755); err != nil {
		t.Fatal(err)
	}
	if !IsLibrary(root) {
		t.Error("IsLibrary() = false after creating .paperdesk")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandPath("~/papers"); got != filepath.Join(home, "papers") {
		t.Errorf("ExpandPath(~/papers) = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath(/abs/path) = %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q", got)
	}
}

func TestGlobalConfig_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	// Missing file is an empty config, not an error.
	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.LibraryPath != "" {
		t.Errorf("LibraryPath = %q, want empty", cfg.LibraryPath)
	}

	if err := SaveGlobalConfig(&GlobalConfig{LibraryPath: "/data/papers"}); err != nil {
		t.Fatalf("SaveGlobalConfig() error = %v", err)
	}

	got, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if got.LibraryPath != "/data/papers" {
		t.Errorf("LibraryPath = %q, want /data/papers", got.LibraryPath)
	}
	if GetLibraryPath() != "/data/papers" {
		t.Errorf("GetLibraryPath() = %q", GetLibraryPath())
	}
}

func TestValidatePDFDir(t *testing.T) {
	if err := ValidatePDFDir(""); err != nil {
		t.Errorf("ValidatePDFDir(\"\") error = %v, want nil", err)
	}

	dir := t.TempDir()
	if err := ValidatePDFDir(dir); err != nil {
		t.Errorf("ValidatePDFDir(%q) error = %v", dir, err)
	}

	if err := ValidatePDFDir(filepath.Join(dir, "missing")); err == nil {
		t.Error("ValidatePDFDir() expected error for missing path")
	}

	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := ValidatePDFDir(file); err == nil {
		t.Error("ValidatePDFDir() expected error for non-directory")
	}
}
