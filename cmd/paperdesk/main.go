// Package main provides the paperdesk CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/paperdesk/paperdesk/internal/config"
	"github.com/paperdesk/paperdesk/internal/library"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	// Pick up PAPERDESK_* overrides from a local .env if present
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "paperdesk",
	Short: "Local research-paper organizer",
	Long: `paperdesk organizes a local library of research PDFs.

Core features:
  - Paper catalog with categories (tags) and per-category counts
  - Projects: named collections of papers
  - Heuristic PDF metadata extraction (title, authors, journal, year, DOI)
  - Substring search plus a rebuildable SQLite full-text index

Data is stored as plain JSON snapshots with an ephemeral SQLite cache
for queries. All commands output JSON by default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// getStartingDirectory returns the directory to start searching for a
// library. Checks PAPERDESK_LIBRARY, then the global config, then the
// current working directory.
func getStartingDirectory() (string, error) {
	if root := os.Getenv("PAPERDESK_LIBRARY"); root != "" {
		return config.ExpandPath(root), nil
	}
	if root := config.GetLibraryPath(); root != "" {
		return root, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return cwd, nil
}

// mustFindLibrary finds and validates the library, exits on error.
// Returns the library root path.
func mustFindLibrary() string {
	start, err := getStartingDirectory()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	root, err := config.FindLibrary(start)
	if err != nil {
		exitWithError(ExitConfigError, "%v (run 'paperdesk init' to create one)", err)
	}
	return root
}

// mustOpenLibrary opens the library at the discovered root, exits on
// error.
func mustOpenLibrary() *library.Library {
	root := mustFindLibrary()
	lib, err := library.Open(root)
	if err != nil {
		exitWithError(ExitConfigError, "opening library: %v", err)
	}
	return lib
}
