package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/paperdesk/paperdesk/internal/paper"
	"github.com/paperdesk/paperdesk/internal/project"
	"github.com/paperdesk/paperdesk/internal/storage"
)

// Title truncation length for list output.
const ListTitleMaxLen = 50

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or
// JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// exitCodeFor maps storage and lookup errors to exit codes.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrCorruptSnapshot):
		return ExitDataError
	case errors.Is(err, paper.ErrPaperNotFound),
		errors.Is(err, project.ErrProjectNotFound):
		return ExitDataError
	default:
		return ExitError
	}
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// formatBytes formats bytes in a human-readable way.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// printPapersHuman prints papers in human-readable list format.
func printPapersHuman(papers []paper.Paper) {
	for _, p := range papers {
		fmt.Printf("%s  %s\n", p.ID, truncateString(p.OriginalName, ListTitleMaxLen))
		if len(p.Tags) > 0 {
			fmt.Printf("    tags: %v\n", p.Tags)
		}
		if p.Authors != "" || p.Year != "" {
			fmt.Printf("    %s (%s)\n", p.Authors, p.Year)
		}
		fmt.Printf("    %s, added %s\n", formatBytes(p.FileSize), p.DateAdded)
	}
}
