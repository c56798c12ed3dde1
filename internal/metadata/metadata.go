// Package metadata extracts best-effort bibliographic fields from PDF
// text. It is a heuristic convenience, not a citation parser: no field
// is validated against an external registry, and a miss yields an
// empty field rather than an error.
package metadata

import (
	"regexp"
	"strings"
)

// Metadata holds the extracted bibliographic fields. Any of them may
// be empty when the heuristics find nothing.
type Metadata struct {
	Title   string `json:"title,omitempty"`
	Authors string `json:"authors,omitempty"`
	Journal string `json:"journal,omitempty"`
	Year    string `json:"year,omitempty"`
	DOI     string `json:"doi,omitempty"`
}

// DOI pattern: 10.XXXX/... where XXXX is 4-9 digits.
var doiPattern = regexp.MustCompile(`(?i)10\.\d{4,9}/[-._;()/:A-Z0-9]+`)

// Year pattern: a word-bounded 4-digit number in 1900-2099.
var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// knownJournals is the closed list of journal/publisher names the
// journal heuristic recognizes, checked in order.
var knownJournals = []string{
	"Nature", "Science", "IEEE", "ACM", "Springer",
	"Elsevier", "PLOS", "Cell", "Lancet",
}

// authorScanLines is how many leading lines the author heuristic scans.
const authorScanLines = 10

// Extract runs every heuristic over the extracted plain text.
func Extract(text string) Metadata {
	return Metadata{
		Title:   guessTitle(text),
		Authors: guessAuthors(text),
		Journal: guessJournal(text),
		Year:    guessYear(text),
		DOI:     guessDOI(text),
	}
}

// guessTitle returns the first line of text, with no cleanup beyond
// what the text layer already did.
func guessTitle(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return line
}

// guessAuthors scans the leading lines for the first one that looks
// like an author list: contains a comma, or has three or more
// whitespace-separated tokens.
func guessAuthors(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > authorScanLines {
		lines = lines[:authorScanLines]
	}

	for _, line := range lines {
		if strings.Contains(line, ",") || len(strings.Fields(line)) >= 3 {
			return line
		}
	}
	return ""
}

// guessJournal returns the first known journal name appearing anywhere
// in the text as an exact substring.
func guessJournal(text string) string {
	for _, j := range knownJournals {
		if strings.Contains(text, j) {
			return j
		}
	}
	return ""
}

// guessYear returns the first plausible publication year in the text.
func guessYear(text string) string {
	return yearPattern.FindString(text)
}

// guessDOI returns the first DOI-shaped token in the text, with
// trailing punctuation stripped.
func guessDOI(text string) string {
	match := doiPattern.FindString(text)
	if match == "" {
		return ""
	}
	return strings.TrimRight(match, ".,;:)")
}
