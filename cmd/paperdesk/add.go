package main

import (
	"github.com/spf13/cobra"

	"github.com/paperdesk/paperdesk/internal/paper"
)

var (
	addTags     []string
	addProjects []string
)

// AddResponse is the JSON response for the add command.
type AddResponse struct {
	Status           string       `json:"status"`
	Paper            *paper.Paper `json:"paper"`
	ExtractionFailed bool         `json:"extraction_failed,omitempty"`
}

var addCmd = &cobra.Command{
	Use:   "add <file.pdf>",
	Short: "Import a PDF into the library",
	Long: `Import a PDF: copies the file into the storage directory, extracts
bibliographic metadata heuristically, and adds a catalog record. Tags
name categories; unknown categories are created on the fly. Metadata
extraction failure leaves the fields blank but never fails the import.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lib := mustOpenLibrary()

		// Ensure a category exists for every tag before tagging.
		for _, tag := range addTags {
			if _, err := lib.Catalog.AddCategory(tag); err != nil {
				exitWithError(exitCodeFor(err), "adding category %q: %v", tag, err)
			}
		}

		result, err := lib.ImportPDF(args[0], addTags, addProjects)
		if err != nil {
			exitWithError(exitCodeFor(err), "importing %s: %v", args[0], err)
		}

		if humanOutput {
			outputHuman("Added paper %s: %s\n", result.Paper.ID, result.Paper.OriginalName)
			if result.ExtractionFailed {
				outputHuman("  (metadata extraction failed; fields left blank)\n")
			}
		} else {
			outputJSON(AddResponse{
				Status:           "added",
				Paper:            result.Paper,
				ExtractionFailed: result.ExtractionFailed,
			})
		}
	},
}

func init() {
	addCmd.Flags().StringArrayVar(&addTags, "tag", nil, "Category tag (repeatable)")
	addCmd.Flags().StringArrayVar(&addProjects, "project", nil, "Project id to add the paper to (repeatable)")
	rootCmd.AddCommand(addCmd)
}
