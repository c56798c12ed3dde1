package main

import (
	"github.com/spf13/cobra"

	"github.com/paperdesk/paperdesk/internal/metadata"
	"github.com/paperdesk/paperdesk/internal/paper"
)

var (
	updateAuthors string
	updateJournal string
	updateYear    string
	updateDOI     string
)

// UpdateResponse is the JSON response for the update command.
type UpdateResponse struct {
	Status string       `json:"status"`
	Paper  *paper.Paper `json:"paper"`
}

var updateCmd = &cobra.Command{
	Use:   "update <paper-id>",
	Short: "Edit a paper's bibliographic fields",
	Long: `Edit the bibliographic fields of a paper. Only the flags you pass
change; omitted fields keep their current value. Pass an empty string
to clear a field.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lib := mustOpenLibrary()

		current, err := lib.Catalog.GetPaper(args[0])
		if err != nil {
			exitWithError(exitCodeFor(err), "updating paper: %v", err)
		}

		bib := metadata.Metadata{
			Authors: current.Authors,
			Journal: current.Journal,
			Year:    current.Year,
			DOI:     current.DOI,
		}
		if cmd.Flags().Changed("authors") {
			bib.Authors = updateAuthors
		}
		if cmd.Flags().Changed("journal") {
			bib.Journal = updateJournal
		}
		if cmd.Flags().Changed("year") {
			bib.Year = updateYear
		}
		if cmd.Flags().Changed("doi") {
			bib.DOI = updateDOI
		}

		updated, err := lib.Catalog.UpdateMetadata(args[0], bib)
		if err != nil {
			exitWithError(exitCodeFor(err), "updating paper: %v", err)
		}

		if humanOutput {
			outputHuman("Updated paper %s: %s\n", updated.ID, updated.OriginalName)
		} else {
			outputJSON(UpdateResponse{Status: "updated", Paper: updated})
		}
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateAuthors, "authors", "", "Author list")
	updateCmd.Flags().StringVar(&updateJournal, "journal", "", "Journal or publisher")
	updateCmd.Flags().StringVar(&updateYear, "year", "", "Publication year")
	updateCmd.Flags().StringVar(&updateDOI, "doi", "", "DOI")
	rootCmd.AddCommand(updateCmd)
}
