package main

import (
	"github.com/spf13/cobra"

	"github.com/paperdesk/paperdesk/internal/paper"
)

var listCategory string

// PaperListResponse is the JSON response for paper list commands.
type PaperListResponse struct {
	Count  int           `json:"count"`
	Papers []paper.Paper `json:"papers"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List papers, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		lib := mustOpenLibrary()

		var papers []paper.Paper
		var err error
		if listCategory != "" {
			papers, err = lib.Catalog.PapersByCategory(listCategory)
		} else {
			papers, err = lib.Catalog.AllPapers()
		}
		if err != nil {
			exitWithError(exitCodeFor(err), "listing papers: %v", err)
		}

		if humanOutput {
			printPapersHuman(papers)
		} else {
			outputJSON(PaperListResponse{Count: len(papers), Papers: papers})
		}
	},
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "Only papers tagged with this category")
	rootCmd.AddCommand(listCmd)
}
