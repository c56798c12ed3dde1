package main

import (
	"github.com/spf13/cobra"
)

// IndexResponse is the JSON response for the index command.
type IndexResponse struct {
	Status string `json:"status"`
	Papers int    `json:"papers"`
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the SQLite query cache",
	Long: `Rebuild the SQLite query cache (including the full-text index) from
the JSON snapshots. The cache is ephemeral and can be rebuilt at any
time; the snapshots remain the source of truth.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		lib := mustOpenLibrary()

		n, err := lib.RebuildCache()
		if err != nil {
			exitWithError(exitCodeFor(err), "rebuilding cache: %v", err)
		}

		if humanOutput {
			outputHuman("Indexed %d papers\n", n)
		} else {
			outputJSON(IndexResponse{Status: "indexed", Papers: n})
		}
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
