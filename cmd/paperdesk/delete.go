package main

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <paper-id>",
	Short: "Delete a paper from the catalog",
	Long: `Delete a paper's catalog record and remove it from every project.
The stored PDF binary is kept; the catalog record and the file are
separate things.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lib := mustOpenLibrary()

		if err := lib.DeletePaper(args[0]); err != nil {
			exitWithError(exitCodeFor(err), "deleting paper: %v", err)
		}

		if humanOutput {
			outputHuman("Deleted paper %s\n", args[0])
		} else {
			outputJSON(StatusResponse{Status: "deleted"})
		}
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
