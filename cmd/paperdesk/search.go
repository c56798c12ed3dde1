package main

import (
	"github.com/spf13/cobra"

	"github.com/paperdesk/paperdesk/internal/config"
	"github.com/paperdesk/paperdesk/internal/paper"
	"github.com/paperdesk/paperdesk/internal/storage"
)

const DefaultSearchLimit = 50

var (
	searchUseIndex bool
	searchLimit    int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search papers by name or tag",
	Long: `Search papers. By default this is a case-insensitive substring match
over file name, original name, and tags. With --index the query runs
against the SQLite full-text index instead (rebuild it with
'paperdesk index' after mutations).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lib := mustOpenLibrary()

		var papers []paper.Paper
		var err error
		if searchUseIndex {
			papers, err = searchIndexed(lib.Root, args[0])
		} else {
			papers, err = lib.Catalog.Search(args[0])
		}
		if err != nil {
			exitWithError(exitCodeFor(err), "searching: %v", err)
		}

		if humanOutput {
			printPapersHuman(papers)
		} else {
			outputJSON(PaperListResponse{Count: len(papers), Papers: papers})
		}
	},
}

// searchIndexed queries the SQLite full-text cache.
func searchIndexed(root, query string) ([]paper.Paper, error) {
	db, err := storage.OpenDB(config.CacheDBPath(root))
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.Search(query, searchLimit)
}

func init() {
	searchCmd.Flags().BoolVar(&searchUseIndex, "index", false, "Use the SQLite full-text index")
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results for indexed search")
	rootCmd.AddCommand(searchCmd)
}
