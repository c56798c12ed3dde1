package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/paperdesk/paperdesk/internal/config"
	"github.com/paperdesk/paperdesk/internal/storage"
)

// InfoResponse is the JSON response for the info command.
type InfoResponse struct {
	Root       string `json:"root"`
	PDFDir     string `json:"pdf_dir"`
	Papers     int    `json:"papers"`
	Categories int    `json:"categories"`
	Projects   int    `json:"projects"`
	CacheSize  int64  `json:"cache_size,omitempty"`
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show library paths and collection counts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		lib := mustOpenLibrary()

		pdb, err := storage.LoadPapers(config.PapersPath(lib.Root))
		if err != nil {
			exitWithError(exitCodeFor(err), "reading papers snapshot: %v", err)
		}
		jdb, err := storage.LoadProjects(config.ProjectsPath(lib.Root))
		if err != nil {
			exitWithError(exitCodeFor(err), "reading projects snapshot: %v", err)
		}

		info := InfoResponse{
			Root:       lib.Root,
			PDFDir:     lib.Gateway.Dir(),
			Papers:     len(pdb.Papers),
			Categories: len(pdb.Categories),
			Projects:   len(jdb.Projects),
		}
		if stat, err := os.Stat(config.CacheDBPath(lib.Root)); err == nil {
			info.CacheSize = stat.Size()
		}

		if humanOutput {
			outputHuman("Library:    %s\n", info.Root)
			outputHuman("PDF dir:    %s\n", info.PDFDir)
			outputHuman("Papers:     %d\n", info.Papers)
			outputHuman("Categories: %d\n", info.Categories)
			outputHuman("Projects:   %d\n", info.Projects)
			if info.CacheSize > 0 {
				outputHuman("Cache:      %s\n", formatBytes(info.CacheSize))
			}
		} else {
			outputJSON(info)
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
