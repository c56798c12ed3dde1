package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/paperdesk/paperdesk/internal/config"
	"github.com/paperdesk/paperdesk/internal/paper"
	"github.com/paperdesk/paperdesk/internal/project"
	"github.com/paperdesk/paperdesk/internal/storage"
)

var initSetDefault bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a new paperdesk library",
	Long: `Create a new paperdesk library at the given path (default: current
directory). Seeds the paper collection with the starter categories and
writes empty snapshots.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			exitWithError(ExitError, "resolving path: %v", err)
		}

		if config.IsLibrary(abs) {
			exitWithError(ExitConfigError, "already a paperdesk library: %s", abs)
		}

		if err := os.MkdirAll(config.CachePath(abs), 0755); err != nil {
			exitWithError(ExitError, "creating library directories: %v", err)
		}

		if err := storage.SavePapers(config.PapersPath(abs), paper.NewDatabase()); err != nil {
			exitWithError(ExitError, "seeding paper snapshot: %v", err)
		}
		if err := storage.SaveProjects(config.ProjectsPath(abs), project.NewDatabase()); err != nil {
			exitWithError(ExitError, "seeding project snapshot: %v", err)
		}

		cfg := &config.Config{}
		if err := cfg.Save(abs); err != nil {
			exitWithError(ExitError, "writing config: %v", err)
		}

		if initSetDefault {
			if err := config.SaveGlobalConfig(&config.GlobalConfig{LibraryPath: abs}); err != nil {
				exitWithError(ExitError, "writing global config: %v", err)
			}
		}

		if humanOutput {
			outputHuman("Initialized paperdesk library at %s\n", abs)
		} else {
			outputJSON(StatusResponse{Status: "initialized", Path: abs})
		}
	},
}

func init() {
	initCmd.Flags().BoolVar(&initSetDefault, "default", false, "Record this library as the global default")
	rootCmd.AddCommand(initCmd)
}
