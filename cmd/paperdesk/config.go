package main

import (
	"github.com/spf13/cobra"

	"github.com/paperdesk/paperdesk/internal/config"
)

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	PDFDir      string `json:"pdf_dir,omitempty"`
	LibraryPath string `json:"library_path,omitempty"`
}

// ConfigSetResponse is the response for config set commands.
type ConfigSetResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get and set configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		root := mustFindLibrary()

		cfg, err := config.Load(root)
		if err != nil {
			exitWithError(ExitConfigError, "loading config: %v", err)
		}

		resp := ConfigResponse{
			PDFDir:      cfg.ResolvePDFDir(root),
			LibraryPath: config.GetLibraryPath(),
		}
		if humanOutput {
			outputHuman("pdf_dir:      %s\n", resp.PDFDir)
			if resp.LibraryPath != "" {
				outputHuman("library_path: %s\n", resp.LibraryPath)
			}
		} else {
			outputJSON(resp)
		}
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Keys:
  pdf_dir       library-local PDF storage directory
  library_path  global default library root (stored in the user config)`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key, value := args[0], args[1]

		switch key {
		case "pdf_dir":
			root := mustFindLibrary()
			if err := config.ValidatePDFDir(value); err != nil {
				exitWithError(ExitConfigError, "%v", err)
			}
			cfg, err := config.Load(root)
			if err != nil {
				exitWithError(ExitConfigError, "loading config: %v", err)
			}
			cfg.PDFDir = value
			if err := cfg.Save(root); err != nil {
				exitWithError(ExitError, "saving config: %v", err)
			}

		case "library_path":
			if err := config.SaveGlobalConfig(&config.GlobalConfig{
				LibraryPath: config.ExpandPath(value),
			}); err != nil {
				exitWithError(ExitError, "saving global config: %v", err)
			}

		default:
			exitWithError(ExitError, "unknown config key: %s", key)
		}

		if humanOutput {
			outputHuman("Set %s = %s\n", key, value)
		} else {
			outputJSON(ConfigSetResponse{Status: "updated", Key: key, Value: value})
		}
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
