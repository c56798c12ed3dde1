package main

import (
	"github.com/spf13/cobra"

	"github.com/paperdesk/paperdesk/internal/paper"
)

var categoryListAll bool

// CategoryListResponse is the JSON response for category list.
type CategoryListResponse struct {
	Count      int              `json:"count"`
	Categories []paper.Category `json:"categories"`
}

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Long: `List categories that have at least one paper. Use --all to include
empty categories.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		lib := mustOpenLibrary()

		var cats []paper.Category
		var err error
		if categoryListAll {
			cats, err = lib.Catalog.CategoriesWithEmpty()
		} else {
			cats, err = lib.Catalog.Categories()
		}
		if err != nil {
			exitWithError(exitCodeFor(err), "listing categories: %v", err)
		}

		if humanOutput {
			for _, c := range cats {
				outputHuman("%s  %s (%d)\n", c.ID, c.Name, c.PaperCount)
			}
		} else {
			outputJSON(CategoryListResponse{Count: len(cats), Categories: cats})
		}
	},
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Long: `Add a category. Names are deduplicated case-insensitively: adding an
existing name returns the existing category unchanged.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lib := mustOpenLibrary()

		cat, err := lib.Catalog.AddCategory(args[0])
		if err != nil {
			exitWithError(exitCodeFor(err), "adding category: %v", err)
		}

		if humanOutput {
			outputHuman("Category %s: %s\n", cat.ID, cat.Name)
		} else {
			outputJSON(cat)
		}
	},
}

func init() {
	categoryListCmd.Flags().BoolVar(&categoryListAll, "all", false, "Include empty categories")
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryAddCmd)
	rootCmd.AddCommand(categoryCmd)
}
