package main

import (
	"github.com/spf13/cobra"

	"github.com/paperdesk/paperdesk/internal/project"
)

var (
	projectCreateDescription string
	projectCreateColor       string
)

// ProjectListResponse is the JSON response for project list.
type ProjectListResponse struct {
	Count    int               `json:"count"`
	Projects []project.Project `json:"projects"`
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lib := mustOpenLibrary()

		proj, err := lib.Projects.Create(args[0], projectCreateDescription, projectCreateColor)
		if err != nil {
			exitWithError(exitCodeFor(err), "creating project: %v", err)
		}

		if humanOutput {
			outputHuman("Created project %s: %s\n", proj.ID, proj.Name)
		} else {
			outputJSON(proj)
		}
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		lib := mustOpenLibrary()

		projs, err := lib.Projects.AllProjects()
		if err != nil {
			exitWithError(exitCodeFor(err), "listing projects: %v", err)
		}

		if humanOutput {
			for _, p := range projs {
				outputHuman("%s  %s (%d papers)\n", p.ID, p.Name, p.PaperCount)
			}
		} else {
			outputJSON(ProjectListResponse{Count: len(projs), Projects: projs})
		}
	},
}

var projectPapersCmd = &cobra.Command{
	Use:   "papers <project-id>",
	Short: "List the papers in a project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lib := mustOpenLibrary()

		papers, err := lib.Projects.ProjectPapers(args[0])
		if err != nil {
			exitWithError(exitCodeFor(err), "listing project papers: %v", err)
		}

		if humanOutput {
			printPapersHuman(papers)
		} else {
			outputJSON(PaperListResponse{Count: len(papers), Papers: papers})
		}
	},
}

var projectAddPaperCmd = &cobra.Command{
	Use:   "add-paper <project-id> <paper-id>",
	Short: "Add a paper to a project",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		lib := mustOpenLibrary()

		if err := lib.AddPaperToProject(args[0], args[1]); err != nil {
			exitWithError(exitCodeFor(err), "adding paper to project: %v", err)
		}

		if humanOutput {
			outputHuman("Added paper %s to project %s\n", args[1], args[0])
		} else {
			outputJSON(StatusResponse{Status: "added"})
		}
	},
}

var projectRemovePaperCmd = &cobra.Command{
	Use:   "remove-paper <project-id> <paper-id>",
	Short: "Remove a paper from a project",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		lib := mustOpenLibrary()

		if err := lib.RemovePaperFromProject(args[0], args[1]); err != nil {
			exitWithError(exitCodeFor(err), "removing paper from project: %v", err)
		}

		if humanOutput {
			outputHuman("Removed paper %s from project %s\n", args[1], args[0])
		} else {
			outputJSON(StatusResponse{Status: "removed"})
		}
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project",
	Long: `Delete a project record and clear the project id off its member
papers. The papers themselves are kept.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lib := mustOpenLibrary()

		if err := lib.DeleteProject(args[0]); err != nil {
			exitWithError(exitCodeFor(err), "deleting project: %v", err)
		}

		if humanOutput {
			outputHuman("Deleted project %s\n", args[0])
		} else {
			outputJSON(StatusResponse{Status: "deleted"})
		}
	},
}

func init() {
	projectCreateCmd.Flags().StringVar(&projectCreateDescription, "description", "", "Project description")
	projectCreateCmd.Flags().StringVar(&projectCreateColor, "color", "", "Project color token")
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectPapersCmd)
	projectCmd.AddCommand(projectAddPaperCmd)
	projectCmd.AddCommand(projectRemovePaperCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	rootCmd.AddCommand(projectCmd)
}
