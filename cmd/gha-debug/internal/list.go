package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gha-debug/gha-debug/internal/workflow"
)

func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [path]",
		Short: "List all workflows, jobs, and steps",
		Long: `List the structure of workflow files: each workflow's jobs, their runner
labels, and their steps. The path may name a single file or a directory;
it defaults to .github/workflows.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := workflow.DefaultWorkflowDir
			if len(args) == 1 {
				path = args[0]
			}

			console := newConsole(cmd)

			files, err := workflow.Discover(path)
			if err != nil {
				console.Warnf("Path not found: %s", path)
				return fmt.Errorf("path not found: %s", path)
			}
			if len(files) == 0 {
				console.Noticef("No workflow files found")
				return nil
			}

			for _, file := range files {
				wf, err := workflow.Load(file)
				if err != nil {
					console.Errorf("%v", err)
					return err
				}
				console.Structure(wf, file)
				console.Blank()
			}
			return nil
		},
	}
}
