package internal

import (
	"github.com/spf13/cobra"

	"github.com/gha-debug/gha-debug/internal/workflow"
)

func NewEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env <workflow-file>",
		Short: "Display environment variables and contexts for a workflow",
		Long: `Display the environment variables a workflow defines, grouped by scope,
together with the simulated Actions context variables every job receives.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobFilter, _ := cmd.Flags().GetString("job")

			console := newConsole(cmd)

			wf, err := workflow.Load(args[0])
			if err != nil {
				console.Errorf("%v", err)
				return err
			}

			// An unknown job id would silently render a table with no job
			// rows, so call it out. The table still prints.
			if jobFilter != "" {
				if _, err := wf.GetJob(jobFilter); err != nil {
					console.Warnf("%v", err)
				}
			}

			console.Environment(wf, jobFilter)
			return nil
		},
	}
	cmd.Flags().StringP("job", "j", "", "Show only the environment of this job")
	return cmd
}
