package internal

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gha-debug/gha-debug/internal/config"
	"github.com/gha-debug/gha-debug/internal/engine"
	"github.com/gha-debug/gha-debug/internal/workflow"
)

func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <workflow-file>",
		Short: "Run a GitHub Actions workflow locally",
		Long: `Run a GitHub Actions workflow locally. Shell steps execute through the host
shell with the simulated Actions environment; packaged actions are simulated
and always succeed. The run stops at the first failing step.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobFilter, _ := cmd.Flags().GetString("job")
			verbose, _ := cmd.Flags().GetBool("verbose")

			console := newConsole(cmd)

			wf, err := workflow.Load(args[0])
			if err != nil {
				console.Errorf("%v", err)
				return err
			}

			console.WorkflowHeader(wf.Name, args[0])

			runner := engine.NewRunner(wf, engine.RunnerOptions{
				Verbose:        verbose,
				Notifier:       console,
				Shell:          config.Instance.Run.Shell,
				ActionDelay:    time.Duration(config.Instance.Run.ActionDelayMS) * time.Millisecond,
				CommandTimeout: time.Duration(config.Instance.Run.CommandTimeoutS) * time.Second,
				Stdout:         cmd.OutOrStdout(),
				Stderr:         cmd.ErrOrStderr(),
			})

			result := runner.Run(cmd.Context(), jobFilter)
			if !result.Success {
				console.RunFailure(result.Error)
				return fmt.Errorf("workflow failed")
			}

			console.RunSuccess(result.TotalTime)
			return nil
		},
	}
	cmd.Flags().StringP("job", "j", "", "Run only the job with this ID")
	cmd.Flags().BoolP("verbose", "v", false, "Show verbose output")
	return cmd
}
