package internal

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gha-debug/gha-debug/internal/config"
	"github.com/gha-debug/gha-debug/internal/report"
	"github.com/gha-debug/gha-debug/internal/validator"
	"github.com/gha-debug/gha-debug/internal/workflow"
)

func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <path>...",
		Short: "Validate workflow syntax and catch common errors",
		Long: `Validate workflow files for structural problems and common syntax mistakes.
Each path may name a single file or a directory of workflow files. The exit
status is non-zero when any file has findings.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			htmlOut, _ := cmd.Flags().GetBool("html")
			outPath, _ := cmd.Flags().GetString("output")
			if outPath == "" {
				outPath = config.Instance.Report.Output
			}

			console := newConsole(cmd)

			var results []report.WorkflowResult
			allValid := true

			for _, arg := range args {
				files, err := workflow.Discover(arg)
				if err != nil {
					// Let the validator report the missing path as a finding.
					files = []string{arg}
				}

				for _, file := range files {
					errs := validator.Validate(file)
					console.ValidationResult(file, errs)
					if len(errs) > 0 {
						allValid = false
					}
					if htmlOut {
						results = append(results, summarizeFile(file, errs))
					}
				}
			}

			if htmlOut {
				path, err := report.Export(results, outPath)
				if err != nil {
					console.Errorf("%v", err)
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nReport saved to %s\n", path)
			}

			if !allValid {
				console.SomeInvalid()
				return fmt.Errorf("validation failed")
			}
			console.AllValid()
			return nil
		},
	}
	cmd.Flags().Bool("html", false, "Also write an HTML validation report")
	cmd.Flags().StringP("output", "o", "", "HTML report destination (default: report.output config, else a temp file)")
	return cmd
}

// summarizeFile builds the report entry for one validated file. Files that
// never parsed keep their findings but have no structure to show.
func summarizeFile(file string, errs []string) report.WorkflowResult {
	res := report.WorkflowResult{
		File:   file,
		Valid:  len(errs) == 0,
		Errors: errs,
	}
	if wf, err := workflow.Load(file); err == nil {
		res.Name = wf.Name
		res.Jobs = report.Summarize(wf)
	} else {
		base := filepath.Base(file)
		res.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return res
}
