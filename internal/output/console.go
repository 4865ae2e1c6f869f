// Package output renders engine progress, workflow listings, and validation
// results for the terminal.
package output

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gha-debug/gha-debug/internal/engine"
	"github.com/gha-debug/gha-debug/internal/workflow"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

// Console writes human-readable progress and listings. It doubles as the
// engine's notifier, so a single value owns everything the user sees.
type Console struct {
	out   io.Writer
	err   io.Writer
	color bool
}

var _ engine.Notifier = (*Console)(nil)

// NewConsole creates a console writing normal output to out and diagnostics
// to err. Colors are dropped entirely when color is false.
func NewConsole(out, err io.Writer, color bool) *Console {
	return &Console{out: out, err: err, color: color}
}

func (c *Console) paint(code, s string) string {
	if !c.color {
		return s
	}
	return code + s + ansiReset
}

// WorkflowHeader announces which workflow is about to run and from where.
func (c *Console) WorkflowHeader(name, path string) {
	fmt.Fprintf(c.out, "\n%s %s\n", c.paint(ansiBold+ansiCyan, "Running workflow:"), name)
	fmt.Fprintln(c.out, c.paint(ansiDim, fmt.Sprintf("File: %s", path)))
	fmt.Fprintln(c.out, strings.Repeat("─", 76))
}

// JobStarted prints the job heading before its steps run.
func (c *Console) JobStarted(name string) {
	fmt.Fprintf(c.out, "\n%s %s\n", c.paint(ansiBold, "Job:"), name)
}

// StepFinished prints one line per completed step with its outcome glyph
// and elapsed time.
func (c *Console) StepFinished(name string, elapsed time.Duration, ok bool) {
	glyph := c.paint(ansiGreen, "✓")
	if !ok {
		glyph = c.paint(ansiRed, "✗")
	}
	fmt.Fprintf(c.out, "  %s %s %s\n", glyph, name, c.paint(ansiDim, fmt.Sprintf("(%.1fs)", elapsed.Seconds())))
}

// ActionStarting surfaces the action reference and its parameters in
// verbose mode.
func (c *Console) ActionStarting(ref string, params map[string]string) {
	fmt.Fprintln(c.out, c.paint(ansiDim, fmt.Sprintf("  Using action: %s", ref)))
	if len(params) > 0 {
		pairs := make([]string, 0, len(params))
		for _, k := range sortedKeys(params) {
			pairs = append(pairs, fmt.Sprintf("%s=%s", k, params[k]))
		}
		fmt.Fprintln(c.out, c.paint(ansiDim, fmt.Sprintf("  With: %s", strings.Join(pairs, ", "))))
	}
}

// CommandStarting echoes the command text in verbose mode.
func (c *Console) CommandStarting(command string) {
	fmt.Fprintln(c.out, c.paint(ansiDim, fmt.Sprintf("  Running: %s", command)))
}

// CommandFailureOutput prints the captured stderr of a failed command.
func (c *Console) CommandFailureOutput(stderr string) {
	fmt.Fprintln(c.out, c.paint(ansiRed, "  "+stderr))
}

// DispatchError reports a step that could not be executed at all.
func (c *Console) DispatchError(err error) {
	fmt.Fprintln(c.out, c.paint(ansiRed, fmt.Sprintf("  Error: %v", err)))
}

// RunSuccess prints the closing line of a successful run.
func (c *Console) RunSuccess(total time.Duration) {
	fmt.Fprintf(c.out, "\n%s\n", c.paint(ansiGreen, fmt.Sprintf("✓ Workflow completed successfully in %.1fs", total.Seconds())))
}

// RunFailure prints the closing line of a failed run.
func (c *Console) RunFailure(errMsg string) {
	fmt.Fprintf(c.out, "\n%s\n", c.paint(ansiRed, fmt.Sprintf("✗ Workflow failed: %s", errMsg)))
}

// Structure prints the jobs and steps of one workflow as an indented tree.
func (c *Console) Structure(wf *workflow.Workflow, path string) {
	fmt.Fprintf(c.out, "%s %s\n", c.paint(ansiBold, wf.Name), c.paint(ansiDim, fmt.Sprintf("(%s)", filepath.Base(path))))

	for i := range wf.Jobs {
		job := &wf.Jobs[i]
		fmt.Fprintf(c.out, "  %s %s %s\n", c.paint(ansiCyan, "Job:"), job.Name, c.paint(ansiDim, fmt.Sprintf("(runs-on: %s)", job.RunsOn)))

		for j := range job.Steps {
			icon := "▶"
			if job.Steps[j].Kind() == workflow.StepAction {
				icon = "🔧"
			}
			fmt.Fprintf(c.out, "    %s %s\n", icon, job.Steps[j].Name)
		}
	}
}

// Environment prints the variable table for a workflow, optionally narrowed
// to a single job. Rows are grouped by scope; the fixed context defaults
// appear last.
func (c *Console) Environment(wf *workflow.Workflow, jobFilter string) {
	fmt.Fprintln(c.out, c.paint(ansiBold, "Environment Variables"))

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Scope\tVariable\tValue")

	for _, k := range sortedKeys(wf.Env) {
		fmt.Fprintf(tw, "Workflow\t%s\t%s\n", k, wf.Env[k])
	}

	for i := range wf.Jobs {
		job := &wf.Jobs[i]
		if jobFilter != "" && job.ID != jobFilter {
			continue
		}
		for _, k := range sortedKeys(job.Env) {
			fmt.Fprintf(tw, "Job: %s\t%s\t%s\n", job.ID, k, job.Env[k])
		}
	}

	fmt.Fprintln(tw, "Default\tCI\ttrue")
	fmt.Fprintln(tw, "Default\tGITHUB_ACTIONS\ttrue")
	fmt.Fprintf(tw, "Default\tGITHUB_WORKFLOW\t%s\n", wf.Name)
	tw.Flush()
}

// ValidationResult prints the outcome for one validated file. Invalid files
// get a leading blank line and one bullet per finding.
func (c *Console) ValidationResult(path string, errs []string) {
	if len(errs) == 0 {
		fmt.Fprintf(c.out, "%s %s\n", c.paint(ansiGreen, "✓"), path)
		return
	}
	fmt.Fprintf(c.out, "\n%s %s\n", c.paint(ansiRed, "✗"), path)
	for _, e := range errs {
		fmt.Fprintf(c.out, "  %s %s\n", c.paint(ansiRed, "•"), e)
	}
}

// AllValid prints the closing line when every validated file passed.
func (c *Console) AllValid() {
	fmt.Fprintf(c.out, "\n%s\n", c.paint(ansiGreen, "All workflows are valid!"))
}

// SomeInvalid prints the closing line when at least one file failed.
func (c *Console) SomeInvalid() {
	fmt.Fprintf(c.out, "\n%s\n", c.paint(ansiRed, "Some workflows have errors"))
}

// Warnf prints a warning with a highlighted label.
func (c *Console) Warnf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, "%s %s\n", c.paint(ansiYellow, "Warning:"), fmt.Sprintf(format, args...))
}

// Noticef prints an informational line.
func (c *Console) Noticef(format string, args ...interface{}) {
	fmt.Fprintln(c.out, c.paint(ansiYellow, fmt.Sprintf(format, args...)))
}

// Errorf prints an error with a highlighted label to the diagnostic stream.
func (c *Console) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(c.err, "%s %s\n", c.paint(ansiRed, "Error:"), fmt.Sprintf(format, args...))
}

// Blank prints an empty line, used to separate listing blocks.
func (c *Console) Blank() {
	fmt.Fprintln(c.out)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
