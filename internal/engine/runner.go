// Package engine executes the jobs of a parsed workflow sequentially and
// reports the aggregated outcome. Step failures are modeled results, not
// errors: Run never returns an error value, and only the loader surfaces
// exceptional failures to callers.
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gha-debug/gha-debug/internal/logging"
	"github.com/gha-debug/gha-debug/internal/workflow"
)

const (
	// defaultActionDelay simulates the latency of a packaged action. Action
	// code is untrusted third-party automation and is never fetched or
	// executed; the delay keeps timing output meaningful.
	defaultActionDelay = 100 * time.Millisecond

	defaultShell = "sh"
)

// RunResult is the aggregated outcome of one Run invocation.
type RunResult struct {
	Success   bool
	TotalTime time.Duration
	Error     string // non-empty iff Success is false
	Metrics   RunMetrics
}

// RunnerOptions configures a Runner. The zero value runs non-verbose against
// the ambient process environment with the default action delay, "sh" as the
// shell, and no command timeout.
type RunnerOptions struct {
	// Verbose echoes commands and action references before execution and
	// streams command output live instead of capturing it.
	Verbose bool

	// Notifier receives progress events. Nil means no notifications.
	Notifier Notifier

	// Environ is the base process environment for shell commands, in
	// KEY=value form. Nil means os.Environ(). The merged step environment is
	// overlaid on top, so ambient variables like PATH stay visible.
	Environ []string

	// ActionDelay overrides the simulated packaged-action latency.
	ActionDelay time.Duration

	// Shell runs command steps as `<shell> -c <command>`.
	Shell string

	// CommandTimeout bounds each shell command when positive. Zero keeps the
	// default behavior: no timeout, a hung command hangs the run.
	CommandTimeout time.Duration

	// Stdout and Stderr are the live output targets in verbose mode.
	Stdout io.Writer
	Stderr io.Writer
}

// Runner executes one workflow. It borrows the workflow read-only and keeps
// no state across runs, so concurrent runs over independent workflows need
// no synchronization.
type Runner struct {
	wf             *workflow.Workflow
	verbose        bool
	notifier       Notifier
	environ        []string
	actionDelay    time.Duration
	shell          string
	commandTimeout time.Duration
	stdout         io.Writer
	stderr         io.Writer
	log            *zap.SugaredLogger
}

// NewRunner creates a runner for the given workflow.
func NewRunner(wf *workflow.Workflow, opts RunnerOptions) *Runner {
	r := &Runner{
		wf:             wf,
		verbose:        opts.Verbose,
		notifier:       opts.Notifier,
		environ:        opts.Environ,
		actionDelay:    opts.ActionDelay,
		shell:          opts.Shell,
		commandTimeout: opts.CommandTimeout,
		stdout:         opts.Stdout,
		stderr:         opts.Stderr,
	}
	if r.notifier == nil {
		r.notifier = NopNotifier{}
	}
	if r.environ == nil {
		r.environ = os.Environ()
	}
	if r.actionDelay == 0 {
		r.actionDelay = defaultActionDelay
	}
	if r.shell == "" {
		r.shell = defaultShell
	}
	if r.stdout == nil {
		r.stdout = os.Stdout
	}
	if r.stderr == nil {
		r.stderr = os.Stderr
	}
	r.log = logging.L().With("workflow", wf.Name)
	return r
}

// Run executes the workflow, or only the jobs whose id equals jobFilter when
// it is non-empty. Jobs and their steps run strictly in declaration order
// and the run stops at the first failing step. ctx is consulted between
// steps and passed to shell commands; context.Background() reproduces the
// default behavior with no cancellation.
func (r *Runner) Run(ctx context.Context, jobFilter string) RunResult {
	log := r.log.With("run_id", GenerateRunID())

	var metrics RunMetrics

	jobs := r.wf.Jobs
	if jobFilter != "" {
		selected := make([]workflow.Job, 0, len(jobs))
		for _, job := range jobs {
			if job.ID == jobFilter {
				selected = append(selected, job)
			}
		}
		if len(selected) == 0 {
			log.Debugw("job filter matched nothing", "filter", jobFilter)
			return RunResult{
				Success: false,
				Error:   fmt.Sprintf("Job '%s' not found", jobFilter),
			}
		}
		jobs = selected
	}

	log.Debugw("run starting", "jobs", len(jobs), "filter", jobFilter)
	start := time.Now()

	for i := range jobs {
		job := &jobs[i]
		if !r.runJob(ctx, log, job, &metrics) {
			result := RunResult{
				Success:   false,
				Error:     fmt.Sprintf("Job '%s' failed", job.ID),
				TotalTime: time.Since(start),
				Metrics:   metrics,
			}
			log.Debugw("run failed", append([]interface{}{"job", job.ID, "total_time", result.TotalTime}, metrics.Fields()...)...)
			return result
		}
	}

	result := RunResult{
		Success:   true,
		TotalTime: time.Since(start),
		Metrics:   metrics,
	}
	log.Debugw("run succeeded", append([]interface{}{"total_time", result.TotalTime}, metrics.Fields()...)...)
	return result
}

func (r *Runner) runJob(ctx context.Context, log *zap.SugaredLogger, job *workflow.Job, metrics *RunMetrics) bool {
	r.notifier.JobStarted(job.Name)
	metrics.recordJob()

	// The job environment is computed once and shared by every step.
	env := r.buildJobEnv(job)

	for i := range job.Steps {
		select {
		case <-ctx.Done():
			r.notifier.DispatchError(ctx.Err())
			return false
		default:
		}

		if !r.runStep(ctx, log, &job.Steps[i], env, metrics) {
			return false
		}
	}

	return true
}

// buildJobEnv layers the simulated CI context, the workflow env, and the job
// env; later layers win on key collisions.
func (r *Runner) buildJobEnv(job *workflow.Job) map[string]string {
	env := map[string]string{
		"CI":               "true",
		"GITHUB_ACTIONS":   "true",
		"GITHUB_WORKFLOW":  r.wf.Name,
		"GITHUB_JOB":       job.ID,
		"GITHUB_RUNNER_OS": "Linux",
		"RUNNER_OS":        "Linux",
	}
	for k, v := range r.wf.Env {
		env[k] = v
	}
	for k, v := range job.Env {
		env[k] = v
	}
	return env
}

func (r *Runner) runStep(ctx context.Context, log *zap.SugaredLogger, step *workflow.Step, jobEnv map[string]string, metrics *RunMetrics) bool {
	start := time.Now()
	stepEnv := overlay(jobEnv, step.Env)

	kind := step.Kind()
	var ok bool
	switch kind {
	case workflow.StepAction:
		ok = r.simulateAction(step)
	case workflow.StepCommand:
		ok = r.runCommand(ctx, step, stepEnv)
	default:
		ok = true
	}

	elapsed := time.Since(start)
	metrics.recordStep(kind, ok)
	log.Debugw("step finished", "step", step.Name, "kind", kind.String(), "ok", ok, "elapsed", elapsed)
	r.notifier.StepFinished(step.Name, elapsed, ok)
	return ok
}

// simulateAction stands in for a packaged action: it reports success after a
// fixed delay and never touches the network or third-party code.
func (r *Runner) simulateAction(step *workflow.Step) bool {
	if r.verbose {
		r.notifier.ActionStarting(step.Uses, step.With)
	}
	time.Sleep(r.actionDelay)
	return true
}

func (r *Runner) runCommand(ctx context.Context, step *workflow.Step, env map[string]string) bool {
	if r.verbose {
		r.notifier.CommandStarting(step.Run)
	}

	if r.commandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.commandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.shell, "-c", step.Run)
	cmd.Env = mergeEnviron(r.environ, env)

	var stdout, stderr bytes.Buffer
	if r.verbose {
		cmd.Stdout = r.stdout
		cmd.Stderr = r.stderr
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	if err == nil {
		return true
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if !r.verbose {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				r.notifier.CommandFailureOutput(msg)
			}
		}
		return false
	}

	// Anything other than a non-zero exit (unspawnable shell, I/O trouble)
	// is still just a failed step.
	r.notifier.DispatchError(err)
	return false
}

// overlay returns base with over merged on top; neither input is mutated.
func overlay(base, over map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// mergeEnviron overlays vars onto a KEY=value environment slice, the overlay
// winning on collisions, and returns a sorted slice for determinism.
func mergeEnviron(base []string, vars map[string]string) []string {
	merged := make(map[string]string, len(base)+len(vars))
	for _, kv := range base {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			merged[kv[:i]] = kv[i+1:]
		}
	}
	for k, v := range vars {
		merged[k] = v
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+merged[k])
	}
	return out
}
