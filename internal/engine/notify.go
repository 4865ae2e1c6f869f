package engine

import "time"

// Notifier receives progress events while a workflow runs. Notifications are
// observational only: the engine never consumes a return value and no
// implementation can influence control flow.
type Notifier interface {
	// JobStarted is emitted once per job, before its environment is built.
	JobStarted(name string)

	// StepFinished is emitted for every dispatched step with its wall-clock
	// duration, whether it passed or failed.
	StepFinished(name string, elapsed time.Duration, ok bool)

	// ActionStarting is emitted in verbose mode before an action simulation,
	// carrying the action reference and its parameters.
	ActionStarting(ref string, params map[string]string)

	// CommandStarting is emitted in verbose mode with the literal command
	// text, immediately before the shell runs it.
	CommandStarting(command string)

	// CommandFailureOutput carries the captured stderr of a failed command.
	// Only emitted outside verbose mode (verbose streams pass through live)
	// and only when the stream was non-empty.
	CommandFailureOutput(stderr string)

	// DispatchError reports a failure to start or communicate with the shell
	// process. The step is recorded as failed and the run follows its normal
	// fail-fast path; the error never propagates.
	DispatchError(err error)
}

// NopNotifier discards every event. It is the default for a Runner
// constructed without a Notifier.
type NopNotifier struct{}

func (NopNotifier) JobStarted(string)                        {}
func (NopNotifier) StepFinished(string, time.Duration, bool) {}
func (NopNotifier) ActionStarting(string, map[string]string) {}
func (NopNotifier) CommandStarting(string)                   {}
func (NopNotifier) CommandFailureOutput(string)              {}
func (NopNotifier) DispatchError(error)                      {}
