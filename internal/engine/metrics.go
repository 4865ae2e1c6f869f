package engine

import "github.com/gha-debug/gha-debug/internal/workflow"

// RunMetrics aggregates counters for one run. Execution is single-threaded,
// so plain fields suffice; a fresh value is collected per Run invocation and
// attached to its RunResult.
type RunMetrics struct {
	JobsRun          int
	StepsRun         int
	StepsFailed      int
	ActionsSimulated int
	CommandsRun      int
	NoOpSteps        int
}

func (m *RunMetrics) recordJob() {
	m.JobsRun++
}

func (m *RunMetrics) recordStep(kind workflow.StepKind, ok bool) {
	m.StepsRun++
	if !ok {
		m.StepsFailed++
	}
	switch kind {
	case workflow.StepAction:
		m.ActionsSimulated++
	case workflow.StepCommand:
		m.CommandsRun++
	default:
		m.NoOpSteps++
	}
}

// Fields renders the counters as alternating key/value pairs for structured
// logging.
func (m RunMetrics) Fields() []interface{} {
	return []interface{}{
		"jobs_run", m.JobsRun,
		"steps_run", m.StepsRun,
		"steps_failed", m.StepsFailed,
		"actions_simulated", m.ActionsSimulated,
		"commands_run", m.CommandsRun,
		"noop_steps", m.NoOpSteps,
	}
}
