// Package workflow defines the in-memory representation of a GitHub Actions
// workflow file and the loader that produces it. A loaded Workflow is
// read-only: the loader applies every documented default at construction
// time so consumers never handle missing names or nil mappings.
package workflow

import (
	"github.com/gha-debug/gha-debug/internal/errors"
)

// StepKind identifies how a step executes.
type StepKind int

const (
	// StepNoOp is a step with neither an action reference nor a command.
	// Such steps always succeed.
	StepNoOp StepKind = iota
	// StepAction is a step backed by a packaged action reference. Actions
	// are simulated locally, never fetched or executed.
	StepAction
	// StepCommand is a step backed by a shell command.
	StepCommand
)

func (k StepKind) String() string {
	switch k {
	case StepAction:
		return "action"
	case StepCommand:
		return "command"
	default:
		return "noop"
	}
}

// Workflow is the parsed form of a workflow file. Jobs preserve their
// declaration order.
type Workflow struct {
	Name string
	Env  map[string]string
	Jobs []Job
}

// Job is an ordered group of steps sharing a runner label and an
// environment scope. ID is the declaration key in the jobs mapping.
type Job struct {
	ID     string
	Name   string
	RunsOn string
	Env    map[string]string
	Steps  []Step
}

// Step is the smallest execution unit: a packaged action, a shell command,
// or a no-op. Env and With are always non-nil.
type Step struct {
	Name string
	Uses string
	Run  string
	Env  map[string]string
	With map[string]string
}

// Kind reports how the step executes. A step carrying both an action
// reference and a command resolves to the action; the validator reports
// such steps as errors, but dispatch needs a single rule.
func (s *Step) Kind() StepKind {
	switch {
	case s.Uses != "":
		return StepAction
	case s.Run != "":
		return StepCommand
	default:
		return StepNoOp
	}
}

// GetJob returns the first job declared with the given id.
func (w *Workflow) GetJob(id string) (*Job, error) {
	for i := range w.Jobs {
		if w.Jobs[i].ID == id {
			return &w.Jobs[i], nil
		}
	}
	return nil, errors.Newf(errors.CodeJobNotFound, "job '%s' not found in workflow", id)
}
