package workflow

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gha-debug/gha-debug/internal/errors"
)

// DefaultRunnerLabel is the runner label assumed when a job declares none.
const DefaultRunnerLabel = "ubuntu-latest"

// unnamedStep is the display name for a step with no name, no action
// reference, and no command text.
const unnamedStep = "Unnamed step"

// Load reads and parses a workflow file.
//
// Defaults are applied while building the model: the workflow name falls
// back to the file stem, job names to their ids, runner labels to
// DefaultRunnerLabel, and step names to the action reference, then the
// command text, then a placeholder. Env and with values are coerced to
// strings regardless of their YAML scalar type.
//
// The document is walked as a yaml.Node tree rather than decoded into Go
// maps: job order must survive, and a bare `on:` key resolves to a YAML
// boolean that would break map[string]-keyed decoding.
func Load(path string) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.CodeWorkflowNotFound, "workflow file not found: %s", path)
		}
		return nil, errors.Wrap(err, errors.CodeWorkflowNotFound, "could not read workflow file")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidYAML, "invalid YAML in workflow file")
	}

	root := documentRoot(&doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, errors.New(errors.CodeInvalidWorkflow, "workflow file must contain a YAML mapping")
	}

	wf := &Workflow{
		Name: fileStem(path),
		Env:  map[string]string{},
		Jobs: []Job{},
	}

	var jobsNode *yaml.Node
	for _, p := range mappingPairs(root) {
		switch p.key {
		case "name":
			if p.value.Kind == yaml.ScalarNode && p.value.Value != "" {
				wf.Name = p.value.Value
			}
		case "env":
			wf.Env = stringMap(p.value)
		case "jobs":
			jobsNode = p.value
		}
	}

	if jobsNode != nil && jobsNode.Kind == yaml.MappingNode {
		for _, p := range mappingPairs(jobsNode) {
			// Malformed entries are skipped here; the validator reports them.
			if p.value.Kind != yaml.MappingNode {
				continue
			}
			wf.Jobs = append(wf.Jobs, parseJob(p.key, p.value))
		}
	}

	return wf, nil
}

func parseJob(id string, node *yaml.Node) Job {
	job := Job{
		ID:     id,
		Name:   id,
		RunsOn: DefaultRunnerLabel,
		Env:    map[string]string{},
		Steps:  []Step{},
	}

	var stepsNode *yaml.Node
	for _, p := range mappingPairs(node) {
		switch p.key {
		case "name":
			if p.value.Kind == yaml.ScalarNode && p.value.Value != "" {
				job.Name = p.value.Value
			}
		case "runs-on":
			if p.value.Kind == yaml.ScalarNode && p.value.Value != "" {
				job.RunsOn = p.value.Value
			}
		case "env":
			job.Env = stringMap(p.value)
		case "steps":
			stepsNode = p.value
		}
	}

	if stepsNode != nil && stepsNode.Kind == yaml.SequenceNode {
		for _, stepNode := range stepsNode.Content {
			if stepNode.Kind != yaml.MappingNode {
				continue
			}
			job.Steps = append(job.Steps, parseStep(stepNode))
		}
	}

	return job
}

func parseStep(node *yaml.Node) Step {
	step := Step{
		Env:  map[string]string{},
		With: map[string]string{},
	}

	for _, p := range mappingPairs(node) {
		switch p.key {
		case "name":
			if p.value.Kind == yaml.ScalarNode {
				step.Name = p.value.Value
			}
		case "uses":
			if p.value.Kind == yaml.ScalarNode {
				step.Uses = p.value.Value
			}
		case "run":
			if p.value.Kind == yaml.ScalarNode {
				step.Run = p.value.Value
			}
		case "env":
			step.Env = stringMap(p.value)
		case "with":
			step.With = stringMap(p.value)
		}
	}

	if step.Name == "" {
		switch {
		case step.Uses != "":
			step.Name = step.Uses
		case step.Run != "":
			step.Name = step.Run
		default:
			step.Name = unnamedStep
		}
	}

	return step
}

type mappingPair struct {
	key   string
	value *yaml.Node
}

// mappingPairs returns a mapping node's key/value pairs in declaration
// order. Keys are reported by their raw text, so `on:` stays "on" even
// though YAML resolves the bare scalar as a boolean.
func mappingPairs(node *yaml.Node) []mappingPair {
	pairs := make([]mappingPair, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		pairs = append(pairs, mappingPair{key: node.Content[i].Value, value: node.Content[i+1]})
	}
	return pairs
}

// documentRoot unwraps the document node produced by unmarshalling into a
// yaml.Node, returning nil for an empty document.
func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	if doc.Kind == 0 {
		return nil
	}
	return doc
}

// stringMap converts a mapping node into string-valued pairs. Scalars of any
// YAML type are coerced to their printed form, which is how the execution
// context ultimately receives environment values. Null values become empty
// strings.
func stringMap(node *yaml.Node) map[string]string {
	out := map[string]string{}
	if node == nil || node.Kind != yaml.MappingNode {
		return out
	}
	for _, p := range mappingPairs(node) {
		var v interface{}
		if err := p.value.Decode(&v); err != nil || v == nil {
			out[p.key] = ""
			continue
		}
		out[p.key] = fmt.Sprint(v)
	}
	return out
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
