// Package validator checks workflow files for structural problems and
// common syntax mistakes before they reach the engine.
package validator

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Validate checks a single workflow file and returns every finding as a
// human-readable string, in the order the problems appear in the document.
// An empty slice means the file is valid. Advisory hints (missing trigger,
// malformed expression syntax) are appended after the structural errors.
func Validate(path string) []string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("File not found: %s", path)}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return []string{fmt.Sprintf("Invalid YAML syntax: %v", err)}
	}

	root := documentRoot(&doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return []string{"Workflow must be a YAML dictionary"}
	}

	var errs []string

	jobs := findKey(root, "jobs")
	if jobs == nil {
		return append(errs, "Missing required field: 'jobs'")
	}
	if jobs.Kind != yaml.MappingNode {
		return append(errs, "'jobs' must be a dictionary")
	}
	if len(jobs.Content) == 0 {
		errs = append(errs, "Workflow must have at least one job")
	}

	for i := 0; i+1 < len(jobs.Content); i += 2 {
		errs = validateJob(jobs.Content[i].Value, jobs.Content[i+1], errs)
	}

	return appendSyntaxHints(string(raw), root, errs)
}

func validateJob(jobID string, job *yaml.Node, errs []string) []string {
	if job.Kind != yaml.MappingNode {
		return append(errs, fmt.Sprintf("Job '%s' must be a dictionary", jobID))
	}

	steps := findKey(job, "steps")
	if steps == nil {
		return append(errs, fmt.Sprintf("Job '%s' missing required field: 'steps'", jobID))
	}
	if steps.Kind != yaml.SequenceNode {
		return append(errs, fmt.Sprintf("Job '%s': 'steps' must be a list", jobID))
	}
	if len(steps.Content) == 0 {
		errs = append(errs, fmt.Sprintf("Job '%s' must have at least one step", jobID))
	}

	for idx, step := range steps.Content {
		errs = validateStep(jobID, idx, step, errs)
	}

	return errs
}

func validateStep(jobID string, idx int, step *yaml.Node, errs []string) []string {
	if step.Kind != yaml.MappingNode {
		return append(errs, fmt.Sprintf("Job '%s', step %d: must be a dictionary", jobID, idx))
	}

	hasUses := findKey(step, "uses") != nil
	hasRun := findKey(step, "run") != nil

	switch {
	case !hasUses && !hasRun:
		errs = append(errs, fmt.Sprintf("Job '%s', step %d: must have 'uses' or 'run'", jobID, idx))
	case hasUses && hasRun:
		errs = append(errs, fmt.Sprintf("Job '%s', step %d: cannot have both 'uses' and 'run'", jobID, idx))
	}

	return errs
}

func appendSyntaxHints(raw string, root *yaml.Node, errs []string) []string {
	if strings.Contains(raw, "${{}}") {
		errs = append(errs, "Syntax hint: GitHub expressions use '${{ }}' not '${{}}'")
	}
	if !hasTrigger(root) {
		errs = append(errs, "Warning: Missing 'on:' trigger configuration")
	}
	return errs
}

func hasTrigger(root *yaml.Node) bool {
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		if key.Value == "on" {
			return true
		}
		// A bare on: key resolves as a YAML 1.1 boolean, so a true-valued
		// boolean key also counts as the trigger section.
		var b bool
		if key.Decode(&b) == nil && b {
			return true
		}
	}
	return false
}

func findKey(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		return doc.Content[0]
	}
	if doc.Kind == 0 {
		return nil
	}
	return doc
}
