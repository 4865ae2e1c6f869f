package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workflow.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write workflow file: %v", err)
	}
	return path
}

func TestValidateAcceptsWellFormedWorkflow(t *testing.T) {
	path := writeFile(t, `
name: CI
on: push
jobs:
  build:
    steps:
      - uses: actions/checkout@v4
      - run: make build
`)
	assert.Empty(t, Validate(path))
}

func TestValidateMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yml")
	errs := Validate(path)
	require.Len(t, errs, 1)
	assert.Equal(t, fmt.Sprintf("File not found: %s", path), errs[0])
}

func TestValidateInvalidYAML(t *testing.T) {
	path := writeFile(t, "jobs: [unclosed")
	errs := Validate(path)
	require.Len(t, errs, 1)
	assert.True(t, strings.HasPrefix(errs[0], "Invalid YAML syntax:"), "got: %s", errs[0])
}

func TestValidateStructure(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "top-level list",
			content: "- not\n- a\n- workflow\n",
			want:    []string{"Workflow must be a YAML dictionary"},
		},
		{
			name:    "empty document",
			content: "",
			want:    []string{"Workflow must be a YAML dictionary"},
		},
		{
			// Missing jobs short-circuits before the advisory hints run.
			name:    "missing jobs",
			content: "name: CI\n",
			want:    []string{"Missing required field: 'jobs'"},
		},
		{
			name:    "jobs is not a mapping",
			content: "on: push\njobs: nope\n",
			want:    []string{"'jobs' must be a dictionary"},
		},
		{
			name:    "empty jobs mapping",
			content: "on: push\njobs: {}\n",
			want:    []string{"Workflow must have at least one job"},
		},
		{
			name:    "job is not a mapping",
			content: "on: push\njobs:\n  build: nope\n",
			want:    []string{"Job 'build' must be a dictionary"},
		},
		{
			name:    "job missing steps",
			content: "on: push\njobs:\n  build:\n    runs-on: ubuntu-latest\n",
			want:    []string{"Job 'build' missing required field: 'steps'"},
		},
		{
			name:    "steps is not a list",
			content: "on: push\njobs:\n  build:\n    steps: nope\n",
			want:    []string{"Job 'build': 'steps' must be a list"},
		},
		{
			name:    "empty steps list",
			content: "on: push\njobs:\n  build:\n    steps: []\n",
			want:    []string{"Job 'build' must have at least one step"},
		},
		{
			name:    "step is not a mapping",
			content: "on: push\njobs:\n  build:\n    steps:\n      - nope\n",
			want:    []string{"Job 'build', step 0: must be a dictionary"},
		},
		{
			name:    "step with neither uses nor run",
			content: "on: push\njobs:\n  build:\n    steps:\n      - run: ok\n      - name: hmm\n",
			want:    []string{"Job 'build', step 1: must have 'uses' or 'run'"},
		},
		{
			name:    "step with both uses and run",
			content: "on: push\njobs:\n  build:\n    steps:\n      - uses: actions/checkout@v4\n        run: make\n",
			want:    []string{"Job 'build', step 0: cannot have both 'uses' and 'run'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.content)
			assert.Equal(t, tt.want, Validate(path))
		})
	}
}

func TestValidateSyntaxHints(t *testing.T) {
	t.Run("empty expression interpolation", func(t *testing.T) {
		path := writeFile(t, "on: push\njobs:\n  build:\n    steps:\n      - run: echo ${{}}\n")
		errs := Validate(path)
		assert.Contains(t, errs, "Syntax hint: GitHub expressions use '${{ }}' not '${{}}'")
	})

	t.Run("missing trigger", func(t *testing.T) {
		path := writeFile(t, "jobs:\n  build:\n    steps:\n      - run: make\n")
		errs := Validate(path)
		assert.Equal(t, []string{"Warning: Missing 'on:' trigger configuration"}, errs)
	})

	t.Run("bare on key counts as trigger", func(t *testing.T) {
		path := writeFile(t, "on:\n  push:\njobs:\n  build:\n    steps:\n      - run: make\n")
		assert.Empty(t, Validate(path))
	})

	t.Run("quoted on key counts as trigger", func(t *testing.T) {
		path := writeFile(t, "\"on\": push\njobs:\n  build:\n    steps:\n      - run: make\n")
		assert.Empty(t, Validate(path))
	})
}

func TestValidateAccumulatesErrorsInDocumentOrder(t *testing.T) {
	path := writeFile(t, `
jobs:
  lint: nope
  build:
    steps: []
  test:
    steps:
      - name: no body
`)
	errs := Validate(path)

	want := []string{
		"Job 'lint' must be a dictionary",
		"Job 'build' must have at least one step",
		"Job 'test', step 0: must have 'uses' or 'run'",
		"Warning: Missing 'on:' trigger configuration",
	}
	assert.Equal(t, want, errs)
}
