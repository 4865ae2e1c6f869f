package internal

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeWorkflow drops a workflow file into dir and returns its path.
func writeWorkflow(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write workflow file: %v", err)
	}
	return path
}

func TestRunCmd(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeWorkflow(t, tmpDir, "ci.yml", `
name: CI
on: [push]
jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - name: Say hello
        run: echo hello
`)

	b := bytes.NewBufferString("")
	cmd := NewRootCmd()
	cmd.SetOut(b)
	cmd.SetErr(b)
	cmd.SetArgs([]string{"run", path, "--no-color"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("failed to execute run command: %v", err)
	}

	out := b.String()
	for _, want := range []string{
		"Running workflow: CI",
		"File: " + path,
		"Job: build",
		"✓ Say hello",
		"✓ Workflow completed successfully in",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestRunCmdStopsOnFailure(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeWorkflow(t, tmpDir, "ci.yml", `
name: CI
on: [push]
jobs:
  build:
    steps:
      - name: Break
        run: exit 1
      - name: Never runs
        run: echo unreachable
`)

	b := bytes.NewBufferString("")
	cmd := NewRootCmd()
	cmd.SetOut(b)
	cmd.SetErr(b)
	cmd.SetArgs([]string{"run", path, "--no-color"})
	err := cmd.Execute()
	if err == nil {
		t.Fatalf("expected run command to fail")
	}

	out := b.String()
	if !strings.Contains(out, "✗ Break") {
		t.Errorf("expected output to show the failed step, got %q", out)
	}
	if !strings.Contains(out, "✗ Workflow failed: Job 'build' failed") {
		t.Errorf("expected output to name the failed job, got %q", out)
	}
	if strings.Contains(out, "Never runs") {
		t.Errorf("expected execution to stop at the first failure, got %q", out)
	}
}

func TestRunCmdJobFilter(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeWorkflow(t, tmpDir, "ci.yml", `
name: CI
on: [push]
jobs:
  lint:
    steps:
      - name: Lint
        run: echo lint
  test:
    steps:
      - name: Test
        run: echo test
`)

	b := bytes.NewBufferString("")
	cmd := NewRootCmd()
	cmd.SetOut(b)
	cmd.SetErr(b)
	cmd.SetArgs([]string{"run", path, "--job", "test", "--no-color"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("failed to execute run command: %v", err)
	}

	out := b.String()
	if !strings.Contains(out, "Job: test") {
		t.Errorf("expected the selected job to run, got %q", out)
	}
	if strings.Contains(out, "Job: lint") {
		t.Errorf("expected the other job to be skipped, got %q", out)
	}
}

func TestRunCmdJobFilterNotFound(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeWorkflow(t, tmpDir, "ci.yml", `
name: CI
on: [push]
jobs:
  build:
    steps:
      - run: echo hello
`)

	b := bytes.NewBufferString("")
	cmd := NewRootCmd()
	cmd.SetOut(b)
	cmd.SetErr(b)
	cmd.SetArgs([]string{"run", path, "--job", "missing", "--no-color"})
	err := cmd.Execute()
	if err == nil {
		t.Fatalf("expected run command to fail")
	}

	out := b.String()
	if !strings.Contains(out, "✗ Workflow failed: Job 'missing' not found") {
		t.Errorf("expected output to report the unknown job, got %q", out)
	}
	if strings.Contains(out, "\nJob: ") {
		t.Errorf("expected no job to start, got %q", out)
	}
}

func TestRunCmdVerbose(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeWorkflow(t, tmpDir, "ci.yml", `
name: CI
on: [push]
jobs:
  build:
    steps:
      - name: Checkout
        uses: actions/checkout@v4
        with:
          fetch-depth: 1
      - name: Greet
        run: echo verbose-stream
`)

	b := bytes.NewBufferString("")
	cmd := NewRootCmd()
	cmd.SetOut(b)
	cmd.SetErr(b)
	cmd.SetArgs([]string{"run", path, "--verbose", "--no-color"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("failed to execute run command: %v", err)
	}

	out := b.String()
	for _, want := range []string{
		"Using action: actions/checkout@v4",
		"With: fetch-depth=1",
		"Running: echo verbose-stream",
		"verbose-stream",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected verbose output to contain %q, got %q", want, out)
		}
	}
}

func TestRunCmdMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yml")

	b := bytes.NewBufferString("")
	errb := bytes.NewBufferString("")
	cmd := NewRootCmd()
	cmd.SetOut(b)
	cmd.SetErr(errb)
	cmd.SetArgs([]string{"run", path, "--no-color"})
	err := cmd.Execute()
	if err == nil {
		t.Fatalf("expected run command to fail")
	}

	want := "Error: workflow file not found: " + path
	if !strings.Contains(errb.String(), want) {
		t.Errorf("expected stderr to contain %q, got %q", want, errb.String())
	}
}
