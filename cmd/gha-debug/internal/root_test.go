package internal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gha-debug/gha-debug/internal/config"
)

func TestExecute(t *testing.T) {
	cmd := NewRootCmd()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	err := cmd.Execute()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(b.String(), "gha-debug") {
		t.Errorf("expected the help text, got %q", b.String())
	}
}

func TestUnknownCommand(t *testing.T) {
	cmd := NewRootCmd()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetErr(b)
	cmd.SetArgs([]string{"frobnicate"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error for an unknown command")
	}
}

func TestRootFlagOverrides(t *testing.T) {
	if err := config.Initialize(""); err != nil {
		t.Fatalf("failed to initialize config: %v", err)
	}
	prev := config.Instance.LogLevel
	defer func() { config.Instance.LogLevel = prev }()

	b := bytes.NewBufferString("")
	cmd := NewRootCmd()
	cmd.SetOut(b)
	cmd.SetErr(b)
	cmd.SetArgs([]string{"--log-level", "debug", "--no-color", "list", t.TempDir()})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.Instance.LogLevel != "debug" {
		t.Errorf("expected the flag to override the configured log level, got %q", config.Instance.LogLevel)
	}
}
