// Package report renders validation results as a standalone HTML page.
package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/gha-debug/gha-debug/internal/errors"
	"github.com/gha-debug/gha-debug/internal/workflow"
)

// DefaultFileName is used when no output path is configured; the report
// lands in the system temp directory.
const DefaultFileName = "gha-debug-report.html"

//go:embed template.html
var templateHTML string

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"base":     filepath.Base,
	"truncate": truncate,
}).Parse(templateHTML))

// WorkflowResult is one validated workflow file in a report.
type WorkflowResult struct {
	File   string
	Name   string
	Valid  bool
	Errors []string
	Jobs   []JobSummary
}

// JobSummary describes one job for display purposes only.
type JobSummary struct {
	Name   string
	RunsOn string
	Steps  []StepSummary
}

// StepSummary carries just enough of a step to render its badge.
type StepSummary struct {
	Name string
	Uses string
	Run  string
}

type reportData struct {
	GeneratedAt string
	Status      string
	StatusClass string
	Workflows   int
	Jobs        int
	Steps       int
	Results     []WorkflowResult
}

// Summarize converts a loaded workflow into the display shape used by the
// report. Invalid files that never parsed have no summary to give.
func Summarize(wf *workflow.Workflow) []JobSummary {
	jobs := make([]JobSummary, 0, len(wf.Jobs))
	for i := range wf.Jobs {
		job := &wf.Jobs[i]
		steps := make([]StepSummary, 0, len(job.Steps))
		for j := range job.Steps {
			steps = append(steps, StepSummary{
				Name: job.Steps[j].Name,
				Uses: job.Steps[j].Uses,
				Run:  job.Steps[j].Run,
			})
		}
		jobs = append(jobs, JobSummary{Name: job.Name, RunsOn: job.RunsOn, Steps: steps})
	}
	return jobs
}

// Generate renders the HTML report for a set of validation results.
func Generate(results []WorkflowResult) (string, error) {
	valid, jobs, steps := 0, 0, 0
	for i := range results {
		if results[i].Valid {
			valid++
		}
		jobs += len(results[i].Jobs)
		for j := range results[i].Jobs {
			steps += len(results[i].Jobs[j].Steps)
		}
	}

	status, statusClass := "ALL VALID", "pass"
	if valid != len(results) {
		status = fmt.Sprintf("%d FAILED", len(results)-valid)
		statusClass = "fail"
	}

	data := reportData{
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04:05 UTC"),
		Status:      status,
		StatusClass: statusClass,
		Workflows:   len(results),
		Jobs:        jobs,
		Steps:       steps,
		Results:     results,
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, errors.CodeReportWrite, "rendering validation report")
	}
	return buf.String(), nil
}

// Export renders the report and writes it to path. An empty path falls back
// to DefaultFileName under the system temp directory. Returns the path the
// report was written to.
func Export(results []WorkflowResult, path string) (string, error) {
	html, err := Generate(results)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = filepath.Join(os.TempDir(), DefaultFileName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.Wrap(err, errors.CodeReportWrite, fmt.Sprintf("writing validation report to %s", path))
	}
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return "", errors.Wrap(err, errors.CodeReportWrite, fmt.Sprintf("writing validation report to %s", path))
	}
	return path, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
