package workflow

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/gha-debug/gha-debug/internal/errors"
)

// DefaultWorkflowDir is where GitHub Actions keeps workflow files.
const DefaultWorkflowDir = ".github/workflows"

// Discover resolves a path into workflow file paths. A file path yields
// itself; a directory yields its *.yml and *.yaml entries sorted by name.
// An empty result is not an error: callers decide how to report a directory
// without workflows.
func Discover(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.CodeWorkflowNotFound, "path not found: %s", path)
		}
		return nil, errors.Wrap(err, errors.CodeWorkflowNotFound, "could not inspect path")
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	for _, pattern := range []string{"*.yml", "*.yaml"} {
		matches, err := filepath.Glob(filepath.Join(path, pattern))
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeWorkflowNotFound, "could not scan directory")
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	return files, nil
}
