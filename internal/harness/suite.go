package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// SuiteResult summarizes a run over many scenario files.
type SuiteResult struct {
	TotalScenarios int               `json:"total_scenarios"`
	Passed         int               `json:"passed"`
	Failed         int               `json:"failed"`
	Failures       []ScenarioFailure `json:"failures,omitempty"`
}

// ScenarioFailure represents a scenario that failed to load, run, or pass.
type ScenarioFailure struct {
	ScenarioPath string `json:"scenario_path"`
	Name         string `json:"name,omitempty"`
	Error        string `json:"error"`
}

// ScenarioPaths expands path into scenario files. A directory yields its
// *.yaml and *.yml files in name order; anything else is returned as is.
func ScenarioPaths(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("scenario path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario dir: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(path, entry.Name()))
		}
	}
	slices.Sort(paths)
	return paths, nil
}

// RunSuite loads and runs every scenario under path.
//
// For each scenario file:
// 1. Load and validate it
// 2. Run it via Run
// 3. Collect pass/fail with the first error
//
// A scenario that cannot be loaded counts as failed; the suite keeps going.
// Only a cancelled context or an unreadable path stops it early.
func RunSuite(ctx context.Context, path string) (*SuiteResult, error) {
	paths, err := ScenarioPaths(path)
	if err != nil {
		return nil, err
	}

	result := &SuiteResult{}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.TotalScenarios++

		scenario, err := LoadScenario(p)
		if err != nil {
			result.fail(p, "", err.Error())
			continue
		}

		run, err := Run(scenario)
		if err != nil {
			result.fail(p, scenario.Name, err.Error())
			continue
		}
		if !run.Pass {
			result.fail(p, scenario.Name, strings.Join(run.Errors, "; "))
			continue
		}
		result.Passed++
	}
	return result, nil
}

func (r *SuiteResult) fail(path, name, msg string) {
	r.Failed++
	r.Failures = append(r.Failures, ScenarioFailure{ScenarioPath: path, Name: name, Error: msg})
}
