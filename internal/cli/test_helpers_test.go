package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// cliRun is the captured result of one CLI invocation.
type cliRun struct {
	Stdout string
	Stderr string
	Err    error
}

// runCLI executes the root command with args and optional stdin.
func runCLI(t *testing.T, stdin string, args ...string) cliRun {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return cliRun{Stdout: out.String(), Stderr: errOut.String(), Err: err}
}

// createTestDB returns a database path in a fresh temp dir.
func createTestDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "game.db")
}

// writeFile writes content to name inside a temp dir and returns the path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// decodeResponse parses a --format json response.
func decodeResponse(t *testing.T, stdout string) CLIResponse {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp), "stdout: %s", stdout)
	return resp
}

// stateJSON loads the saved game through the state command.
func stateJSON(t *testing.T, db string) map[string]any {
	t.Helper()
	run := runCLI(t, "", "--db", db, "--format", "json", "state")
	require.NoError(t, run.Err)
	resp := decodeResponse(t, run.Stdout)
	state, ok := resp.Data.(map[string]any)
	require.True(t, ok, "state data is %T", resp.Data)
	return state
}
