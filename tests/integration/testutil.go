// Package integration provides CLI integration tests for chains.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// chainsBin is the path to the built chains binary.
	chainsBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetChainsBin sets the path to the chains binary (called from TestMain).
func SetChainsBin(path string) {
	chainsBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// TestEnv is an isolated environment with its own config directory.
type TestEnv struct {
	t         *testing.T
	TempDir   string
	ConfigDir string
}

// NewTestEnv creates a new isolated test environment. The config directory
// is not created, so the first command writes the default config.yaml.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build chains: %v", buildErr)
	}
	if chainsBin == "" {
		t.Fatal("chains binary not built (chainsBin is empty)")
	}

	tempDir := t.TempDir()
	return &TestEnv{
		t:         t,
		TempDir:   tempDir,
		ConfigDir: filepath.Join(tempDir, "config"),
	}
}

// WriteConfig writes config.yaml into the environment's config directory.
func (e *TestEnv) WriteConfig(content string) {
	e.t.Helper()
	e.writeFile(filepath.Join(e.ConfigDir, "config.yaml"), content)
}

// WriteScript writes a script into <config-dir>/scripts and returns its path.
func (e *TestEnv) WriteScript(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.ConfigDir, "scripts", name)
	e.writeFile(path, content)
	return path
}

func (e *TestEnv) writeFile(path, content string) {
	e.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("failed to write %s: %v", path, err)
	}
}

// CmdResult holds the result of a chains command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunChains executes the chains CLI with the given arguments and extra
// environment variables.
func (e *TestEnv) RunChains(env []string, args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.ConfigDir}, args...)
	cmd := exec.Command(chainsBin, allArgs...)
	cmd.Env = append(os.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run chains: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunChains executes the chains CLI and fails the test if it returns non-zero.
func (e *TestEnv) MustRunChains(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunChains(nil, args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("chains %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// Result mirrors one op result of the JSON report.
type Result struct {
	Step        int    `json:"step"`
	Op          string `json:"op"`
	Mode        string `json:"mode"`
	OK          bool   `json:"ok"`
	Value       string `json:"value"`
	Index       *int   `json:"index"`
	Len         int    `json:"len"`
	SlotCleared bool   `json:"slot_cleared"`
	Refused     bool   `json:"refused"`
	Error       string `json:"error"`
}

// Report mirrors the JSON report of run and demo.
type Report struct {
	Name     string   `json:"name"`
	Topology string   `json:"topology"`
	ListID   string   `json:"list_id"`
	Results  []Result `json:"results"`
	Forward  []string `json:"forward"`
	Backward []string `json:"backward"`
	Chain    string   `json:"chain"`
	Stats    struct {
		Live   int `json:"live"`
		Allocs int `json:"allocs"`
		Frees  int `json:"frees"`
	} `json:"stats"`
}
