package testutil

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

var (
	// binaryPath caches the path to the built ontoq binary.
	binaryPath string
	buildMu    sync.Mutex
	buildErr   error
)

// CLIResult represents the result of running a CLI command.
type CLIResult struct {
	OK       bool
	Data     map[string]interface{}
	Error    *CLIError
	Meta     *CLIMeta
	RawJSON  string
	ExitCode int
}

// CLIError represents a structured error from the CLI.
type CLIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// CLIMeta contains metadata from the response.
type CLIMeta struct {
	Count       int    `json:"count,omitempty"`
	QueryTimeMs int64  `json:"query_time_ms,omitempty"`
	Session     string `json:"session,omitempty"`
}

// BuildCLI builds the ontoq binary once per test process and returns its path.
func BuildCLI(t *testing.T) string {
	t.Helper()

	buildMu.Lock()
	defer buildMu.Unlock()

	if binaryPath != "" {
		if _, err := os.Stat(binaryPath); err == nil {
			return binaryPath
		}
		binaryPath, buildErr = "", nil
	}

	if buildErr == nil {
		binaryPath, buildErr = buildBinary()
	}
	if buildErr != nil {
		t.Fatalf("failed to build CLI: %v", buildErr)
	}
	return binaryPath
}

func buildBinary() (string, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return "", err
	}
	tmpDir, err := os.MkdirTemp("", "ontoq-cli-bin-*")
	if err != nil {
		return "", err
	}

	binName := "ontoq"
	if runtime.GOOS == "windows" {
		binName = "ontoq.exe"
	}
	path := filepath.Join(tmpDir, binName)

	cmd := exec.Command("go", "build", "-o", path, "./cmd/ontoq")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", &BuildError{Output: string(output), Err: err}
	}
	return path, nil
}

// BuildError represents an error building the CLI binary.
type BuildError struct {
	Output string
	Err    error
}

func (e *BuildError) Error() string {
	return e.Err.Error() + "\n" + e.Output
}

// findProjectRoot walks up the directory tree to find go.mod.
func findProjectRoot() (string, error) {
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

// RunCLI runs ontoq against the workspace config with --json and parses
// the response envelope.
func (w *TestWorkspace) RunCLI(args ...string) *CLIResult {
	w.t.Helper()
	return w.runCLI("", args...)
}

// RunCLIWithStdin is RunCLI with stdin input.
func (w *TestWorkspace) RunCLIWithStdin(stdin string, args ...string) *CLIResult {
	w.t.Helper()
	return w.runCLI(stdin, args...)
}

func (w *TestWorkspace) runCLI(stdin string, args ...string) *CLIResult {
	w.t.Helper()
	binary := BuildCLI(w.t)

	cmdArgs := append([]string{"--config", w.ConfigPath(), "--json"}, args...)
	cmd := exec.Command(binary, cmdArgs...)
	cmd.Dir = w.Path
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	// stdout carries the JSON envelope; logs go to stderr
	output, err := cmd.Output()

	result := &CLIResult{RawJSON: string(output)}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
	}

	var resp struct {
		OK    bool                   `json:"ok"`
		Data  map[string]interface{} `json:"data,omitempty"`
		Error *CLIError              `json:"error,omitempty"`
		Meta  *CLIMeta               `json:"meta,omitempty"`
	}
	if err := json.Unmarshal(output, &resp); err != nil {
		result.Error = &CLIError{
			Code:    "PARSE_ERROR",
			Message: "Failed to parse JSON output: " + err.Error() + "\nraw: " + string(output),
		}
		return result
	}

	result.OK = resp.OK
	result.Data = resp.Data
	result.Error = resp.Error
	result.Meta = resp.Meta
	return result
}

// MustSucceed fails the test if the CLI command did not succeed.
func (r *CLIResult) MustSucceed(t *testing.T) *CLIResult {
	t.Helper()
	if !r.OK {
		errMsg := "unknown error"
		if r.Error != nil {
			errMsg = r.Error.Code + ": " + r.Error.Message
		}
		t.Fatalf("expected command to succeed, got error: %s\nRaw output: %s", errMsg, r.RawJSON)
	}
	return r
}

// MustFail fails the test if the CLI command did not fail with the expected code.
func (r *CLIResult) MustFail(t *testing.T, expectedCode string) *CLIResult {
	t.Helper()
	if r.OK {
		t.Fatalf("expected command to fail with code %s, but it succeeded\nRaw output: %s", expectedCode, r.RawJSON)
	}
	if r.Error == nil {
		t.Fatalf("expected error with code %s, but error is nil\nRaw output: %s", expectedCode, r.RawJSON)
	}
	if r.Error.Code != expectedCode {
		t.Fatalf("expected error code %s, got %s: %s\nRaw output: %s", expectedCode, r.Error.Code, r.Error.Message, r.RawJSON)
	}
	if r.ExitCode == 0 {
		t.Fatalf("expected non-zero exit code for %s", expectedCode)
	}
	return r
}

// DataList extracts a list from the Data field.
func (r *CLIResult) DataList(key string) []interface{} {
	if list, ok := r.Data[key].([]interface{}); ok {
		return list
	}
	return nil
}

// DataString extracts a string from the Data field.
func (r *CLIResult) DataString(key string) string {
	if s, ok := r.Data[key].(string); ok {
		return s
	}
	return ""
}

// DataInt extracts a number from the Data field.
func (r *CLIResult) DataInt(key string) int {
	if n, ok := r.Data[key].(float64); ok {
		return int(n)
	}
	return 0
}
