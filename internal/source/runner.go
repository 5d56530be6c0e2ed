package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrToolNotFound is wrapped by UnavailableError when the CLI is not on PATH.
var ErrToolNotFound = errors.New("command not found")

// Runner executes an external command and captures its output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*RunResult, error)
}

// RunResult captures command output.
type RunResult struct {
	Stdout []byte
	Stderr string
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct {
	execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewRunner returns a runner that executes real commands.
func NewRunner() *ExecRunner {
	return &ExecRunner{execCommand: exec.CommandContext}
}

// Run executes name with args. The result is returned even on failure so
// callers can report stderr.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*RunResult, error) {
	if r == nil || r.execCommand == nil {
		return nil, errors.New("runner not configured")
	}

	cmd := r.execCommand(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &RunResult{Stdout: stdout.Bytes(), Stderr: stderr.String()}
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return result, fmt.Errorf("%s: %w", name, ErrToolNotFound)
		}
		return result, err
	}
	return result, nil
}

// UnavailableError means the record source could not produce records: the
// CLI is missing, not logged in, misconfigured, or printed something that
// is not the expected JSON.
type UnavailableError struct {
	Tool   string
	Args   []string
	Stderr string
	Err    error
}

func (e *UnavailableError) Error() string {
	msg := fmt.Sprintf("%s %s failed", e.Tool, strings.Join(commandWords(e.Args), " "))
	if detail := firstLine(e.Stderr); detail != "" {
		msg += ": " + detail
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Suggestion returns a hint for fixing the failure, or "".
func (e *UnavailableError) Suggestion() string {
	stderr := strings.ToLower(e.Stderr)
	switch {
	case errors.Is(e.Err, ErrToolNotFound):
		return "install the Azure CLI and run: az extension add --name azure-devops"
	case strings.Contains(stderr, "az login"),
		strings.Contains(stderr, "authenticat"),
		strings.Contains(stderr, "tf400813"),
		strings.Contains(stderr, "unauthorized"):
		return "sign in with: az login (or az devops login for a PAT)"
	case strings.Contains(stderr, "azure-devops") && strings.Contains(stderr, "extension"):
		return "add the extension with: az extension add --name azure-devops"
	case strings.Contains(stderr, "organization"):
		return "set --org or run: az devops configure --defaults organization=https://dev.azure.com/<org>"
	case strings.Contains(stderr, "project"):
		return "set --project or run: az devops configure --defaults project=<project>"
	}
	return ""
}

// commandWords keeps the leading subcommand words of args, dropping flags
// and their values so error messages stay short.
func commandWords(args []string) []string {
	var words []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			break
		}
		words = append(words, arg)
	}
	return words
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return strings.TrimPrefix(line, "ERROR: ")
	}
	return ""
}
