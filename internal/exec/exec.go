// Package exec runs external commands and bundled shell scripts.
//
// Every invocation is synchronous: the caller blocks until the process
// exits. Scripts are started through the configured shell (bash by
// default) and report failure through their exit code.
package exec

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	osexec "os/exec"
	"strings"
	"sync"

	"github.com/asamgx/crunchsetup/internal/debug"
)

// Result is the outcome of a finished process
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the process exited with status 0
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes commands. The zero value runs scripts with bash.
type Runner struct {
	// Shell interprets scripts passed to RunScript
	Shell string
	// DryRun prints commands to Out instead of running them
	DryRun bool
	Out    io.Writer
}

// New creates a runner that starts scripts with the given shell
func New(shell string) *Runner {
	return &Runner{Shell: shell, Out: os.Stdout}
}

// sensitiveFlags are flags whose following argument is never logged
var sensitiveFlags = map[string]bool{
	"-p":         true,
	"--password": true,
}

// RedactArgs masks the values of password flags
func RedactArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out)-1; i++ {
		if sensitiveFlags[out[i]] {
			out[i+1] = "********"
			i++
		}
	}
	return out
}

// CommandLine renders a command with password values masked
func CommandLine(name string, args []string) string {
	parts := append([]string{name}, RedactArgs(args)...)
	return strings.Join(parts, " ")
}

// Run executes a command and returns its stdout; a non-zero exit is an error
func (r *Runner) Run(name string, args ...string) (string, error) {
	res, err := r.run(context.Background(), "", name, args, nil)
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return res.Stdout, &ExitError{Command: name, Result: res}
	}
	return res.Stdout, nil
}

// RunLines executes a command and returns stdout split into lines
func (r *Runner) RunLines(name string, args ...string) ([]string, error) {
	out, err := r.Run(name, args...)
	if err != nil {
		return nil, err
	}
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// RunWithStdin executes a command with the given text on stdin.
// A non-zero exit is reported in the Result, not as an error.
func (r *Runner) RunWithStdin(ctx context.Context, stdin string, name string, args ...string) (Result, error) {
	return r.run(ctx, stdin, name, args, nil)
}

// RunScript starts script through the runner's shell and waits for it.
// A non-zero exit is reported in the Result; the error is set only when
// the script could not be started.
func (r *Runner) RunScript(ctx context.Context, script string, args []string) (Result, error) {
	return r.RunScriptWithOutput(ctx, script, args, nil)
}

// RunScriptWithOutput is RunScript with line-by-line output streaming
func (r *Runner) RunScriptWithOutput(ctx context.Context, script string, args []string, onLine func(line string)) (Result, error) {
	shell := r.Shell
	if shell == "" {
		shell = "bash"
	}
	return r.run(ctx, "", shell, append([]string{script}, args...), onLine)
}

// Exists checks whether a command is on PATH
func (r *Runner) Exists(name string) bool {
	_, err := osexec.LookPath(name)
	return err == nil
}

func (r *Runner) run(ctx context.Context, stdin, name string, args []string, onLine func(string)) (Result, error) {
	line := CommandLine(name, args)
	if r.DryRun {
		out := r.Out
		if out == nil {
			out = os.Stdout
		}
		fmt.Fprintf(out, "would run: %s\n", line)
		return Result{}, nil
	}

	debug.Log("exec: %s", line)

	cmd := osexec.CommandContext(ctx, name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	var stream *lineWriter
	if onLine != nil {
		stream = &lineWriter{onLine: onLine}
		cmd.Stdout = io.MultiWriter(&stdout, stream)
		cmd.Stderr = io.MultiWriter(&stderr, stream)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	if stream != nil {
		stream.Flush()
	}

	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *osexec.ExitError
	switch {
	case err == nil:
		return res, nil
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		debug.Log("exec: %s exited with %d", name, res.ExitCode)
		return res, nil
	default:
		debug.LogError("exec "+name, err)
		return res, fmt.Errorf("failed to run %s: %w", name, err)
	}
}

// ExitError reports a command that exited with a non-zero status
type ExitError struct {
	Command string
	Result  Result
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Result.Stderr)
	if msg == "" {
		return fmt.Sprintf("%s exited with status %d", e.Command, e.Result.ExitCode)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Command, e.Result.ExitCode, msg)
}

// lineWriter splits written bytes into lines for a callback
type lineWriter struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	onLine func(string)
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		data := w.buf.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		w.onLine(string(data[:i]))
		w.buf.Next(i + 1)
	}
	return len(p), nil
}

// Flush emits any trailing partial line
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() == 0 {
		return
	}
	sc := bufio.NewScanner(&w.buf)
	for sc.Scan() {
		w.onLine(sc.Text())
	}
	w.buf.Reset()
}
