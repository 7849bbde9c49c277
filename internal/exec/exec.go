// Package exec runs external programs for star: the package installer
// (uv) and the Tailwind CSS compiler. Callers depend on the Executor
// interface so tests can substitute Fake.
package exec

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	osexec "os/exec"
	"strings"
	"time"
)

// ErrNotFound is returned when the program is not installed.
var ErrNotFound = stderrors.New("executable not found")

// Command describes one program invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string // Additional environment variables

	// Stdout and Stderr, when set, receive output as it is produced in
	// addition to the captured copy in Result.
	Stdout io.Writer
	Stderr io.Writer
}

// String returns the command line for logs and tests.
func (c Command) String() string {
	parts := append([]string{c.Name}, c.Args...)
	return strings.Join(parts, " ")
}

// Result is the outcome of a command that ran to completion.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Success reports whether the command exited with status 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Executor runs commands. Run returns an error only when the program could
// not be started or the context was cancelled. A non-zero exit status is
// reported through Result.ExitCode.
type Executor interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// OS runs commands as child processes.
type OS struct {
	// For mocking in tests
	commandFunc func(name string, args ...string) *osexec.Cmd
}

// New returns an Executor backed by os/exec.
func New() *OS {
	return &OS{commandFunc: osexec.Command}
}

// Run starts the command and waits for it to exit or for ctx to end.
func (e *OS) Run(ctx context.Context, c Command) (Result, error) {
	cmd := e.commandFunc(c.Name, c.Args...)
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	if len(c.Env) > 0 {
		base := cmd.Env
		if base == nil {
			base = os.Environ()
		}
		cmd.Env = append(base, c.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = teeWriter(&stdout, c.Stdout)
	cmd.Stderr = teeWriter(&stderr, c.Stderr)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		if isCommandNotFound(err) {
			return Result{}, fmt.Errorf("%s: %w", c.Name, ErrNotFound)
		}
		return Result{}, fmt.Errorf("failed to start %s: %w", c.Name, err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- cmd.Wait()
	}()

	var waitErr error
	select {
	case <-ctx.Done():
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		<-errCh
		return Result{
			ExitCode: -1,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			Duration: time.Since(start),
		}, fmt.Errorf("%s cancelled: %w", c.Name, ctx.Err())
	case waitErr = <-errCh:
	}

	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if waitErr != nil {
		var exitErr *osexec.ExitError
		if !stderrors.As(waitErr, &exitErr) {
			return res, fmt.Errorf("%s failed: %w", c.Name, waitErr)
		}
		res.ExitCode = exitErr.ExitCode()
	}
	return res, nil
}

// LookPath reports the resolved path of a program on PATH.
func LookPath(name string) (string, error) {
	p, err := osexec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return p, nil
}

func teeWriter(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}

// isCommandNotFound checks if an error indicates a command was not found
func isCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, osexec.ErrNotFound) ||
		stderrors.Is(err, os.ErrNotExist) ||
		strings.Contains(err.Error(), "executable file not found")
}
