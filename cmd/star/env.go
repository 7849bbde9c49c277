package main

import (
	"context"
	"io"
	"os"

	"github.com/starui-dev/star/internal/config"
	"github.com/starui-dev/star/internal/exec"
	"github.com/starui-dev/star/internal/output"
	"github.com/starui-dev/star/internal/registry"
)

// environment is what commands read from and write to. Tests replace its
// streams, working directory and executor.
type environment struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	exec   exec.Executor

	// dir is the working directory; empty means the process cwd.
	dir string

	// Global flags.
	registry string
	noColor  bool
}

func newEnvironment() *environment {
	return &environment{
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		exec:   exec.New(),
	}
}

func (e *environment) printer() *output.Printer {
	return output.NewPrinter(e.out, e.errOut)
}

func (e *environment) prompt() *output.Prompt {
	return output.NewPrompt(e.in, e.out)
}

func (e *environment) setupLogging(verbose bool) {
	output.SetupLoggingTo(e.errOut, verbose)
}

// loadProject detects the project root from the working directory and
// loads its configuration.
func (e *environment) loadProject() (*config.Config, error) {
	cfg, err := config.LoadFromDir(e.dir)
	if err != nil {
		return nil, err
	}
	output.Debug("project detected", "root", cfg.Root())
	return cfg, nil
}

// openRegistry opens the --registry location, else the configured one,
// else the embedded catalog.
func (e *environment) openRegistry(ctx context.Context, cfg *config.Config) (registry.Client, error) {
	location := e.registry
	if location == "" && cfg != nil {
		location = cfg.Registry
	}
	if location == "" {
		location = os.Getenv("STARUI_REGISTRY")
	}
	output.Debug("opening registry", "location", location)
	return registry.Open(ctx, location)
}
