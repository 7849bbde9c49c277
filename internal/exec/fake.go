package exec

import (
	"context"
	"sync"
)

// Fake is an Executor that records commands instead of running them.
type Fake struct {
	// Handler computes the result for a command. A nil Handler succeeds
	// with exit status 0.
	Handler func(ctx context.Context, cmd Command) (Result, error)

	mu    sync.Mutex
	calls []Command
}

// Run records cmd and delegates to Handler.
func (f *Fake) Run(ctx context.Context, cmd Command) (Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()

	if f.Handler == nil {
		return Result{}, nil
	}
	return f.Handler(ctx, cmd)
}

// Calls returns the recorded commands in order.
func (f *Fake) Calls() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Command, len(f.calls))
	copy(out, f.calls)
	return out
}

// Lines returns the recorded command lines in order.
func (f *Fake) Lines() []string {
	calls := f.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}
