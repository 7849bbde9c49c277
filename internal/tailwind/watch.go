package tailwind

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starui-dev/star/internal/exec"
	"github.com/starui-dev/star/internal/output"
)

// rebuildDebounce is the quiet period after the last write of one
// compilation.
const rebuildDebounce = 100 * time.Millisecond

type runOutcome struct {
	res exec.Result
	err error
}

// watch runs cmd until ctx ends or the compiler exits, reporting each
// rewrite of the output file through opts.OnRebuild.
func (b *Builder) watch(ctx context.Context, cmd exec.Command, opts BuildOptions, start time.Time) BuildResult {
	out := b.Config.CSSOutputPath()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return BuildResult{OutputPath: out, Duration: time.Since(start), Error: "watch: " + err.Error()}
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(out)); err != nil {
		return BuildResult{OutputPath: out, Duration: time.Since(start), Error: "watch: " + err.Error()}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan runOutcome, 1)
	go func() {
		res, err := b.Exec.Run(runCtx, cmd)
		done <- runOutcome{res: res, err: err}
	}()

	events, errs := watcher.Events, watcher.Errors
	var (
		timer      *time.Timer
		fire       <-chan time.Time
		burstStart = start
		last       BuildResult
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Clean(ev.Name) != filepath.Clean(out) || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			// Every write pushes the report back until the compiler goes quiet.
			if timer == nil {
				timer = time.NewTimer(rebuildDebounce)
			} else {
				timer.Reset(rebuildDebounce)
			}
			fire = timer.C

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			output.Debug("watch error", "err", err)

		case <-fire:
			fire = nil
			last = b.result(out, time.Since(burstStart))
			burstStart = time.Now()
			if opts.OnRebuild != nil {
				opts.OnRebuild(last)
			}

		case o := <-done:
			if ctx.Err() != nil {
				if !last.Success {
					last = b.result(out, time.Since(start))
				}
				return last
			}
			if o.err != nil {
				return BuildResult{OutputPath: out, Duration: time.Since(start), Error: o.err.Error()}
			}
			if !o.res.Success() {
				return BuildResult{OutputPath: out, Duration: time.Since(start), Error: exitMessage(o.res)}
			}
			return b.result(out, time.Since(start))
		}
	}
}
