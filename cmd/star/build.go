package main

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/starui-dev/star/internal/config"
	"github.com/starui-dev/star/internal/errors"
	"github.com/starui-dev/star/internal/output"
	"github.com/starui-dev/star/internal/tailwind"
)

type buildFlags struct {
	output   string
	minify   bool
	noMinify bool
	watch    bool
	verbose  bool
}

func buildCmd(env *environment) *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the project stylesheet",
		Long: `Compile static/css/input.css with Tailwind CSS.

Class names used in the component directory are included. Output is
minified unless --no-minify is given. The Tailwind standalone binary is
downloaded on first use.

Examples:
  star build
  star build --output static/css/site
  star build --watch --no-minify`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, env, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output stylesheet path (default from starui.yaml)")
	cmd.Flags().BoolVar(&flags.minify, "minify", true, "Minify output")
	cmd.Flags().BoolVar(&flags.noMinify, "no-minify", false, "Do not minify output")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "Rebuild on changes until interrupted")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Show compiler output")

	return cmd
}

func runBuild(cmd *cobra.Command, env *environment, flags buildFlags) error {
	env.setupLogging(flags.verbose)

	cfg, err := env.loadProject()
	if err != nil {
		return err
	}
	if flags.output != "" {
		// The input stylesheet stays where the configuration puts it.
		cfg.InputCSS = cfg.InputCSSPath()
		cfg.CSSOutput = coerceCSSPath(flags.output)
	}

	out := cfg.CSSOutputPath()
	if err := os.Remove(out); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}

	p := env.printer()
	builder := tailwind.NewBuilder(cfg, env.exec)
	builder.Progress = func(msg string) { p.Info("%s", msg) }
	if flags.verbose {
		builder.Stderr = env.errOut
	}

	mode := tailwind.Development
	if flags.minify && !flags.noMinify {
		mode = tailwind.Production
	}
	opts := tailwind.BuildOptions{
		Mode:        mode,
		Watch:       flags.watch,
		ScanContent: true,
	}

	ctx := cmd.Context()
	var result tailwind.BuildResult
	if flags.watch {
		p.Info("Watching %s for changes (Ctrl+C to stop)...", relPath(cfg, cfg.InputCSSPath()))
		opts.OnRebuild = func(r tailwind.BuildResult) {
			if r.Success {
				p.Success("Rebuilt %s (%s)", relPath(cfg, r.OutputPath), tailwind.FormatSize(r.Size))
			} else {
				p.Warn("Rebuild failed: %s", r.Error)
			}
		}
		result = builder.Build(ctx, opts)
	} else {
		err := output.RunWithSpinner(ctx, "Building CSS...", func() error {
			result = builder.Build(ctx, opts)
			return nil
		})
		if err != nil {
			return err
		}
	}

	if !result.Success {
		return errors.New("E242").WithDetail(result.Error)
	}

	p.Success("Build completed!")
	stats := output.NewTable("Output", "Time", "Size").
		Row(relPath(cfg, result.OutputPath), fmt.Sprintf("%.1fs", result.Duration.Seconds()), tailwind.FormatSize(result.Size))
	p.Println(stats.String())
	if flags.verbose {
		p.Info("Mode: %s", mode)
	}
	return nil
}

// coerceCSSPath appends .css when path lacks it.
func coerceCSSPath(path string) string {
	if strings.HasSuffix(path, ".css") {
		return path
	}
	return path + ".css"
}

func relPath(cfg *config.Config, path string) string {
	if r, err := filepath.Rel(cfg.Root(), path); err == nil && !strings.HasPrefix(r, "..") {
		return filepath.ToSlash(r)
	}
	return path
}
