package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/starui-dev/star/internal/errors"
	"github.com/starui-dev/star/internal/output"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔═╗╔╦╗╔═╗╦═╗╦ ╦╦
  ╚═╗ ║ ╠═╣╠╦╝║ ║║
  ╚═╝ ╩ ╩ ╩╩╚═╚═╝╩
`

func main() {
	ctx, stop := signalContext(context.Background())
	code := run(ctx, os.Args[1:], newEnvironment())
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, env *environment) int {
	root := newRootCmd(env)
	root.SetArgs(args)
	root.SetIn(env.in)
	root.SetOut(env.out)
	root.SetErr(env.errOut)

	if err := root.ExecuteContext(ctx); err != nil {
		errors.Fprint(env.errOut, err)
		return 1
	}
	return 0
}

func newRootCmd(env *environment) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "star",
		Short: "Copy-in UI components for StarHTML projects",
		Long: `star installs StarUI components into your project as source you own.

Components come from a registry along with the components they depend on.
Their stylesheet is compiled with the Tailwind CSS standalone binary, so no
Node.js toolchain is needed.

Examples:
  star init
  star add button dialog
  star build --watch
  star list --category form`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if env.noColor || os.Getenv("NO_COLOR") != "" {
				output.DisableColor()
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&env.registry, "registry", "", "Component registry location (env STARUI_REGISTRY)")
	rootCmd.PersistentFlags().BoolVar(&env.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		initCmd(env),
		addCmd(env),
		buildCmd(env),
		listCmd(env),
		registryCmd(env),
		versionCmd(env),
	)
	return rootCmd
}

// printBanner writes the StarUI ASCII art banner.
func printBanner(w io.Writer) {
	io.WriteString(w, banner)
}
