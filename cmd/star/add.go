package main

import (
	"github.com/spf13/cobra"

	"github.com/starui-dev/star/internal/install"
)

func addCmd(env *environment) *cobra.Command {
	var opts install.Options

	cmd := &cobra.Command{
		Use:   "add <component>...",
		Short: "Add components to your project",
		Long: `Add components and the components they depend on.

Sources are written to the component directory (components/ui by default)
and any Python packages they need are installed with uv.

Dependencies that already exist are kept. When a requested component already
exists you are asked before it is overwritten; --force overwrites everything
without asking.

Examples:
  star add button
  star add dialog alert-dialog
  star add code-block --theme dracula
  star add button --force`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Components = args
			return runAdd(cmd, env, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Overwrite existing components without asking")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show resolution details")
	cmd.Flags().StringVarP(&opts.Theme, "theme", "t", "", "Code highlighting theme (github-dark, monokai, dracula, ...)")

	return cmd
}

func runAdd(cmd *cobra.Command, env *environment, opts install.Options) error {
	env.setupLogging(opts.Verbose)

	// Reject bad names before touching the project or the registry.
	if err := install.ValidateNames(opts.Components); err != nil {
		return err
	}

	cfg, err := env.loadProject()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := env.openRegistry(ctx, cfg)
	if err != nil {
		return err
	}

	_, err = install.New(cfg, client, env.exec, env.prompt(), env.printer()).Run(ctx, opts)
	return err
}
