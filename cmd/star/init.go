package main

import (
	"github.com/spf13/cobra"

	"github.com/starui-dev/star/internal/output"
	"github.com/starui-dev/star/internal/scaffold"
)

func initCmd(env *environment) *cobra.Command {
	var (
		force       bool
		verbose     bool
		writeConfig bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up StarUI in the current project",
		Long: `Set up StarUI in the current project.

This command:
  • Creates the component directory and static/css
  • Writes static/css/input.css with the theme variables
  • Adds the utils and theme_toggle components
  • Writes a starter app.py (if missing)
  • Adds generated files to .gitignore

Examples:
  star init
  star init --config
  star init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env.setupLogging(verbose)

			cfg, err := env.loadProject()
			if err != nil {
				return err
			}
			p := env.printer()

			// Without a registry init still scaffolds the project, only the
			// default components are skipped.
			client, err := env.openRegistry(cmd.Context(), cfg)
			if err != nil {
				if verbose {
					p.Warn("Registry unavailable, skipping default components: %v", err)
				} else {
					output.Debug("registry unavailable", "err", err)
				}
				client = nil
			}

			p.Println(scaffoldBanner)

			in := &scaffold.Initializer{
				Config:      cfg,
				Client:      client,
				Printer:     p,
				Force:       force,
				WriteConfig: writeConfig,
				Verbose:     verbose,
			}
			return in.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Initialize even if StarUI is already set up")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show each created file")
	cmd.Flags().BoolVar(&writeConfig, "config", false, "Also write starui.yaml")

	return cmd
}

const scaffoldBanner = "  Initializing StarUI..."
