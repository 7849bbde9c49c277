package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/starui-dev/star/internal/config"
	"github.com/starui-dev/star/internal/output"
	"github.com/starui-dev/star/internal/registry"
)

type listFlags struct {
	category  string
	search    string
	installed bool
	verbose   bool
}

func listCmd(env *environment) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available components",
		Long: `List the components in the registry.

Examples:
  star list
  star list --category overlay
  star list --search dialog
  star list --installed --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, env, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.category, "category", "c", "", "Only show one category")
	cmd.Flags().StringVarP(&flags.search, "search", "s", "", "Filter by name or description")
	cmd.Flags().BoolVarP(&flags.installed, "installed", "i", false, "Only show installed components")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Show dependencies and install state")

	return cmd
}

func runList(cmd *cobra.Command, env *environment, flags listFlags) error {
	env.setupLogging(flags.verbose)

	cfg, err := env.loadProject()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := env.openRegistry(ctx, cfg)
	if err != nil {
		return err
	}

	p := env.printer()
	names, err := client.List(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		p.Info("No components found")
		return nil
	}

	headers := []string{"Component", "Category", "Description"}
	if flags.verbose {
		headers = append(headers, "Dependencies")
	}
	tbl := output.NewTable(headers...)

	for _, name := range names {
		meta, err := client.Metadata(ctx, name)
		if err != nil {
			p.Warn("Skipping %s: %v", name, err)
			continue
		}

		category := meta.DisplayCategory()
		installed := isInstalled(cfg, name)
		if !matches(meta, category, installed, flags) {
			continue
		}

		label := name
		if flags.verbose && installed {
			label += " (installed)"
		}
		if category == "" {
			category = "-"
		}
		row := []string{label, category, meta.Description}
		if flags.verbose {
			row = append(row, strings.Join(meta.Dependencies, ", "))
		}
		tbl.Row(row...)
	}

	if tbl.Len() == 0 {
		p.Info("No components match filters")
		return nil
	}

	p.Println(tbl.String())
	p.Hint("%d component(s). Add one with: star add <name>", tbl.Len())
	return nil
}

func matches(meta *registry.Component, category string, installed bool, flags listFlags) bool {
	if flags.category != "" && !strings.EqualFold(category, flags.category) {
		return false
	}
	if flags.search != "" {
		q := strings.ToLower(flags.search)
		if !strings.Contains(strings.ToLower(meta.Name), q) &&
			!strings.Contains(strings.ToLower(meta.Description), q) {
			return false
		}
	}
	return !flags.installed || installed
}

func isInstalled(cfg *config.Config, name string) bool {
	info, err := os.Stat(cfg.ComponentPath(name))
	return err == nil && !info.IsDir()
}
