package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/starui-dev/star/internal/tailwind"
)

func versionCmd(env *environment) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print version, commit, and build information for the star CLI.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := env.out
			if short {
				fmt.Fprintln(w, version)
				return
			}

			printBanner(w)
			fmt.Fprintln(w)
			fmt.Fprintf(w, "  Version:    %s\n", version)
			fmt.Fprintf(w, "  Commit:     %s\n", commit)
			fmt.Fprintf(w, "  Built:      %s\n", date)
			fmt.Fprintf(w, "  Tailwind:   %s\n", tailwind.Version)
			fmt.Fprintf(w, "  Go version: %s\n", runtime.Version())
			fmt.Fprintf(w, "  Platform:   %s\n", tailwind.PlatformName())
			fmt.Fprintln(w)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")

	return cmd
}
