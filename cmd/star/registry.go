package main

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/starui-dev/star/internal/output"
	"github.com/starui-dev/star/internal/registry"
)

func registryCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Work with component registries",
	}
	cmd.AddCommand(registryServeCmd(env))
	return cmd
}

func registryServeCmd(env *environment) *cobra.Command {
	var (
		addr    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a registry over HTTP",
		Long: `Serve a component registry over HTTP.

The registry given by --registry (the embedded catalog by default) is served
in the layout star reads from http(s) locations:

  /manifest.json           component metadata
  /components/<name>.py    component sources
  /healthz                 liveness
  /metrics                 Prometheus metrics

Examples:
  star registry serve
  star registry serve --addr :9000 --registry ./my-catalog
  star --registry http://localhost:8080 add button`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env.setupLogging(verbose)
			return runRegistryServe(cmd.Context(), env, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every request")

	return cmd
}

func runRegistryServe(ctx context.Context, env *environment, addr string) error {
	client, err := env.openRegistry(ctx, nil)
	if err != nil {
		return err
	}
	// Fail before listening when the manifest is unusable.
	names, err := client.List(ctx)
	if err != nil {
		return err
	}

	handler := registry.NewServer(client, registry.WithRequestLogger(
		func(method, path string, status int, d time.Duration) {
			output.Debug("request", "method", method, "path", path, "status", status, "duration", d)
		},
	))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	p := env.printer()
	p.Success("Serving %d components on http://%s", len(names), ln.Addr())
	p.Hint("Press Ctrl+C to stop")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	p.Info("Registry stopped")
	return nil
}
