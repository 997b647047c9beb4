package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/roach88/taskstore/internal/api"
	"github.com/roach88/taskstore/internal/config"
	"github.com/roach88/taskstore/internal/store"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr string
	Seed string

	// Ready, if set, receives the listening address once the server accepts
	// connections (for testing with --addr 127.0.0.1:0).
	Ready chan<- string

	// IDs overrides the task id source (for testing). Defaults to a MillisClock.
	IDs store.IDSource
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return newServeCommand(&ServeOptions{RootOptions: rootOpts})
}

func newServeCommand(opts *ServeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the task API server",
		Long: `Run the HTTP/JSON task API.

Tasks live in memory only. Every start begins from the seed: the built-in
example task, or the tasks in --seed (YAML, TOML or JSON by extension).

Example:
  taskstore serve
  taskstore serve --addr :8080 --seed ./tasks.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (default :3000)")
	cmd.Flags().StringVar(&opts.Seed, "seed", "", "seed file with the initial tasks")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	f := newFormatter(cmd, opts.RootOptions)

	if err := opts.bindFlags(cmd, map[string]string{
		"addr": config.KeyServerAddr,
		"seed": config.KeyStoreSeedFile,
	}); err != nil {
		return f.Fail(ErrCodeGeneric, ExitCommandError, "failed to bind flags", err)
	}
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return f.Fail(ErrCodeConfig, ExitCommandError, "failed to load config", err)
	}

	seed, err := store.LoadSeed(cfg.Store.SeedFile)
	if err != nil {
		return f.Fail(ErrCodeConfig, ExitCommandError, "failed to load seed", err)
	}
	storeOpts := []store.Option{store.WithSeed(seed)}
	if opts.IDs != nil {
		storeOpts = append(storeOpts, store.WithIDSource(opts.IDs))
	}
	st, err := store.New(storeOpts...)
	if err != nil {
		return f.Fail(ErrCodeConfig, ExitCommandError, "failed to load seed", err)
	}
	slog.Debug("store ready", "tasks", st.Len(), "seed_file", cfg.Store.SeedFile)

	handler := api.NewServer(st,
		api.WithLogger(slog.Default()),
		api.WithDogClient(api.NewDogClient(cfg.Dog.URL, cfg.Dog.Timeout)),
		api.WithAllowedOrigins(cfg.CORS.AllowedOrigins),
	)

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return f.Fail(ErrCodeGeneric, ExitCommandError, "failed to listen", err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	addr := ln.Addr().String()
	slog.Info("server listening", "addr", addr, "tasks", st.Len())
	f.VerboseLog("Server running on %s", addr)
	if opts.Ready != nil {
		opts.Ready <- addr
	}

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return f.Fail(ErrCodeGeneric, ExitFailure, "server error", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return f.Fail(ErrCodeGeneric, ExitFailure, fmt.Sprintf("shutdown did not finish within %s", cfg.Server.ShutdownTimeout), err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
