package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/taskstore/internal/client"
	"github.com/roach88/taskstore/internal/config"
	"github.com/roach88/taskstore/internal/mcp"
	"github.com/roach88/taskstore/internal/store"
)

// NewMCPCommand creates the mcp command.
func NewMCPCommand(rootOpts *RootOptions) *cobra.Command {
	var apiURL, seed string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the task tools over MCP (stdio)",
		Long: `Serve list_tasks, get_task, create_task, update_task and delete_task as
Model Context Protocol tools on stdin/stdout.

With an API URL the tools act on that server. Without one they act on a
private in-memory store loaded from --seed.

Example:
  taskstore mcp --api-url http://localhost:3000
  taskstore mcp --seed ./tasks.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP(rootOpts, cmd)
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "", "base URL of the taskstore API")
	cmd.Flags().StringVar(&seed, "seed", "", "seed file for the in-process store")

	return cmd
}

func runMCP(opts *RootOptions, cmd *cobra.Command) error {
	// stdout carries the protocol; diagnostics go to stderr only.
	f := &OutputFormatter{Format: opts.Format, Writer: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	if err := opts.bindFlags(cmd, map[string]string{
		"api-url": config.KeyAPIURL,
		"seed":    config.KeyStoreSeedFile,
	}); err != nil {
		return f.Fail(ErrCodeGeneric, ExitCommandError, "failed to bind flags", err)
	}
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return f.Fail(ErrCodeConfig, ExitCommandError, "failed to load config", err)
	}

	var backend mcp.Tasks
	if cfg.APIURL != "" {
		c, err := client.New(cfg.APIURL)
		if err != nil {
			return f.Fail(ErrCodeConfig, ExitCommandError, "no usable API URL", err)
		}
		backend = c
		slog.Info("mcp tools use remote API", "api_url", cfg.APIURL)
	} else {
		seed, err := store.LoadSeed(cfg.Store.SeedFile)
		if err != nil {
			return f.Fail(ErrCodeConfig, ExitCommandError, "failed to load seed", err)
		}
		st, err := store.New(store.WithSeed(seed))
		if err != nil {
			return f.Fail(ErrCodeConfig, ExitCommandError, "failed to load seed", err)
		}
		backend = mcp.FromStore(st)
		slog.Info("mcp tools use in-process store", "tasks", st.Len())
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	srv := mcp.NewServer(backend, Version)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return f.Fail(ErrCodeGeneric, ExitFailure, "mcp server error", err)
	}
	return nil
}
