package cli

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/taskstore/internal/client"
	"github.com/roach88/taskstore/internal/config"
	"github.com/roach88/taskstore/internal/store"
)

// TasksOptions holds flags shared by the tasks subcommands.
type TasksOptions struct {
	*RootOptions
	APIURL string
}

// NewTasksCommand creates the tasks command group.
func NewTasksCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TasksOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks on a running server",
		Long: `Manage tasks through the REST API of a running "taskstore serve".

The server is found through --api-url, TASKSTORE_API_URL or api_url in the
config file.

Example:
  taskstore tasks list --api-url http://localhost:3000
  taskstore tasks add Buy milk
  taskstore tasks done 1700000000000`,
	}

	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", "", "base URL of the taskstore API")

	cmd.AddCommand(newTasksListCommand(opts))
	cmd.AddCommand(newTasksGetCommand(opts))
	cmd.AddCommand(newTasksAddCommand(opts))
	cmd.AddCommand(newTasksUpdateCommand(opts))
	cmd.AddCommand(newTasksDoneCommand(opts))
	cmd.AddCommand(newTasksRemoveCommand(opts))
	cmd.AddCommand(newTasksExportCommand(opts))

	return cmd
}

func newTasksListCommand(opts *TasksOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List all tasks",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(cmd, opts.RootOptions)
			c, err := opts.apiClient(cmd, f)
			if err != nil {
				return err
			}

			tasks, err := c.List(cmd.Context())
			if err != nil {
				return apiFailure(f, err)
			}
			return f.Success(tasks, newTaskStyles(f.Writer).list(tasks))
		},
	}
}

func newTasksGetCommand(opts *TasksOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "get <id>",
		Short:         "Show one task",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(cmd, opts.RootOptions)
			id, err := parseTaskID(f, args[0])
			if err != nil {
				return err
			}
			c, err := opts.apiClient(cmd, f)
			if err != nil {
				return err
			}

			task, err := c.Get(cmd.Context(), id)
			if err != nil {
				return apiFailure(f, err)
			}
			return f.Success(task, newTaskStyles(f.Writer).task(task))
		},
	}
}

func newTasksAddCommand(opts *TasksOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Create a task",
		Long: `Create a task. All arguments are joined with spaces into the task text.

Example:
  taskstore tasks add Buy milk`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(cmd, opts.RootOptions)
			c, err := opts.apiClient(cmd, f)
			if err != nil {
				return err
			}

			task, err := c.Create(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return apiFailure(f, err)
			}
			return f.Success(task, newTaskStyles(f.Writer).task(task))
		},
	}
}

func newTasksUpdateCommand(opts *TasksOptions) *cobra.Command {
	var (
		text      string
		completed bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a task's text or completion state",
		Long: `Change a task's text and/or completion state. Only the flags given are sent.

Example:
  taskstore tasks update 1 --text "Walk dog"
  taskstore tasks update 1 --completed=false`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(cmd, opts.RootOptions)
			id, err := parseTaskID(f, args[0])
			if err != nil {
				return err
			}

			var patch store.Patch
			if cmd.Flags().Changed("text") {
				patch.Text = &text
			}
			if cmd.Flags().Changed("completed") {
				patch.Completed = &completed
			}
			if patch.Text == nil && patch.Completed == nil {
				return f.Fail(ErrCodeInvalidArgs, ExitCommandError, "nothing to update: pass --text and/or --completed", nil)
			}

			c, err := opts.apiClient(cmd, f)
			if err != nil {
				return err
			}
			task, err := c.Update(cmd.Context(), id, patch)
			if err != nil {
				return apiFailure(f, err)
			}
			return f.Success(task, newTaskStyles(f.Writer).task(task))
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "new task text")
	cmd.Flags().BoolVar(&completed, "completed", false, "new completion state")

	return cmd
}

func newTasksDoneCommand(opts *TasksOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "done <id>",
		Short:         "Mark a task completed",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(cmd, opts.RootOptions)
			id, err := parseTaskID(f, args[0])
			if err != nil {
				return err
			}
			c, err := opts.apiClient(cmd, f)
			if err != nil {
				return err
			}

			done := true
			task, err := c.Update(cmd.Context(), id, store.Patch{Completed: &done})
			if err != nil {
				return apiFailure(f, err)
			}
			return f.Success(task, newTaskStyles(f.Writer).task(task))
		},
	}
}

func newTasksRemoveCommand(opts *TasksOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rm <id>",
		Aliases:       []string{"delete"},
		Short:         "Delete a task",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(cmd, opts.RootOptions)
			id, err := parseTaskID(f, args[0])
			if err != nil {
				return err
			}
			c, err := opts.apiClient(cmd, f)
			if err != nil {
				return err
			}

			if err := c.Delete(cmd.Context(), id); err != nil {
				return apiFailure(f, err)
			}
			return f.Success(map[string]int64{"deleted": id}, fmt.Sprintf("Deleted task %d", id))
		},
	}
}

func newTasksExportCommand(opts *TasksOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the current tasks to a seed file",
		Long: `Write the current tasks to a seed file that "taskstore serve --seed" can load.
The format follows the extension: .yaml, .yml, .toml or .json.

Example:
  taskstore tasks export tasks.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(cmd, opts.RootOptions)
			path := args[0]
			c, err := opts.apiClient(cmd, f)
			if err != nil {
				return err
			}

			tasks, err := c.List(cmd.Context())
			if err != nil {
				return apiFailure(f, err)
			}
			data, err := store.MarshalSeed(filepath.Ext(path), tasks)
			if err != nil {
				return f.Fail(ErrCodeInvalidArgs, ExitCommandError, "cannot encode seed file", err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return f.Fail(ErrCodeWriteFailed, ExitCommandError, "cannot write seed file", err)
			}

			return f.Success(
				map[string]any{"path": path, "count": len(tasks)},
				fmt.Sprintf("Wrote %d task(s) to %s", len(tasks), path),
			)
		},
	}
}

// apiClient binds --api-url, loads config and creates the API client.
func (o *TasksOptions) apiClient(cmd *cobra.Command, f *OutputFormatter) (*client.Client, error) {
	if err := o.bindFlags(cmd, map[string]string{"api-url": config.KeyAPIURL}); err != nil {
		return nil, f.Fail(ErrCodeGeneric, ExitCommandError, "failed to bind flags", err)
	}
	return o.RootOptions.apiClient(cmd, f)
}

// apiClient loads config and creates the API client for the configured URL.
func (o *RootOptions) apiClient(cmd *cobra.Command, f *OutputFormatter) (*client.Client, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, f.Fail(ErrCodeConfig, ExitCommandError, "failed to load config", err)
	}
	c, err := client.New(cfg.APIURL)
	if err != nil {
		return nil, f.Fail(ErrCodeConfig, ExitCommandError, "no usable API URL", err)
	}
	f.VerboseLog("Using API at %s", cfg.APIURL)
	return c, nil
}

// apiFailure reports a client error. Error statuses from the API exit 1;
// transport failures exit 2.
func apiFailure(f *OutputFormatter, err error) error {
	var se *client.StatusError
	if errors.As(err, &se) {
		code := ErrCodeAPI
		if se.Code == http.StatusNotFound {
			code = ErrCodeNotFound
		}
		return f.Fail(code, ExitFailure, se.Message, err)
	}
	return f.Fail(ErrCodeUnreachable, ExitCommandError, "cannot reach API", err)
}

func parseTaskID(f *OutputFormatter, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, f.Fail(ErrCodeInvalidArgs, ExitCommandError, fmt.Sprintf("invalid task id %q", s), err)
	}
	return id, nil
}
