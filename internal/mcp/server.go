// Package mcp exposes the task operations as MCP (Model Context Protocol)
// tools, so AI assistants can manage tasks over stdio.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/roach88/taskstore/internal/store"
)

// Tasks is the task backend the tools call. *client.Client satisfies it
// directly; wrap a *store.Store with FromStore.
type Tasks interface {
	List(ctx context.Context) ([]store.Task, error)
	Get(ctx context.Context, id int64) (store.Task, error)
	Create(ctx context.Context, text string) (store.Task, error)
	Update(ctx context.Context, id int64, p store.Patch) (store.Task, error)
	Delete(ctx context.Context, id int64) error
}

// FromStore adapts an in-process store to Tasks.
func FromStore(st *store.Store) Tasks {
	return storeTasks{st}
}

type storeTasks struct {
	*store.Store
}

func (s storeTasks) Delete(ctx context.Context, id int64) error {
	_, err := s.Store.Delete(ctx, id)
	return err
}

// Server wraps a Tasks backend and exposes it as MCP tools.
type Server struct {
	server *gomcp.Server
	tasks  Tasks
}

// NewServer creates an MCP server over tasks.
func NewServer(tasks Tasks, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{tasks: tasks}
	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "taskstore", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves over stdio until the client disconnects or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type taskOutput struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type listTasksInput struct{}

type listTasksOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Count int          `json:"count"`
}

type taskIDInput struct {
	ID int64 `json:"id" jsonschema:"the task id"`
}

type createTaskInput struct {
	Text string `json:"text" jsonschema:"the task text; may be empty"`
}

type updateTaskInput struct {
	ID        int64   `json:"id" jsonschema:"the task id"`
	Text      *string `json:"text,omitempty" jsonschema:"new text; omit to keep the current text"`
	Completed *bool   `json:"completed,omitempty" jsonschema:"new completion state; omit to keep it"`
}

type deleteTaskOutput struct {
	Message string `json:"message"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List all tasks in creation order.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_task",
		Description: "Get one task by id.",
	}, s.handleGetTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "create_task",
		Description: "Create a task. New tasks are not completed.",
	}, s.handleCreateTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "update_task",
		Description: "Change a task's text and/or completion state. Omitted fields are left unchanged.",
	}, s.handleUpdateTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task by id. Deleting a task that does not exist succeeds.",
	}, s.handleDeleteTask)
}

// --- Tool handlers ---

func (s *Server) handleListTasks(ctx context.Context, _ *gomcp.CallToolRequest, _ listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return errorResult(fmt.Sprintf("listing tasks: %s", err)), listTasksOutput{}, nil
	}

	out := listTasksOutput{
		Tasks: make([]taskOutput, len(tasks)),
		Count: len(tasks),
	}
	for i, t := range tasks {
		out.Tasks[i] = toOutput(t)
	}
	return nil, out, nil
}

func (s *Server) handleGetTask(ctx context.Context, _ *gomcp.CallToolRequest, input taskIDInput) (*gomcp.CallToolResult, taskOutput, error) {
	task, err := s.tasks.Get(ctx, input.ID)
	if err != nil {
		return errorResult(err.Error()), taskOutput{}, nil
	}
	return nil, toOutput(task), nil
}

func (s *Server) handleCreateTask(ctx context.Context, _ *gomcp.CallToolRequest, input createTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	task, err := s.tasks.Create(ctx, input.Text)
	if err != nil {
		return errorResult(err.Error()), taskOutput{}, nil
	}
	return nil, toOutput(task), nil
}

func (s *Server) handleUpdateTask(ctx context.Context, _ *gomcp.CallToolRequest, input updateTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.Text == nil && input.Completed == nil {
		return errorResult("nothing to update: set text and/or completed"), taskOutput{}, nil
	}

	task, err := s.tasks.Update(ctx, input.ID, store.Patch{
		Text:      input.Text,
		Completed: input.Completed,
	})
	if err != nil {
		return errorResult(err.Error()), taskOutput{}, nil
	}
	return nil, toOutput(task), nil
}

func (s *Server) handleDeleteTask(ctx context.Context, _ *gomcp.CallToolRequest, input taskIDInput) (*gomcp.CallToolResult, deleteTaskOutput, error) {
	if err := s.tasks.Delete(ctx, input.ID); err != nil {
		return errorResult(err.Error()), deleteTaskOutput{}, nil
	}
	return nil, deleteTaskOutput{Message: fmt.Sprintf("task %d deleted", input.ID)}, nil
}

func toOutput(t store.Task) taskOutput {
	return taskOutput{ID: t.ID, Text: t.Text, Completed: t.Completed}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
