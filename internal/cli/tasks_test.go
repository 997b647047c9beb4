package cli

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/taskstore/internal/api"
	"github.com/roach88/taskstore/internal/store"
	"github.com/roach88/taskstore/internal/testutil"
)

// startAPI runs an API over the default seed; the next task id is 2.
func startAPI(t *testing.T, opts ...api.Option) string {
	t.Helper()
	isolateConfig(t)

	st, err := store.New(store.WithIDSource(testutil.NewDeterministicClockAt(1)))
	require.NoError(t, err)
	opts = append([]api.Option{api.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)

	srv := httptest.NewServer(api.NewServer(st, opts...))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestTasksList(t *testing.T) {
	url := startAPI(t)

	stdout, _, err := executeCommand(t, "tasks", "list", "--api-url", url)
	require.NoError(t, err)
	assert.Equal(t, "[ ] 1 Example task\n", stdout)
}

func TestTasksList_JSON(t *testing.T) {
	url := startAPI(t)

	stdout, _, err := executeCommand(t, "tasks", "list", "--api-url", url, "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":[{"id":1,"text":"Example task","completed":false}]}`, stdout)
}

func TestTasksList_APIURLFromEnv(t *testing.T) {
	url := startAPI(t)
	t.Setenv("TASKSTORE_API_URL", url)

	stdout, _, err := executeCommand(t, "tasks", "list")
	require.NoError(t, err)
	assert.Equal(t, "[ ] 1 Example task\n", stdout)
}

func TestTasksLifecycle(t *testing.T) {
	url := startAPI(t)

	stdout, _, err := executeCommand(t, "tasks", "add", "Buy", "milk", "--api-url", url)
	require.NoError(t, err)
	assert.Equal(t, "[ ] 2 Buy milk\n", stdout)

	stdout, _, err = executeCommand(t, "tasks", "done", "2", "--api-url", url)
	require.NoError(t, err)
	assert.Equal(t, "[x] 2 Buy milk\n", stdout)

	stdout, _, err = executeCommand(t, "tasks", "update", "1", "--text", "Walk dog", "--api-url", url)
	require.NoError(t, err)
	assert.Equal(t, "[ ] 1 Walk dog\n", stdout)

	stdout, _, err = executeCommand(t, "tasks", "update", "2", "--completed=false", "--api-url", url)
	require.NoError(t, err)
	assert.Equal(t, "[ ] 2 Buy milk\n", stdout)

	stdout, _, err = executeCommand(t, "tasks", "get", "2", "--api-url", url)
	require.NoError(t, err)
	assert.Equal(t, "[ ] 2 Buy milk\n", stdout)

	stdout, _, err = executeCommand(t, "tasks", "rm", "1", "--api-url", url)
	require.NoError(t, err)
	assert.Equal(t, "Deleted task 1\n", stdout)

	stdout, _, err = executeCommand(t, "tasks", "list", "--api-url", url)
	require.NoError(t, err)
	assert.Equal(t, "[ ] 2 Buy milk\n", stdout)

	_, _, err = executeCommand(t, "tasks", "rm", "2", "--api-url", url)
	require.NoError(t, err)

	stdout, _, err = executeCommand(t, "tasks", "list", "--api-url", url)
	require.NoError(t, err)
	assert.Equal(t, "No tasks.\n", stdout)
}

func TestTasksGet_NotFound(t *testing.T) {
	url := startAPI(t)

	stdout, stderr, err := executeCommand(t, "tasks", "get", "99", "--api-url", url)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.Empty(t, stdout)
	assert.Equal(t, "Error [E005]: Task not found\n", stderr)
}

func TestTasksUpdate_NotFound_JSON(t *testing.T) {
	url := startAPI(t)

	stdout, _, err := executeCommand(t, "tasks", "update", "99", "--text", "x", "--api-url", url, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "ID not found", resp.Error.Message)
}

func TestTasksUpdate_NothingToUpdate(t *testing.T) {
	url := startAPI(t)

	_, stderr, err := executeCommand(t, "tasks", "update", "1", "--api-url", url)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "nothing to update")
}

func TestTasks_InvalidID(t *testing.T) {
	url := startAPI(t)

	for _, sub := range []string{"get", "done", "rm"} {
		t.Run(sub, func(t *testing.T) {
			_, stderr, err := executeCommand(t, "tasks", sub, "abc", "--api-url", url)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Equal(t, "Error [E007]: invalid task id \"abc\"\n", stderr)
		})
	}
}

func TestTasks_NoAPIURL(t *testing.T) {
	isolateConfig(t)

	_, stderr, err := executeCommand(t, "tasks", "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "Error [E002]: no usable API URL")
}

func TestTasks_Unreachable(t *testing.T) {
	isolateConfig(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, stderr, err := executeCommand(t, "tasks", "list", "--api-url", url)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, "Error [E003]: cannot reach API\n", stderr)
}

func TestTasksExport(t *testing.T) {
	url := startAPI(t)
	_, _, err := executeCommand(t, "tasks", "add", "Buy milk", "--api-url", url)
	require.NoError(t, err)

	for _, name := range []string{"tasks.yaml", "tasks.toml", "tasks.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			stdout, _, err := executeCommand(t, "tasks", "export", path, "--api-url", url)
			require.NoError(t, err)
			assert.Equal(t, "Wrote 2 task(s) to "+path+"\n", stdout)

			tasks, err := store.LoadSeed(path)
			require.NoError(t, err)
			assert.Equal(t, []store.Task{
				{ID: 1, Text: "Example task"},
				{ID: 2, Text: "Buy milk"},
			}, tasks)
		})
	}
}

func TestTasksExport_UnsupportedFormat(t *testing.T) {
	url := startAPI(t)

	_, stderr, err := executeCommand(t, "tasks", "export", filepath.Join(t.TempDir(), "tasks.csv"), "--api-url", url)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "Error [E007]: cannot encode seed file")
}

func TestDogCommand(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"message":"https://images.dog.ceo/breeds/pug/1.jpg","status":"success"}`))
	}))
	defer upstream.Close()
	url := startAPI(t, api.WithDogClient(api.NewDogClient(upstream.URL, time.Second)))

	stdout, _, err := executeCommand(t, "dog", "--api-url", url)
	require.NoError(t, err)
	assert.Equal(t, "https://images.dog.ceo/breeds/pug/1.jpg\n", stdout)
}

func TestDogCommand_UpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	defer upstream.Close()
	url := startAPI(t, api.WithDogClient(api.NewDogClient(upstream.URL, time.Second)))

	_, stderr, err := executeCommand(t, "dog", "--api-url", url)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "Error [E004]: Failed to fetch dog image\n", stderr)
}
