package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSeed_EmptyPath(t *testing.T) {
	tasks, err := LoadSeed("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSeed(), tasks)
}

func TestLoadSeed_Formats(t *testing.T) {
	want := []Task{
		{ID: 1, Text: "Example task", Completed: false},
		{ID: 7, Text: "Walk dog", Completed: true},
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "seed.yaml",
			content: `tasks:
  - id: 1
    text: Example task
    completed: false
  - id: 7
    text: Walk dog
    completed: true
`,
		},
		{
			name: "yml",
			file: "seed.yml",
			content: `tasks:
  - {id: 1, text: Example task}
  - {id: 7, text: Walk dog, completed: true}
`,
		},
		{
			name: "toml",
			file: "seed.toml",
			content: `[[tasks]]
id = 1
text = "Example task"
completed = false

[[tasks]]
id = 7
text = "Walk dog"
completed = true
`,
		},
		{
			name:    "json",
			file:    "seed.json",
			content: `{"tasks":[{"id":1,"text":"Example task","completed":false},{"id":7,"text":"Walk dog","completed":true}]}`,
		},
		{
			name:    "uppercase extension",
			file:    "SEED.JSON",
			content: `{"tasks":[{"id":1,"text":"Example task"},{"id":7,"text":"Walk dog","completed":true}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSeedFile(t, tt.file, tt.content)

			tasks, err := LoadSeed(path)
			require.NoError(t, err)
			assert.Equal(t, want, tasks)
		})
	}
}

func TestLoadSeed_NoTasksKey(t *testing.T) {
	path := writeSeedFile(t, "seed.yaml", "other: true\n")

	tasks, err := LoadSeed(path)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "read seed file")
}

func TestLoadSeed_UnsupportedFormat(t *testing.T) {
	path := writeSeedFile(t, "seed.xml", "<tasks/>")

	_, err := LoadSeed(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported seed format ".xml"`)
}

func TestLoadSeed_Malformed(t *testing.T) {
	path := writeSeedFile(t, "seed.json", "{not json")

	_, err := LoadSeed(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse seed file")
}

func TestMarshalSeed_ReadableByParseSeed(t *testing.T) {
	tasks := []Task{
		{ID: 1, Text: "Example task"},
		{ID: 1_700_000_000_123, Text: "<b>&</b>", Completed: true},
	}

	for _, ext := range []string{".yaml", ".toml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			data, err := MarshalSeed(ext, tasks)
			require.NoError(t, err)

			got, err := ParseSeed(ext, data)
			require.NoError(t, err)
			assert.Equal(t, tasks, got)
		})
	}
}

func TestMarshalSeed_JSONShape(t *testing.T) {
	data, err := MarshalSeed(".json", []Task{{ID: 1, Text: "a&b"}})
	require.NoError(t, err)

	want := `{
  "tasks": [
    {
      "id": 1,
      "text": "a&b",
      "completed": false
    }
  ]
}
`
	assert.Equal(t, want, string(data))
}

func TestMarshalSeed_Unsupported(t *testing.T) {
	_, err := MarshalSeed(".csv", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported seed format")
}
