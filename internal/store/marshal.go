package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// MarshalSeed encodes tasks as a seed file in the format named by ext.
// The output is readable by ParseSeed with the same ext.
func MarshalSeed(ext string, tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	f := SeedFile{Tasks: tasks}

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		data, err := yaml.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("marshal seed: %w", err)
		}
		return data, nil
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(f); err != nil {
			return nil, fmt.Errorf("marshal seed: %w", err)
		}
		return buf.Bytes(), nil
	case ".json":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return nil, fmt.Errorf("marshal seed: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported seed format %q (use .yaml, .toml or .json)", ext)
	}
}
