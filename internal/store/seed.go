package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// SeedFile is the on-disk shape of a seed file:
//
//	tasks:
//	  - id: 1
//	    text: Example task
//	    completed: false
type SeedFile struct {
	Tasks []Task `json:"tasks" yaml:"tasks" toml:"tasks"`
}

// LoadSeed reads seed tasks from path. The format is chosen by extension:
// .yaml/.yml, .toml or .json.
//
// An empty path returns DefaultSeed.
func LoadSeed(path string) ([]Task, error) {
	if path == "" {
		return DefaultSeed(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	tasks, err := ParseSeed(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return tasks, nil
}

// ParseSeed decodes seed data in the format named by ext (".yaml", ".toml", ...).
// A file without a tasks key yields an empty, non-nil slice.
func ParseSeed(ext string, data []byte) ([]Task, error) {
	var f SeedFile

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported seed format %q (use .yaml, .toml or .json)", ext)
	}

	if f.Tasks == nil {
		f.Tasks = []Task{}
	}
	return f.Tasks, nil
}
