package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ProjectConfigFileName is the name of the per-directory configuration file
const ProjectConfigFileName = "lunatask.toml"

// ProjectConfig holds defaults for tasks created from inside a directory tree.
type ProjectConfig struct {
	AreaID string `toml:"area_id"`
	GoalID string `toml:"goal_id"`
	Path   string `toml:"-"`
}

// DiscoverProjectConfigFrom finds and parses lunatask.toml by walking up from
// startDir. Returns nil (not an error) when there is none.
func DiscoverProjectConfigFrom(startDir string) (*ProjectConfig, error) {
	dir := startDir

	for {
		configPath := filepath.Join(dir, ProjectConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return ParseProjectConfig(configPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// ParseProjectConfig parses the lunatask.toml file at the given path
func ParseProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg ProjectConfig
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if cfg.AreaID == "" {
		return nil, errors.New("area_id cannot be empty in " + path)
	}

	cfg.Path = path
	return &cfg, nil
}
