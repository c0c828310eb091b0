package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// GlobalConfigDir is the name of the global config directory in home
	GlobalConfigDir = ".lunatask"

	// GlobalConfigFileName is the name of the global config file
	GlobalConfigFileName = "config.toml"
)

// GlobalConfig represents the user-level configuration from ~/.lunatask/config.toml
type GlobalConfig struct {
	AccessToken string
	BaseURL     string
	Timeout     time.Duration
}

// globalConfigFile represents the raw TOML structure for global config
type globalConfigFile struct {
	AccessToken string    `toml:"access_token"`
	API         apiConfig `toml:"api"`
}

// apiConfig represents the [api] section in TOML
type apiConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// GlobalConfigPath returns the path of the global config file under homeDir.
func GlobalConfigPath(homeDir string) string {
	return filepath.Join(homeDir, GlobalConfigDir, GlobalConfigFileName)
}

// LoadGlobalConfigFromDir loads global config using the specified directory as home.
func LoadGlobalConfigFromDir(homeDir string) (*GlobalConfig, error) {
	configPath := GlobalConfigPath(homeDir)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read global config: %w", err)
	}

	var rawConfig globalConfigFile
	if _, err := toml.Decode(string(data), &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse global config TOML: %w", err)
	}

	cfg := &GlobalConfig{
		AccessToken: rawConfig.AccessToken,
		BaseURL:     rawConfig.API.BaseURL,
	}

	if rawConfig.API.Timeout != "" {
		timeout, err := parseTimeout(rawConfig.API.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout in global config: %w", err)
		}
		cfg.Timeout = timeout
	}

	return cfg, nil
}

// parseTimeout parses a positive duration such as "30s".
func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", s)
	}
	return d, nil
}
