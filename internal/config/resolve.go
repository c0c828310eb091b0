package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lunatask-go/lunatask/pkg/lunatask"
)

// ErrNoAccessToken is returned when no source provides an access token.
var ErrNoAccessToken = errors.New("no access token configured: set " + EnvAccessToken +
	" or access_token in ~/" + GlobalConfigDir + "/" + GlobalConfigFileName)

// ResolvedConfig represents the final merged configuration with all
// precedence rules applied. Precedence order (highest to lowest):
// 1. Overrides (command-line flags)
// 2. Environment (LUNATASK_*, including .env)
// 3. Global config (~/.lunatask/config.toml)
// 4. Built-in defaults
type ResolvedConfig struct {
	AccessToken string
	BaseURL     string
	Timeout     time.Duration

	// Project is nil when no lunatask.toml was found.
	Project *ProjectConfig
}

// Overrides are values given explicitly, typically from flags. Empty fields
// are ignored.
type Overrides struct {
	AccessToken string
	BaseURL     string
}

// Sources tells ResolveWith where to look.
type Sources struct {
	HomeDir string
	WorkDir string
	Getenv  func(string) string
}

// Resolve loads .env from the working directory, then merges flags,
// environment, the global config and defaults.
func Resolve(overrides Overrides) (*ResolvedConfig, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	return ResolveWith(Sources{HomeDir: homeDir, WorkDir: workDir, Getenv: os.Getenv}, overrides)
}

// ResolveWith resolves config from explicit sources.
func ResolveWith(src Sources, overrides Overrides) (*ResolvedConfig, error) {
	getenv := src.Getenv
	if getenv == nil {
		getenv = func(string) string { return "" }
	}

	globalCfg, err := LoadGlobalConfigFromDir(src.HomeDir)
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedConfig{
		BaseURL: lunatask.DefaultBaseURL,
		Timeout: lunatask.DefaultTimeout,
	}

	// Global config overrides defaults
	if globalCfg.AccessToken != "" {
		resolved.AccessToken = globalCfg.AccessToken
	}
	if globalCfg.BaseURL != "" {
		resolved.BaseURL = globalCfg.BaseURL
	}
	if globalCfg.Timeout != 0 {
		resolved.Timeout = globalCfg.Timeout
	}

	// Environment overrides global config
	if v := getenv(EnvAccessToken); v != "" {
		resolved.AccessToken = v
	}
	if v := getenv(EnvBaseURL); v != "" {
		resolved.BaseURL = v
	}
	if v := getenv(EnvTimeout); v != "" {
		timeout, err := parseTimeout(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		resolved.Timeout = timeout
	}

	// Flags override everything
	if overrides.AccessToken != "" {
		resolved.AccessToken = overrides.AccessToken
	}
	if overrides.BaseURL != "" {
		resolved.BaseURL = overrides.BaseURL
	}

	if resolved.AccessToken == "" {
		return nil, ErrNoAccessToken
	}

	if src.WorkDir != "" {
		project, err := DiscoverProjectConfigFrom(src.WorkDir)
		if err != nil {
			return nil, err
		}
		resolved.Project = project
	}

	return resolved, nil
}

// ClientOptions returns the SDK options for this configuration.
func (c *ResolvedConfig) ClientOptions() []lunatask.ClientOption {
	return []lunatask.ClientOption{
		lunatask.WithAccessToken(c.AccessToken),
		lunatask.WithBaseURL(c.BaseURL),
		lunatask.WithTimeout(c.Timeout),
	}
}
