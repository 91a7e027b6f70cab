// Package config loads mergemate's runtime tunables from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds the global tunables passed into the review pipeline at
// construction. It is immutable once loaded; there is no ambient state.
type Config struct {
	// GitTimeoutSeconds bounds the wall-clock runtime of every external git
	// invocation. A command exceeding it is killed.
	GitTimeoutSeconds int `koanf:"git_timeout_seconds"`

	// MaxRepoSizeMB caps the total on-disk size of a checked-out snapshot.
	MaxRepoSizeMB int `koanf:"max_repo_size_mb"`

	// GitPath is the git binary to invoke.
	GitPath string `koanf:"git_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		GitTimeoutSeconds: 60,
		MaxRepoSizeMB:     300,
		GitPath:           "git",
	}
}

// Load returns Default overridden by the environment variables
// GIT_TIMEOUT_SECONDS, MAX_REPO_SIZE_MB and GIT_PATH.
func Load() (Config, error) {
	k := koanf.New(".")

	// Environment variables are uppercased with underscore separators;
	// lowercase them to match the koanf struct tags.
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.GitTimeoutSeconds <= 0 {
		return Config{}, fmt.Errorf("GIT_TIMEOUT_SECONDS must be positive, got %d", cfg.GitTimeoutSeconds)
	}
	if cfg.MaxRepoSizeMB <= 0 {
		return Config{}, fmt.Errorf("MAX_REPO_SIZE_MB must be positive, got %d", cfg.MaxRepoSizeMB)
	}
	if cfg.GitPath == "" {
		return Config{}, fmt.Errorf("GIT_PATH must not be empty")
	}

	return cfg, nil
}

// GitTimeout is the per-command timeout as a duration.
func (c Config) GitTimeout() time.Duration {
	return time.Duration(c.GitTimeoutSeconds) * time.Second
}

// MaxRepoBytes is the snapshot size ceiling in bytes.
func (c Config) MaxRepoBytes() int64 {
	return int64(c.MaxRepoSizeMB) * 1024 * 1024
}
