package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.GitTimeoutSeconds)
	assert.Equal(t, 300, cfg.MaxRepoSizeMB)
	assert.Equal(t, "git", cfg.GitPath)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GIT_TIMEOUT_SECONDS", "5")
	t.Setenv("MAX_REPO_SIZE_MB", "10")
	t.Setenv("GIT_PATH", "/usr/local/bin/git")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.GitTimeoutSeconds)
	assert.Equal(t, 10, cfg.MaxRepoSizeMB)
	assert.Equal(t, "/usr/local/bin/git", cfg.GitPath)
}

func TestLoadPartialOverride(t *testing.T) {
	t.Setenv("MAX_REPO_SIZE_MB", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.GitTimeoutSeconds, "unset keys keep their defaults")
	assert.Equal(t, 25, cfg.MaxRepoSizeMB)
}

func TestLoadRejectsNonPositiveValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero timeout", "GIT_TIMEOUT_SECONDS", "0"},
		{"negative timeout", "GIT_TIMEOUT_SECONDS", "-3"},
		{"zero size cap", "MAX_REPO_SIZE_MB", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDerivedUnits(t *testing.T) {
	cfg := Config{GitTimeoutSeconds: 90, MaxRepoSizeMB: 2}

	assert.Equal(t, 90*time.Second, cfg.GitTimeout())
	assert.Equal(t, int64(2*1024*1024), cfg.MaxRepoBytes())
}
