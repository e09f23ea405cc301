package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qa-infra/sessionctl/internal/monitor"
	"github.com/qa-infra/sessionctl/internal/store"
)

// chdir is a stand-in for testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func writeConfig(t *testing.T, name, content string) {
	t.Helper()
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(".", name), []byte(content), 0o600))
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	opts, err := cfg.StoreOptions()
	require.NoError(t, err)
	assert.Equal(t, "", opts.Dir, "store dir default is resolved by the store itself")
	assert.Equal(t, store.DefaultTTL, opts.TTL)
	assert.Equal(t, store.DefaultRetryPolicy, opts.Retry)

	mcfg, err := cfg.MonitorConfig()
	require.NoError(t, err)
	assert.Equal(t, monitor.DefaultPollInterval, mcfg.PollInterval)
	assert.Equal(t, monitor.DefaultPollTimeout, mcfg.PollTimeout)
	assert.Equal(t, monitor.DefaultPropagationGrace, mcfg.PropagationGrace)
}

func TestLoadYAML(t *testing.T) {
	writeConfig(t, "sessionctl.yml", `
store:
  dir: /var/cache/sessions
  ttl: 48h
lock:
  attempts: 3
  min_backoff: 50ms
  max_backoff: 500ms
monitor:
  renewal_endpoints:
    - /api/token/refresh
  credential_artifact: refresh_token
  poll_interval: 250ms
test_data_file: fixtures/auth.yml
`)

	cfg, err := Load()
	require.NoError(t, err)

	opts, err := cfg.StoreOptions()
	require.NoError(t, err)
	assert.Equal(t, "/var/cache/sessions", opts.Dir)
	assert.Equal(t, 48*time.Hour, opts.TTL)
	assert.Equal(t, 3, opts.Retry.Attempts)
	assert.Equal(t, 50*time.Millisecond, opts.Retry.MinBackoff)
	assert.Equal(t, 500*time.Millisecond, opts.Retry.MaxBackoff)

	mcfg, err := cfg.MonitorConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"/api/token/refresh"}, mcfg.RenewalEndpoints)
	assert.Equal(t, "refresh_token", mcfg.CredentialArtifact)
	assert.Equal(t, 250*time.Millisecond, mcfg.PollInterval)
	assert.Equal(t, monitor.DefaultPollTimeout, mcfg.PollTimeout, "unset durations keep their defaults")

	assert.Equal(t, "fixtures/auth.yml", cfg.TestDataFile)
}

func TestLoadJSON(t *testing.T) {
	writeConfig(t, "sessionctl.json", `{"store": {"dir": "stateDir", "ttl": "24h"}}`)

	cfg, err := Load()
	require.NoError(t, err)

	opts, err := cfg.StoreOptions()
	require.NoError(t, err)
	assert.Equal(t, "stateDir", opts.Dir)
	assert.Equal(t, 24*time.Hour, opts.TTL)
}

func TestInvalidDuration(t *testing.T) {
	writeConfig(t, "sessionctl.yml", "store:\n  ttl: one-week\n")

	cfg, err := Load()
	require.NoError(t, err)

	_, err = cfg.StoreOptions()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.ttl")
}

func TestFindConfigFilePrefersYML(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile("sessionctl.yml", []byte("{}"), 0o600))
	require.NoError(t, os.WriteFile("sessionctl.json", []byte("{}"), 0o600))

	path, err := FindConfigFile()
	require.NoError(t, err)
	assert.Equal(t, "sessionctl.yml", filepath.Base(path))
}
