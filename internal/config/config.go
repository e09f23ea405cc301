package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/qa-infra/sessionctl/internal/monitor"
	"github.com/qa-infra/sessionctl/internal/store"
	"github.com/qa-infra/sessionctl/utils/common"
)

var ErrNoConfigFile = errors.New("no sessionctl config file found")

// Config holds the raw file representation. Durations are Go duration
// strings ("168h", "250ms"); zero values fall back to the component
// defaults when converted via Settings.
type Config struct {
	Store struct {
		Dir string `yaml:"dir" json:"dir"`
		TTL string `yaml:"ttl" json:"ttl"`
	} `yaml:"store" json:"store"`
	Lock struct {
		Attempts   int    `yaml:"attempts" json:"attempts"`
		MinBackoff string `yaml:"min_backoff" json:"min_backoff"`
		MaxBackoff string `yaml:"max_backoff" json:"max_backoff"`
	} `yaml:"lock" json:"lock"`
	Monitor struct {
		RenewalEndpoints   []string `yaml:"renewal_endpoints" json:"renewal_endpoints"`
		CredentialArtifact string   `yaml:"credential_artifact" json:"credential_artifact"`
		PollInterval       string   `yaml:"poll_interval" json:"poll_interval"`
		PollTimeout        string   `yaml:"poll_timeout" json:"poll_timeout"`
		PropagationGrace   string   `yaml:"propagation_grace" json:"propagation_grace"`
	} `yaml:"monitor" json:"monitor"`
	TestDataFile string `yaml:"test_data_file" json:"test_data_file"`
}

// Load reads the config file from the working directory. A missing file
// is not an error; every component default applies.
func Load() (*Config, error) {
	path, err := FindConfigFile()
	if err != nil {
		if errors.Is(err, ErrNoConfigFile) {
			return &Config{}, nil
		}
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	return &cfg, nil
}

// FindConfigFile looks for sessionctl.yml, sessionctl.yaml or
// sessionctl.json in the working directory.
func FindConfigFile() (string, error) {
	names := []string{"sessionctl.yml", "sessionctl.yaml", "sessionctl.json"}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for _, name := range names {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrNoConfigFile
}

// StoreOptions converts the raw store and lock sections into store.Options.
func (c *Config) StoreOptions() (store.Options, error) {
	ttl, err := durationOr(c.Store.TTL, store.DefaultTTL)
	if err != nil {
		return store.Options{}, fmt.Errorf("invalid store.ttl: %w", err)
	}
	minBackoff, err := durationOr(c.Lock.MinBackoff, store.DefaultRetryPolicy.MinBackoff)
	if err != nil {
		return store.Options{}, fmt.Errorf("invalid lock.min_backoff: %w", err)
	}
	maxBackoff, err := durationOr(c.Lock.MaxBackoff, store.DefaultRetryPolicy.MaxBackoff)
	if err != nil {
		return store.Options{}, fmt.Errorf("invalid lock.max_backoff: %w", err)
	}
	attempts := c.Lock.Attempts
	if attempts <= 0 {
		attempts = store.DefaultRetryPolicy.Attempts
	}

	return store.Options{
		Dir: c.Store.Dir,
		TTL: ttl,
		Retry: common.RetryPolicy{
			Attempts:   attempts,
			MinBackoff: minBackoff,
			MaxBackoff: maxBackoff,
		},
	}, nil
}

// MonitorConfig converts the raw monitor section into monitor.Config.
func (c *Config) MonitorConfig() (monitor.Config, error) {
	pollInterval, err := durationOr(c.Monitor.PollInterval, monitor.DefaultPollInterval)
	if err != nil {
		return monitor.Config{}, fmt.Errorf("invalid monitor.poll_interval: %w", err)
	}
	pollTimeout, err := durationOr(c.Monitor.PollTimeout, monitor.DefaultPollTimeout)
	if err != nil {
		return monitor.Config{}, fmt.Errorf("invalid monitor.poll_timeout: %w", err)
	}
	grace, err := durationOr(c.Monitor.PropagationGrace, monitor.DefaultPropagationGrace)
	if err != nil {
		return monitor.Config{}, fmt.Errorf("invalid monitor.propagation_grace: %w", err)
	}

	return monitor.Config{
		RenewalEndpoints:   c.Monitor.RenewalEndpoints,
		CredentialArtifact: c.Monitor.CredentialArtifact,
		PollInterval:       pollInterval,
		PollTimeout:        pollTimeout,
		PropagationGrace:   grace,
	}, nil
}

func durationOr(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}
