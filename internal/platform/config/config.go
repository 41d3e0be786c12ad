package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

	// ProviderPageSpeed selects the hosted PageSpeed Insights API; any other
	// provider name refers to a plugin manifest under the data dir.
	ProviderPageSpeed = "pagespeed"
)

type Config struct {
	DataDir        string `yaml:"-"`
	APIKey         string `yaml:"api_key"`
	Endpoint       string `yaml:"endpoint"`
	Provider       string `yaml:"provider"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Load reads pagepulse.yaml from the data dir, applies defaults, and lets the
// PAGESPEED_API_KEY environment variable override the file. A missing file is
// not an error; a missing credential only fails audits against the hosted
// provider, so history-only commands stay usable.
func Load(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{DataDir: dataDir}

	raw, err := os.ReadFile(filepath.Join(dataDir, "pagepulse.yaml"))
	if err == nil {
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse pagepulse.yaml: %w", err)
		}
		cfg.DataDir = dataDir
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read pagepulse.yaml: %w", err)
	}

	if key := os.Getenv("PAGESPEED_API_KEY"); key != "" {
		cfg.APIKey = key
	}
	applyDefaults(&cfg)
	if err := validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Provider == "" {
		cfg.Provider = ProviderPageSpeed
	}
	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = 60
	}
}

func validate(cfg Config) error {
	if cfg.TimeoutSeconds < 1 {
		return fmt.Errorf("timeout_seconds must be >= 1")
	}
	if !strings.HasPrefix(cfg.Endpoint, "http") {
		return fmt.Errorf("endpoint must be an http(s) URL")
	}
	return nil
}

// HistoryPath is the single key-file holding the serialized run history.
func (c Config) HistoryPath() string {
	return filepath.Join(c.DataDir, "pageSpeedResults.json")
}

func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "pagepulse.db")
}
