package platform

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileConfig is the content of a .notekeep.yaml file.
type FileConfig struct {
	Adapter   string `yaml:"adapter"`
	Path      string `yaml:"path"`
	SystemDir string `yaml:"system_dir"`
	ReadOnly  bool   `yaml:"read_only"`
	LogLevel  string `yaml:"log_level"`
	Keys      struct {
		Notes   string `yaml:"notes"`
		Counter string `yaml:"counter"`
	} `yaml:"keys"`
}

// LoadConfig reads and decodes a YAML configuration file.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Options translates the file settings into Open options.
// Empty fields leave the defaults untouched.
func (c *FileConfig) Options() []Option {
	var opts []Option
	if c.Adapter != "" {
		opts = append(opts, WithAdapter(c.Adapter))
	}
	if c.SystemDir != "" {
		opts = append(opts, WithSystemDir(c.SystemDir))
	}
	if c.ReadOnly {
		opts = append(opts, WithReadOnly(true))
	}
	if c.Keys.Notes != "" || c.Keys.Counter != "" {
		opts = append(opts, WithKeys(c.Keys.Notes, c.Keys.Counter))
	}
	return opts
}

// ParseLevel maps a log level name to slog. An empty name means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %q", name)
	}
}
