// Package config loads the frond YAML configuration file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jward/frond/internal/parse"
	"github.com/jward/frond/internal/scope"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "frond.yaml"

// Config is the on-disk configuration.
type Config struct {
	// Languages restricts indexing and completion. Empty means all.
	Languages []string `yaml:"languages"`
	// MergePolicy is "union", "common-base" or "unresolved".
	MergePolicy string `yaml:"merge_policy"`
	// FilterScript names a built-in filter ("public") or a .risor path.
	FilterScript string `yaml:"filter_script"`
	// ScriptsDir loads filter scripts from disk instead of the built-ins.
	ScriptsDir string `yaml:"scripts_dir"`
	// LogLevel is "debug", "info", "warn" or "error".
	LogLevel string      `yaml:"log_level"`
	Index    IndexConfig `yaml:"index"`
}

type IndexConfig struct {
	DB       string `yaml:"db"`
	Parallel *bool  `yaml:"parallel"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and validates the file at path. An empty path yields
// Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	applyDefaults(&cfg)
	if err := validateLanguages(&cfg); err != nil {
		return nil, err
	}
	if _, err := scope.ParsePolicy(cfg.MergePolicy); err != nil {
		return nil, err
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	cfg.MergePolicy = strings.TrimSpace(cfg.MergePolicy)
	if cfg.MergePolicy == "" {
		cfg.MergePolicy = scope.MergeUnion.String()
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if strings.TrimSpace(cfg.Index.DB) == "" {
		cfg.Index.DB = ".frond.db"
	}
	if cfg.Index.Parallel == nil {
		on := true
		cfg.Index.Parallel = &on
	}
	for i, l := range cfg.Languages {
		cfg.Languages[i] = strings.ToLower(strings.TrimSpace(l))
	}
}

func validateLanguages(cfg *Config) error {
	for _, l := range cfg.Languages {
		if _, err := parse.ForLanguage(l); err != nil {
			return fmt.Errorf("languages: %w", err)
		}
	}
	return nil
}

// Policy returns the parsed merge policy.
func (c *Config) Policy() scope.MergePolicy {
	p, _ := scope.ParsePolicy(c.MergePolicy)
	return p
}

// Level returns the slog level for LogLevel.
func (c *Config) Level() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}
