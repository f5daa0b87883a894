// Package config loads miniada settings from a TOML or YAML file, layered
// under MINIADA_* environment overrides and over built-in defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. MINIADA_LOG_LEVEL.
const EnvPrefix = "MINIADA_"

// Format is a configuration file format.
type Format int

const (
	// FormatTOML represents TOML format (default)
	FormatTOML Format = iota
	// FormatYAML represents YAML format
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Config is the full set of settings.
type Config struct {
	Log      LogConfig      `toml:"log" yaml:"log"`
	Output   OutputConfig   `toml:"output" yaml:"output"`
	Analysis AnalysisConfig `toml:"analysis" yaml:"analysis"`
	Store    StoreConfig    `toml:"store" yaml:"store"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	// Level is trace, debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`
	// Format is text or json.
	Format string `toml:"format" yaml:"format"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	// Format is text, json, yaml or table.
	Format string `toml:"format" yaml:"format"`
	Color  bool   `toml:"color" yaml:"color"`
}

// AnalysisConfig tunes program discovery and batch analysis.
type AnalysisConfig struct {
	Extensions []string `toml:"extensions" yaml:"extensions"`
	Workers    int      `toml:"workers" yaml:"workers"`
}

// StoreConfig locates the run database. An empty path disables it.
type StoreConfig struct {
	Path string `toml:"path" yaml:"path"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log:      LogConfig{Level: "warn", Format: "text"},
		Output:   OutputConfig{Format: "text", Color: true},
		Analysis: AnalysisConfig{Extensions: []string{".ada", ".adb", ".mada"}, Workers: runtime.NumCPU()},
	}
}

// Load reads path over the defaults and then applies environment
// overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := parseContent(content, detectFormat(path), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func parseContent(content []byte, format Format, cfg *Config) error {
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(content, cfg)
	default:
		_, err := toml.Decode(string(content), cfg)
		return err
	}
}

type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok {
		cfg.Log.Format = v
	}
	if v, ok := lookup(EnvPrefix + "OUTPUT_FORMAT"); ok {
		cfg.Output.Format = v
	}
	if v, ok := lookup(EnvPrefix + "OUTPUT_COLOR"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sOUTPUT_COLOR: %w", EnvPrefix, err)
		}
		cfg.Output.Color = b
	}
	if v, ok := lookup(EnvPrefix + "ANALYSIS_EXTENSIONS"); ok {
		cfg.Analysis.Extensions = splitList(v)
	}
	if v, ok := lookup(EnvPrefix + "ANALYSIS_WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sANALYSIS_WORKERS: %w", EnvPrefix, err)
		}
		cfg.Analysis.Workers = n
	}
	if v, ok := lookup(EnvPrefix + "STORE_PATH"); ok {
		cfg.Store.Path = v
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate rejects unknown enumerated values.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q: want text or json", c.Log.Format)
	}
	switch c.Output.Format {
	case "text", "json", "yaml", "table":
	default:
		return fmt.Errorf("invalid output.format %q: want text, json, yaml or table", c.Output.Format)
	}
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("invalid analysis.workers %d", c.Analysis.Workers)
	}
	return nil
}

// ParseLevel maps a level name to its slog level. "trace" is
// slog.Level(-8).
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return slog.Level(-8), nil
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log.level %q", s)
	}
}
