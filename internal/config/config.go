package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Dicklesworthstone/clitool/internal/output"
	"github.com/Dicklesworthstone/clitool/internal/util"
)

// Config represents the main configuration
type Config struct {
	Output OutputConfig `toml:"output" json:"output" yaml:"output"`
	Log    LogConfig    `toml:"log" json:"log" yaml:"log"`
}

// OutputConfig controls how commands render results
type OutputConfig struct {
	Format string `toml:"format" json:"format" yaml:"format"`
	Color  string `toml:"color" json:"color" yaml:"color"`
	Width  int    `toml:"width" json:"width" yaml:"width"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level" json:"level" yaml:"level"`
}

// DefaultPath returns the default config file path
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "clitool", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "clitool", "config.toml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: string(output.FormatText),
			Color:  string(output.ColorAuto),
			Width:  0,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from a file. An empty path means DefaultPath, and
// a missing default file yields the defaults.
func Load(path string) (*Config, error) {
	useDefault := path == ""
	if useDefault {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if useDefault && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply defaults for missing values
	def := Default()
	if cfg.Output.Format == "" {
		cfg.Output.Format = def.Output.Format
	}
	if cfg.Output.Color == "" {
		cfg.Output.Color = def.Output.Color
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	switch output.ColorMode(c.Output.Color) {
	case output.ColorAuto, output.ColorAlways, output.ColorNever:
	default:
		return fmt.Errorf("output.color: unknown mode %q", c.Output.Color)
	}
	if c.Output.Width < 0 {
		return fmt.Errorf("output.width: must not be negative")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// CreateDefault creates a default config file at path (DefaultPath if empty)
func CreateDefault(path string) (string, error) {
	if path == "" {
		path = DefaultPath()
	}

	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file already exists: %s", path)
	}

	var buf bytes.Buffer
	if err := Print(Default(), &buf); err != nil {
		return "", err
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", err
	}

	return path, nil
}

// Print writes config to a writer in TOML format
func Print(cfg *Config, w io.Writer) error {
	fmt.Fprintln(w, "# clitool configuration")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[output]")
	fmt.Fprintln(w, "# text, json or yaml")
	fmt.Fprintf(w, "format = %q\n", cfg.Output.Format)
	fmt.Fprintln(w, "# auto, always or never")
	fmt.Fprintf(w, "color = %q\n", cfg.Output.Color)
	fmt.Fprintln(w, "# wrap width for help text; 0 uses the terminal width")
	fmt.Fprintf(w, "width = %d\n", cfg.Output.Width)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[log]")
	fmt.Fprintln(w, "# debug, info, warn or error")
	_, err := fmt.Fprintf(w, "level = %q\n", cfg.Log.Level)
	return err
}

// SlogLevel returns the configured log level. Unknown values map to warn.
func (c *Config) SlogLevel() slog.Level {
	lvl, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelWarn
	}
	return lvl
}

// OutputFormat returns the configured format, falling back to text.
func (c *Config) OutputFormat() output.Format {
	f, err := output.ParseFormat(c.Output.Format)
	if err != nil {
		return output.FormatText
	}
	return f
}

// ColorMode returns the configured color mode.
func (c *Config) ColorMode() output.ColorMode {
	return output.ParseColorMode(c.Output.Color)
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelWarn, fmt.Errorf("unknown level %q", s)
	}
	return lvl, nil
}
