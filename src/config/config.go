package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/sofmeright/reviewbadge/src/colors"
)

const defaultConfigFile = ".reviewbadge.yml"

// DefaultConfigFile is the path Load reads when none is given.
func DefaultConfigFile() string { return defaultConfigFile }

// Config is the top-level reviewbadge configuration.
type Config struct {
	Badge  Badge        `yaml:"badge" toml:"badge"`
	Inline InlineConfig `yaml:"inline" toml:"inline"`
	Output OutputConfig `yaml:"output" toml:"output"`
}

// InlineConfig controls how image references are embedded as data URIs.
type InlineConfig struct {
	Timeout     int    `yaml:"timeout" toml:"timeout"`         // seconds per remote fetch
	MaxBytes    int64  `yaml:"max_bytes" toml:"max_bytes"`     // largest image that will be embedded
	Concurrency int    `yaml:"concurrency" toml:"concurrency"` // parallel fetches per export
	AssetDir    string `yaml:"asset_dir" toml:"asset_dir"`     // served before the built-in assets
}

// OutputConfig controls where and how generated HTML is presented.
type OutputConfig struct {
	File      string `yaml:"file" toml:"file"`
	Branding  bool   `yaml:"branding" toml:"branding"`   // prepend the attribution comment when copying
	Highlight bool   `yaml:"highlight" toml:"highlight"` // syntax-highlight HTML printed to a terminal
}

// DefaultInlineConfig returns sensible inlining limits.
func DefaultInlineConfig() InlineConfig {
	return InlineConfig{
		Timeout:     10,
		MaxBytes:    5 << 20,
		Concurrency: MaxLogos,
	}
}

// DefaultOutputConfig returns the default output settings.
func DefaultOutputConfig() OutputConfig {
	return OutputConfig{
		File:      "review-badge.html",
		Branding:  true,
		Highlight: true,
	}
}

// Load reads configuration from a YAML or TOML file.
// If path is empty, it tries the default file.
// Returns defaults if the file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaults(), nil
		}
		return nil, err
	}

	// Layout-dependent defaults are applied after decoding, once the layout is known.
	cfg := defaults()
	cfg.Badge.VerifiedText = ""
	cfg.Badge.Colors = colors.Config{}
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.Badge.Layout == "" {
		cfg.Badge.Layout = Layout1
	}
	if cfg.Badge.VerifiedText == "" {
		cfg.Badge.VerifiedText = DefaultVerifiedText(cfg.Badge.Layout)
	}
	cfg.Badge.Colors = FillColors(cfg.Badge.Colors, cfg.Badge.Layout)
	return cfg, nil
}

// Save writes cfg to path, choosing TOML or YAML by extension.
func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func defaults() *Config {
	return &Config{
		Badge:  DefaultBadge(),
		Inline: DefaultInlineConfig(),
		Output: DefaultOutputConfig(),
	}
}

// Defaults returns the configuration used when no file exists, for the given layout.
func Defaults(layout LayoutID) *Config {
	cfg := defaults()
	cfg.Badge.Layout = layout
	cfg.Badge.VerifiedText = DefaultVerifiedText(layout)
	cfg.Badge.Colors = DefaultColors(layout)
	return cfg
}
