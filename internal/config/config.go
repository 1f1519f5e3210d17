package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/stmtnorm/internal/formats"
	"github.com/cleared-dev/stmtnorm/internal/statement"
)

// FileName is the workspace config file.
const FileName = "stmtnorm.yaml"

// Config represents the top-level stmtnorm.yaml configuration.
type Config struct {
	Format    string     `yaml:"format"`
	Header    bool       `yaml:"header"`
	Encoding  string     `yaml:"encoding,omitempty"`
	XLSXSheet string     `yaml:"xlsx_sheet,omitempty"`
	Files     []FileRule `yaml:"files,omitempty"`
	Log       LogConfig  `yaml:"log"`
}

// FileRule overrides settings for statement files whose name matches
// Pattern (filepath.Match syntax). The first matching rule wins.
type FileRule struct {
	Pattern  string `yaml:"pattern"`
	Format   string `yaml:"format,omitempty"`
	Header   *bool  `yaml:"header,omitempty"`
	Encoding string `yaml:"encoding,omitempty"`
	Sheet    string `yaml:"xlsx_sheet,omitempty"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// FileSettings is the effective layout and decoding for one file.
type FileSettings struct {
	Version formats.Version
	Options statement.Options
}

// Load reads a stmtnorm.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default() *Config {
	return &Config{
		Format: formats.DefaultVersion.String(),
		Log:    LogConfig{Level: "info"},
	}
}

// Validate checks format names and file patterns.
func (c *Config) Validate() error {
	var errs []error
	if c.Format != "" {
		if _, err := formats.ParseVersion(c.Format); err != nil {
			errs = append(errs, err)
		}
	}
	for i, rule := range c.Files {
		if rule.Pattern == "" {
			errs = append(errs, fmt.Errorf("files[%d]: empty pattern", i))
			continue
		}
		if _, err := filepath.Match(rule.Pattern, ""); err != nil {
			errs = append(errs, fmt.Errorf("files[%d]: bad pattern %q: %w", i, rule.Pattern, err))
		}
		if rule.Format != "" {
			if _, err := formats.ParseVersion(rule.Format); err != nil {
				errs = append(errs, fmt.Errorf("files[%d]: %w", i, err))
			}
		}
	}
	return errors.Join(errs...)
}

// ForFile resolves the settings for the statement file called name.
func (c *Config) ForFile(name string) (FileSettings, error) {
	format := c.Format
	opts := statement.Options{
		SkipHeader: c.Header,
		Encoding:   c.Encoding,
		Sheet:      c.XLSXSheet,
	}

	for _, rule := range c.Files {
		ok, err := filepath.Match(rule.Pattern, filepath.Base(name))
		if err != nil {
			return FileSettings{}, fmt.Errorf("matching %q: %w", rule.Pattern, err)
		}
		if !ok {
			continue
		}
		if rule.Format != "" {
			format = rule.Format
		}
		if rule.Header != nil {
			opts.SkipHeader = *rule.Header
		}
		if rule.Encoding != "" {
			opts.Encoding = rule.Encoding
		}
		if rule.Sheet != "" {
			opts.Sheet = rule.Sheet
		}
		break
	}

	version := formats.DefaultVersion
	if format != "" {
		v, err := formats.ParseVersion(format)
		if err != nil {
			return FileSettings{}, err
		}
		version = v
	}
	return FileSettings{Version: version, Options: opts}, nil
}
