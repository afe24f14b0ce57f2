// Package config loads ksecret settings from a YAML file, environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/szaher/ksecret/internal/render"
)

// FileName is the default config file name in the home directory.
const FileName = ".ksecret.yaml"

// DefaultRequestTimeout bounds each API call unless overridden.
const DefaultRequestTimeout = 30 * time.Second

// Config holds every setting that may come from a file, env or flags.
type Config struct {
	Kubeconfig     string        `yaml:"kubeconfig,omitempty"`
	Context        string        `yaml:"context,omitempty"`
	Output         string        `yaml:"output,omitempty"`
	NoColor        bool          `yaml:"no_color,omitempty"`
	Accessible     bool          `yaml:"accessible,omitempty"`
	Verbose        bool          `yaml:"verbose,omitempty"`
	CaseSensitive  bool          `yaml:"case_sensitive,omitempty"`
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Output:         string(render.FormatText),
		RequestTimeout: DefaultRequestTimeout,
	}
}

// DefaultPath returns ~/.ksecret.yaml.
func DefaultPath() (string, error) {
	return homedir.Expand("~/" + FileName)
}

// Load reads the config file at path on top of the defaults. The file must
// exist.
func Load(path string) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// LoadDefault reads the config file at DefaultPath. A missing file yields
// the defaults.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("locating config file: %w", err)
	}
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		d := Default()
		return &d, nil
	}
	return cfg, err
}

// Parse decodes YAML config data on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be caught by YAML decoding.
func (c *Config) Validate() error {
	if _, err := render.ParseFormat(c.Output); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("invalid config: request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}
