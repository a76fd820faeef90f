package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonkdl/internal/errors"
	"github.com/mcncl/jsonkdl/internal/kdl"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = ".jsonkdl.yaml"

// Config holds converter defaults that can be set once in a config
// file instead of being repeated on every invocation. Command-line
// flags always take precedence over config values.
type Config struct {
	// Version is the default target grammar: "v1" or "v2".
	Version string `yaml:"version"`
	// Indent is the number of spaces per nesting level in the output.
	Indent int `yaml:"indent"`
	// JSONC allows comments and trailing commas in the input.
	JSONC bool `yaml:"jsonc"`
	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Version: "v2",
		Indent:  kdl.DefaultIndent,
	}
}

// LoadFromFile loads configuration from a YAML file, applying defaults
// for any field the file omits.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(
			fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(
			fmt.Sprintf("failed to parse config file '%s'", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load resolves configuration: an explicit path is loaded (and must
// exist), otherwise well-known locations are searched, otherwise
// defaults apply.
func Load(explicitPath string) (*Config, error) {
	if explicitPath != "" {
		return LoadFromFile(explicitPath)
	}
	if path := FindConfigFile(); path != "" {
		return LoadFromFile(path)
	}
	return Default(), nil
}

// FindConfigFile searches for a config file in the current directory,
// then in the user configuration directory. It returns "" when none
// exists.
func FindConfigFile() string {
	if _, err := os.Stat(DefaultFileName); err == nil {
		return DefaultFileName
	}
	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "jsonkdl", "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Version != "v1" && c.Version != "v2" {
		return errors.NewConfigError(
			fmt.Sprintf("invalid version '%s': must be 'v1' or 'v2'", c.Version), nil)
	}
	if c.Indent < 1 {
		return errors.NewConfigError(
			fmt.Sprintf("invalid indent %d: must be at least 1", c.Indent), nil)
	}
	return nil
}

// GrammarVersion returns the kdl.Version the config selects.
func (c *Config) GrammarVersion() kdl.Version {
	if c.Version == "v1" {
		return kdl.V1
	}
	return kdl.V2
}
