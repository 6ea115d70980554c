// Package config loads the ambient tool configuration: default parser
// flags, the command definitions path, and watch-mode behavior.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/chatscript-lang/chatscript/core/script"
)

// Config holds the application configuration.
type Config struct {
	Flags struct {
		StrictEscape bool `yaml:"strict_escape,omitempty"`
		LegacyGetVar bool `yaml:"legacy_getvar,omitempty"`
	} `yaml:"flags,omitempty"`

	Registry struct {
		// Definitions points at a JSON command definitions file merged
		// over the builtins.
		Definitions string `yaml:"definitions,omitempty"`
	} `yaml:"registry,omitempty"`

	Watch struct {
		// Lenient parses without verification while watching, matching
		// what an editor wants mid-keystroke.
		Lenient bool `yaml:"lenient,omitempty"`
	} `yaml:"watch,omitempty"`
}

const (
	defaultDirName  = ".chatscript"
	defaultFileName = "chatscript.yaml"
)

// Load tries standard locations: ./chatscript.yaml, then
// ~/.chatscript/chatscript.yaml. Missing files fall through to defaults;
// unreadable or malformed files are errors.
func Load() (*Config, error) {
	cfg, err := LoadFrom(defaultFileName)
	if err == nil {
		return cfg, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config from %s: %w", defaultFileName, err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	homePath := filepath.Join(homeDir, defaultDirName, defaultFileName)
	cfg, err = LoadFrom(homePath)
	if err == nil {
		return cfg, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config from %s: %w", homePath, err)
	}

	return &Config{}, nil
}

// LoadFrom loads configuration from a specific file.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config %s: %w", path, err)
	}
	return &cfg, nil
}

// ParserFlags converts the configured defaults into the parser's flag set.
func (c *Config) ParserFlags() script.Flags {
	return script.Flags{
		StrictEscape: c.Flags.StrictEscape,
		LegacyGetVar: c.Flags.LegacyGetVar,
	}
}
