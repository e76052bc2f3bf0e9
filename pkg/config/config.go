package config

import (
	"io"
	"os"

	"github.com/apexkit/plsqlfmt/pkg/consts"
	"github.com/apexkit/plsqlfmt/pkg/format"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type (
	// Format holds the formatting settings of a project.
	//
	// The zero value maps to the formatter defaults: two-space indentation
	// with keywords rewritten to upper case. Lowercase keywords are opt-in so
	// an empty config section never silently changes casing behavior.
	Format struct {
		// IndentWidth is the number of spaces per indentation level
		IndentWidth int `yaml:"indent_width,omitempty"`

		// LowercaseKeywords disables rewriting reserved words to upper case
		LowercaseKeywords bool `yaml:"lowercase_keywords,omitempty"`
	}

	// Config represents the project configuration loaded from .plsqlfmt.yaml.
	Config struct {
		// Format contains the formatting settings
		Format Format `yaml:"format"`

		// Dictionaries lists API dictionary files used for identifier lookups
		Dictionaries []string `yaml:"dictionaries,omitempty"`
	}
)

// LoadConfig parses a project configuration from the provided io.Reader.
//
// The function expects YAML-formatted configuration data. An unset or zero
// indent width falls back to the default.
//
// Example:
//
//	yamlData := `
//	format:
//	  indent_width: 4
//	dictionaries:
//	  - apex.json
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Printf("Indent width: %d\n", cfg.Format.IndentWidth)
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if cfg.Format.IndentWidth <= 0 {
		cfg.Format.IndentWidth = consts.DefaultIndentWidth
	}

	return &cfg, nil
}

// LoadConfigFile loads a project configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Options converts the configuration into formatter options. A nil Config is
// valid and yields the defaults, so callers running without a project config
// file need no special casing.
func (c *Config) Options() format.Options {
	if c == nil {
		return format.Defaults
	}

	return format.Options{
		IndentWidth:       c.Format.IndentWidth,
		UppercaseKeywords: !c.Format.LowercaseKeywords,
	}
}
