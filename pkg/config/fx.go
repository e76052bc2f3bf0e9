package config

import (
	"os"

	"github.com/apexkit/plsqlfmt/pkg/consts"
	"github.com/apexkit/plsqlfmt/pkg/format"
	"go.uber.org/fx"
)

var Module = fx.Module("config", fx.Provide(
	// Function attempts to load the configuration from .plsqlfmt.yaml if it
	// exists. Returns nil if the file doesn't exist, letting every command run
	// with the default options in projects without a config file.
	func() (*Config, error) {
		if _, err := os.Stat(consts.ConfigFile); os.IsNotExist(err) {
			return nil, nil
		}

		return LoadConfigFile(consts.ConfigFile)
	},
	func(c *Config) *format.Formatter {
		return format.New(c.Options())
	},
))
