// Package config provides configuration management for the ensvar CLI.
//
// Configuration is layered with koanf: built-in defaults, then ensvar.yaml,
// then the selected entry of its environments map, then ENSVAR_ environment
// variables, then explicitly set flags. The target type is shared with
// pkg/core and re-exported here via a type alias.
package config

import "github.com/leapstack-labs/ensvar/pkg/core"

// TargetConfig is an alias for the shared target configuration.
type TargetConfig = core.TargetConfig

// Config holds all CLI configuration options.
type Config struct {
	Environment  string        `koanf:"environment"`
	Verbose      bool          `koanf:"verbose"`
	OutputFormat string        `koanf:"output"`
	Memoize      bool          `koanf:"memoize"`
	Log          LogConfig     `koanf:"log"`
	Target       *TargetConfig `koanf:"target"`

	// ConfigFile is the file the configuration was read from, if any.
	ConfigFile string `koanf:"-"`
}

// LogConfig selects the level and handler of the CLI logger.
type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // text, json
}

// Configuration file names, in lookup order.
const (
	ConfigFileName    = "ensvar.yaml"
	ConfigFileNameAlt = "ensvar.yml"
)

// EnvPrefix prefixes every environment variable read by the CLI.
// A double underscore separates nested keys: ENSVAR_TARGET__DATABASE.
const EnvPrefix = "ENSVAR_"

// Default configuration values
const (
	DefaultEnv        = "dev"
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=json
	DefaultTargetType = "sqlite"
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
)
