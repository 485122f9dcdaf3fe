package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// configKey is used to store the loaded config in context.
type configKey struct{}

// flagKeys maps flags whose names differ from their config keys.
var flagKeys = map[string]string{
	"env":        "environment",
	"type":       "target.type",
	"database":   "target.database",
	"schema":     "target.schema",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// flagsNotConfig are persistent flags consumed before loading.
var flagsNotConfig = map[string]bool{
	"config": true,
	"target": true,
}

// findConfigFile finds the config file to use.
// Priority: explicit path > ensvar.yaml > ensvar.yml in dir
func findConfigFile(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > environment target > config file > defaults
//
// targetOverride names the entry of environments whose target is merged
// over the base target; when empty the configured environment is used.
func LoadConfig(cfgFile, targetOverride string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"environment": DefaultEnv,
		"verbose":     false,
		"output":      DefaultOutput,
		"memoize":     false,
		"log.level":   DefaultLogLevel,
		"log.format":  DefaultLogFormat,
		"target.type": DefaultTargetType,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	cwd, _ := os.Getwd()
	configFile := findConfigFile(cfgFile, cwd)
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// 3. Overlay the selected environment's target
	envName := selectEnvironment(targetOverride, flags, k.String("environment"))
	if envName != "" {
		path := "environments." + envName + ".target"
		if k.Exists(path) {
			if err := k.Load(confmap.Provider(map[string]any{"target": k.Cut(path).Raw()}, "."), nil); err != nil {
				return nil, fmt.Errorf("failed to apply environment %s: %w", envName, err)
			}
		} else if targetOverride != "" {
			return nil, fmt.Errorf("environment %q is not defined in %s", targetOverride, displayName(configFile))
		}
	}

	// 4. Load environment variables (ENSVAR_ prefix)
	// Transform: ENSVAR_TARGET__DATABASE -> target.database
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 5. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			// Only load flags that were explicitly set
			if !f.Changed || flagsNotConfig[f.Name] {
				return "", nil
			}
			if key, ok := flagKeys[f.Name]; ok {
				return key, posflag.FlagVal(flags, f)
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 6. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ConfigFile = configFile
	if envName != "" {
		cfg.Environment = envName
	}

	if cfg.Target == nil {
		cfg.Target = &TargetConfig{Type: DefaultTargetType}
	}
	ApplyTargetDefaults(cfg.Target)
	expandTargetEnvVars(cfg.Target)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// selectEnvironment picks the environment before env vars and flags are
// loaded, so it consults them directly in the same precedence order.
func selectEnvironment(override string, flags *pflag.FlagSet, configured string) string {
	if override != "" {
		return override
	}
	if flags != nil && flags.Changed("env") {
		if v, _ := flags.GetString("env"); v != "" {
			return v
		}
	}
	if v := os.Getenv(EnvPrefix + "ENVIRONMENT"); v != "" {
		return v
	}
	return configured
}

// envKey maps an environment variable name to a config key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func displayName(configFile string) string {
	if configFile == "" {
		return "the configuration (no config file found)"
	}
	return configFile
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if not found
	})
}

// expandTargetEnvVars expands environment variables in sensitive target fields.
func expandTargetEnvVars(t *TargetConfig) {
	if t == nil {
		return
	}
	t.Password = expandEnvVars(t.Password)
	t.User = expandEnvVars(t.User)
	t.Host = expandEnvVars(t.Host)
	t.Database = expandEnvVars(t.Database)
}

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config stored by WithConfig.
func FromContext(ctx context.Context) (*Config, bool) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	return cfg, ok
}
