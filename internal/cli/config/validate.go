package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ensvar/pkg/adapter"
	"github.com/leapstack-labs/ensvar/pkg/dialect"
)

// DefaultSchemaForType returns the default schema for a database type.
// It looks up the dialect in the registry; if not found, returns "main" as fallback.
func DefaultSchemaForType(dbType string) string {
	if d, ok := dialect.Get(dbType); ok && d.DefaultSchema != "" {
		return d.DefaultSchema
	}
	return "main"
}

// ApplyTargetDefaults applies default values to a TargetConfig based on the target type.
func ApplyTargetDefaults(t *TargetConfig) {
	if t == nil {
		return
	}
	t.Type = strings.ToLower(t.Type)

	if t.Schema == "" {
		t.Schema = DefaultSchemaForType(t.Type)
	}
	if t.Type == "postgres" {
		if t.Port == 0 {
			t.Port = 5432
		}
		if t.Host == "" {
			t.Host = "localhost"
		}
	}
}

// ValidateTarget checks if the target configuration is valid.
// It uses the adapter registry to determine which adapter types are available.
func ValidateTarget(t *TargetConfig) error {
	if t == nil || t.Type == "" {
		return fmt.Errorf("target type is required")
	}
	if !adapter.IsRegistered(strings.ToLower(t.Type)) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := ValidateTarget(c.Target); err != nil {
		return fmt.Errorf("invalid target configuration: %w", err)
	}
	switch c.OutputFormat {
	case "auto", "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q (want auto, text, json or yaml)", c.OutputFormat)
	}
	return nil
}

// RequireDatabase reports an error when the target does not name a database.
// Commands that only read declarations do not call it.
func (c *Config) RequireDatabase() error {
	if c.Target == nil || c.Target.Database == "" {
		return fmt.Errorf("no database configured\nHint: set target.database in %s or pass --database", ConfigFileName)
	}
	return nil
}
