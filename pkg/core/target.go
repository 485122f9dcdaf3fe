package core

// TargetConfig holds database target configuration.
type TargetConfig struct {
	Type string `koanf:"type" json:"type" yaml:"type"` // sqlite, duckdb, postgres

	// File-based databases (SQLite, DuckDB)
	Database string `koanf:"database" json:"database" yaml:"database"` // file path or database name

	// Network databases
	Host     string `koanf:"host" json:"host,omitempty" yaml:"host,omitempty"`
	Port     int    `koanf:"port" json:"port,omitempty" yaml:"port,omitempty"`
	User     string `koanf:"user" json:"user,omitempty" yaml:"user,omitempty"`
	Password string `koanf:"password" json:"-" yaml:"-"`

	Schema string `koanf:"schema" json:"schema,omitempty" yaml:"schema,omitempty"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options" json:"options,omitempty" yaml:"options,omitempty"`

	// Params holds adapter-specific configuration (e.g., SQLite pragmas, DuckDB extensions)
	Params map[string]any `koanf:"params" json:"params,omitempty" yaml:"params,omitempty"`
}

// AdapterConfig converts the target into the configuration passed to Adapter.Connect.
func (t *TargetConfig) AdapterConfig() AdapterConfig {
	return AdapterConfig{
		Type:     t.Type,
		Path:     t.Database,
		Database: t.Database,
		Host:     t.Host,
		Port:     t.Port,
		Username: t.User,
		Password: t.Password,
		Schema:   t.Schema,
		Options:  t.Options,
		Params:   t.Params,
	}
}
