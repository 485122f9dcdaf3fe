package duckdb

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/go-viper/mapstructure/v2"
)

// Params holds DuckDB-specific configuration.
// Parsed from adapter.Config.Params using mapstructure.
type Params struct {
	// Extensions to install and load (e.g., "sqlite", "postgres_scanner")
	Extensions []string `mapstructure:"extensions"`

	// Settings to apply at session level (e.g., memory_limit, threads)
	Settings map[string]string `mapstructure:"settings"`

	// Attach mounts further databases, typically a variation dump in another format.
	Attach []AttachConfig `mapstructure:"attach"`

	// ReadOnly opens the main database file in read-only mode.
	ReadOnly bool `mapstructure:"read_only"`
}

// AttachConfig describes one ATTACH statement.
type AttachConfig struct {
	// Alias is the catalog name the database is mounted under.
	Alias string `mapstructure:"alias"`

	// Path is the file path or connection string.
	Path string `mapstructure:"path"`

	// Type is the storage extension ("sqlite", "postgres"); empty means a DuckDB file.
	Type string `mapstructure:"type,omitempty"`
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// parseParams decodes raw adapter params into Params.
func parseParams(raw map[string]any) (*Params, error) {
	params := &Params{}
	if len(raw) == 0 {
		return params, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           params,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create params decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid duckdb params: %w", err)
	}

	for _, ext := range params.Extensions {
		if !identPattern.MatchString(ext) {
			return nil, fmt.Errorf("invalid duckdb extension name %q", ext)
		}
	}
	for name := range params.Settings {
		if !identPattern.MatchString(name) {
			return nil, fmt.Errorf("invalid duckdb setting name %q", name)
		}
	}
	for i, att := range params.Attach {
		if !identPattern.MatchString(att.Alias) {
			return nil, fmt.Errorf("attach[%d]: invalid alias %q", i, att.Alias)
		}
		if att.Path == "" {
			return nil, fmt.Errorf("attach[%d]: path is required", i)
		}
		if att.Type != "" && !identPattern.MatchString(att.Type) {
			return nil, fmt.Errorf("attach[%d]: invalid type %q", i, att.Type)
		}
	}
	return params, nil
}

func (p *Params) sortedSettings() []string {
	names := make([]string, 0, len(p.Settings))
	for name := range p.Settings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// quoteLiteral renders s as a single-quoted SQL string literal.
func quoteLiteral(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '\'')
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			out = append(out, '\'')
		}
		out = append(out, s[i])
	}
	return string(append(out, '\''))
}

// buildAttachSQL renders the ATTACH statement for one database.
func buildAttachSQL(att AttachConfig) string {
	stmt := fmt.Sprintf("ATTACH %s AS %s", quoteLiteral(att.Path), att.Alias)
	if att.Type != "" {
		stmt += fmt.Sprintf(" (TYPE %s, READ_ONLY)", att.Type)
	} else {
		stmt += " (READ_ONLY)"
	}
	return stmt
}
