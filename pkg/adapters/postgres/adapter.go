// Package postgres provides a PostgreSQL database adapter for ensvar.
package postgres

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/leapstack-labs/ensvar/pkg/adapter"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
)

// Adapter implements the adapter.Adapter interface for PostgreSQL.
type Adapter struct {
	adapter.SQLBase
}

// New creates a new PostgreSQL adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	return &Adapter{SQLBase: adapter.NewSQLBase("postgres", logger)}
}

// Connect establishes a connection to PostgreSQL.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	a.Logger.Debug("connecting to postgres",
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Database))
	return a.Open(ctx, "pgx", buildPostgresDSN(cfg), cfg, false)
}

// buildPostgresDSN renders cfg as a libpq keyword/value connection string
// with keywords in sorted order. Options are passed through as additional
// keywords; sslmode defaults to disable.
func buildPostgresDSN(cfg adapter.Config) string {
	kv := map[string]string{
		"host":    cmp.Or(cfg.Host, "localhost"),
		"port":    strconv.Itoa(cmp.Or(cfg.Port, 5432)),
		"dbname":  cfg.Database,
		"sslmode": "disable",
	}
	if cfg.Username != "" {
		kv["user"] = cfg.Username
	}
	if cfg.Password != "" {
		kv["password"] = cfg.Password
	}
	if cfg.Schema != "" {
		kv["search_path"] = cfg.Schema
	}
	for k, v := range cfg.Options {
		kv[k] = v
	}

	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + quoteDSNValue(kv[k])
	}
	return strings.Join(parts, " ")
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quoteDSNValue single-quotes values that are empty or contain spaces,
// quotes or backslashes.
func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	return "'" + dsnEscaper.Replace(v) + "'"
}

// GetTableMetadata describes a table and marks its primary key columns.
// Unqualified names resolve against the configured schema, then "public".
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	meta, err := a.InformationSchemaMetadata(ctx, table)
	if err != nil {
		return nil, err
	}
	if err := a.markPrimaryKeys(ctx, meta); err != nil {
		return nil, err
	}
	return meta, nil
}

func (a *Adapter) markPrimaryKeys(ctx context.Context, meta *adapter.Metadata) error {
	rows, err := a.DB.QueryContext(ctx, `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
			AND tc.table_schema = $1 AND tc.table_name = $2
	`, meta.Schema, meta.Name)
	if err != nil {
		return fmt.Errorf("failed to query primary key metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	pk := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan primary key metadata: %w", err)
		}
		pk[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating primary key metadata: %w", err)
	}

	for i := range meta.Columns {
		meta.Columns[i].PrimaryKey = pk[meta.Columns[i].Name]
	}
	return nil
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
