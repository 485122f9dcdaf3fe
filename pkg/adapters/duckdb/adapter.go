// Package duckdb provides a DuckDB database adapter for ensvar.
package duckdb

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/ensvar/pkg/adapter"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Adapter implements the adapter.Adapter interface for DuckDB.
type Adapter struct {
	adapter.SQLBase
}

// New creates a new DuckDB adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	return &Adapter{SQLBase: adapter.NewSQLBase("duckdb", logger)}
}

// Connect opens the DuckDB file at cfg.Path, falling back to cfg.Database,
// then loads extensions, settings and attachments from cfg.Params.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	params, err := parseParams(cfg.Params)
	if err != nil {
		return err
	}

	path := cmp.Or(cfg.Path, cfg.Database, MemoryPath)
	dsn := path
	if params.ReadOnly && path != MemoryPath {
		dsn += "?access_mode=read_only"
	}

	// Settings and attachments are per connection.
	if err := a.Open(ctx, "duckdb", dsn, cfg, true); err != nil {
		return err
	}

	if err := a.applyParams(ctx, params); err != nil {
		_ = a.Close()
		return err
	}
	return nil
}

func (a *Adapter) applyParams(ctx context.Context, params *Params) error {
	for _, ext := range params.Extensions {
		a.Logger.Debug("loading duckdb extension", slog.String("extension", ext))
		if err := a.Exec(ctx, "INSTALL "+ext); err != nil {
			return fmt.Errorf("failed to install extension %s: %w", ext, err)
		}
		if err := a.Exec(ctx, "LOAD "+ext); err != nil {
			return fmt.Errorf("failed to load extension %s: %w", ext, err)
		}
	}

	for _, name := range params.sortedSettings() {
		stmt := fmt.Sprintf("SET %s = %s", name, quoteLiteral(params.Settings[name]))
		if err := a.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply setting %s: %w", name, err)
		}
	}

	for _, att := range params.Attach {
		a.Logger.Debug("attaching database", slog.String("alias", att.Alias), slog.String("type", att.Type))
		if err := a.Exec(ctx, buildAttachSQL(att)); err != nil {
			return fmt.Errorf("failed to attach %s: %w", att.Alias, err)
		}
	}
	return nil
}

// GetTableMetadata describes a table from information_schema.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	return a.InformationSchemaMetadata(ctx, table)
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
