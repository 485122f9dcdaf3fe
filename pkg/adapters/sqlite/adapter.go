// Package sqlite provides an SQLite database adapter for ensvar.
//
// The adapter uses the pure-Go modernc.org/sqlite driver, so no cgo
// toolchain is needed to read a variation database dump.
package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/ensvar/pkg/adapter"
	"github.com/leapstack-labs/ensvar/pkg/core"

	_ "modernc.org/sqlite" // sqlite driver
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.SQLBase
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	return &Adapter{SQLBase: adapter.NewSQLBase("sqlite", logger)}
}

// Connect opens the database file at cfg.Path, falling back to cfg.Database.
// An empty path or ":memory:" opens an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	params, err := ParseParams(cfg.Params)
	if err != nil {
		return err
	}

	path := cfg.Path
	if path == "" {
		path = cfg.Database
	}
	if path == "" {
		path = MemoryPath
	}
	dsn := path
	if params.ReadOnly && path != MemoryPath {
		dsn = "file:" + path + "?mode=ro"
	}

	// Every connection to ":memory:" is a separate database.
	if err := a.Open(ctx, "sqlite", dsn, cfg, path == MemoryPath); err != nil {
		return err
	}

	if err := a.applyPragmas(ctx, params); err != nil {
		_ = a.Close()
		return err
	}
	return nil
}

func (a *Adapter) applyPragmas(ctx context.Context, params *Params) error {
	for _, name := range params.sortedPragmas() {
		stmt := fmt.Sprintf("PRAGMA %s = %s", name, params.Pragmas[name])
		a.Logger.Debug("applying pragma", slog.String("pragma", name))
		if err := a.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply pragma %s: %w", name, err)
		}
	}
	return nil
}

// GetTableMetadata describes a table using pragma_table_info, which also
// reports primary key membership.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	if !a.IsConnected() {
		return nil, adapter.ErrNotConnected
	}

	schema, name := a.SplitTableName(table)

	rows, err := a.DB.QueryContext(ctx,
		`SELECT cid, name, type, "notnull", pk FROM pragma_table_info(?, ?) ORDER BY cid`,
		name, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []adapter.Column
	for rows.Next() {
		var (
			col     adapter.Column
			cid     int
			notNull int
			pk      int
		)
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Position = cid + 1
		col.Nullable = notNull == 0 && pk == 0
		col.PrimaryKey = pk > 0
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}
	if len(columns) == 0 {
		return nil, &core.TableNotFoundError{Table: table}
	}

	return &adapter.Metadata{
		Schema:   schema,
		Name:     name,
		Columns:  columns,
		RowCount: a.CountRows(ctx, schema, name),
	}, nil
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
