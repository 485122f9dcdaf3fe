package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/ensvar/pkg/core"
	"github.com/leapstack-labs/ensvar/pkg/dialect"
)

// ErrNotConnected is returned by SQLBase operations before Open succeeds.
var ErrNotConnected = errors.New("database connection not established")

// SQLBase holds the database/sql plumbing shared by the built-in adapters.
// Embedding it provides Dialect, Close, Exec and Query.
type SQLBase struct {
	DB     *sql.DB
	Cfg    core.AdapterConfig
	Logger *slog.Logger

	dialect *dialect.Dialect
}

// NewSQLBase returns a base for the named dialect, falling back to the
// default dialect when the name is not registered.
func NewSQLBase(dialectName string, logger *slog.Logger) SQLBase {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d, ok := dialect.Get(dialectName)
	if !ok {
		d = dialect.Default()
	}
	return SQLBase{Logger: logger, dialect: d}
}

// Dialect returns the adapter's SQL dialect.
func (b *SQLBase) Dialect() *dialect.Dialect {
	return b.dialect
}

// Open opens and pings a pool for driverName. A pinned pool is limited to a
// single connection, for in-memory databases and per-connection settings.
func (b *SQLBase) Open(ctx context.Context, driverName, dsn string, cfg core.AdapterConfig, pinned bool) error {
	b.logger().Debug("opening database",
		slog.String("driver", driverName),
		slog.Bool("pinned", pinned))

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s connection: %w", driverName, err)
	}
	if pinned {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping %s: %w", driverName, err)
	}

	b.DB = db
	b.Cfg = cfg
	return nil
}

// Close closes the pool if one is open.
func (b *SQLBase) Close() error {
	if b.DB == nil {
		return nil
	}
	b.logger().Debug("closing database connection")
	err := b.DB.Close()
	b.DB = nil
	return err
}

// Exec runs a statement that returns no rows.
func (b *SQLBase) Exec(ctx context.Context, sqlStr string, args ...any) error {
	if b.DB == nil {
		return ErrNotConnected
	}
	if _, err := b.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}

// Query runs a statement that returns rows.
func (b *SQLBase) Query(ctx context.Context, sqlStr string, args ...any) (*core.Rows, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := b.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return &core.Rows{Rows: rows}, nil
}

// IsConnected reports whether Open has succeeded and Close has not run.
func (b *SQLBase) IsConnected() bool {
	return b.DB != nil
}

// SplitTableName splits "schema.table". Unqualified names resolve against
// the configured schema, then the dialect's default schema.
func (b *SQLBase) SplitTableName(table string) (schema, name string) {
	if s, n, ok := strings.Cut(table, "."); ok {
		return s, n
	}
	if b.Cfg.Schema != "" {
		return b.Cfg.Schema, table
	}
	return b.dialect.DefaultSchema, table
}

// InformationSchemaMetadata describes a table from information_schema.columns.
func (b *SQLBase) InformationSchemaMetadata(ctx context.Context, table string) (*core.TableMetadata, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}

	schema, name := b.SplitTableName(table)

	//nolint:gosec // placeholders come from the dialect
	query := fmt.Sprintf(`
		SELECT column_name, data_type, is_nullable, ordinal_position
		FROM information_schema.columns
		WHERE table_schema = %s AND table_name = %s
		ORDER BY ordinal_position
	`, b.dialect.FormatPlaceholder(1), b.dialect.FormatPlaceholder(2))

	rows, err := b.DB.QueryContext(ctx, query, schema, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []core.Column
	for rows.Next() {
		var col core.Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.Type, &nullable, &col.Position); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}
	if len(columns) == 0 {
		return nil, &core.TableNotFoundError{Table: table}
	}

	return &core.TableMetadata{
		Schema:   schema,
		Name:     name,
		Columns:  columns,
		RowCount: b.CountRows(ctx, schema, name),
	}, nil
}

// CountRows returns the row count of schema.name, or 0 if it cannot be read.
func (b *SQLBase) CountRows(ctx context.Context, schema, name string) int64 {
	//nolint:gosec // identifiers come from table metadata and are quoted
	query := "SELECT COUNT(*) FROM " + b.dialect.QuoteQualified(schema+"."+name)
	var n int64
	if err := b.DB.QueryRowContext(ctx, query).Scan(&n); err != nil {
		b.logger().Debug("row count unavailable", slog.String("table", name), slog.String("error", err.Error()))
		return 0
	}
	return n
}

func (b *SQLBase) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}
