// Package adapter connects the mapping engine to a concrete database.
//
// An Adapter owns a database/sql pool, knows its SQL dialect and can
// describe tables for schema verification. Built-in adapters live in
// pkg/adapters/ and register themselves by name when imported:
//
//	import _ "github.com/leapstack-labs/ensvar/pkg/adapters/sqlite"
//
// The mapper only reads through an adapter. Exec exists for connection
// setup (pragmas, extensions) and for test fixtures.
package adapter

import (
	"context"

	"github.com/leapstack-labs/ensvar/pkg/core"
	"github.com/leapstack-labs/ensvar/pkg/dialect"
)

// Type aliases so adapter implementations need not import pkg/core directly.
type (
	// Config is an alias for core.AdapterConfig.
	Config = core.AdapterConfig

	// Column is an alias for core.Column.
	Column = core.Column

	// Metadata is an alias for core.TableMetadata.
	Metadata = core.TableMetadata

	// Rows is an alias for core.Rows.
	Rows = core.Rows
)

// Querier runs parameterised reads in a known dialect.
type Querier interface {
	// Query runs a statement that returns rows. The caller closes them.
	Query(ctx context.Context, sql string, args ...any) (*Rows, error)

	// Dialect returns the dialect used to quote identifiers and bind values.
	Dialect() *dialect.Dialect
}

// Adapter is a connected database the mapper can read from.
type Adapter interface {
	Querier

	// Connect opens the database described by cfg.
	Connect(ctx context.Context, cfg Config) error

	// Close releases the connection pool. Closing twice is a no-op.
	Close() error

	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context, sql string, args ...any) error

	// GetTableMetadata describes a table, returning an error matching
	// core.ErrTableNotFound when it does not exist.
	GetTableMetadata(ctx context.Context, table string) (*Metadata, error)
}
