package testutil

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/ensvar/pkg/adapters/sqlite"
	"github.com/leapstack-labs/ensvar/pkg/core"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SchemaVersion is the migration that creates the tables without rows.
const SchemaVersion = 1

// Migrate creates the variation tables and, unless schemaOnly is set, the seed rows.
func Migrate(db *sql.DB, schemaOnly bool) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if schemaOnly {
		if err := goose.UpTo(db, "migrations", SchemaVersion); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		return nil
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// NewFixtureAdapter returns a connected in-memory SQLite adapter holding the
// variation tables and seed rows. The adapter is closed when the test ends.
func NewFixtureAdapter(t testing.TB) *sqlite.Adapter {
	t.Helper()
	return newAdapter(t, false)
}

// NewEmptyAdapter is like NewFixtureAdapter but without seed rows.
func NewEmptyAdapter(t testing.TB) *sqlite.Adapter {
	t.Helper()
	return newAdapter(t, true)
}

// NewFixtureFile writes a seeded variation database to a temporary file and
// returns its path, for code that opens the database itself.
func NewFixtureFile(t testing.TB) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "variation.db")
	adp := sqlite.New(NewTestLogger(t))
	if err := adp.Connect(context.Background(), core.AdapterConfig{Path: path}); err != nil {
		t.Fatalf("failed to create fixture database: %v", err)
	}
	defer func() { _ = adp.Close() }()

	if err := Migrate(adp.DB, false); err != nil {
		t.Fatalf("failed to migrate fixture database: %v", err)
	}
	return path
}

func newAdapter(t testing.TB, schemaOnly bool) *sqlite.Adapter {
	t.Helper()

	adp := sqlite.New(NewTestLogger(t))
	if err := adp.Connect(context.Background(), core.AdapterConfig{Path: sqlite.MemoryPath}); err != nil {
		t.Fatalf("failed to connect fixture database: %v", err)
	}
	t.Cleanup(func() { _ = adp.Close() })

	if err := Migrate(adp.DB, schemaOnly); err != nil {
		t.Fatalf("failed to migrate fixture database: %v", err)
	}
	return adp
}
