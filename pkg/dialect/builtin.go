package dialect

import (
	"github.com/huandu/go-sqlbuilder"
	"github.com/leapstack-labs/ensvar/pkg/core"
)

var builtinSQLite = NewDialect("sqlite").
	DefaultSchema("main").
	Flavor(sqlbuilder.SQLite).
	Build()

var builtinPostgres = NewDialect("postgres").
	DefaultSchema("public").
	PlaceholderStyle(core.PlaceholderDollar).
	Flavor(sqlbuilder.PostgreSQL).
	Build()

// DuckDB accepts ? placeholders, which the SQLite flavor emits.
var builtinDuckDB = NewDialect("duckdb").
	DefaultSchema("main").
	Flavor(sqlbuilder.SQLite).
	Build()

func init() {
	Register(builtinSQLite)
	Register(builtinPostgres)
	Register(builtinDuckDB)
	SetDefault(builtinSQLite)
}
