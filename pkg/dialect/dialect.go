// Package dialect provides SQL dialect configuration for the mapping engine.
//
// A dialect decides how identifiers are quoted, how bind parameters are
// written and which go-sqlbuilder flavor renders SELECT statements.
// Dialects are registered by name; the builtin set covers every adapter
// shipped in pkg/adapters.
package dialect

import (
	"strconv"
	"strings"

	"github.com/huandu/go-sqlbuilder"
	"github.com/leapstack-labs/ensvar/pkg/core"
)

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	core.DialectConfig

	// Flavor selects the go-sqlbuilder renderer for this dialect.
	Flavor sqlbuilder.Flavor
}

// Config returns the pure data configuration for this dialect.
func (d *Dialect) Config() *core.DialectConfig {
	cfg := d.DialectConfig
	return &cfg
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string {
	return d.Name
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
// Returns "?" for PlaceholderQuestion style, "$1", "$2" etc. for PlaceholderDollar style.
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case core.PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	// Escape any existing quote end characters in the name (e.g., ] -> ]])
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteQualified quotes each part of a dotted name ("schema.table").
func (d *Dialect) QuoteQualified(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = d.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect starts building a dialect with ANSI double-quote identifiers,
// question-mark placeholders and the SQLite sqlbuilder flavor.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			DialectConfig: core.DialectConfig{
				Name: name,
				Identifiers: core.IdentifierConfig{
					Quote:    `"`,
					QuoteEnd: `"`,
					Escape:   `""`,
				},
				DefaultSchema: "main",
				Placeholder:   core.PlaceholderQuestion,
			},
			Flavor: sqlbuilder.SQLite,
		},
	}
}

// Identifiers sets identifier quoting rules.
func (b *Builder) Identifiers(quote, quoteEnd, escape string) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:    quote,
		QuoteEnd: quoteEnd,
		Escape:   escape,
	}
	return b
}

// DefaultSchema sets the schema used when a table name is unqualified.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.dialect.DefaultSchema = schema
	return b
}

// PlaceholderStyle sets the bind parameter style.
func (b *Builder) PlaceholderStyle(style core.PlaceholderStyle) *Builder {
	b.dialect.Placeholder = style
	return b
}

// Flavor sets the go-sqlbuilder flavor.
func (b *Builder) Flavor(f sqlbuilder.Flavor) *Builder {
	b.dialect.Flavor = f
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
