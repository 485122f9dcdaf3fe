// Package schema describes the mapped entities of a relational database as data.
//
// An Entity names its table, primary key, declared columns and relations.
// The relations are resolved by naming convention: a belongs_to relation
// "sample" reads the owner's sample_id column, while has_one and has_many
// relations read <owner>_id on the target table. Declarations are collected
// in a Registry which the mapping engine in pkg/mapper consumes.
package schema

import "slices"

// DefaultPrimaryKey is the primary key column used when an entity declares none.
const DefaultPrimaryKey = "id"

// Kind is the cardinality of a relation.
type Kind int

// Relation kinds.
const (
	BelongsTo Kind = iota
	HasOne
	HasMany
)

func (k Kind) String() string {
	switch k {
	case BelongsTo:
		return "belongs_to"
	case HasOne:
		return "has_one"
	case HasMany:
		return "has_many"
	default:
		return "unknown"
	}
}

// IsCollection reports whether traversal yields a list of records.
func (k Kind) IsCollection() bool {
	return k == HasMany
}

// Relation is a named foreign-key association from one entity to another.
type Relation struct {
	Name   string
	Kind   Kind
	Target string

	// ForeignKey is the referencing column: on the owner for BelongsTo,
	// on the target for HasOne and HasMany.
	ForeignKey string
}

// Entity is the schema description of one mapped table.
type Entity struct {
	Name       string
	Table      string
	PrimaryKey string
	Columns    []string
	Relations  []Relation

	// Join marks a connection table between two other entities.
	Join bool

	// Incomplete marks a stub whose columns are not declared; all columns are selected.
	Incomplete bool
}

// Relation returns the relation with the given name.
func (e *Entity) Relation(name string) (Relation, bool) {
	for _, r := range e.Relations {
		if r.Name == name {
			return r, true
		}
	}
	return Relation{}, false
}

// HasColumn reports whether the entity declares the column.
// Entities without declared columns accept any column.
func (e *Entity) HasColumn(column string) bool {
	if len(e.Columns) == 0 {
		return true
	}
	return slices.Contains(e.Columns, column)
}

// SelectColumns returns the columns to select, or nil for all columns.
func (e *Entity) SelectColumns() []string {
	if e.Incomplete || len(e.Columns) == 0 {
		return nil
	}
	return e.Columns
}

// RelationNames returns the declared relation names in declaration order.
func (e *Entity) RelationNames() []string {
	names := make([]string, len(e.Relations))
	for i, r := range e.Relations {
		names[i] = r.Name
	}
	return names
}
