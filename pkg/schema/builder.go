package schema

import "fmt"

// Builder provides a fluent API for declaring entities.
type Builder struct {
	entity *Entity
}

// Define starts declaring an entity. The table defaults to the snake_case
// name and the primary key to "id".
func Define(name string) *Builder {
	return &Builder{
		entity: &Entity{
			Name:       name,
			Table:      ToSnake(name),
			PrimaryKey: DefaultPrimaryKey,
		},
	}
}

// Table overrides the table name.
func (b *Builder) Table(table string) *Builder {
	b.entity.Table = table
	return b
}

// PrimaryKey overrides the primary key column.
func (b *Builder) PrimaryKey(column string) *Builder {
	b.entity.PrimaryKey = column
	return b
}

// Columns declares the selectable columns.
func (b *Builder) Columns(columns ...string) *Builder {
	b.entity.Columns = append(b.entity.Columns, columns...)
	return b
}

// BelongsTo declares a many-to-one relation read from the owner's <name>_id column.
func (b *Builder) BelongsTo(name, target string) *Builder {
	return b.relation(name, BelongsTo, target, name+"_id")
}

// HasOne declares a one-to-one relation read from <owner>_id on the target.
func (b *Builder) HasOne(name, target string) *Builder {
	return b.relation(name, HasOne, target, ForeignKeyFor(b.entity.Name))
}

// HasMany declares a one-to-many relation read from <owner>_id on the target.
func (b *Builder) HasMany(name, target string) *Builder {
	return b.relation(name, HasMany, target, ForeignKeyFor(b.entity.Name))
}

// ForeignKey overrides the foreign key of the most recently declared relation.
// It panics when no relation has been declared yet.
func (b *Builder) ForeignKey(column string) *Builder {
	n := len(b.entity.Relations)
	if n == 0 {
		panic(fmt.Sprintf("schema: ForeignKey(%q) on %s before any relation", column, b.entity.Name))
	}
	b.entity.Relations[n-1].ForeignKey = column
	return b
}

// Join marks the entity as a connection table.
func (b *Builder) Join() *Builder {
	b.entity.Join = true
	return b
}

// Incomplete marks the entity as a stub selected with all columns.
func (b *Builder) Incomplete() *Builder {
	b.entity.Incomplete = true
	return b
}

// Build returns the declared entity.
func (b *Builder) Build() *Entity {
	return b.entity
}

func (b *Builder) relation(name string, kind Kind, target, fk string) *Builder {
	b.entity.Relations = append(b.entity.Relations, Relation{
		Name:       name,
		Kind:       kind,
		Target:     target,
		ForeignKey: fk,
	})
	return b
}
