package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/leapstack-labs/ensvar/pkg/core"
)

// MetadataSource provides table metadata. Every adapter satisfies it.
type MetadataSource interface {
	GetTableMetadata(ctx context.Context, table string) (*core.TableMetadata, error)
}

// IssueKind classifies a mismatch between declarations and a live database.
type IssueKind string

// Issue kinds.
const (
	IssueMissingTable      IssueKind = "missing_table"
	IssueMissingPrimaryKey IssueKind = "missing_primary_key"
	IssueMissingForeignKey IssueKind = "missing_foreign_key"
	IssueMissingColumn     IssueKind = "missing_column"
)

// Issue is one mismatch found by Verify.
type Issue struct {
	Entity   string    `json:"entity" yaml:"entity"`
	Table    string    `json:"table" yaml:"table"`
	Kind     IssueKind `json:"kind" yaml:"kind"`
	Column   string    `json:"column,omitempty" yaml:"column,omitempty"`
	Relation string    `json:"relation,omitempty" yaml:"relation,omitempty"`
}

func (i Issue) String() string {
	switch i.Kind {
	case IssueMissingTable:
		return fmt.Sprintf("%s: table %s does not exist", i.Entity, i.Table)
	case IssueMissingForeignKey:
		return fmt.Sprintf("%s.%s: foreign key column %s.%s does not exist", i.Entity, i.Relation, i.Table, i.Column)
	default:
		return fmt.Sprintf("%s: column %s.%s does not exist (%s)", i.Entity, i.Table, i.Column, i.Kind)
	}
}

// Report is the result of Verify.
type Report struct {
	Checked int     `json:"checked" yaml:"checked"`
	Issues  []Issue `json:"issues" yaml:"issues"`
}

// OK reports whether no issues were found.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

// Verify compares the registry's declarations with the tables of a live
// database. Mismatches are reported, never repaired. An error is returned
// only when metadata cannot be read for a reason other than a missing table.
func Verify(ctx context.Context, src MetadataSource, reg *Registry) (*Report, error) {
	report := &Report{Issues: []Issue{}}
	tables := make(map[string]*core.TableMetadata)
	missing := make(map[string]bool)

	load := func(table string) (*core.TableMetadata, error) {
		if meta, ok := tables[table]; ok {
			return meta, nil
		}
		if missing[table] {
			return nil, nil
		}
		meta, err := src.GetTableMetadata(ctx, table)
		if errors.Is(err, core.ErrTableNotFound) {
			missing[table] = true
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read metadata for %s: %w", table, err)
		}
		tables[table] = meta
		return meta, nil
	}

	for _, e := range reg.Entities() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Checked++

		meta, err := load(e.Table)
		if err != nil {
			return nil, err
		}
		if meta == nil {
			report.Issues = append(report.Issues, Issue{Entity: e.Name, Table: e.Table, Kind: IssueMissingTable})
			continue
		}

		if !meta.HasColumn(e.PrimaryKey) {
			report.Issues = append(report.Issues, Issue{Entity: e.Name, Table: e.Table, Kind: IssueMissingPrimaryKey, Column: e.PrimaryKey})
		}
		keys := map[string]bool{e.PrimaryKey: true}
		for _, rel := range e.Relations {
			if rel.Kind == BelongsTo {
				keys[rel.ForeignKey] = true
			}
		}
		for _, col := range e.SelectColumns() {
			if !keys[col] && !meta.HasColumn(col) {
				report.Issues = append(report.Issues, Issue{Entity: e.Name, Table: e.Table, Kind: IssueMissingColumn, Column: col})
			}
		}

		for _, rel := range e.Relations {
			fkTable := meta
			fkTableName := e.Table
			if rel.Kind != BelongsTo {
				target, ok := reg.Get(rel.Target)
				if !ok {
					continue
				}
				fkTableName = target.Table
				if fkTable, err = load(target.Table); err != nil {
					return nil, err
				}
				if fkTable == nil {
					// Reported when the target entity itself is checked.
					continue
				}
			}
			if !fkTable.HasColumn(rel.ForeignKey) {
				report.Issues = append(report.Issues, Issue{
					Entity:   e.Name,
					Table:    fkTableName,
					Kind:     IssueMissingForeignKey,
					Column:   rel.ForeignKey,
					Relation: rel.Name,
				})
			}
		}
	}
	return report, nil
}
