package commands

import (
	"github.com/leapstack-labs/ensvar/internal/cli/output"
	"github.com/leapstack-labs/ensvar/pkg/core"
	"github.com/leapstack-labs/ensvar/pkg/schema"
	"github.com/spf13/cobra"
)

// NewGetCommand creates the get command.
func NewGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <entity> <key>",
		Short: "Fetch a record by primary key",
		Long: `Fetch one record of an entity by its primary key value.

A key that matches no row is reported as not found.`,
		Example: `  ensvar get Variation 100
  ensvar get Source 1 -o json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			e, err := c.Registry.Lookup(args[0])
			if err != nil {
				return err
			}

			s, cleanup, err := c.OpenSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			rec, err := s.Find(cmd.Context(), e.Name, parseKey(args[1]))
			if err != nil {
				return err
			}
			return renderRecord(c.Renderer, e, rec)
		},
	}
}

// renderRecord writes a single record as column/value pairs.
func renderRecord(r *output.Renderer, e *schema.Entity, rec core.Record) error {
	if r.Structured() {
		return r.Data(output.Plain(rec))
	}
	cols := recordColumns(e, rec)
	rows := make([][]any, 0, len(cols))
	for _, c := range cols {
		rows = append(rows, []any{c, rec[c]})
	}
	r.Printf("%s\n", e.Name)
	r.Table([]string{"column", "value"}, rows)
	return nil
}

// renderRecords writes records as a table with one row per record.
func renderRecords(r *output.Renderer, e *schema.Entity, recs []core.Record) error {
	if r.Structured() {
		plain := make([]map[string]any, 0, len(recs))
		for _, rec := range recs {
			plain = append(plain, output.Plain(rec))
		}
		return r.Data(plain)
	}

	if len(recs) == 0 {
		r.Println("(0 rows)")
		return nil
	}
	maps := make([]map[string]any, len(recs))
	for i, rec := range recs {
		maps[i] = rec
	}
	cols := recordColumns(e, maps...)
	rows := make([][]any, 0, len(recs))
	for _, rec := range recs {
		row := make([]any, len(cols))
		for i, c := range cols {
			row[i] = rec[c]
		}
		rows = append(rows, row)
	}
	r.Table(cols, rows)
	r.Printf("(%d rows)\n", len(recs))
	return nil
}
