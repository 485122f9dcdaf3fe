package commands

import (
	"strings"

	"github.com/leapstack-labs/ensvar/pkg/schema"
	"github.com/spf13/cobra"
)

// entitySummary is one line of the entities listing.
type entitySummary struct {
	Name       string `json:"name" yaml:"name"`
	Table      string `json:"table" yaml:"table"`
	PrimaryKey string `json:"primary_key" yaml:"primary_key"`
	Relations  int    `json:"relations" yaml:"relations"`
	Join       bool   `json:"join,omitempty" yaml:"join,omitempty"`
	Incomplete bool   `json:"incomplete,omitempty" yaml:"incomplete,omitempty"`
}

// NewEntitiesCommand creates the entities command.
func NewEntitiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "entities",
		Short: "List mapped entities",
		Long: `List every entity of the variation schema with its table, primary key
and number of declared relations.

Join entities and entities whose declaration is incomplete are flagged.`,
		Example: `  # List entities as a table
  ensvar entities -o text

  # List entities as JSON
  ensvar entities -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEntities(NewCommandContext(cmd))
		},
	}
}

func runEntities(c *CommandContext) error {
	entities := c.Registry.Entities()
	summaries := make([]entitySummary, 0, len(entities))
	for _, e := range entities {
		summaries = append(summaries, summarize(e))
	}

	r := c.Renderer
	if r.Structured() {
		return r.Data(summaries)
	}

	rows := make([][]any, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []any{s.Name, s.Table, s.PrimaryKey, s.Relations, entityFlags(s)})
	}
	r.Table([]string{"entity", "table", "primary key", "relations", "flags"}, rows)
	r.Printf("(%d entities)\n", len(summaries))
	return nil
}

func summarize(e *schema.Entity) entitySummary {
	return entitySummary{
		Name:       e.Name,
		Table:      e.Table,
		PrimaryKey: e.PrimaryKey,
		Relations:  len(e.Relations),
		Join:       e.Join,
		Incomplete: e.Incomplete,
	}
}

func entityFlags(s entitySummary) string {
	var flags []string
	if s.Join {
		flags = append(flags, "join")
	}
	if s.Incomplete {
		flags = append(flags, "incomplete")
	}
	return strings.Join(flags, ",")
}
