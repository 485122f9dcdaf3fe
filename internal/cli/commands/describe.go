package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ensvar/pkg/schema"
	"github.com/spf13/cobra"
)

type relationDescription struct {
	Name         string   `json:"name" yaml:"name"`
	Kind         string   `json:"kind" yaml:"kind"`
	Target       string   `json:"target" yaml:"target"`
	ForeignKey   string   `json:"foreign_key" yaml:"foreign_key"`
	OwnerColumn  string   `json:"owner_column" yaml:"owner_column"`
	TargetColumn string   `json:"target_column" yaml:"target_column"`
	Inverse      []string `json:"inverse,omitempty" yaml:"inverse,omitempty"`
}

type entityDescription struct {
	entitySummary `yaml:",inline"`
	Columns       []string              `json:"columns,omitempty" yaml:"columns,omitempty"`
	Relations     []relationDescription `json:"relation_details" yaml:"relation_details"`
}

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <entity>",
		Short: "Show the columns and relations of an entity",
		Long: `Show how an entity maps onto its table: declared columns, and for every
relation its kind, target entity, the columns joined on, and the relations
on the target that lead back.`,
		Example: `  ensvar describe Allele
  ensvar describe VariationGroup -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(NewCommandContext(cmd), args[0])
		},
	}
}

func runDescribe(c *CommandContext, name string) error {
	desc, err := describeEntity(c.Registry, name)
	if err != nil {
		return err
	}

	r := c.Renderer
	if r.Structured() {
		return r.Data(desc)
	}

	r.Printf("%s (table %s, primary key %s)\n", desc.Name, desc.Table, desc.PrimaryKey)
	if flags := entityFlags(desc.entitySummary); flags != "" {
		r.Printf("flags: %s\n", flags)
	}
	if len(desc.Columns) > 0 {
		r.Printf("columns: %v\n", desc.Columns)
	}
	if len(desc.Relations) == 0 {
		r.Println("no relations")
		return nil
	}

	rows := make([][]any, 0, len(desc.Relations))
	for _, rel := range desc.Relations {
		join := fmt.Sprintf("%s.%s = %s.%s", desc.Name, rel.OwnerColumn, rel.Target, rel.TargetColumn)
		rows = append(rows, []any{rel.Name, rel.Kind, rel.Target, join, joinNames(rel.Inverse)})
	}
	r.Table([]string{"relation", "kind", "target", "join", "inverse"}, rows)
	return nil
}

func describeEntity(reg *schema.Registry, name string) (*entityDescription, error) {
	e, err := reg.Lookup(name)
	if err != nil {
		return nil, err
	}

	desc := &entityDescription{
		entitySummary: summarize(e),
		Columns:       e.SelectColumns(),
		Relations:     make([]relationDescription, 0, len(e.Relations)),
	}
	for _, rel := range e.Relations {
		ownerCol, targetCol, err := reg.JoinColumns(e.Name, rel.Name)
		if err != nil {
			return nil, err
		}
		inverse, err := reg.Inverse(e.Name, rel.Name)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(inverse))
		for _, back := range inverse {
			names = append(names, back.Name)
		}
		desc.Relations = append(desc.Relations, relationDescription{
			Name:         rel.Name,
			Kind:         rel.Kind.String(),
			Target:       rel.Target,
			ForeignKey:   rel.ForeignKey,
			OwnerColumn:  ownerCol,
			TargetColumn: targetCol,
			Inverse:      names,
		})
	}
	return desc, nil
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
