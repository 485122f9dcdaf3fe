package commands

import (
	"github.com/spf13/cobra"
)

// NewRelatedCommand creates the related command.
func NewRelatedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "related <entity> <key> <relation>",
		Short: "Traverse a relation from a record",
		Long: `Fetch a record by primary key and follow one of its relations.

belongs_to and has_one relations yield at most one record; has_many
relations yield every matching record. A NULL foreign key yields nothing,
while a foreign key that points at a missing row is reported as not found.`,
		Example: `  # The sample a population describes
  ensvar related Population 1 sample

  # Every allele of rs699
  ensvar related Variation 100 alleles -o json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			ctx := cmd.Context()

			owner, rel, err := c.Registry.Relation(args[0], args[2])
			if err != nil {
				return err
			}
			target, err := c.Registry.Lookup(rel.Target)
			if err != nil {
				return err
			}

			s, cleanup, err := c.OpenSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rec, err := s.Find(ctx, owner.Name, parseKey(args[1]))
			if err != nil {
				return err
			}

			if rel.Kind.IsCollection() {
				recs, err := s.Many(owner.Name, rel.Name, rec).Force(ctx)
				if err != nil {
					return err
				}
				return renderRecords(c.Renderer, target, recs)
			}

			one, err := s.One(owner.Name, rel.Name, rec).Force(ctx)
			if err != nil {
				return err
			}
			if one == nil {
				if c.Renderer.Structured() {
					return c.Renderer.Data(nil)
				}
				c.Renderer.Printf("no %s for %s %s\n", target.Name, owner.Name, args[1])
				return nil
			}
			return renderRecord(c.Renderer, target, one)
		},
	}
}
