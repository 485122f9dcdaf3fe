package commands

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/ensvar/pkg/schema"
	"github.com/spf13/cobra"
)

// NewVerifyCommand creates the verify command.
func NewVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the declared schema against the database",
		Long: `Compare every entity declaration with the tables of the configured
database. Missing tables, primary keys, foreign keys and declared columns
are reported. The command fails when any issue is found.`,
		Example: `  ensvar verify --database variation.db
  ensvar verify -t staging -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)
			s, cleanup, err := c.OpenSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := schema.Verify(cmd.Context(), s.Adapter(), c.Registry)
			if err != nil {
				return err
			}
			c.Logger.Info("schema verified",
				slog.Int("checked", report.Checked),
				slog.Int("issues", len(report.Issues)))

			if err := renderReport(c, report); err != nil {
				return err
			}
			if !report.OK() {
				return fmt.Errorf("schema verification found %d issue(s)", len(report.Issues))
			}
			return nil
		},
	}
}

func renderReport(c *CommandContext, report *schema.Report) error {
	r := c.Renderer
	if r.Structured() {
		return r.Data(report)
	}

	if report.OK() {
		r.Printf("OK: %d entities match the database\n", report.Checked)
		return nil
	}

	rows := make([][]any, 0, len(report.Issues))
	for _, is := range report.Issues {
		rows = append(rows, []any{is.Entity, is.Table, string(is.Kind), is.Column, is.Relation})
	}
	r.Table([]string{"entity", "table", "issue", "column", "relation"}, rows)
	r.Printf("%d entities checked, %d issue(s)\n", report.Checked, len(report.Issues))
	return nil
}
