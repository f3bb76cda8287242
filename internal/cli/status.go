package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pluribus-dev/pluribus/internal/app"
	"github.com/pluribus-dev/pluribus/internal/domain"
	"github.com/pluribus-dev/pluribus/internal/usecase"
	"github.com/spf13/cobra"
)

// newStatusCommand creates the status command for the one-shot overview.
func newStatusCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status [identifier]",
		Short: "Show the status of plurbs",
		Long: `Show a one-shot status overview of plurbs.

Without arguments all plurbs are shown. With an identifier (plurb id
or task name) only the matching plurbs are shown. Plurbs whose status
record is missing or unreadable appear with status Unknown.

Output format is tab-separated with columns:
  ID, TASK, STATUS, PHASE, PROG, ACTIVE, UPDATED

Examples:
  # Show all plurbs
  pluribus status

  # Show plurbs for one task
  pluribus status "database migration"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var identifier string
			if len(args) > 0 {
				identifier = args[0]
			}

			out, err := c.PlurbStatusUseCase().Execute(cmd.Context(), usecase.PlurbStatusInput{Identifier: identifier})
			if err != nil {
				return err
			}

			if len(out.Plurbs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No plurbs yet. Start one with 'pluribus workon <task>'.")
				return nil
			}
			printPlurbs(cmd.OutOrStdout(), out.Plurbs)
			return nil
		},
	}
}

// printPlurbs prints plurbs in TSV format.
func printPlurbs(w io.Writer, plurbs []*domain.Plurb) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tTASK\tSTATUS\tPHASE\tPROG\tACTIVE\tUPDATED")

	for _, p := range plurbs {
		phase, progress, updated := "-", "-", "-"
		active := "no"

		if rec := p.Record; rec != nil {
			if rec.Phase != "" {
				phase = rec.Phase
			}
			progress = fmt.Sprintf("%d%%", rec.ProgressPercent)
			if rec.ClaudeInstanceActive {
				active = "yes"
			}
			if !rec.LastUpdate.IsZero() {
				updated = rec.LastUpdate.Local().Format("2006-01-02 15:04")
			}
		}

		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID,
			p.TaskName,
			p.Status().Display(),
			phase,
			progress,
			active,
			updated,
		)
	}
}
