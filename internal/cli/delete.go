package cli

import (
	"errors"
	"fmt"

	"github.com/pluribus-dev/pluribus/internal/app"
	"github.com/pluribus-dev/pluribus/internal/usecase"
	"github.com/spf13/cobra"
)

// newDeleteCommand creates the delete command for removing plurbs.
func newDeleteCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Force bool
		Yes   bool
	}

	cmd := &cobra.Command{
		Use:   "delete <plurb>",
		Short: "Delete a plurb's worktree",
		Long: `Delete a plurb: its worktree and everything inside, including the
status record and any uncommitted work. The branch is left in place;
reclaim it later with 'pluribus cleanup'.

Without --force, deletion refuses when the status record claims a live
agent, or when the worktree has uncommitted changes or unpushed
commits.

Examples:
  # Delete a plurb (asks for confirmation)
  pluribus delete add-database-migration-ab12c

  # Delete without confirmation
  pluribus delete add-database-migration-ab12c --yes

  # Delete despite unsaved work or a live agent
  pluribus delete add-database-migration-ab12c --force --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plurbID, err := resolveOnePlurb(cmd, c, args[0])
			if err != nil {
				return err
			}

			if !opts.Yes {
				if noInputSet(cmd) || !isInteractive() {
					return errors.New("refusing to delete without confirmation (pass --yes)")
				}
				ok, err := confirm(fmt.Sprintf("Delete plurb %s and its worktree?", plurbID))
				if err != nil {
					return err
				}
				if !ok {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
					return nil
				}
			}

			out, err := c.DeletePlurbUseCase().Execute(cmd.Context(), usecase.DeletePlurbInput{
				PlurbID: plurbID,
				Force:   opts.Force,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Deleted plurb %s\n", out.PlurbID)
			_, _ = fmt.Fprintf(w, "Branch %s kept; reclaim it with 'pluribus cleanup'\n", out.Branch)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Delete even with a live agent or unsaved work")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
