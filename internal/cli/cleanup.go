package cli

import (
	"errors"
	"fmt"

	"github.com/pluribus-dev/pluribus/internal/app"
	"github.com/pluribus-dev/pluribus/internal/usecase"
	"github.com/spf13/cobra"
)

// newCleanupCommand creates the cleanup command for reclaiming orphans.
func newCleanupCommand(c *app.Container) *cobra.Command {
	var opts struct {
		DryRun bool
		Force  bool
	}

	cmd := &cobra.Command{
		Use:     "cleanup",
		Aliases: []string{"git-cleanup"},
		Short:   "Delete orphaned plurb branches",
		Long: `Prune stale worktree registrations and delete branches in the
pluribus/ namespace that no worktree claims anymore.

Branches outside the pluribus/ namespace are never touched. Without
--force the batch is confirmed before anything is deleted. Running
cleanup twice in a row is a no-op the second time.

Examples:
  # Preview what would be deleted
  pluribus cleanup --dry-run

  # Delete orphaned branches after confirmation
  pluribus cleanup

  # Delete without confirmation
  pluribus cleanup --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.GitCleanupUseCase()
			w := cmd.OutOrStdout()

			preview, err := uc.Execute(cmd.Context(), usecase.GitCleanupInput{DryRun: true})
			if err != nil {
				return err
			}

			if len(preview.Deleted) == 0 {
				_, _ = fmt.Fprintln(w, "No orphaned branches")
				return nil
			}

			if opts.DryRun {
				for _, branch := range preview.Deleted {
					_, _ = fmt.Fprintf(w, "Would delete %s\n", branch)
				}
				if len(preview.Kept) > 0 {
					_, _ = fmt.Fprintf(w, "Kept %d branch(es) still backed by a worktree\n", len(preview.Kept))
				}
				return nil
			}

			if !opts.Force {
				if noInputSet(cmd) || !isInteractive() {
					return errors.New("refusing to delete without confirmation (pass --force)")
				}
				ok, err := confirm(fmt.Sprintf("Delete %d orphaned branch(es)?", len(preview.Deleted)))
				if err != nil {
					return err
				}
				if !ok {
					_, _ = fmt.Fprintln(w, "Aborted")
					return nil
				}
			}

			out, err := uc.Execute(cmd.Context(), usecase.GitCleanupInput{})
			if err != nil {
				return err
			}

			for _, branch := range out.Deleted {
				_, _ = fmt.Fprintf(w, "Deleted %s\n", branch)
			}
			if len(out.Kept) > 0 {
				_, _ = fmt.Fprintf(w, "Kept %d branch(es) still backed by a worktree\n", len(out.Kept))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report orphans without deleting")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Skip the confirmation prompt")

	return cmd
}
