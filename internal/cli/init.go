package cli

import (
	"fmt"
	"os"

	"github.com/pluribus-dev/pluribus/internal/app"
	"github.com/pluribus-dev/pluribus/internal/usecase"
	"github.com/spf13/cobra"
)

// newInitCommand creates the init command. It builds its own use case
// because the container only exists for already-initialized workspaces.
func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init <repository>",
		Short: "Initialize the current directory as a workspace",
		Long: `Initialize the current directory as a pluribus workspace.

The repository argument is either a clone URL (cloned into ./repo) or
a path to an existing local clone. Initialization writes
pluribus.config, creates the worktrees/ directory and seeds todo.md
when absent.

Examples:
  # Clone a repository into the workspace
  pluribus init https://github.com/org/project.git

  # Use an existing clone in place
  pluribus init ~/src/project`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get current directory: %w", err)
			}

			uc := app.NewInitUseCase(cwd)
			out, err := uc.Execute(cmd.Context(), usecase.InitWorkspaceInput{Repo: args[0]})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Cloned {
				_, _ = fmt.Fprintf(w, "Cloned repository into %s\n", out.RepoPath)
			}
			_, _ = fmt.Fprintf(w, "Initialized pluribus workspace in %s\n", cwd)
			_, _ = fmt.Fprintln(w, "Edit todo.md, then start work with 'pluribus workon <task>'")
			return nil
		},
	}
}
