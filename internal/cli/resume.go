package cli

import (
	"fmt"

	"github.com/pluribus-dev/pluribus/internal/app"
	"github.com/pluribus-dev/pluribus/internal/usecase"
	"github.com/spf13/cobra"
)

// newResumeCommand creates the resume command for relaunching agents.
func newResumeCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Agent string
		Args  []string
		Force bool
	}

	cmd := &cobra.Command{
		Use:   "resume <plurb>",
		Short: "Relaunch an agent on an existing plurb",
		Long: `Relaunch an agent on an existing plurb, continuing its recorded
session when one exists.

The plurb argument is a plurb id or a task name. A task name matching
several plurbs is disambiguated interactively, or rejected under
--no-input. Resume refuses when the status record claims a live agent
unless the recorded process is provably gone or --force is given.

Examples:
  # Resume by plurb id
  pluribus resume add-database-migration-ab12c

  # Resume by task name (when only one plurb exists for it)
  pluribus resume "database migration"

  # Resume even though the record claims an active agent
  pluribus resume add-database-migration-ab12c --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plurbID, err := resolveOnePlurb(cmd, c, args[0])
			if err != nil {
				return err
			}

			extra, err := parseExtraArgs(opts.Args)
			if err != nil {
				return err
			}

			out, err := c.ResumeUseCase().Execute(cmd.Context(), usecase.ResumeInput{
				ExtraArgs: extra,
				PlurbID:   plurbID,
				Agent:     opts.Agent,
				Force:     opts.Force,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Resumed plurb %s\n", out.PlurbID)
			_, _ = fmt.Fprintf(w, "  Agent:   %s (pid %d)\n", out.AgentName, out.PID)
			if out.SessionID != "" {
				_, _ = fmt.Fprintf(w, "  Session: %s\n", out.SessionID)
			} else {
				_, _ = fmt.Fprintln(w, "  Session: fresh (no prior session recorded)")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Agent, "agent", "a", "", "Agent to launch (default from config)")
	cmd.Flags().StringArrayVar(&opts.Args, "agent-arg", nil, "Agent argument as key=value (can specify multiple)")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Resume even if the record claims an active agent")

	return cmd
}
