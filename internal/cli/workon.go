package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pluribus-dev/pluribus/internal/app"
	"github.com/pluribus-dev/pluribus/internal/usecase"
	"github.com/spf13/cobra"
)

// newWorkonCommand creates the workon command for starting plurbs.
func newWorkonCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Agent string
		Args  []string
	}

	cmd := &cobra.Command{
		Use:   "workon [task]",
		Short: "Start a new plurb for a task",
		Long: `Start a new plurb for a task from todo.md.

This allocates a plurb id, creates a branch and worktree for it, seeds
the status record and launches the agent detached. The task argument
matches a task name exactly or by unique substring; without an
argument a task is picked interactively. Running workon twice on the
same task creates two independent plurbs.

Examples:
  # Pick a task interactively
  pluribus workon

  # Start work on a task (substring match)
  pluribus workon "database migration"

  # Start with a specific agent
  pluribus workon "database migration" --agent headless-claude

  # Pass agent-specific arguments
  pluribus workon "fix bug" --agent-arg model=opus --agent-arg effort=high`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var taskName string
			if len(args) > 0 {
				taskName = args[0]
			} else {
				if noInputSet(cmd) || !isInteractive() {
					return errors.New("task argument required (or run interactively to pick one)")
				}
				var err error
				taskName, err = selectTask(cmd, c)
				if err != nil {
					return err
				}
			}

			extra, err := parseExtraArgs(opts.Args)
			if err != nil {
				return err
			}

			out, err := c.WorkonUseCase().Execute(cmd.Context(), usecase.WorkonInput{
				ExtraArgs: extra,
				TaskName:  taskName,
				Agent:     opts.Agent,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Started plurb %s\n", out.PlurbID)
			_, _ = fmt.Fprintf(w, "  Task:     %s\n", out.TaskName)
			_, _ = fmt.Fprintf(w, "  Branch:   %s\n", out.Branch)
			_, _ = fmt.Fprintf(w, "  Worktree: %s\n", out.WorktreePath)
			_, _ = fmt.Fprintf(w, "  Agent:    %s (pid %d)\n", out.AgentName, out.PID)
			if out.SessionID != "" {
				_, _ = fmt.Fprintf(w, "  Session:  %s\n", out.SessionID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Agent, "agent", "a", "", "Agent to launch (default from config)")
	cmd.Flags().StringArrayVar(&opts.Args, "agent-arg", nil, "Agent argument as key=value (can specify multiple)")

	return cmd
}

// parseExtraArgs parses repeated key=value flags into a map.
func parseExtraArgs(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, nil
	}
	extra := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --agent-arg %q: expected key=value", arg)
		}
		extra[key] = value
	}
	return extra, nil
}
