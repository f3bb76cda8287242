package cli

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/pluribus-dev/pluribus/internal/app"
	"github.com/pluribus-dev/pluribus/internal/usecase"
	"github.com/spf13/cobra"
)

// newDetailsCommand creates the details command for the single-plurb view.
func newDetailsCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "details <plurb>",
		Short: "Show everything known about one plurb",
		Long: `Show the detailed view of one plurb: the full status record, git
state of its worktree, agent liveness and the paths to its captured
output and log files.

Examples:
  # Show details by plurb id
  pluribus details add-database-migration-ab12c

  # Show details by task name
  pluribus details "database migration"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plurbID, err := resolveOnePlurb(cmd, c, args[0])
			if err != nil {
				return err
			}

			out, err := c.PlurbDetailsUseCase().Execute(cmd.Context(), usecase.PlurbDetailsInput{PlurbID: plurbID})
			if err != nil {
				return err
			}

			printPlurbDetails(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

// printPlurbDetails prints the detailed plurb view.
func printPlurbDetails(w io.Writer, out *usecase.PlurbDetailsOutput) {
	p := out.Plurb

	_, _ = fmt.Fprintf(w, "# Plurb %s: %s\n\n", p.ID, p.TaskName)
	_, _ = fmt.Fprintf(w, "Branch:   %s\n", p.Branch)
	_, _ = fmt.Fprintf(w, "Worktree: %s\n", p.Path)
	_, _ = fmt.Fprintf(w, "Status:   %s\n", p.Status().Display())

	if p.Degraded || p.Record == nil {
		_, _ = fmt.Fprintln(w, "\nStatus record is missing or unreadable.")
	} else {
		rec := p.Record
		if rec.Phase != "" {
			_, _ = fmt.Fprintf(w, "Phase:    %s\n", rec.Phase)
		}
		_, _ = fmt.Fprintf(w, "Progress: %d%%\n", rec.ProgressPercent)
		if !rec.LastUpdate.IsZero() {
			_, _ = fmt.Fprintf(w, "Updated:  %s\n", rec.LastUpdate.Format(time.RFC3339))
		}
		if rec.Blocker != "" {
			_, _ = fmt.Fprintf(w, "Blocker:  %s\n", rec.Blocker)
		}
		if rec.Notes != "" {
			_, _ = fmt.Fprintf(w, "Notes:    %s\n", rec.Notes)
		}
		if rec.PRURL != "" {
			_, _ = fmt.Fprintf(w, "PR:       %s\n", rec.PRURL)
		}
		if rec.SessionID != "" {
			_, _ = fmt.Fprintf(w, "Session:  %s\n", rec.SessionID)
		}

		_, _ = fmt.Fprintln(w, "\nAgent:")
		name := rec.Agent.Name
		if name == "" {
			name = "-"
		}
		_, _ = fmt.Fprintf(w, "  Name:    %s\n", name)
		if !rec.Agent.StartedAt.IsZero() {
			_, _ = fmt.Fprintf(w, "  Started: %s\n", rec.Agent.StartedAt.Format(time.RFC3339))
		}
		if rec.AgentPID > 0 {
			alive := "not running"
			if out.AgentAlive {
				alive = "running"
			}
			_, _ = fmt.Fprintf(w, "  PID:     %d (%s)\n", rec.AgentPID, alive)
		}
		_, _ = fmt.Fprintf(w, "  Active flag: %t\n", rec.ClaudeInstanceActive)

		if extra := rec.Extra(); len(extra) > 0 {
			keys := make([]string, 0, len(extra))
			for k := range extra {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			_, _ = fmt.Fprintln(w, "\nAgent extensions:")
			for _, k := range keys {
				_, _ = fmt.Fprintf(w, "  %s: %s\n", k, string(extra[k]))
			}
		}
	}

	_, _ = fmt.Fprintln(w, "\nGit:")
	_, _ = fmt.Fprintf(w, "  Uncommitted changes: %t\n", out.Dirty)
	_, _ = fmt.Fprintf(w, "  Unpushed commits:    %t\n", out.Unpushed)

	if out.AgentOutputPath != "" || out.LogPath != "" {
		_, _ = fmt.Fprintln(w, "\nFiles:")
		if out.AgentOutputPath != "" {
			_, _ = fmt.Fprintf(w, "  Agent output: %s\n", out.AgentOutputPath)
		}
		if out.LogPath != "" {
			_, _ = fmt.Fprintf(w, "  Log:          %s\n", out.LogPath)
		}
	}
}
