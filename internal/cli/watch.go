package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pluribus-dev/pluribus/internal/app"
	"github.com/pluribus-dev/pluribus/internal/tui"
	"github.com/pluribus-dev/pluribus/internal/usecase"
	"github.com/spf13/cobra"
)

// newWatchCommand creates the watch command for the live status view.
func newWatchCommand(c *app.Container) *cobra.Command {
	var intervalSeconds int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch plurbs in a live-updating view",
		Long: `Watch all plurbs in a live-updating table.

Updates arrive from filesystem notifications on the worktrees
directory, with a periodic full re-scan as a safety net for missed
events. Press q to quit.

Examples:
  # Watch with the configured re-scan interval
  pluribus watch

  # Re-scan every 2 seconds
  pluribus watch --interval 2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			uc := c.WatchStatusUseCase()
			if cmd.Flags().Changed("interval") {
				if intervalSeconds < 1 {
					return fmt.Errorf("--interval must be at least 1 second, got %d", intervalSeconds)
				}
				uc = c.WatchStatusUseCaseWithInterval(time.Duration(intervalSeconds) * time.Second)
			}

			out, err := uc.Execute(ctx, usecase.WatchStatusInput{})
			if err != nil {
				return err
			}

			p := tea.NewProgram(tui.NewWatch(), tea.WithAltScreen())
			go func() {
				for snap := range out.Snapshots {
					p.Send(tui.SnapshotMsg(snap))
				}
			}()

			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().IntVar(&intervalSeconds, "interval", 0, "Safety re-scan interval in seconds (default from config)")

	return cmd
}
