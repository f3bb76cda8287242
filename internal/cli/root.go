// Package cli provides the command-line interface for pluribus.
package cli

import (
	"github.com/pluribus-dev/pluribus/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupSetup   = "setup"
	groupPlurb   = "plurb"
	groupInspect = "inspect"
)

// NewRootCommand creates the root command for pluribus.
// It receives the container for dependency injection and version for
// display. The container may be nil when the workspace is not yet
// initialized; only init, help and version run in that state.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "pluribus",
		Short: "Parallel agent session coordinator",
		Long: `pluribus coordinates parallel automated work sessions on a single
repository. Each session (a "plurb") gets its own branch and git
worktree, and reports progress through a status file inside the
worktree. pluribus never supervises the agent processes themselves:
everything it knows about a plurb, it reads back from the filesystem.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().Bool("no-input", false, "Never prompt; fail instead of asking")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Workspace Commands:"},
		&cobra.Group{ID: groupPlurb, Title: "Plurb Management:"},
		&cobra.Group{ID: groupInspect, Title: "Inspection:"},
	)

	// Workspace commands
	initCmd := newInitCommand()
	initCmd.GroupID = groupSetup

	cleanupCmd := newCleanupCommand(c)
	cleanupCmd.GroupID = groupSetup

	// Plurb management commands
	tasksCmd := newTasksCommand(c)
	tasksCmd.GroupID = groupPlurb

	workonCmd := newWorkonCommand(c)
	workonCmd.GroupID = groupPlurb

	resumeCmd := newResumeCommand(c)
	resumeCmd.GroupID = groupPlurb

	deleteCmd := newDeleteCommand(c)
	deleteCmd.GroupID = groupPlurb

	// Inspection commands
	statusCmd := newStatusCommand(c)
	statusCmd.GroupID = groupInspect

	detailsCmd := newDetailsCommand(c)
	detailsCmd.GroupID = groupInspect

	watchCmd := newWatchCommand(c)
	watchCmd.GroupID = groupInspect

	root.AddCommand(
		initCmd,
		cleanupCmd,
		tasksCmd,
		workonCmd,
		resumeCmd,
		deleteCmd,
		statusCmd,
		detailsCmd,
		watchCmd,
	)

	return root
}
