package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pluribus-dev/pluribus/internal/app"
	"github.com/pluribus-dev/pluribus/internal/usecase"
	"github.com/spf13/cobra"
)

// newTasksCommand creates the tasks command for listing tasks.
func newTasksCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List tasks from todo.md",
		Long: `List the tasks declared in the workspace task list.

Each "## " heading in todo.md is one task. Tasks are shown in document
order together with the plurbs currently working on them.

Examples:
  # List tasks
  pluribus tasks`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{})
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), out.Tasks)
			return nil
		},
	}
}

// printTasks prints tasks in TSV format.
func printTasks(w io.Writer, tasks []usecase.TaskWithPlurbs) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "TASK\tPLURBS")

	for _, entry := range tasks {
		plurbsStr := "-"
		if len(entry.Plurbs) > 0 {
			parts := make([]string, len(entry.Plurbs))
			for i, p := range entry.Plurbs {
				parts[i] = fmt.Sprintf("%s (%s)", p.ID, p.Status().Display())
			}
			plurbsStr = strings.Join(parts, ", ")
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", entry.Task.Name, plurbsStr)
	}
}
