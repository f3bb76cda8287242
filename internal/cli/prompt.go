package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pluribus-dev/pluribus/internal/app"
	"github.com/pluribus-dev/pluribus/internal/domain"
	"github.com/pluribus-dev/pluribus/internal/usecase"
	"github.com/spf13/cobra"
)

// resolveOnePlurb maps a user-supplied identifier to exactly one plurb
// id. An exact plurb id or a task with a single plurb resolves
// directly; a task with several plurbs is disambiguated interactively,
// or rejected under --no-input.
func resolveOnePlurb(cmd *cobra.Command, c *app.Container, identifier string) (string, error) {
	out, err := c.ResolvePlurbUseCase().Execute(cmd.Context(), usecase.ResolvePlurbInput{Identifier: identifier})
	if err != nil {
		return "", err
	}
	if len(out.Matches) == 1 {
		return out.Matches[0].ID, nil
	}

	if noInputSet(cmd) || !isInteractive() {
		ids := make([]string, len(out.Matches))
		for i, p := range out.Matches {
			ids[i] = p.ID
		}
		return "", fmt.Errorf("%q matches %s: %w", identifier, strings.Join(ids, ", "), domain.ErrAmbiguousIdentifier)
	}

	return selectPlurb(identifier, out.Matches)
}

// selectPlurb prompts the user to pick one of several matching plurbs.
func selectPlurb(identifier string, matches []*domain.Plurb) (string, error) {
	options := make([]huh.Option[string], len(matches))
	for i, p := range matches {
		label := fmt.Sprintf("%s  [%s]", p.ID, p.Status().Display())
		options[i] = huh.NewOption(label, p.ID)
	}

	var selected string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(fmt.Sprintf("%q matches multiple plurbs", identifier)).
			Options(options...).
			Value(&selected),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("select plurb: %w", err)
	}
	return selected, nil
}

// selectTask prompts the user to pick a task from the catalog.
func selectTask(cmd *cobra.Command, c *app.Container) (string, error) {
	out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{})
	if err != nil {
		return "", err
	}

	options := make([]huh.Option[string], len(out.Tasks))
	for i, entry := range out.Tasks {
		label := entry.Task.Name
		if n := len(entry.Plurbs); n > 0 {
			label = fmt.Sprintf("%s (%d active)", entry.Task.Name, n)
		}
		options[i] = huh.NewOption(label, entry.Task.Name)
	}

	var selected string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Pick a task").
			Options(options...).
			Value(&selected),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("select task: %w", err)
	}
	return selected, nil
}

// confirm asks a yes/no question.
func confirm(title string) (bool, error) {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Value(&ok),
	))
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	return ok, nil
}

// noInputSet reports whether --no-input was passed.
func noInputSet(cmd *cobra.Command) bool {
	v, err := cmd.Root().PersistentFlags().GetBool("no-input")
	return err == nil && v
}

// isInteractive reports whether stdin is a terminal.
func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
