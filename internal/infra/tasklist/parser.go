// Package tasklist parses the todo.md task document.
package tasklist

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pluribus-dev/pluribus/internal/domain"
)

// Parser reads tasks from a heading-delimited markdown document.
// Each "## " heading opens a task; the lines until the next heading are
// its body. The catalog is re-derived from the file on every call.
type Parser struct {
	path string
}

// NewParser creates a parser for the given todo.md path.
func NewParser(path string) *Parser {
	return &Parser{path: path}
}

// Ensure Parser implements domain.TaskCatalog.
var _ domain.TaskCatalog = (*Parser)(nil)

// Load returns all tasks in document order.
// Duplicate task names are reported verbatim; uniqueness is not
// enforced here.
func (p *Parser) Load() ([]domain.Task, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("open task list %s: %w", p.path, err)
	}
	defer f.Close()

	var tasks []domain.Task
	var current *domain.Task
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.TrimSpace(strings.Join(body, "\n"))
		tasks = append(tasks, *current)
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "## "):
			flush()
			current = &domain.Task{Name: strings.TrimSpace(line[3:])}
			body = nil
		case strings.HasPrefix(line, "#"):
			// Other heading levels are structure, not task content.
		case current != nil && strings.TrimSpace(line) != "":
			body = append(body, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read task list: %w", err)
	}
	flush()

	if len(tasks) == 0 {
		return nil, fmt.Errorf("%w in %s", domain.ErrNoTasks, p.path)
	}
	return tasks, nil
}

// GetByName finds a task by case-insensitive partial name match.
// The first task whose name contains the given string wins, matching
// document order.
func (p *Parser) GetByName(name string) (*domain.Task, error) {
	tasks, err := p.Load()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(name)
	for i := range tasks {
		if strings.Contains(strings.ToLower(tasks[i].Name), needle) {
			return &tasks[i], nil
		}
	}
	return nil, fmt.Errorf("task %q: %w", name, domain.ErrTaskNotFound)
}
