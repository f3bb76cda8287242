package usecase

import (
	"context"
	"fmt"

	"github.com/pluribus-dev/pluribus/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	// Reserved for future filters.
}

// TaskWithPlurbs pairs a task with the plurbs currently working on it.
type TaskWithPlurbs struct {
	Task   domain.Task
	Plurbs []*domain.Plurb
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks []TaskWithPlurbs // Tasks in document order
}

// ListTasks is the use case for listing tasks from the task list.
type ListTasks struct {
	catalog  domain.TaskCatalog
	registry domain.PlurbRegistry
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(catalog domain.TaskCatalog, registry domain.PlurbRegistry) *ListTasks {
	return &ListTasks{catalog: catalog, registry: registry}
}

// Execute lists tasks in document order, each annotated with its plurbs.
// Plurbs are matched to tasks by the task name recorded at creation;
// plurbs whose task no longer appears in the document are not shown
// here (status covers them).
func (uc *ListTasks) Execute(_ context.Context, _ ListTasksInput) (*ListTasksOutput, error) {
	tasks, err := uc.catalog.Load()
	if err != nil {
		return nil, err
	}

	plurbs, err := uc.registry.List()
	if err != nil {
		return nil, fmt.Errorf("list plurbs: %w", err)
	}

	byTaskName := make(map[string][]*domain.Plurb)
	for _, p := range plurbs {
		byTaskName[p.TaskName] = append(byTaskName[p.TaskName], p)
	}

	out := &ListTasksOutput{Tasks: make([]TaskWithPlurbs, 0, len(tasks))}
	for _, task := range tasks {
		out.Tasks = append(out.Tasks, TaskWithPlurbs{
			Task:   task,
			Plurbs: byTaskName[task.Name],
		})
	}
	return out, nil
}
