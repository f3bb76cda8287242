package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/pluribus-dev/pluribus/internal/domain"
	"github.com/pluribus-dev/pluribus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTasks_Execute(t *testing.T) {
	catalog := &testutil.MockTaskCatalog{Tasks: []domain.Task{
		{Name: "Fix bug", Body: "details"},
		{Name: "Add metrics"},
	}}

	rec := domain.NewStatusRecord("fix-bug-ab12c", "Fix bug", time.Now())
	registry := &testutil.MockRegistry{Plurbs: []*domain.Plurb{
		{Record: rec, ID: "fix-bug-ab12c", TaskName: "Fix bug"},
		{Record: rec, ID: "fix-bug-cd34e", TaskName: "Fix bug"},
	}}

	out, err := NewListTasks(catalog, registry).Execute(context.Background(), ListTasksInput{})
	require.NoError(t, err)
	require.Len(t, out.Tasks, 2)

	assert.Equal(t, "Fix bug", out.Tasks[0].Task.Name)
	assert.Len(t, out.Tasks[0].Plurbs, 2)
	assert.Equal(t, "Add metrics", out.Tasks[1].Task.Name)
	assert.Empty(t, out.Tasks[1].Plurbs)
}

func TestListTasks_Execute_NoTasks(t *testing.T) {
	uc := NewListTasks(&testutil.MockTaskCatalog{}, &testutil.MockRegistry{})
	_, err := uc.Execute(context.Background(), ListTasksInput{})
	assert.ErrorIs(t, err, domain.ErrNoTasks)
}

func TestResolvePlurb_Execute(t *testing.T) {
	registry := &testutil.MockRegistry{Plurbs: []*domain.Plurb{
		{ID: "fix-bug-ab12c", TaskName: "Fix bug"},
		{ID: "fix-bug-cd34e", TaskName: "Fix bug"},
	}}
	uc := NewResolvePlurb(registry)

	out, err := uc.Execute(context.Background(), ResolvePlurbInput{Identifier: "fix-bug-ab12c"})
	require.NoError(t, err)
	require.Len(t, out.Matches, 1)

	out, err = uc.Execute(context.Background(), ResolvePlurbInput{Identifier: "Fix bug"})
	require.NoError(t, err)
	assert.Len(t, out.Matches, 2)

	_, err = uc.Execute(context.Background(), ResolvePlurbInput{Identifier: "nope"})
	assert.ErrorIs(t, err, domain.ErrPlurbNotFound)
}

func TestPlurbStatus_Execute(t *testing.T) {
	registry := &testutil.MockRegistry{Plurbs: []*domain.Plurb{
		{ID: "add-x-ab12c", TaskName: "Add X"},
		{ID: "fix-bug-cd34e", TaskName: "Fix bug"},
	}}
	uc := NewPlurbStatus(registry)

	out, err := uc.Execute(context.Background(), PlurbStatusInput{})
	require.NoError(t, err)
	assert.Len(t, out.Plurbs, 2)

	out, err = uc.Execute(context.Background(), PlurbStatusInput{Identifier: "Fix bug"})
	require.NoError(t, err)
	require.Len(t, out.Plurbs, 1)
	assert.Equal(t, "fix-bug-cd34e", out.Plurbs[0].ID)

	_, err = uc.Execute(context.Background(), PlurbStatusInput{Identifier: "ghost"})
	assert.ErrorIs(t, err, domain.ErrPlurbNotFound)
}

func TestPlurbStatus_Execute_EmptyWorkspace(t *testing.T) {
	out, err := NewPlurbStatus(&testutil.MockRegistry{}).Execute(context.Background(), PlurbStatusInput{})
	require.NoError(t, err)
	assert.Empty(t, out.Plurbs)
}
