package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlurbs() []*Plurb {
	return []*Plurb{
		{ID: "fix-bug-ab12c", TaskName: "Fix bug"},
		{ID: "fix-bug-cd34e", TaskName: "Fix bug"},
		{ID: "add-docs-ef56g", TaskName: "Add docs"},
	}
}

func TestResolvePlurbs_ExactID(t *testing.T) {
	got := ResolvePlurbs("fix-bug-ab12c", testPlurbs())
	require.Len(t, got, 1)
	assert.Equal(t, "fix-bug-ab12c", got[0].ID)
}

func TestResolvePlurbs_TaskNameAmbiguous(t *testing.T) {
	got := ResolvePlurbs("Fix bug", testPlurbs())
	require.Len(t, got, 2)
	assert.Equal(t, "fix-bug-ab12c", got[0].ID)
	assert.Equal(t, "fix-bug-cd34e", got[1].ID)
}

func TestResolvePlurbs_TaskNameUnique(t *testing.T) {
	got := ResolvePlurbs("Add docs", testPlurbs())
	require.Len(t, got, 1)
	assert.Equal(t, "add-docs-ef56g", got[0].ID)
}

func TestResolvePlurbs_CaseInsensitiveFallback(t *testing.T) {
	got := ResolvePlurbs("fix BUG", testPlurbs())
	assert.Len(t, got, 2)
}

func TestResolvePlurbs_CaseSensitivePreferred(t *testing.T) {
	plurbs := []*Plurb{
		{ID: "fix-bug-aaaaa", TaskName: "fix bug"},
		{ID: "fix-bug-bbbbb", TaskName: "Fix Bug"},
	}
	got := ResolvePlurbs("fix bug", plurbs)
	require.Len(t, got, 1)
	assert.Equal(t, "fix-bug-aaaaa", got[0].ID)
}

func TestResolvePlurbs_NotFound(t *testing.T) {
	assert.Empty(t, ResolvePlurbs("nope", testPlurbs()))
}

func TestResolvePlurbs_IDWinsOverName(t *testing.T) {
	// A plurb id that equals another plurb's task name must resolve to
	// the id match only.
	plurbs := []*Plurb{
		{ID: "deploy", TaskName: "Release"},
		{ID: "release-xy9zq", TaskName: "deploy"},
	}
	got := ResolvePlurbs("deploy", plurbs)
	require.Len(t, got, 1)
	assert.Equal(t, "Release", got[0].TaskName)
}
