package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Fix bug", "fix-bug"},
		{"punctuation stripped", "Add DB migration!", "add-db-migration"},
		{"whitespace collapsed", "Add   database \t migration", "add-database-migration"},
		{"hyphen runs collapsed", "re--try -- now", "re-try-now"},
		{"leading and trailing trimmed", "  hello world  ", "hello-world"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestNewSuffix(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		s := NewSuffix()
		assert.Len(t, s, SuffixLength)
		for _, c := range s {
			assert.True(t, (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'),
				"suffix char %q outside alphabet", c)
		}
		seen[s] = true
	}
	// 100 draws from 36^5 values colliding down to a handful would mean
	// a broken generator.
	assert.Greater(t, len(seen), 90)
}

func TestPlurbID(t *testing.T) {
	id := PlurbID("Add database migration", "ab12c")
	assert.Equal(t, "add-database-migration-ab12c", id)
}

func TestBranchName_RoundTrip(t *testing.T) {
	branch := BranchName("fix-bug-ab12c")
	assert.Equal(t, "pluribus/fix-bug-ab12c", branch)
	assert.True(t, strings.HasPrefix(branch, BranchNamespace))

	id, ok := BranchPlurbID(branch)
	assert.True(t, ok)
	assert.Equal(t, "fix-bug-ab12c", id)
}

func TestBranchPlurbID_OutsideNamespace(t *testing.T) {
	_, ok := BranchPlurbID("main")
	assert.False(t, ok)

	_, ok = BranchPlurbID("pluribus/")
	assert.False(t, ok)
}
