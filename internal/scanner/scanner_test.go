package scanner

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/concommit/internal/cochange"
)

func TestFilterEntries(t *testing.T) {
	entries := []cochange.Entry{
		{Path: "pkg/vendor/b.go", Count: 5},
		{Path: "main.go", Count: 4},
		{Path: "node_modules/bar.js", Count: 3},
		{Path: "vendor_stuff/a.go", Count: 2},
		{Path: "docs/vendor", Count: 1},
	}

	tests := []struct {
		name     string
		opts     FilterOptions
		expected []string
	}{
		{
			name:     "no options keeps everything",
			opts:     FilterOptions{},
			expected: []string{"pkg/vendor/b.go", "main.go", "node_modules/bar.js", "vendor_stuff/a.go", "docs/vendor"},
		},
		{
			name:     "segment matching only, order preserved",
			opts:     FilterOptions{ExcludeDirs: []string{"vendor", "node_modules"}},
			expected: []string{"main.go", "vendor_stuff/a.go", "docs/vendor"},
		},
		{
			name:     "extension filter",
			opts:     FilterOptions{IncludeExtensions: []string{".go"}},
			expected: []string{"pkg/vendor/b.go", "main.go", "vendor_stuff/a.go"},
		},
		{
			name: "tracked set",
			opts: FilterOptions{Tracked: map[string]struct{}{
				"main.go":     {},
				"docs/vendor": {},
			}},
			expected: []string{"main.go", "docs/vendor"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterEntries(entries, tt.opts)
			assert.Equal(t, tt.expected, cochange.Paths(got))
		})
	}
}

func TestFilterOptions_Empty(t *testing.T) {
	assert.True(t, FilterOptions{}.Empty())
	assert.False(t, FilterOptions{ExcludeDirs: DefaultExcludeDirs()}.Empty())
	assert.False(t, FilterOptions{Tracked: map[string]struct{}{}}.Empty())
}

func TestScanner(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	// Create a temp directory for the git repo
	dir := t.TempDir()
	ctx := context.Background()

	// Initialize git repo
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")
	runGit(t, dir, "config", "commit.gpgsign", "false")

	// Create some files
	createFile(t, dir, "main.go")
	createFile(t, dir, ".gitignore", "ignored.txt")
	createFile(t, dir, "ignored.txt")
	createFile(t, dir, "pkg/util.go")
	createFile(t, dir, "old.go")

	// Commit them
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "Initial commit")
	runGit(t, dir, "rm", "-q", "old.go")
	runGit(t, dir, "commit", "-m", "Remove old.go")

	s := New(dir)

	tracked, err := s.TrackedFiles(ctx)
	require.NoError(t, err)
	assert.Contains(t, tracked, "main.go")
	assert.Contains(t, tracked, "pkg/util.go")
	assert.NotContains(t, tracked, "ignored.txt") // respected .gitignore
	assert.NotContains(t, tracked, "old.go")

	set, err := s.TrackedSet(ctx)
	require.NoError(t, err)
	got := FilterEntries([]cochange.Entry{{Path: "old.go"}, {Path: "pkg/util.go"}}, FilterOptions{Tracked: set})
	assert.Equal(t, []string{"pkg/util.go"}, cochange.Paths(got))
}

func runGit(t *testing.T, dir string, args ...string) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, out)
	}
}

func createFile(t *testing.T, dir, path string, content ...string) {
	fullPath := filepath.Join(dir, path)
	err := os.MkdirAll(filepath.Dir(fullPath), 0755)
	require.NoError(t, err)

	data := ""
	if len(content) > 0 {
		data = content[0]
	}
	err = os.WriteFile(fullPath, []byte(data), 0644)
	require.NoError(t, err)
}
