// SPDX-License-Identifier: AGPL-3.0-or-later
package projection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bartekus/concommit/internal/cochange"
)

func TestAtomicWrite(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "out", "file.txt")
	content := []byte("hello world")

	if err := AtomicWrite(target, content); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if string(got) != string(content) {
		t.Errorf("got %q, want %q", got, content)
	}

	entries, err := os.ReadDir(filepath.Dir(target))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("temp file left behind: %v", entries)
	}
}

func TestRanking(t *testing.T) {
	got := Ranking("a.go", 7, []cochange.Entry{{Path: "b.go", Count: 3}, {Path: "c.go", Count: 1}})
	want := "## Co-committed with `a.go`\n\n" +
		"Commits analyzed: 7\n\n" +
		"| # | File | Commits |\n" +
		"| --- | --- | --- |\n" +
		"| 1 | `b.go` | 3 |\n" +
		"| 2 | `c.go` | 1 |\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRanking_Empty(t *testing.T) {
	got := Ranking("a.go", 0, nil)
	want := "## Co-committed with `a.go`\n\nCommits analyzed: 0\n\n_No co-committed files found._\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderList(t *testing.T) {
	if got := RenderList([]string{"a", "b"}); got != "- a\n- b\n" {
		t.Errorf("got %q", got)
	}
}
