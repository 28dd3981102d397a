// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Concommit - Concommit surfaces files that are frequently committed together with the file you are working on.
It reads recent git history, groups changed paths per commit and ranks co-committed files for quick navigation.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package history

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultMaxCount is the number of commits read when no bound is configured.
const DefaultMaxCount = 100

// ErrInvalidMaxCount is returned for a non-positive commit window.
var ErrInvalidMaxCount = errors.New("max count must be positive")

// Source provides raw `git log --numstat --oneline` text for analysis.
type Source interface {
	Log(ctx context.Context) (string, error)
}

// Compile-time interface conformance check.
var _ Source = (*GitSource)(nil)

// GitSource shells out to git in Dir.
type GitSource struct {
	Dir      string
	MaxCount int
	// GitBin overrides the git executable; empty means "git" from PATH.
	GitBin string
}

// NewGitSource creates a GitSource reading the last maxCount commits of the repository at dir.
func NewGitSource(dir string, maxCount int) *GitSource {
	return &GitSource{Dir: dir, MaxCount: maxCount}
}

// Args returns the git arguments used to read history.
func (s *GitSource) Args() []string {
	return []string{
		// Print non-ASCII paths verbatim instead of as quoted octal escapes.
		"-c", "core.quotePath=false",
		"log",
		"--numstat",
		"--oneline",
		"--no-color",
		// Report renames as delete + add so every path is a real file name
		// rather than the "{old => new}" form.
		"--no-renames",
		"--max-count=" + strconv.Itoa(s.MaxCount),
	}
}

// Log runs git log and returns its stdout.
func (s *GitSource) Log(ctx context.Context) (string, error) {
	if s.MaxCount <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidMaxCount, s.MaxCount)
	}

	bin := s.GitBin
	if bin == "" {
		bin = "git"
	}

	cmd := exec.CommandContext(ctx, bin, s.Args()...) //nolint:gosec // G204: fixed arguments
	cmd.Dir = s.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("git log failed: %w: %s", err, msg)
		}
		return "", fmt.Errorf("git log failed: %w", err)
	}
	return string(out), nil
}

// Load reads raw history from src and parses it.
func Load(ctx context.Context, src Source) (CommitHistory, error) {
	raw, err := src.Log(ctx)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}
