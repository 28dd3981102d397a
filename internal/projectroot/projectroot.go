// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Concommit - Concommit surfaces files that are frequently committed together with the file you are working on.
It reads recent git history, groups changed paths per commit and ranks co-committed files for quick navigation.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package projectroot locates the repository root and converts between working-tree
// paths and the root-relative, slash-separated paths git reports.
package projectroot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned when no enclosing git repository exists.
	ErrNotFound = errors.New("not inside a git repository")
	// ErrOutsideRoot is returned for a file that does not live under the root.
	ErrOutsideRoot = errors.New("path is outside the project root")
)

// Find walks up from start to the first directory containing a .git entry
// (a directory for normal clones, a file for worktrees and submodules).
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}
	// Start from the containing directory when given a file.
	if fi, err := os.Stat(dir); err == nil && !fi.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		if _, err := os.Lstat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: %s", ErrNotFound, start)
		}
		dir = parent
	}
}

// Rel returns file relative to root with forward slashes, matching git's path output.
// Relative file arguments are resolved against the current directory.
func Rel(root, file string) (string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", file, err)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", root, err)
	}

	// Compare through directory symlinks (e.g. /tmp -> /private/tmp).
	if r, err := filepath.EvalSymlinks(absRoot); err == nil {
		absRoot = r
	}
	// The file itself is not followed: git records a tracked symlink under its own path.
	if d, err := evalExisting(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(d, filepath.Base(abs))
	}

	rel, err := filepath.Rel(absRoot, abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, file)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, file)
	}
	return filepath.ToSlash(rel), nil
}

// Abs resolves a root-relative git path to an absolute path.
func Abs(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}

// evalExisting resolves symlinks in the longest existing prefix of path, so files that were
// deleted from the working tree (but still appear in history) resolve consistently.
func evalExisting(path string) (string, error) {
	if r, err := filepath.EvalSymlinks(path); err == nil {
		return r, nil
	}
	parent := filepath.Dir(path)
	if parent == path {
		return path, nil
	}
	r, err := evalExisting(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(r, filepath.Base(path)), nil
}
