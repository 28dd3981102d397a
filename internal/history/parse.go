// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Concommit - Concommit surfaces files that are frequently committed together with the file you are working on.
It reads recent git history, groups changed paths per commit and ranks co-committed files for quick navigation.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package history turns `git log --numstat --oneline` output into per-commit file groups
// and provides the sources that produce that output.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedLine is matched by every ParseError via errors.Is.
var ErrMalformedLine = errors.New("malformed log line")

// headerPattern matches a `--oneline` commit header: an abbreviated (or full) hex id at the
// start of the line, optionally followed by the subject. Numstat lines never match because
// their first field is followed by a tab.
var headerPattern = regexp.MustCompile(`^[0-9a-f]{7,40}(?: .*)?$`)

// maxLineSize bounds a single log line.
const maxLineSize = 1024 * 1024

// CommitGroup is the list of file paths changed by one commit.
// It never holds blank entries; an empty group is a commit without file stats (e.g. a merge).
type CommitGroup []string

// Contains reports whether path was changed in the commit.
func (g CommitGroup) Contains(path string) bool {
	for _, p := range g {
		if p == path {
			return true
		}
	}
	return false
}

// CommitHistory is an ordered list of commit groups, most recent first.
type CommitHistory []CommitGroup

// ParseError reports a non-blank, non-header line without a path field, or a line too long to read.
type ParseError struct {
	Line int // 1-based line number in the raw log
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, ErrMalformedLine, e.Text)
}

// Is lets errors.Is(err, ErrMalformedLine) match any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedLine
}

// Parse splits raw log text into commit groups.
// A single malformed line fails the whole parse; no partial history is returned.
func Parse(raw string) (CommitHistory, error) {
	return ParseReader(strings.NewReader(raw))
}

// ParseReader is Parse over a reader.
func ParseReader(r io.Reader) (CommitHistory, error) {
	sc := bufio.NewScanner(r)
	// Numstat lines for deeply nested or renamed paths can be long.
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	history := CommitHistory{}
	var current CommitGroup
	inCommit := false
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := strings.TrimSuffix(sc.Text(), "\r")

		if headerPattern.MatchString(line) {
			if inCommit {
				history = append(history, current)
			}
			current = CommitGroup{}
			inCommit = true
			continue
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		path, ok := pathField(line)
		if !ok {
			return nil, &ParseError{Line: lineNo, Text: line}
		}
		// File stats without a preceding header belong to no commit.
		if !inCommit {
			continue
		}
		current = append(current, path)
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &ParseError{Line: lineNo + 1, Text: fmt.Sprintf("line longer than %d bytes", maxLineSize)}
		}
		return nil, fmt.Errorf("reading log: %w", err)
	}

	if inCommit {
		history = append(history, current)
	}
	return history, nil
}

// pathField returns the text after the last tab. The leading fields (added/deleted counts,
// or "-" for binary files) are not used. Git C-quotes paths holding '"', '\\' or control
// characters even with core.quotePath=false; those are unquoted.
func pathField(line string) (string, bool) {
	i := strings.LastIndexByte(line, '\t')
	if i < 0 {
		return "", false
	}
	path := line[i+1:]
	if strings.TrimSpace(path) == "" {
		return "", false
	}
	if len(path) >= 2 && path[0] == '"' && path[len(path)-1] == '"' {
		unquoted, err := strconv.Unquote(path)
		if err != nil || unquoted == "" {
			return "", false
		}
		path = unquoted
	}
	return path, true
}
