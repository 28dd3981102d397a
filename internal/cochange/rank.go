// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Concommit - Concommit surfaces files that are frequently committed together with the file you are working on.
It reads recent git history, groups changed paths per commit and ranks co-committed files for quick navigation.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package cochange ranks files by how often they were committed together with a target file.
package cochange

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bartekus/concommit/internal/history"
)

// DefaultMaxResults is the result cap used when the caller has no preference.
const DefaultMaxResults = 10

// ErrNegativeMaxResults is returned when maxResults < 0.
var ErrNegativeMaxResults = errors.New("max results must not be negative")

// Tally maps a file path to the number of commits it shares with the target.
type Tally map[string]int

// Entry is a ranked file and its co-commit count.
type Entry struct {
	Path  string `json:"path" yaml:"path"`
	Count int    `json:"count" yaml:"count"`
}

// Count tallies every file of every commit that touched target, target included.
// A path repeated inside one commit is counted once for that commit.
func Count(h history.CommitHistory, target string) Tally {
	tally := Tally{}
	for _, group := range h {
		if !group.Contains(target) {
			continue
		}
		seen := make(map[string]struct{}, len(group))
		for _, path := range group {
			if _, dup := seen[path]; dup {
				continue
			}
			seen[path] = struct{}{}
			tally[path]++
		}
	}
	return tally
}

// Sorted returns the tally ordered by count descending, then path ascending.
func (t Tally) Sorted() []Entry {
	entries := make([]Entry, 0, len(t))
	for path, n := range t {
		entries = append(entries, Entry{Path: path, Count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Path < entries[j].Path
	})
	return entries
}

// RankEntries returns up to maxResults files co-committed with target, most frequent first.
// The target is removed by identity rather than by position, so a file tied with it stays.
func RankEntries(h history.CommitHistory, target string, maxResults int) ([]Entry, error) {
	if maxResults < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeMaxResults, maxResults)
	}

	sorted := Count(h, target).Sorted()
	ranked := make([]Entry, 0, min(maxResults, len(sorted)))
	for _, e := range sorted {
		if len(ranked) == maxResults {
			break
		}
		if e.Path == target {
			continue
		}
		ranked = append(ranked, e)
	}
	return ranked, nil
}

// Rank is RankEntries reduced to the file paths.
func Rank(h history.CommitHistory, target string, maxResults int) ([]string, error) {
	entries, err := RankEntries(h, target, maxResults)
	if err != nil {
		return nil, err
	}
	return Paths(entries), nil
}

// Paths extracts the paths of entries in order.
func Paths(entries []Entry) []string {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	return paths
}
