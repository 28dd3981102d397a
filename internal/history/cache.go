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
	"context"
	"fmt"
	"sync"

	"github.com/go-git/go-git/v5"
)

// HeadResolver returns an identifier for the current state of the repository.
type HeadResolver interface {
	Head(ctx context.Context) (string, error)
}

// GitHead resolves HEAD of the repository containing Dir.
type GitHead struct {
	Dir string
}

// Head returns the commit hash HEAD points at.
func (g GitHead) Head(_ context.Context) (string, error) {
	repo, err := git.PlainOpenWithOptions(g.Dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("opening repository %s: %w", g.Dir, err)
	}
	ref, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

// Cache keeps the last parsed history keyed by HEAD. A new HEAD drops the cached entry.
// Load holds the lock while reading, so at most one git invocation runs at a time.
type Cache struct {
	src  Source
	head HeadResolver

	mu      sync.Mutex
	key     string
	history CommitHistory
	loaded  bool
}

// NewCache wraps src with a HEAD-keyed cache.
func NewCache(src Source, head HeadResolver) *Cache {
	return &Cache{src: src, head: head}
}

// Load returns the history for the current HEAD, reading and parsing it only when HEAD moved.
// The returned history is shared and must not be modified.
func (c *Cache) Load(ctx context.Context) (CommitHistory, error) {
	key, err := c.head.Head(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && c.key == key {
		return c.history, nil
	}

	h, err := Load(ctx, c.src)
	if err != nil {
		return nil, err
	}
	c.key = key
	c.history = h
	c.loaded = true
	return h, nil
}

// Invalidate drops the cached history.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = ""
	c.history = nil
	c.loaded = false
}
