// SPDX-License-Identifier: AGPL-3.0-or-later
package history

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHead struct {
	id  string
	err error
}

func (f *fakeHead) Head(context.Context) (string, error) { return f.id, f.err }

func TestCache_ReusesHistoryForSameHead(t *testing.T) {
	src := &fakeSource{raw: "abcdef0 msg\n1\t1\ta.go\n"}
	head := &fakeHead{id: "h1"}
	c := NewCache(src, head)
	ctx := context.Background()

	first, err := c.Load(ctx)
	require.NoError(t, err)
	second, err := c.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.calls)
}

func TestCache_ReloadsWhenHeadMoves(t *testing.T) {
	src := &fakeSource{raw: "abcdef0 msg\n1\t1\ta.go\n"}
	head := &fakeHead{id: "h1"}
	c := NewCache(src, head)
	ctx := context.Background()

	_, err := c.Load(ctx)
	require.NoError(t, err)

	head.id = "h2"
	src.raw = "abcdef1 msg\n1\t1\tb.go\n"
	h, err := c.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, CommitHistory{{"b.go"}}, h)
	assert.Equal(t, 2, src.calls)
}

func TestCache_Invalidate(t *testing.T) {
	src := &fakeSource{raw: "abcdef0 msg\n"}
	c := NewCache(src, &fakeHead{id: "h1"})
	ctx := context.Background()

	_, err := c.Load(ctx)
	require.NoError(t, err)
	c.Invalidate()
	_, err = c.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, src.calls)
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	src := &fakeSource{raw: "abcdef0 msg\nbroken\n"}
	c := NewCache(src, &fakeHead{id: "h1"})
	ctx := context.Background()

	_, err := c.Load(ctx)
	require.ErrorIs(t, err, ErrMalformedLine)

	src.raw = "abcdef0 msg\n1\t1\ta.go\n"
	h, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, CommitHistory{{"a.go"}}, h)
}

func TestCache_HeadError(t *testing.T) {
	boom := errors.New("no head")
	src := &fakeSource{}
	_, err := NewCache(src, &fakeHead{err: boom}).Load(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, src.calls)
}

func TestGitHead(t *testing.T) {
	requireGit(t)
	dir := newRepo(t)
	commitFiles(t, dir, "first", "a.go")

	head := GitHead{Dir: dir}
	first, err := head.Head(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 40)

	commitFiles(t, dir, "second", "a.go")
	second, err := head.Head(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestCache_WithGitRepository(t *testing.T) {
	requireGit(t)
	dir := newRepo(t)
	commitFiles(t, dir, "first", "a.go", "b.go")

	c := NewCache(NewGitSource(dir, 100), GitHead{Dir: dir})
	h, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, h, 1)

	commitFiles(t, dir, "second", "a.go")
	h, err = c.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, h, 2)
}
