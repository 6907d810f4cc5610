package remote

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pageStub struct {
	pages   [][]Snapshot
	errAt   map[int]error
	cursors []int
	calls   int
}

func (p *pageStub) fetch(_ context.Context, start, size int) ([]Snapshot, error) {
	call := p.calls
	p.calls++
	if err, ok := p.errAt[call]; ok {
		return nil, err
	}
	p.cursors = append(p.cursors, start)
	page := len(p.cursors) - 1
	if page >= len(p.pages) {
		return nil, nil
	}
	return p.pages[page], nil
}

func items(ids ...string) []Snapshot {
	out := make([]Snapshot, 0, len(ids))
	for _, id := range ids {
		out = append(out, Snapshot{"id": id})
	}
	return out
}

func idOf(s Snapshot) string {
	return s.String("id", "")
}

func TestFeedYieldsAllItemsAndStopsOnEmptyPage(t *testing.T) {
	t.Parallel()

	stub := &pageStub{pages: [][]Snapshot{items("a", "b"), items("c", "d"), {}}}
	feed := NewFeed(2, stub.fetch, idOf)

	var got []string
	for {
		id, ok, err := feed.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, id)
	}

	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
	assert.Equal(t, []int{0, 2, 4}, stub.cursors)
	assert.True(t, feed.Exhausted())

	_, ok, err := feed.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 3, stub.calls, "exhausted feed must not fetch again")
}

func TestFeedAdvancesCursorByPageSizeOnShortPages(t *testing.T) {
	t.Parallel()

	stub := &pageStub{pages: [][]Snapshot{items("a"), items("b", "c"), nil}}
	feed := NewFeed(3, stub.fetch, idOf)

	got, err := feed.Collect(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, []int{0, 3, 6}, stub.cursors)
	assert.Equal(t, 9, feed.Cursor())
}

func TestFeedFetchesLazily(t *testing.T) {
	t.Parallel()

	stub := &pageStub{pages: [][]Snapshot{items("a", "b"), items("c", "d")}}
	feed := NewFeed(2, stub.fetch, idOf)
	assert.Equal(t, 0, stub.calls)

	first, err := feed.Collect(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, first)
	assert.Equal(t, 1, stub.calls)

	second, err := feed.Collect(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, second)
	assert.Equal(t, 1, stub.calls, "buffered items must drain before the next page")

	third, err := feed.Collect(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, third)
	assert.Equal(t, 2, stub.calls)
	assert.False(t, feed.Exhausted())
}

func TestFeedErrorLeavesCursorForRetry(t *testing.T) {
	t.Parallel()

	pageErr := errors.New("page unavailable")
	stub := &pageStub{
		pages: [][]Snapshot{items("a", "b"), items("c"), {}},
		errAt: map[int]error{1: pageErr},
	}
	feed := NewFeed(2, stub.fetch, idOf)
	ctx := context.Background()

	got, err := feed.Collect(ctx, 0)
	assert.ErrorIs(t, err, pageErr)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 2, feed.Cursor())
	assert.False(t, feed.Exhausted())

	rest, err := feed.Collect(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, rest)
	assert.Equal(t, []int{0, 2, 4}, stub.cursors)
}

func TestFeedAllRangesAndStopsOnError(t *testing.T) {
	t.Parallel()

	stub := &pageStub{pages: [][]Snapshot{items("a", "b"), {}}}
	feed := NewFeed(2, stub.fetch, idOf)

	var got []string
	for id, err := range feed.All(context.Background()) {
		require.NoError(t, err)
		got = append(got, id)
	}
	assert.Equal(t, []string{"a", "b"}, got)

	failing := NewFeed(2, func(context.Context, int, int) ([]Snapshot, error) {
		return nil, fmt.Errorf("boom")
	}, idOf)

	var errs []error
	for _, err := range failing.All(context.Background()) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], "boom")
}

func TestFeedAllSupportsEarlyBreak(t *testing.T) {
	t.Parallel()

	stub := &pageStub{pages: [][]Snapshot{items("a", "b", "c")}}
	feed := NewFeed(3, stub.fetch, idOf)

	for id, err := range feed.All(context.Background()) {
		require.NoError(t, err)
		assert.Equal(t, "a", id)
		break
	}

	next, ok, err := feed.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", next)
}

func TestNewFeedDefaultsPageSize(t *testing.T) {
	t.Parallel()

	feed := NewFeed(0, (&pageStub{}).fetch, idOf)
	assert.Equal(t, DefaultPageSize, feed.PageSize())
}
