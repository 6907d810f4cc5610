package remote

import (
	"context"
	"iter"
)

const DefaultPageSize = 25

// PageFunc fetches the raw items of one page starting at offset start.
type PageFunc func(ctx context.Context, start, size int) ([]Snapshot, error)

// Feed flattens a paged listing into a forward-only sequence. The cursor is
// an offset and advances by the page size after every successful page fetch,
// whatever the number of items returned. The feed is exhausted once a page
// comes back empty. A Feed is not safe for concurrent use and cannot be
// rewound; start a new Feed for a fresh traversal.
type Feed[T any] struct {
	fetch PageFunc
	build func(Snapshot) T
	size  int

	cursor    int
	buffer    []Snapshot
	exhausted bool
}

func NewFeed[T any](size int, fetch PageFunc, build func(Snapshot) T) *Feed[T] {
	if size <= 0 {
		size = DefaultPageSize
	}

	return &Feed[T]{fetch: fetch, build: build, size: size}
}

func (f *Feed[T]) Cursor() int {
	return f.cursor
}

func (f *Feed[T]) PageSize() int {
	return f.size
}

// Exhausted reports whether the listing has ended and the buffer is drained.
func (f *Feed[T]) Exhausted() bool {
	return f.exhausted && len(f.buffer) == 0
}

// Next returns the next item. ok is false once the feed is exhausted. A page
// fetch error is returned as is and leaves the cursor where it was, so
// calling Next again retries the same page.
func (f *Feed[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	if len(f.buffer) == 0 {
		if f.exhausted {
			return zero, false, nil
		}

		items, err := f.fetch(ctx, f.cursor, f.size)
		if err != nil {
			return zero, false, err
		}
		f.cursor += f.size

		if len(items) == 0 {
			f.exhausted = true
			return zero, false, nil
		}
		f.buffer = items
	}

	item := f.buffer[0]
	f.buffer[0] = nil
	f.buffer = f.buffer[1:]

	return f.build(item), true, nil
}

// All ranges over the remaining items. Iteration stops after yielding an
// error.
func (f *Feed[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			item, ok, err := f.Next(ctx)
			if err != nil {
				yield(item, err)
				return
			}
			if !ok {
				return
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}

// Collect drains up to limit items; limit <= 0 drains the whole feed.
func (f *Feed[T]) Collect(ctx context.Context, limit int) ([]T, error) {
	var items []T
	for limit <= 0 || len(items) < limit {
		item, ok, err := f.Next(ctx)
		if err != nil {
			return items, err
		}
		if !ok {
			break
		}
		items = append(items, item)
	}

	return items, nil
}
