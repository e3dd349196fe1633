// Package paging provides the cursor pagination iterator used by the
// SDK's listing endpoints.
package paging

import (
	"context"
	"errors"
)

// Stop can be returned from an Each callback to end iteration early
// without reporting an error.
var Stop = errors.New("stop iteration")

// ErrCursorLoop indicates the platform returned a cursor that was
// already visited; iterating further would never terminate.
var ErrCursorLoop = errors.New("pagination cursor loop")

// FetchPage retrieves one page of results for a cursor. The empty
// cursor requests the first page; an empty next cursor ends iteration.
type FetchPage[T any] func(ctx context.Context, cursor string) (items []T, next string, err error)

// Pager iterates a cursor-paginated listing endpoint.
type Pager[T any] struct {
	Fetch FetchPage[T]
}

// Each invokes fn for every item across all pages, fetching pages
// lazily. Returns the first error from the fetch or the callback;
// returning Stop from the callback ends iteration cleanly.
func (p Pager[T]) Each(ctx context.Context, fn func(item T) error) error {
	cursor := ""
	visited := make(map[string]bool)
	for {
		items, next, err := p.Fetch(ctx, cursor)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := fn(item); err != nil {
				if errors.Is(err, Stop) {
					return nil
				}
				return err
			}
		}
		if next == "" {
			return nil
		}
		if visited[next] {
			return ErrCursorLoop
		}
		visited[next] = true
		cursor = next
	}
}

// All collects every item across all pages into one slice.
func (p Pager[T]) All(ctx context.Context) ([]T, error) {
	var out []T
	err := p.Each(ctx, func(item T) error {
		out = append(out, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
