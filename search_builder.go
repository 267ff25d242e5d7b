package cogsearch

import (
	"context"
	"fmt"
)

// Hit is a typed search result.
type Hit[T any] struct {
	Item  T
	Score float64
}

// SearchBuilder is a fluent builder for typed search queries.
type SearchBuilder[T any] struct {
	idx *TypedIndex[T]

	query  string
	top    int
	sel    []string
	filter string
}

// Query sets the full-text query string.
func (b *SearchBuilder[T]) Query(q string) *SearchBuilder[T] {
	b.query = q
	return b
}

// Top sets the maximum number of results.
func (b *SearchBuilder[T]) Top(n int) *SearchBuilder[T] {
	b.top = n
	return b
}

// Select restricts the fields returned per hit.
func (b *SearchBuilder[T]) Select(fields ...string) *SearchBuilder[T] {
	b.sel = fields
	return b
}

// Filter sets an OData-style filter expression.
func (b *SearchBuilder[T]) Filter(expr string) *SearchBuilder[T] {
	b.filter = expr
	return b
}

// Do executes the search and returns typed results.
func (b *SearchBuilder[T]) Do(ctx context.Context) ([]Hit[T], error) {
	opts := &SearchOptions{
		Top:    b.top,
		Select: b.sel,
		Filter: b.filter,
	}
	results, err := b.idx.client.Search(b.idx.name).Query(ctx, b.query, opts)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", b.idx.name, err)
	}

	hits := make([]Hit[T], len(results))
	for i, r := range results {
		item, ok := b.idx.meta.fromDocument(r.Document).(T)
		if !ok {
			continue
		}
		hits[i] = Hit[T]{Item: item, Score: r.Score}
	}
	return hits, nil
}
