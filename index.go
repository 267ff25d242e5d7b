package cogsearch

import (
	"context"
	"fmt"
)

// TypedIndex is a generic, schema-first index handle backed by a Client.
// Schema is inferred from T's struct tags at construction time.
type TypedIndex[T any] struct {
	name   string
	client *Client
	meta   *schemaMeta
}

// NewIndex creates a typed index handle for the given index name.
// T must be a struct with cogsearch tags. Schema is parsed once and cached.
func NewIndex[T any](client *Client, name string) (*TypedIndex[T], error) {
	meta, err := parseSchema[T]()
	if err != nil {
		return nil, fmt.Errorf("new index %q: %w", name, err)
	}
	return &TypedIndex[T]{name: name, client: client, meta: meta}, nil
}

// Name returns the index name.
func (idx *TypedIndex[T]) Name() string { return idx.name }

// Definition returns the index schema inferred from T.
func (idx *TypedIndex[T]) Definition() Index {
	return idx.meta.index(idx.name)
}

// Ensure creates the index if it does not exist (idempotent).
func (idx *TypedIndex[T]) Ensure(ctx context.Context) error {
	_, err := idx.client.Indexes().Ensure(ctx, idx.meta.index(idx.name))
	if err != nil {
		return fmt.Errorf("ensure %q: %w", idx.name, err)
	}
	return nil
}

// Upload submits items with mergeOrUpload semantics and returns
// per-item outcomes.
func (idx *TypedIndex[T]) Upload(ctx context.Context, items []T) ([]UploadResult, error) {
	docs := make([]Document, len(items))
	for i, item := range items {
		docs[i] = idx.meta.toDocument(item)
	}
	return idx.client.Documents(idx.name).Upload(ctx, docs)
}

// Delete removes the index and all its documents.
func (idx *TypedIndex[T]) Delete(ctx context.Context) error {
	return idx.client.Indexes().Delete(ctx, idx.name)
}

// Search returns a fluent search builder for this index.
func (idx *TypedIndex[T]) Search() *SearchBuilder[T] {
	return &SearchBuilder[T]{idx: idx}
}
