package cogsearch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// IndexesService manages indexes on the search service.
type IndexesService struct {
	c   *Client
	obs *observer
}

type indexListResponse struct {
	Value []Index `json:"value"`
}

// List returns all indexes defined on the service.
func (s *IndexesService) List(ctx context.Context) (_ []Index, err error) {
	start := time.Now()
	defer func() { s.obs.observe("indexes.list", start, err) }()

	var resp indexListResponse
	if err = s.c.do(ctx, http.MethodGet, "/indexes", nil, &resp); err != nil {
		return nil, fmt.Errorf("list indexes: %w", err)
	}
	return resp.Value, nil
}

// Names returns the names of all indexes defined on the service.
func (s *IndexesService) Names(ctx context.Context) ([]string, error) {
	indexes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(indexes))
	for i, idx := range indexes {
		names[i] = idx.Name
	}
	return names, nil
}

// Create creates a new index. Fails with ErrAlreadyExists if an index
// of that name is present.
func (s *IndexesService) Create(ctx context.Context, index Index) (_ Index, err error) {
	start := time.Now()
	defer func() { s.obs.observe("indexes.create", start, err) }()

	var created Index
	if err = s.c.do(ctx, http.MethodPost, "/indexes", index, &created); err != nil {
		return Index{}, fmt.Errorf("create index %q: %w", index.Name, err)
	}
	return created, nil
}

// Ensure creates the index if it does not exist. Returns true if created,
// false if an index of that name was already present.
func (s *IndexesService) Ensure(ctx context.Context, index Index) (bool, error) {
	_, err := s.Create(ctx, index)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrAlreadyExists) {
		return false, nil
	}
	return false, fmt.Errorf("ensure index %q: %w", index.Name, err)
}

// Get retrieves an index definition by name.
func (s *IndexesService) Get(ctx context.Context, name string) (_ Index, err error) {
	start := time.Now()
	defer func() { s.obs.observe("indexes.get", start, err) }()

	var index Index
	if err = s.c.do(ctx, http.MethodGet, "/indexes/"+url.PathEscape(name), nil, &index); err != nil {
		return Index{}, fmt.Errorf("get index %q: %w", name, err)
	}
	return index, nil
}

// Delete removes an index and all documents in it.
// Fails with ErrNotFound if the index is absent.
func (s *IndexesService) Delete(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("indexes.delete", start, err) }()

	if err = s.c.do(ctx, http.MethodDelete, "/indexes/"+url.PathEscape(name), nil, nil); err != nil {
		return fmt.Errorf("delete index %q: %w", name, err)
	}
	return nil
}
