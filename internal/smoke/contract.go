package smoke

import (
	"context"

	"github.com/kailas-cloud/cogsearch"
)

// SearchAPI is the slice of the search service the runner needs.
type SearchAPI interface {
	ListIndexes(ctx context.Context) ([]string, error)
	EnsureIndex(ctx context.Context, index cogsearch.Index) (created bool, err error)
	DeleteIndex(ctx context.Context, name string) error
	UploadDocuments(ctx context.Context, index string, docs []cogsearch.Document) ([]cogsearch.UploadResult, error)
	Search(ctx context.Context, index, query string, top int) ([]cogsearch.SearchResult, error)
}

// ClientAPI adapts *cogsearch.Client to the SearchAPI contract.
type ClientAPI struct {
	Client *cogsearch.Client
}

func (a ClientAPI) ListIndexes(ctx context.Context) ([]string, error) {
	return a.Client.Indexes().Names(ctx)
}

func (a ClientAPI) EnsureIndex(ctx context.Context, index cogsearch.Index) (bool, error) {
	return a.Client.Indexes().Ensure(ctx, index)
}

func (a ClientAPI) DeleteIndex(ctx context.Context, name string) error {
	return a.Client.Indexes().Delete(ctx, name)
}

func (a ClientAPI) UploadDocuments(ctx context.Context, index string, docs []cogsearch.Document) ([]cogsearch.UploadResult, error) {
	return a.Client.Documents(index).Upload(ctx, docs)
}

func (a ClientAPI) Search(ctx context.Context, index, query string, top int) ([]cogsearch.SearchResult, error) {
	return a.Client.Search(index).Query(ctx, query, &cogsearch.SearchOptions{Top: top})
}
