package pdfingest

import (
	"context"

	"github.com/kailas-cloud/cogsearch"
	"github.com/kailas-cloud/cogsearch/internal/pdf"
)

// SearchAPI is the slice of the search service the tool needs.
type SearchAPI interface {
	EnsureIndex(ctx context.Context, index cogsearch.Index) (created bool, err error)
	UploadDocuments(ctx context.Context, index string, docs []cogsearch.Document) ([]cogsearch.UploadResult, error)
	Search(ctx context.Context, index, query string, top int, fields []string) ([]cogsearch.SearchResult, error)
}

// Extractor turns a PDF file into per-page text.
type Extractor func(path string) ([]pdf.Page, error)

// ClientAPI adapts *cogsearch.Client to the SearchAPI contract.
type ClientAPI struct {
	Client *cogsearch.Client
}

func (a ClientAPI) EnsureIndex(ctx context.Context, index cogsearch.Index) (bool, error) {
	return a.Client.Indexes().Ensure(ctx, index)
}

func (a ClientAPI) UploadDocuments(ctx context.Context, index string, docs []cogsearch.Document) ([]cogsearch.UploadResult, error) {
	return a.Client.Documents(index).Upload(ctx, docs)
}

func (a ClientAPI) Search(ctx context.Context, index, query string, top int, fields []string) ([]cogsearch.SearchResult, error) {
	return a.Client.Search(index).Query(ctx, query, &cogsearch.SearchOptions{Top: top, Select: fields})
}
