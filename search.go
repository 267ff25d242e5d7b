package cogsearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// scoreField carries the relevance score on the wire.
const scoreField = "@search.score"

// SearchService executes queries against a single index.
type SearchService struct {
	index string
	c     *Client
	obs   *observer
}

type searchRequest struct {
	Search string `json:"search"`
	Top    int    `json:"top,omitempty"`
	Select string `json:"select,omitempty"`
	Filter string `json:"filter,omitempty"`
}

type searchResponse struct {
	Value []map[string]any `json:"value"`
}

// Query runs a full-text search. Results are ordered by descending
// relevance score; an empty result set is not an error.
func (s *SearchService) Query(ctx context.Context, query string, opts *SearchOptions) (_ []SearchResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.query", start, err) }()

	if opts == nil {
		opts = &SearchOptions{}
	}

	req := searchRequest{
		Search: query,
		Top:    opts.Top,
		Select: strings.Join(opts.Select, ","),
		Filter: opts.Filter,
	}

	var resp searchResponse
	path := fmt.Sprintf("/indexes/%s/docs/search", url.PathEscape(s.index))
	if err = s.c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	results := make([]SearchResult, len(resp.Value))
	for i, raw := range resp.Value {
		results[i] = fromRawHit(raw)
	}
	return results, nil
}

// fromRawHit splits a wire-level hit into relevance score and document
// fields. Other @search.* annotations are dropped.
func fromRawHit(raw map[string]any) SearchResult {
	doc := make(Document, len(raw))
	var score float64
	for k, v := range raw {
		if k == scoreField {
			if f, ok := v.(float64); ok {
				score = f
			}
			continue
		}
		if strings.HasPrefix(k, "@search.") {
			continue
		}
		doc[k] = v
	}
	return SearchResult{Score: score, Document: doc}
}
