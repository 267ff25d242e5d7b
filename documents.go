package cogsearch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// actionField selects the per-document indexing action on the wire.
const actionField = "@search.action"

// DocumentsService uploads documents into a single index.
type DocumentsService struct {
	index string
	c     *Client
	obs   *observer
}

type uploadRequest struct {
	Value []Document `json:"value"`
}

type uploadResponse struct {
	Value []UploadResult `json:"value"`
}

// Upload submits documents with mergeOrUpload semantics: a document whose
// key already exists is overwritten by the service. Returns one outcome
// per document; a non-nil error means the whole batch failed in transit.
func (s *DocumentsService) Upload(ctx context.Context, docs []Document) (_ []UploadResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("documents.upload", start, err) }()

	if len(docs) == 0 {
		return nil, errors.New("upload: no documents")
	}

	payload := make([]Document, len(docs))
	for i, d := range docs {
		doc := make(Document, len(d)+1)
		for k, v := range d {
			doc[k] = v
		}
		doc[actionField] = "mergeOrUpload"
		payload[i] = doc
	}

	var resp uploadResponse
	path := fmt.Sprintf("/indexes/%s/docs/index", url.PathEscape(s.index))
	if err = s.c.do(ctx, http.MethodPost, path, uploadRequest{Value: payload}, &resp); err != nil {
		return nil, fmt.Errorf("upload documents: %w", err)
	}
	return resp.Value, nil
}
