package cogsearch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

const testAPIKey = "test-key"

// fakeService is an in-memory stand-in for the hosted search service,
// speaking the same REST surface the client does.
type fakeService struct {
	indexes map[string]Index
	docs    map[string]map[string]Document // index name → key → document

	// failKeys marks document keys whose upload should be rejected.
	failKeys map[string]string // key → error message
}

func newFakeService() *fakeService {
	return &fakeService{
		indexes:  make(map[string]Index),
		docs:     make(map[string]map[string]Document),
		failKeys: make(map[string]string),
	}
}

func (f *fakeService) handler() http.Handler {
	r := chi.NewRouter()
	r.Use(f.auth)

	r.Get("/indexes", f.listIndexes)
	r.Post("/indexes", f.createIndex)
	r.Get("/indexes/{name}", f.getIndex)
	r.Delete("/indexes/{name}", f.deleteIndex)
	r.Post("/indexes/{name}/docs/index", f.uploadDocs)
	r.Post("/indexes/{name}/docs/search", f.search)

	return r
}

func (f *fakeService) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api-version") == "" {
			writeError(w, http.StatusBadRequest, "MissingApiVersion", "api-version is required")
			return
		}
		if r.Header.Get("api-key") != testAPIKey {
			writeError(w, http.StatusUnauthorized, "Unauthorized", "invalid api key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *fakeService) listIndexes(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(f.indexes))
	for name := range f.indexes {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Index, len(names))
	for i, name := range names {
		out[i] = f.indexes[name]
	}
	writeJSON(w, http.StatusOK, map[string]any{"value": out})
}

func (f *fakeService) createIndex(w http.ResponseWriter, r *http.Request) {
	var idx Index
	if err := json.NewDecoder(r.Body).Decode(&idx); err != nil || idx.Name == "" {
		writeError(w, http.StatusBadRequest, "InvalidIndex", "malformed index definition")
		return
	}
	if _, ok := f.indexes[idx.Name]; ok {
		writeError(w, http.StatusConflict, "ResourceNameAlreadyInUse", "index already exists")
		return
	}
	f.indexes[idx.Name] = idx
	f.docs[idx.Name] = make(map[string]Document)
	writeJSON(w, http.StatusCreated, idx)
}

func (f *fakeService) getIndex(w http.ResponseWriter, r *http.Request) {
	idx, ok := f.indexes[chi.URLParam(r, "name")]
	if !ok {
		writeError(w, http.StatusNotFound, "ResourceNotFound", "index not found")
		return
	}
	writeJSON(w, http.StatusOK, idx)
}

func (f *fakeService) deleteIndex(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := f.indexes[name]; !ok {
		writeError(w, http.StatusNotFound, "ResourceNotFound", "index not found")
		return
	}
	delete(f.indexes, name)
	delete(f.docs, name)
	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeService) uploadDocs(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	idx, ok := f.indexes[name]
	if !ok {
		writeError(w, http.StatusNotFound, "ResourceNotFound", "index not found")
		return
	}

	var req struct {
		Value []Document `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidBatch", "malformed batch")
		return
	}

	keyField := keyFieldOf(idx)
	results := make([]UploadResult, len(req.Value))
	allOK := true
	for i, doc := range req.Value {
		key, _ := doc[keyField].(string)
		if msg, failed := f.failKeys[key]; failed {
			results[i] = UploadResult{Key: key, Succeeded: false, ErrorMessage: msg, StatusCode: 400}
			allOK = false
			continue
		}
		stored := make(Document, len(doc))
		for k, v := range doc {
			if strings.HasPrefix(k, "@search.") {
				continue
			}
			stored[k] = v
		}
		f.docs[name][key] = stored
		results[i] = UploadResult{Key: key, Succeeded: true, StatusCode: 200}
	}

	status := http.StatusOK
	if !allOK {
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, map[string]any{"value": results})
}

// search does naive case-insensitive substring matching over string
// fields. Score is the total occurrence count across fields.
func (f *fakeService) search(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := f.indexes[name]; !ok {
		writeError(w, http.StatusNotFound, "ResourceNotFound", "index not found")
		return
	}

	var req struct {
		Search string `json:"search"`
		Top    int    `json:"top"`
		Select string `json:"select"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidQuery", "malformed query")
		return
	}

	needle := strings.ToLower(req.Search)
	var hits []map[string]any
	for _, doc := range f.docs[name] {
		score := 0
		for _, v := range doc {
			s, ok := v.(string)
			if !ok {
				continue
			}
			score += strings.Count(strings.ToLower(s), needle)
		}
		if score == 0 {
			continue
		}
		hit := map[string]any{scoreField: float64(score)}
		for k, v := range doc {
			if req.Select != "" && !selected(req.Select, k) {
				continue
			}
			hit[k] = v
		}
		hits = append(hits, hit)
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i][scoreField].(float64) > hits[j][scoreField].(float64)
	})
	if req.Top > 0 && len(hits) > req.Top {
		hits = hits[:req.Top]
	}
	writeJSON(w, http.StatusOK, map[string]any{"value": hits})
}

func keyFieldOf(idx Index) string {
	for _, fd := range idx.Fields {
		if fd.Key {
			return fd.Name
		}
	}
	return "id"
}

func selected(sel, field string) bool {
	for _, s := range strings.Split(sel, ",") {
		if s == field {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": msg},
	})
}

// newTestClient starts a fake service and returns a client pointed at it.
func newTestClient(t *testing.T, opts ...Option) (*Client, *fakeService) {
	t.Helper()
	svc := newFakeService()
	srv := httptest.NewServer(svc.handler())
	t.Cleanup(srv.Close)

	client, err := New(srv.URL, testAPIKey, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client, svc
}

// testIndex is the fixed schema used across client tests.
func testIndex(name string) Index {
	return Index{
		Name: name,
		Fields: []Field{
			{Name: "id", Type: FieldTypeString, Key: true},
			{Name: "title", Type: FieldTypeString, Searchable: true},
			{Name: "content", Type: FieldTypeString, Searchable: true},
			{Name: "category", Type: FieldTypeString, Filterable: true, Facetable: true},
		},
	}
}
