package cogsearch

// FieldType is the service-side data type of an index field.
type FieldType string

// Field type constants (EDM names used on the wire).
const (
	FieldTypeString  FieldType = "Edm.String"
	FieldTypeInt32   FieldType = "Edm.Int32"
	FieldTypeInt64   FieldType = "Edm.Int64"
	FieldTypeDouble  FieldType = "Edm.Double"
	FieldTypeBoolean FieldType = "Edm.Boolean"
)

// Field is a single index field definition.
type Field struct {
	Name       string    `json:"name"`
	Type       FieldType `json:"type"`
	Key        bool      `json:"key,omitempty"`
	Searchable bool      `json:"searchable,omitempty"`
	Filterable bool      `json:"filterable,omitempty"`
	Facetable  bool      `json:"facetable,omitempty"`
	Analyzer   string    `json:"analyzer,omitempty"`
}

// Index is a named, schema-defined collection of documents.
type Index struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Document is one record within an index. Keys map to index field names;
// the key field addresses the document.
type Document map[string]any

// UploadResult is the per-document outcome of an upload batch.
type UploadResult struct {
	Key          string `json:"key"`
	Succeeded    bool   `json:"status"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	StatusCode   int    `json:"statusCode,omitempty"`
}

// Succeeded counts successful outcomes in an upload batch.
func Succeeded(results []UploadResult) int {
	n := 0
	for _, r := range results {
		if r.Succeeded {
			n++
		}
	}
	return n
}

// SearchOptions configures a search query.
type SearchOptions struct {
	Top    int      // maximum results (0 = service default)
	Select []string // fields to return (empty = all retrievable)
	Filter string   // OData-style filter expression
}

// SearchResult is a single search hit. Results are ordered by
// descending relevance score.
type SearchResult struct {
	Score    float64
	Document Document
}
