package cogsearch

import (
	"fmt"
	"reflect"
	"strings"
)

const tagKey = "cogsearch"

// schemaMeta holds parsed struct tag metadata, cached per TypedIndex.
type schemaMeta struct {
	typ    reflect.Type // struct type for reconstruction
	keyIdx int

	// Schema fields for index creation.
	fields []Field

	// Mapping from struct field index to wire field name.
	mappings []fieldMapping
}

type fieldMapping struct {
	structIdx int
	name      string
}

// parseSchema reflects on T and extracts cogsearch struct tag metadata.
func parseSchema[T any]() (*schemaMeta, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cogsearch: type %v is not a struct", t)
	}

	meta := &schemaMeta{typ: t, keyIdx: -1}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get(tagKey)
		if tag == "" || tag == "-" {
			continue
		}
		if err := applyTag(meta, i, f, tag); err != nil {
			return nil, err
		}
	}
	return validateSchema(meta, t)
}

// applyTag processes a single struct field's cogsearch tag.
// Format: `cogsearch:"name[,key][,searchable][,filterable][,facetable][,analyzer=x]"`.
func applyTag(meta *schemaMeta, idx int, sf reflect.StructField, tag string) error {
	parts := strings.Split(tag, ",")
	name := parts[0]
	if name == "" {
		return fmt.Errorf("cogsearch: empty field name on %s", sf.Name)
	}

	ft, err := fieldTypeOf(sf.Type)
	if err != nil {
		return fmt.Errorf("cogsearch: field %s: %w", sf.Name, err)
	}

	field := Field{Name: name, Type: ft}
	for _, mod := range parts[1:] {
		switch {
		case mod == "key":
			if meta.keyIdx != -1 {
				return fmt.Errorf("cogsearch: duplicate key tag on field %s", sf.Name)
			}
			if ft != FieldTypeString {
				return fmt.Errorf("cogsearch: key field %s must be a string", sf.Name)
			}
			meta.keyIdx = idx
			field.Key = true
		case mod == "searchable":
			field.Searchable = true
		case mod == "filterable":
			field.Filterable = true
		case mod == "facetable":
			field.Facetable = true
		case strings.HasPrefix(mod, "analyzer="):
			field.Analyzer = strings.TrimPrefix(mod, "analyzer=")
		default:
			return fmt.Errorf("cogsearch: unknown modifier %q on field %s", mod, sf.Name)
		}
	}

	meta.fields = append(meta.fields, field)
	meta.mappings = append(meta.mappings, fieldMapping{structIdx: idx, name: name})
	return nil
}

func validateSchema(meta *schemaMeta, t reflect.Type) (*schemaMeta, error) {
	if meta.keyIdx == -1 {
		return nil, fmt.Errorf("cogsearch: no field with `cogsearch:\"...,key\"` tag in %s", t)
	}
	return meta, nil
}

// fieldTypeOf maps a Go type to its wire field type.
func fieldTypeOf(t reflect.Type) (FieldType, error) {
	switch t.Kind() {
	case reflect.String:
		return FieldTypeString, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return FieldTypeInt32, nil
	case reflect.Int64:
		return FieldTypeInt64, nil
	case reflect.Float32, reflect.Float64:
		return FieldTypeDouble, nil
	case reflect.Bool:
		return FieldTypeBoolean, nil
	default:
		return "", fmt.Errorf("unsupported type %s", t)
	}
}

// SchemaOf builds an index definition named name from T's cogsearch
// struct tags.
func SchemaOf[T any](name string) (Index, error) {
	meta, err := parseSchema[T]()
	if err != nil {
		return Index{}, err
	}
	return meta.index(name), nil
}

// ToDocuments converts tagged structs to wire Documents.
func ToDocuments[T any](items []T) ([]Document, error) {
	meta, err := parseSchema[T]()
	if err != nil {
		return nil, err
	}
	docs := make([]Document, len(items))
	for i, item := range items {
		docs[i] = meta.toDocument(item)
	}
	return docs, nil
}

// index builds the index definition for the given name.
func (m *schemaMeta) index(name string) Index {
	return Index{Name: name, Fields: m.fields}
}

// toDocument converts a typed struct to a wire Document using schema metadata.
func (m *schemaMeta) toDocument(item any) Document {
	v := reflect.ValueOf(item)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	doc := make(Document, len(m.mappings))
	for _, fm := range m.mappings {
		doc[fm.name] = v.Field(fm.structIdx).Interface()
	}
	return doc
}

// fromDocument converts a wire Document back to a typed struct.
func (m *schemaMeta) fromDocument(doc Document) any {
	v := reflect.New(m.typ).Elem()
	for _, fm := range m.mappings {
		raw, ok := doc[fm.name]
		if !ok {
			continue
		}
		setValue(v.Field(fm.structIdx), raw)
	}
	return v.Interface()
}

// setValue assigns a JSON-decoded value to a struct field.
// encoding/json delivers all numbers as float64.
func setValue(v reflect.Value, raw any) {
	switch v.Kind() {
	case reflect.String:
		if s, ok := raw.(string); ok {
			v.SetString(s)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if f, ok := raw.(float64); ok {
			v.SetInt(int64(f))
		}
	case reflect.Float32, reflect.Float64:
		if f, ok := raw.(float64); ok {
			v.SetFloat(f)
		}
	case reflect.Bool:
		if b, ok := raw.(bool); ok {
			v.SetBool(b)
		}
	}
}
