package pdfingest

import "github.com/kailas-cloud/cogsearch"

// PDFDocument is the indexed shape of an ingested PDF. A single tool
// run indexes one file, so the key is fixed and a re-run of the same
// index overwrites the previous content.
type PDFDocument struct {
	ID         string `cogsearch:"id,key"`
	Filename   string `cogsearch:"filename,searchable"`
	Content    string `cogsearch:"content,searchable,analyzer=en.microsoft"`
	PageCount  int    `cogsearch:"page_count"`
	UploadDate string `cogsearch:"upload_date"`
}

// IndexSchema builds the PDF index definition.
func IndexSchema(name string) (cogsearch.Index, error) {
	return cogsearch.SchemaOf[PDFDocument](name)
}
