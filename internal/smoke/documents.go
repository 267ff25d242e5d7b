package smoke

import "github.com/kailas-cloud/cogsearch"

// Article is the fixed sample document shape used by the smoke test:
// id key, title and content searchable, category filterable and facetable.
type Article struct {
	ID       string `cogsearch:"id,key"`
	Title    string `cogsearch:"title,searchable"`
	Content  string `cogsearch:"content,searchable"`
	Category string `cogsearch:"category,filterable,facetable"`
}

// IndexSchema builds the smoke-test index definition.
func IndexSchema(name string) (cogsearch.Index, error) {
	return cogsearch.SchemaOf[Article](name)
}

// sampleArticles are the three fixed records uploaded in the Upload stage.
var sampleArticles = []Article{
	{
		ID:       "1",
		Title:    "Azure Cognitive Search Introduction",
		Content:  "Azure Cognitive Search is a cloud search service with built-in AI capabilities.",
		Category: "Documentation",
	},
	{
		ID:       "2",
		Title:    "Getting Started with Search",
		Content:  "Learn how to create your first search index and query documents.",
		Category: "Tutorial",
	},
	{
		ID:       "3",
		Title:    "Advanced Search Features",
		Content:  "Explore faceted navigation, filters, and scoring profiles.",
		Category: "Advanced",
	},
}
