// Package cogsearch provides a Go client for a hosted cognitive search
// service, addressed by endpoint URL and API key. Indexing, ranking, and
// storage are owned by the service; the client covers index management,
// document upload, and full-text queries.
//
// # Low-level API — explicit control
//
//	client, _ := cogsearch.New("https://search.example.net", apiKey)
//	client.Indexes().Ensure(ctx, cogsearch.Index{
//	    Name: "articles",
//	    Fields: []cogsearch.Field{
//	        {Name: "id", Type: cogsearch.FieldTypeString, Key: true},
//	        {Name: "content", Type: cogsearch.FieldTypeString, Searchable: true},
//	    },
//	})
//	client.Documents("articles").Upload(ctx, docs)
//	results, _ := client.Search("articles").Query(ctx, "cloud search", nil)
//
// # High-level API — schema-first with Go generics
//
//	type Article struct {
//	    ID      string `cogsearch:"id,key"`
//	    Title   string `cogsearch:"title,searchable"`
//	    Content string `cogsearch:"content,searchable,analyzer=en.microsoft"`
//	    Topic   string `cogsearch:"topic,filterable,facetable"`
//	}
//
//	idx, _ := cogsearch.NewIndex[Article](client, "articles")
//	_ = idx.Ensure(ctx)
//	_, _ = idx.Upload(ctx, articles)
//	hits, _ := idx.Search().Query("cloud search").Top(5).Do(ctx)
package cogsearch
