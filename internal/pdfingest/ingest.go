// Package pdfingest extracts a PDF into a search index and then serves
// an interactive query loop over the indexed content.
package pdfingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cogsearch"
	"github.com/kailas-cloud/cogsearch/internal/console"
	"github.com/kailas-cloud/cogsearch/internal/pdf"
)

const (
	// docKey is the fixed document id: one PDF per index, re-ingest
	// overwrites in place.
	docKey = "1"

	uploadDateLayout = "2006-01-02 15:04:05"

	maxSnippets   = 3
	snippetRadius = 100
)

// Config controls an ingest-and-query run.
type Config struct {
	IndexName   string
	Path        string
	Top         int
	PreUpload   time.Duration
	SettleDelay time.Duration
}

// Tool ingests one PDF and answers interactive queries against it.
type Tool struct {
	api     SearchAPI
	extract Extractor
	in      console.LineReader
	out     io.Writer
	log     *zap.Logger
	sleep   func(time.Duration)
	now     func() time.Time
	cfg     Config
}

// New builds a tool. in supplies the interactive queries and out
// receives the human-readable output.
func New(api SearchAPI, extract Extractor, in console.LineReader, out io.Writer, log *zap.Logger, cfg Config) *Tool {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tool{
		api:     api,
		extract: extract,
		in:      in,
		out:     out,
		log:     log,
		sleep:   time.Sleep,
		now:     time.Now,
		cfg:     cfg,
	}
}

// WithSleep replaces the indexing-delay sleep, for tests.
func (t *Tool) WithSleep(fn func(time.Duration)) *Tool {
	t.sleep = fn
	return t
}

// WithNow replaces the upload-date clock, for tests.
func (t *Tool) WithNow(fn func() time.Time) *Tool {
	t.now = fn
	return t
}

// Run ingests the configured PDF and then enters the query loop.
// Setup errors are fatal; per-query errors are reported and the loop
// continues.
func (t *Tool) Run(ctx context.Context) error {
	if err := t.setup(ctx); err != nil {
		return err
	}
	return t.queryLoop(ctx)
}

func (t *Tool) setup(ctx context.Context) error {
	fmt.Fprintf(t.out, "extracting text from %s...\n", t.cfg.Path)
	pages, err := t.extract(t.cfg.Path)
	if err != nil {
		return fmt.Errorf("extract %s: %w", t.cfg.Path, err)
	}
	text := pdf.Join(pages)
	fmt.Fprintf(t.out, "%s extracted %d page(s), %d characters\n", console.Pass("OK:"), len(pages), len(text))

	schema, err := IndexSchema(t.cfg.IndexName)
	if err != nil {
		return err
	}
	created, err := t.api.EnsureIndex(ctx, schema)
	if err != nil {
		return fmt.Errorf("ensure index %q: %w", t.cfg.IndexName, err)
	}
	if created {
		fmt.Fprintf(t.out, "%s index %q created\n", console.Pass("OK:"), t.cfg.IndexName)
	} else {
		fmt.Fprintf(t.out, "%s index %q already exists, content will be overwritten\n",
			console.Warn("NOTE:"), t.cfg.IndexName)
	}
	if t.cfg.PreUpload > 0 {
		fmt.Fprintf(t.out, "waiting %s for the index to become ready...\n", t.cfg.PreUpload)
		t.sleep(t.cfg.PreUpload)
	}

	doc := PDFDocument{
		ID:         docKey,
		Filename:   filepath.Base(t.cfg.Path),
		Content:    text,
		PageCount:  len(pages),
		UploadDate: t.now().Format(uploadDateLayout),
	}
	docs, err := cogsearch.ToDocuments([]PDFDocument{doc})
	if err != nil {
		return err
	}
	results, err := t.api.UploadDocuments(ctx, t.cfg.IndexName, docs)
	if err != nil {
		return fmt.Errorf("upload %s: %w", doc.Filename, err)
	}
	for _, res := range results {
		if !res.Succeeded {
			return fmt.Errorf("upload %s rejected: %s", doc.Filename, res.ErrorMessage)
		}
	}
	fmt.Fprintf(t.out, "%s uploaded %s (%d pages)\n", console.Pass("OK:"), doc.Filename, doc.PageCount)
	t.log.Info("pdf ingested",
		zap.String("index", t.cfg.IndexName),
		zap.String("filename", doc.Filename),
		zap.Int("pages", doc.PageCount))

	if t.cfg.SettleDelay > 0 {
		fmt.Fprintf(t.out, "waiting %s for indexing to settle...\n", t.cfg.SettleDelay)
		t.sleep(t.cfg.SettleDelay)
	}
	return nil
}

func (t *Tool) queryLoop(ctx context.Context) error {
	line := strings.Repeat("=", 60)
	fmt.Fprintf(t.out, "\n%s\nInteractive Search\n%s\n", line, line)
	fmt.Fprintln(t.out, "Type a search term, or quit/exit/q to leave.")

	for {
		fmt.Fprintf(t.out, "\n%s ", console.Accent("search>"))
		query, err := t.in.ReadLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(t.out, "\ngoodbye")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read query: %w", err)
		}
		if isSentinel(query) {
			fmt.Fprintln(t.out, "goodbye")
			return nil
		}
		if query == "" {
			fmt.Fprintf(t.out, "%s enter a search term\n", console.Warn("NOTE:"))
			continue
		}
		t.runQuery(ctx, query)
	}
}

func isSentinel(s string) bool {
	switch strings.ToLower(s) {
	case "quit", "exit", "q":
		return true
	}
	return false
}

// runQuery executes one search and prints matched documents with
// occurrence counts and context snippets. Errors are reported to the
// operator without ending the loop.
func (t *Tool) runQuery(ctx context.Context, query string) {
	results, err := t.api.Search(ctx, t.cfg.IndexName, query, t.cfg.Top, []string{"filename", "content", "page_count"})
	if err != nil {
		fmt.Fprintf(t.out, "%s search failed: %v\n", console.Fail("ERROR:"), err)
		t.log.Warn("query failed", zap.String("query", query), zap.Error(err))
		return
	}
	if len(results) == 0 {
		fmt.Fprintf(t.out, "no results found for %q\n", query)
		return
	}

	for _, res := range results {
		filename, _ := res.Document["filename"].(string)
		content, _ := res.Document["content"].(string)
		fmt.Fprintf(t.out, "\nDocument: %s\n", console.Accent(filename))
		fmt.Fprintf(t.out, "Score: %.2f\n", res.Score)

		count, snips := Snippets(content, query, maxSnippets, snippetRadius)
		fmt.Fprintf(t.out, "Found %d occurrence(s)\n", count)
		for i, s := range snips {
			fmt.Fprintf(t.out, "  %d. ...%s...\n", i+1, s)
		}
		if count > len(snips) {
			fmt.Fprintf(t.out, "  (showing first %d of %d)\n", len(snips), count)
		}
	}
}
