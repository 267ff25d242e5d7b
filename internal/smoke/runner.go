// Package smoke runs an ordered end-to-end check against a search
// service deployment: connect, create an index, upload sample
// documents, search them back, and optionally clean up.
package smoke

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cogsearch"
	"github.com/kailas-cloud/cogsearch/internal/console"
)

// Stage names as they appear in the report.
const (
	StageConnect = "Connection"
	StageCreate  = "Create Index"
	StageUpload  = "Upload Documents"
	StageSearch  = "Search Documents"
	StageCleanup = "Cleanup"
)

// Config controls a smoke run.
type Config struct {
	IndexName   string
	Query       string
	Top         int
	SettleDelay time.Duration
}

// StageResult is the outcome of a single stage.
type StageResult struct {
	Name   string
	Passed bool
	Detail string
}

// Report collects stage outcomes in execution order.
type Report struct {
	Stages []StageResult
}

func (r *Report) add(name string, passed bool, detail string) {
	r.Stages = append(r.Stages, StageResult{Name: name, Passed: passed, Detail: detail})
}

// Passed reports whether every stage passed.
func (r *Report) Passed() bool {
	for _, s := range r.Stages {
		if !s.Passed {
			return false
		}
	}
	return len(r.Stages) > 0
}

// Runner executes the five smoke stages in order.
type Runner struct {
	api   SearchAPI
	in    console.LineReader
	out   io.Writer
	log   *zap.Logger
	sleep func(time.Duration)
	cfg   Config
}

// New builds a runner. in answers the cleanup prompt and out receives
// the human-readable progress report.
func New(api SearchAPI, in console.LineReader, out io.Writer, log *zap.Logger, cfg Config) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{api: api, in: in, out: out, log: log, sleep: time.Sleep, cfg: cfg}
}

// WithSleep replaces the settling-delay sleep, for tests.
func (r *Runner) WithSleep(fn func(time.Duration)) *Runner {
	r.sleep = fn
	return r
}

// Run executes all stages and returns the report. A stage failure does
// not abort the run, but authentication failure on Connection blocks
// the stages that need the service, and a failed Create blocks Upload.
// Cleanup always runs.
func (r *Runner) Run(ctx context.Context) *Report {
	report := &Report{}

	authFailed := r.runConnect(ctx, report)
	if authFailed {
		report.add(StageCreate, false, "blocked: authentication failed")
		report.add(StageUpload, false, "blocked: authentication failed")
		report.add(StageSearch, false, "blocked: authentication failed")
	} else {
		indexReady := r.runCreate(ctx, report)
		uploaded := 0
		if indexReady {
			uploaded = r.runUpload(ctx, report)
		} else {
			report.add(StageUpload, false, "blocked: index unavailable")
		}
		r.runSearch(ctx, report, uploaded)
	}
	r.runCleanup(ctx, report)

	r.printSummary(report)
	return report
}

func (r *Runner) banner(title string) {
	line := strings.Repeat("=", 60)
	fmt.Fprintf(r.out, "\n%s\n%s\n%s\n", line, title, line)
}

// runConnect lists the existing indexes to prove connectivity.
// It returns true when the failure was an authentication error.
func (r *Runner) runConnect(ctx context.Context, report *Report) bool {
	r.banner("TEST 1: Connection")
	names, err := r.api.ListIndexes(ctx)
	if err != nil {
		fmt.Fprintf(r.out, "%s connection failed: %v\n", console.Fail("FAILED:"), err)
		r.log.Error("connection check failed", zap.Error(err))
		report.add(StageConnect, false, err.Error())
		return errors.Is(err, cogsearch.ErrUnauthorized)
	}
	fmt.Fprintf(r.out, "%s connected, %d existing index(es)\n", console.Pass("OK:"), len(names))
	for _, n := range names {
		fmt.Fprintf(r.out, "  - %s\n", n)
	}
	report.add(StageConnect, true, fmt.Sprintf("%d existing index(es)", len(names)))
	return false
}

func (r *Runner) runCreate(ctx context.Context, report *Report) bool {
	r.banner("TEST 2: Create Index")
	schema, err := IndexSchema(r.cfg.IndexName)
	if err != nil {
		fmt.Fprintf(r.out, "%s %v\n", console.Fail("FAILED:"), err)
		report.add(StageCreate, false, err.Error())
		return false
	}
	created, err := r.api.EnsureIndex(ctx, schema)
	if err != nil {
		fmt.Fprintf(r.out, "%s create index %q: %v\n", console.Fail("FAILED:"), r.cfg.IndexName, err)
		r.log.Error("create index failed", zap.String("index", r.cfg.IndexName), zap.Error(err))
		report.add(StageCreate, false, err.Error())
		return false
	}
	if created {
		fmt.Fprintf(r.out, "%s index %q created with %d fields\n",
			console.Pass("OK:"), r.cfg.IndexName, len(schema.Fields))
		report.add(StageCreate, true, "created")
	} else {
		fmt.Fprintf(r.out, "%s index %q already exists, reusing it\n",
			console.Pass("OK:"), r.cfg.IndexName)
		report.add(StageCreate, true, "already exists")
	}
	return true
}

// runUpload sends the fixed sample documents and returns how many of
// them the service accepted.
func (r *Runner) runUpload(ctx context.Context, report *Report) int {
	r.banner("TEST 3: Upload Documents")
	docs, err := cogsearch.ToDocuments(sampleArticles)
	if err != nil {
		fmt.Fprintf(r.out, "%s %v\n", console.Fail("FAILED:"), err)
		report.add(StageUpload, false, err.Error())
		return 0
	}
	results, err := r.api.UploadDocuments(ctx, r.cfg.IndexName, docs)
	if err != nil {
		fmt.Fprintf(r.out, "%s upload: %v\n", console.Fail("FAILED:"), err)
		r.log.Error("upload failed", zap.Error(err))
		report.add(StageUpload, false, err.Error())
		return 0
	}
	for _, res := range results {
		if res.Succeeded {
			fmt.Fprintf(r.out, "  %s document %s indexed\n", console.Pass("+"), res.Key)
		} else {
			fmt.Fprintf(r.out, "  %s document %s rejected: %s\n", console.Fail("x"), res.Key, res.ErrorMessage)
		}
	}
	ok := cogsearch.Succeeded(results)
	detail := fmt.Sprintf("%d/%d documents uploaded", ok, len(results))
	if ok == len(results) {
		fmt.Fprintf(r.out, "%s %s\n", console.Pass("OK:"), detail)
	} else {
		fmt.Fprintf(r.out, "%s %s\n", console.Fail("FAILED:"), detail)
	}
	report.add(StageUpload, ok == len(results), detail)
	return ok
}

// runSearch waits for indexing to settle, then queries the index.
// Zero matches is not a failure on its own, but it is flagged when
// documents were known to be uploaded.
func (r *Runner) runSearch(ctx context.Context, report *Report, uploaded int) {
	r.banner("TEST 4: Search Documents")
	if r.cfg.SettleDelay > 0 {
		fmt.Fprintf(r.out, "waiting %s for indexing to settle...\n", r.cfg.SettleDelay)
		r.sleep(r.cfg.SettleDelay)
	}
	results, err := r.api.Search(ctx, r.cfg.IndexName, r.cfg.Query, r.cfg.Top)
	if err != nil {
		fmt.Fprintf(r.out, "%s search %q: %v\n", console.Fail("FAILED:"), r.cfg.Query, err)
		r.log.Error("search failed", zap.String("query", r.cfg.Query), zap.Error(err))
		report.add(StageSearch, false, err.Error())
		return
	}
	fmt.Fprintf(r.out, "query %q returned %d result(s)\n", r.cfg.Query, len(results))
	for _, res := range results {
		title, _ := res.Document["title"].(string)
		category, _ := res.Document["category"].(string)
		fmt.Fprintf(r.out, "  [%.2f] %s (%s)\n", res.Score, console.Accent(title), category)
	}
	if len(results) == 0 && uploaded > 0 {
		fmt.Fprintf(r.out, "%s no matches despite %d uploaded document(s); the index may still be settling\n",
			console.Warn("NOTE:"), uploaded)
	}
	fmt.Fprintf(r.out, "%s search completed\n", console.Pass("OK:"))
	report.add(StageSearch, true, fmt.Sprintf("%d result(s)", len(results)))
}

// runCleanup asks the operator whether to delete the test index.
// Declining (or exhausted input) keeps the index and still passes.
func (r *Runner) runCleanup(ctx context.Context, report *Report) {
	r.banner("TEST 5: Cleanup")
	fmt.Fprintf(r.out, "Delete the test index %q? (yes/no): ", r.cfg.IndexName)
	line, err := r.in.ReadLine()
	if err != nil || !affirmative(line) {
		fmt.Fprintf(r.out, "%s keeping index %q\n", console.Warn("SKIPPED:"), r.cfg.IndexName)
		report.add(StageCleanup, true, "index kept")
		return
	}
	switch err := r.api.DeleteIndex(ctx, r.cfg.IndexName); {
	case errors.Is(err, cogsearch.ErrNotFound):
		fmt.Fprintf(r.out, "%s index %q was already absent\n", console.Warn("NOTE:"), r.cfg.IndexName)
		report.add(StageCleanup, true, "already absent")
	case err != nil:
		fmt.Fprintf(r.out, "%s delete index %q: %v\n", console.Fail("FAILED:"), r.cfg.IndexName, err)
		r.log.Error("cleanup failed", zap.String("index", r.cfg.IndexName), zap.Error(err))
		report.add(StageCleanup, false, err.Error())
	default:
		fmt.Fprintf(r.out, "%s index %q deleted\n", console.Pass("OK:"), r.cfg.IndexName)
		report.add(StageCleanup, true, "deleted")
	}
}

func affirmative(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}

func (r *Runner) printSummary(report *Report) {
	r.banner("SUMMARY")
	passed := 0
	for _, s := range report.Stages {
		mark := console.Fail("FAILED")
		if s.Passed {
			mark = console.Pass("PASSED")
			passed++
		}
		fmt.Fprintf(r.out, "%-18s %s  %s\n", s.Name, mark, s.Detail)
	}
	fmt.Fprintf(r.out, "\nRESULT: %d/%d stages passed\n", passed, len(report.Stages))
	r.log.Info("smoke run finished",
		zap.Int("passed", passed),
		zap.Int("total", len(report.Stages)),
		zap.Bool("ok", report.Passed()))
}
