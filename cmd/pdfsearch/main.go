// Command pdfsearch extracts a PDF into a search index and then serves
// an interactive query prompt over the indexed content. Quit with
// quit, exit, or q.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cogsearch"
	"github.com/kailas-cloud/cogsearch/internal/config"
	"github.com/kailas-cloud/cogsearch/internal/console"
	logpkg "github.com/kailas-cloud/cogsearch/internal/logger"
	"github.com/kailas-cloud/cogsearch/internal/pdf"
	"github.com/kailas-cloud/cogsearch/internal/pdfingest"
	"github.com/kailas-cloud/cogsearch/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	if err := cfg.ValidatePDF(); err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(2)
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger = logger.With(zap.String("run_id", uuid.NewString()))
	logger.Info("Starting PDF search tool",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("index", cfg.PDF.IndexName),
		zap.String("pdf", cfg.PDF.Path),
	)

	client, err := cogsearch.New(cfg.Endpoint, cfg.APIKey)
	if err != nil {
		logger.Fatal("Failed to create search client", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tool := pdfingest.New(
		pdfingest.ClientAPI{Client: client},
		pdf.Extract,
		console.NewReader(os.Stdin),
		os.Stdout,
		logger,
		pdfingest.Config{
			IndexName:   cfg.PDF.IndexName,
			Path:        cfg.PDF.Path,
			Top:         cfg.PDF.Top,
			PreUpload:   time.Duration(cfg.PDF.PreUploadSec) * time.Second,
			SettleDelay: time.Duration(cfg.PDF.SettleDelaySec) * time.Second,
		},
	)

	if err := tool.Run(ctx); err != nil {
		logger.Error("PDF search tool failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}
