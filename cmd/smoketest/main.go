// Command smoketest runs an end-to-end check against a search service:
// connect, create a test index, upload sample documents, search them
// back, and optionally delete the index. Exit code 0 means every stage
// passed.
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
	"github.com/kailas-cloud/cogsearch/internal/smoke"
	"github.com/kailas-cloud/cogsearch/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	if err := cfg.ValidateSmoke(); err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(2)
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger = logger.With(zap.String("run_id", uuid.NewString()))
	logger.Info("Starting search smoke test",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("index", cfg.IndexName),
	)

	client, err := cogsearch.New(cfg.Endpoint, cfg.APIKey)
	if err != nil {
		logger.Fatal("Failed to create search client", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := smoke.New(
		smoke.ClientAPI{Client: client},
		console.NewReader(os.Stdin),
		os.Stdout,
		logger,
		smoke.Config{
			IndexName:   cfg.IndexName,
			Query:       cfg.Smoke.Query,
			Top:         cfg.Smoke.Top,
			SettleDelay: time.Duration(cfg.Smoke.SettleDelaySec) * time.Second,
		},
	)

	report := runner.Run(ctx)
	if !report.Passed() {
		_ = logger.Sync()
		os.Exit(1)
	}
}
