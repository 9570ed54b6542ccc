package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/visionflow/internal/fetch"
	"github.com/sells-group/visionflow/internal/repo"
	"github.com/sells-group/visionflow/internal/resilience"
	"github.com/sells-group/visionflow/internal/vision"
	"github.com/sells-group/visionflow/pkg/anthropic"
)

// newAnalyzer builds the shared vision analyzer. A missing API key yields an
// unconfigured analyzer so the services start and report 503 on model calls.
func newAnalyzer() *vision.Analyzer {
	var client anthropic.Client
	if cfg.Anthropic.Key != "" {
		client = anthropic.NewClient(cfg.Anthropic.Key)
	} else {
		zap.L().Warn("no anthropic key configured, model calls will fail with 503")
	}
	return vision.New(client, vision.Options{
		Model:     cfg.Anthropic.Model,
		MaxTokens: cfg.Anthropic.MaxTokens,
		RPS:       cfg.Anthropic.RPS,
		Retry: resilience.RetryConfig{
			MaxAttempts:    cfg.Retry.MaxAttempts,
			InitialBackoff: time.Duration(cfg.Retry.InitialBackoffSecs) * time.Second,
		},
	})
}

func newFetcher() *fetch.Fetcher {
	return fetch.New(
		fetch.WithTimeout(time.Duration(cfg.Fetch.TimeoutSecs)*time.Second),
		fetch.WithRateLimit(cfg.Fetch.RPS, int(cfg.Fetch.RPS)),
	)
}

func loadSeeds() (repo.Seeds, error) {
	seeds, err := repo.LoadSeeds(cfg.SeedsPath)
	if err != nil {
		return repo.Seeds{}, eris.Wrap(err, "cmd: load seeds")
	}
	return seeds, nil
}

// listenAndServe runs the handler until the context is cancelled, then shuts
// down gracefully.
func listenAndServe(ctx context.Context, port int, handler http.Handler, name string) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server", zap.String("service", name))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("starting server", zap.String("service", name), zap.Int("port", port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server listen")
	}
	return nil
}
