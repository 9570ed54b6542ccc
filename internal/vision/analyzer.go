// Package vision runs a prompt and an image through the model and coerces the
// reply into a JSON object. It owns the rate limiter and the retry budget for
// model calls so service packages stay free of transport concerns.
package vision

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/visionflow/internal/coerce"
	"github.com/sells-group/visionflow/internal/fetch"
	"github.com/sells-group/visionflow/internal/resilience"
	"github.com/sells-group/visionflow/pkg/anthropic"
)

// ErrNotConfigured is returned when no model API key was supplied. Handlers
// map it to 503 so a keyless demo deployment degrades instead of crashing.
var ErrNotConfigured = errors.New("vision: model client not configured")

// ImageAnalyzer is the surface the service packages consume. Tests substitute
// a canned implementation.
type ImageAnalyzer interface {
	Analyze(ctx context.Context, prompt string, img *fetch.Image) (map[string]any, error)
}

// Analyzer calls the model with retry and parses the response.
type Analyzer struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	limiter   *rate.Limiter
	retry     resilience.RetryConfig
	log       *zap.Logger
}

// Options configures an Analyzer.
type Options struct {
	Model     string
	MaxTokens int64
	RPS       float64
	Retry     resilience.RetryConfig
}

// New builds an Analyzer. client may be nil when no key is configured; every
// Analyze call then fails with ErrNotConfigured.
func New(client anthropic.Client, opts Options) *Analyzer {
	if opts.Model == "" {
		opts.Model = "claude-sonnet-4-5-20250929"
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 2048
	}
	if opts.RPS <= 0 {
		opts.RPS = 2
	}
	return &Analyzer{
		client:    client,
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
		limiter:   rate.NewLimiter(rate.Limit(opts.RPS), 1),
		retry:     opts.Retry,
		log:       zap.L().Named("vision"),
	}
}

// Configured reports whether a model client is present.
func (a *Analyzer) Configured() bool {
	return a.client != nil
}

// Analyze sends prompt (and img, if non-nil) to the model and returns the
// coerced JSON object. Rate-limited calls are retried per the configured
// budget; a malformed reply surfaces as *coerce.MalformedResponseError.
func (a *Analyzer) Analyze(ctx context.Context, prompt string, img *fetch.Image) (map[string]any, error) {
	if a.client == nil {
		return nil, ErrNotConfigured
	}
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "vision: rate limiter wait")
	}

	req := anthropic.MessageRequest{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Prompt:    prompt,
	}
	if img != nil {
		req.Image = &anthropic.ImageInput{Data: img.Data, MediaType: img.MediaType}
	}

	retry := a.retry
	if retry.OnRetry == nil {
		retry.OnRetry = resilience.RetryLogger("anthropic", "create_message")
	}

	resp, err := resilience.DoVal(ctx, retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return a.client.CreateMessage(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	resp.Usage.LogCost(a.model, "analyze")

	obj, err := coerce.ParseObject(resp.Text())
	if err != nil {
		a.log.Warn("unparseable model output", zap.String("model", a.model), zap.Error(err))
		return nil, err
	}
	return obj, nil
}
