// Package fetch acquires document and box images for vision calls. It
// supports http(s) URLs and file:// paths, applies a shared rate limiter,
// and classifies deadline failures as TimeoutError so the HTTP layer can
// distinguish a slow upstream from a broken one.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "visionflow/1.0"

	// maxImageBytes caps downloads; the vision API rejects anything near
	// this size anyway.
	maxImageBytes = 20 << 20
)

// TimeoutError marks an image acquisition that ran past its deadline.
// Timeouts are never retried.
type TimeoutError struct {
	Source string
	Err    error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("fetch: timed out fetching %s: %v", e.Source, e.Err)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// Image is a fetched image ready for a base64 vision block.
type Image struct {
	Data      []byte
	MediaType string
	Source    string
}

// Fetcher downloads images with a per-instance rate limit.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout overrides the default 30s request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.client.Timeout = d
	}
}

// WithRateLimit sets the request rate in requests per second.
func WithRateLimit(rps float64, burst int) Option {
	return func(f *Fetcher) {
		f.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// New builds a Fetcher with a 30s timeout and a 5 rps limiter.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(5), 5),
		log:     zap.L().Named("fetch"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Get fetches the image at ref. ref may be an http(s) URL, a file:// URL, or
// a bare local path.
func (f *Fetcher) Get(ctx context.Context, ref string) (*Image, error) {
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return f.getHTTP(ctx, ref)
	case strings.HasPrefix(ref, "file://"):
		return f.getFile(strings.TrimPrefix(ref, "file://"))
	case ref == "":
		return nil, eris.New("fetch: empty image reference")
	default:
		return f.getFile(ref)
	}
}

func (f *Fetcher) getHTTP(ctx context.Context, url string) (*Image, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "fetch: rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: build request")
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Source: url, Err: err}
		}
		return nil, eris.Wrapf(err, "fetch: get %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("fetch: get %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Source: url, Err: err}
		}
		return nil, eris.Wrapf(err, "fetch: read body from %s", url)
	}
	if len(data) > maxImageBytes {
		return nil, eris.Errorf("fetch: %s exceeds %d byte limit", url, maxImageBytes)
	}

	f.log.Debug("fetched image",
		zap.String("url", url),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)))

	return &Image{
		Data:      data,
		MediaType: mediaType(resp.Header.Get("Content-Type"), data),
		Source:    url,
	}, nil
}

func (f *Fetcher) getFile(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch: read file %s", path)
	}
	if len(data) > maxImageBytes {
		return nil, eris.Errorf("fetch: %s exceeds %d byte limit", path, maxImageBytes)
	}
	return &Image{
		Data:      data,
		MediaType: mediaType("", data),
		Source:    path,
	}, nil
}

// FromBytes wraps an already-loaded image, e.g. a multipart upload.
func FromBytes(data []byte, contentType, source string) *Image {
	return &Image{
		Data:      data,
		MediaType: mediaType(contentType, data),
		Source:    source,
	}
}

// mediaType prefers the declared content type and falls back to sniffing.
// The vision API accepts a fixed set; anything unrecognized goes out as jpeg,
// which is what the upstream services assumed.
func mediaType(declared string, data []byte) string {
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = declared[:i]
	}
	declared = strings.TrimSpace(strings.ToLower(declared))
	switch declared {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return declared
	}
	switch sniffed := http.DetectContentType(data); sniffed {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return sniffed
	}
	return "image/jpeg"
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
