package fetch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"golang.org/x/sync/errgroup"

	// Meme sources serve JPEG, PNG, GIF and WebP.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/alanhe1219-web/Pulse-Bodega/pkg/cache"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/clients"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/logging"
)

const (
	defaultFetchTimeout = 4 * time.Second
	defaultMaxParallel  = 4
	defaultMaxBodyBytes = 8 << 20
	defaultCacheTTL     = 10 * time.Minute
	defaultUserAgent    = "pulse-bodega/1.0 (meme pipeline)"
)

// Fetcher downloads and decodes remote images with bounded concurrency.
// Every failure mode degrades: a URL that cannot be fetched or decoded
// is simply absent from the result, never an error.
type Fetcher struct {
	httpClient  *http.Client
	executor    failsafe.Executor[*http.Response]
	cache       *cache.Cache
	timeout     time.Duration
	maxParallel int
	maxBytes    int64
	userAgent   string
	logger      logging.Logger
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the transport, mainly for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.httpClient = c }
}

// WithTimeout sets the per-image fetch deadline.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithCacheTTL sets how long raw image bytes stay cached.
func WithCacheTTL(d time.Duration) Option {
	return func(f *Fetcher) {
		f.cache = cache.New(cache.Options{TTL: d, MaxEntries: 256})
	}
}

// NewFetcher builds an image fetcher with retrying transport and a
// bytes cache so repeated renders of a hot thread skip the network.
func NewFetcher(logger logging.Logger, opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient:  &http.Client{Timeout: defaultFetchTimeout},
		executor:    clients.NewHTTPExecutor(clients.DefaultHTTPExecutorConfig()),
		cache:       cache.New(cache.Options{TTL: defaultCacheTTL, MaxEntries: 256}),
		timeout:     defaultFetchTimeout,
		maxParallel: defaultMaxParallel,
		maxBytes:    defaultMaxBodyBytes,
		userAgent:   defaultUserAgent,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchAll downloads the given URLs concurrently and returns the
// successfully decoded images in input order. The worker pool is capped
// at the smaller of the URL count and the parallelism limit.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []image.Image {
	if len(urls) == 0 {
		return nil
	}

	limit := f.maxParallel
	if len(urls) < limit {
		limit = len(urls)
	}

	results := make([]image.Image, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			img, err := f.fetchOne(gctx, url)
			if err != nil {
				f.logger.WithFields(logging.Fields{
					"url":   url,
					"error": err.Error(),
				}).Warn("Image fetch failed, tile will degrade")
				return nil
			}
			results[i] = img
			return nil
		})
	}
	// Workers never return errors; Wait only observes ctx cancellation.
	_ = g.Wait()

	out := make([]image.Image, 0, len(urls))
	for _, img := range results {
		if img != nil {
			out = append(out, img)
		}
	}
	return out
}

func (f *Fetcher) fetchOne(ctx context.Context, url string) (image.Image, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	raw, ok, err := f.cache.Get(fetchCtx, url, func(ctx context.Context, key string) (interface{}, bool, error) {
		data, err := f.download(ctx, key)
		if err != nil {
			return nil, false, err
		}
		return data, true, nil
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no cached bytes for %s", url)
	}

	img, _, err := image.Decode(bytes.NewReader(raw.([]byte)))
	if err != nil {
		f.cache.Delete(url)
		return nil, fmt.Errorf("decoding %s: %w", url, err)
	}
	return img, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	resp, err := clients.ExecuteHTTP(ctx, f.executor, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", f.userAgent)
		return f.httpClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("fetching %s: empty body", url)
	}
	return data, nil
}
