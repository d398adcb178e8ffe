package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	feedAccept = "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.9, */*;q=0.8"
	pageAccept = "text/html, application/xhtml+xml;q=0.9"

	maxBodySize = 10 << 20
)

type FetcherConfig struct {
	UserAgent    string
	Timeout      time.Duration
	Attempts     uint
	HostInterval time.Duration
}

// Fetcher downloads feed documents and article pages.
type Fetcher struct {
	httpClient *http.Client
	limiter    *HostLimiter
	cfg        FetcherConfig
}

type statusError struct {
	code   int
	status string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP error: %s", e.status)
}

func NewFetcher(httpClient *http.Client, cfg FetcherConfig) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	if cfg.Attempts == 0 {
		cfg.Attempts = 1
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "AI Hub News/1.0"
	}

	return &Fetcher{
		httpClient: httpClient,
		limiter:    NewHostLimiter(cfg.HostInterval),
		cfg:        cfg,
	}
}

// Run fetches the feed document of source. Failures are *SourceFetchError.
func (f *Fetcher) Run(ctx context.Context, source Source) ([]byte, error) {
	data, err := f.fetchWithRetry(ctx, source.URL, feedAccept, "")
	if err != nil {
		return nil, wrapFetchError(source.Key, err)
	}
	return data, nil
}

// Page fetches an HTML article page linked from an entry of source.
func (f *Fetcher) Page(ctx context.Context, source Source, link string) ([]byte, error) {
	data, err := f.fetchWithRetry(ctx, link, pageAccept, "text/html")
	if err != nil {
		return nil, wrapFetchError(source.Key, err)
	}
	return data, nil
}

func (f *Fetcher) fetchWithRetry(ctx context.Context, url, accept, wantType string) ([]byte, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	bo.MaxInterval = 2 * time.Second

	operation := func() ([]byte, error) {
		data, err := f.fetch(ctx, url, accept, wantType)
		if err == nil {
			return data, nil
		}

		var httpErr *statusError
		if errors.As(err, &httpErr) && !retryableStatus(httpErr.code) {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(f.cfg.Attempts),
		backoff.WithMaxElapsedTime(f.cfg.Timeout*time.Duration(f.cfg.Attempts)))
}

func (f *Fetcher) fetch(ctx context.Context, url, accept, wantType string) ([]byte, error) {
	if err := f.limiter.Wait(ctx, url); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("rate limiting failed: %w", err))
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", accept)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, &statusError{code: resp.StatusCode, status: resp.Status}
	}

	if wantType != "" {
		contentType := resp.Header.Get("Content-Type")
		if !strings.Contains(strings.ToLower(contentType), wantType) {
			return nil, backoff.Permanent(fmt.Errorf("unexpected content type: %s", contentType))
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

func retryableStatus(code int) bool {
	return code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
}

func wrapFetchError(sourceKey string, err error) error {
	fetchErr := &SourceFetchError{Source: sourceKey, Err: err}

	var httpErr *statusError
	if errors.As(err, &httpErr) {
		fetchErr.StatusCode = httpErr.code
	}

	return fetchErr
}
