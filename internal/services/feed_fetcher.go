package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const feedFetchTimeout = 15 * time.Second

// FetchResult carries the raw feed response before any decoding.
type FetchResult struct {
	Status          int
	ContentType     string
	ContentEncoding string
	Body            []byte
}

// FeedFetcher performs a single bounded GET against the configured price
// feed. Redirects are followed; the body is returned undecoded together
// with the declared content type and encoding.
type FeedFetcher struct {
	client     *http.Client
	url        string
	authHeader string
	cookie     string
	limiter    *rate.Limiter
}

func NewFeedFetcher(url, authHeader, cookie string) *FeedFetcher {
	return &FeedFetcher{
		client: &http.Client{
			Timeout: feedFetchTimeout,
		},
		url:        url,
		authHeader: authHeader,
		cookie:     cookie,
		// One fetch per 5s with a small burst. The feed publishes daily;
		// this only guards against probe/sync/cron piling up.
		limiter: rate.NewLimiter(rate.Every(5*time.Second), 2),
	}
}

// URL returns the configured feed URL.
func (f *FeedFetcher) URL() string {
	return f.url
}

// Fetch retrieves the feed once. Any transport failure, including a
// non-2xx status, is returned as a *FetchError; the caller decides
// whether to try again on a later invocation.
func (f *FeedFetcher) Fetch(ctx context.Context) (*FetchResult, error) {
	if !f.limiter.Allow() {
		return nil, &FetchError{URL: f.url, Err: errors.New("fetch rate limit exceeded")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if f.authHeader != "" {
		req.Header.Set("Authorization", f.authHeader)
	}
	if f.cookie != "" {
		req.Header.Set("Cookie", f.cookie)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: f.url, Status: resp.StatusCode}
	}

	return &FetchResult{
		Status:          resp.StatusCode,
		ContentType:     resp.Header.Get("Content-Type"),
		ContentEncoding: resp.Header.Get("Content-Encoding"),
		Body:            body,
	}, nil
}
