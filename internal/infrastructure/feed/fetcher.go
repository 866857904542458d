package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/markethub/backend/internal/domain/catalog"
)

// Fetcher downloads partner feeds over HTTP with a bounded timeout and a
// cap on the response size.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewFetcher creates a feed fetcher
func NewFetcher(timeout time.Duration, maxBytes int64) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// Fetch downloads and parses the feed at the given URL
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*catalog.FeedDocument, error) {
	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("invalid feed URL %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed download returned status %d", resp.StatusCode)
	}

	// +1 so an oversized body is detectable
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("feed exceeds the %d byte limit", f.maxBytes)
	}

	return ParseBytes(body)
}
