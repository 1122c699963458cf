package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// HTTPConfig holds configuration for the HTTP fetcher.
type HTTPConfig struct {
	// Client is the underlying HTTP client. When nil, http.DefaultClient is
	// used. Any transport-level timeout belongs to this client; the fetcher
	// itself only honours the deadline on the incoming context.
	Client *http.Client
	// UserAgent is sent with every request when non-empty.
	UserAgent string
}

// HTTPFetcher retrieves resource bytes over HTTP(S).
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	logger    zerolog.Logger
}

// NewHTTPFetcher creates a fetcher backed by the configured HTTP client.
func NewHTTPFetcher(cfg *HTTPConfig, logger zerolog.Logger) *HTTPFetcher {
	client := http.DefaultClient
	userAgent := ""
	if cfg != nil {
		if cfg.Client != nil {
			client = cfg.Client
		}
		userAgent = cfg.UserAgent
	}
	return &HTTPFetcher{
		client:    client,
		userAgent: userAgent,
		logger:    logger.With().Str("component", "HTTPFetcher").Logger(),
	}
}

// Fetch issues a GET against url and returns the response body.
// A 404 response maps to ErrNotFound; any other non-2xx status is an error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Error().Err(err).Str("url", url).Msg("HTTP request failed.")
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		f.logger.Warn().Str("url", url).Msg("Remote resource not found.")
		return nil, fmt.Errorf("fetching %s: %w", url, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Error().Int("status", resp.StatusCode).Str("url", url).Msg("Unexpected HTTP status.")
		return nil, fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body of %s: %w", url, err)
	}

	f.logger.Debug().Str("url", url).Int("bytes", len(body)).Msg("Fetched remote resource.")
	return body, nil
}

// Close releases idle connections held by the underlying client.
func (f *HTTPFetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
