// Package source reads the static inputs of the deck: the player list, the
// price table and the club logo map. Each location is either a file path or
// an http(s) URL.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultTimeout = 20 * time.Second
	errBodyLimit   = 4096
)

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the client used for http(s) locations.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithTimeout bounds each fetch.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// Loader fetches and decodes sources.
type Loader struct {
	client  *http.Client
	timeout time.Duration
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		client:  http.DefaultClient,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// read returns the full body at loc.
func (l *Loader) read(ctx context.Context, loc string) ([]byte, error) {
	loc = strings.TrimSpace(loc)
	if loc == "" {
		return nil, ErrEmptyLocation
	}
	if !isURL(loc) {
		b, err := os.ReadFile(loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetch, err)
		}
		return b, nil
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	res, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, errBodyLimit))
		return nil, fmt.Errorf("%w: %s: status %d body=%q", ErrFetch, loc, res.StatusCode, string(body))
	}
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return b, nil
}

func isURL(loc string) bool {
	l := strings.ToLower(loc)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}
