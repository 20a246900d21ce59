package pagefetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/outfit-advisor/internal/domain/analyzer"
)

// Options configures a Client.
type Options struct {
	Timeout      time.Duration
	MaxRedirects int
	UserAgent    string
	MaxBytes     int64
}

// Client fetches product pages over HTTP.
type Client struct {
	userAgent  string
	maxBytes   int64
	httpClient *http.Client
}

var _ analyzer.PageFetcher = (*Client)(nil)

// NewClient builds a page client.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 5 << 20
	}
	maxRedirects := opts.MaxRedirects
	return &Client{
		userAgent: strings.TrimSpace(opts.UserAgent),
		maxBytes:  opts.MaxBytes,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
	}
}

// Fetch retrieves target. Any non-2xx status is an error.
func (c *Client) Fetch(ctx context.Context, target *url.URL) (analyzer.Page, error) {
	if target == nil {
		return analyzer.Page{}, errors.New("page url is required")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return analyzer.Page{}, fmt.Errorf("build page request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return analyzer.Page{}, fmt.Errorf("page request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return analyzer.Page{}, fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return analyzer.Page{}, fmt.Errorf("read page: %w", err)
	}

	// Redirects change the base for relative links.
	final := target
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL
	}
	return analyzer.Page{URL: final, HTML: body}, nil
}
