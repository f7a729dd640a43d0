package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://docs.google.com"
	UserAgent      = "sheetsync/1.0 (github.com/kadresources/sheetsync)"
	Timeout        = 30 * time.Second
)

// Client fetches sheet tabs through the Google Sheets CSV export
type Client struct {
	client  *http.Client
	baseURL string
	sheetID string
}

// Option customizes a Client
type Option func(*Client)

// WithBaseURL points the client at another host, e.g. a test server.
// An empty value keeps DefaultBaseURL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// New creates a Client for the spreadsheet with the given document ID
func New(sheetID string, opts ...Option) *Client {
	c := &Client{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL: DefaultBaseURL,
		sheetID: sheetID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SheetID returns the spreadsheet document ID
func (c *Client) SheetID() string {
	return c.sheetID
}

// BaseURL returns the host the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ExportURL returns the CSV export URL for a sheet tab
func (c *Client) ExportURL(sheet string) string {
	params := url.Values{}
	params.Set("tqx", "out:csv")
	params.Set("sheet", sheet)
	return fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq?%s", c.baseURL, url.PathEscape(c.sheetID), params.Encode())
}

// Rows fetches and parses one sheet tab
func (c *Client) Rows(ctx context.Context, sheet string) ([][]string, error) {
	body, err := c.Fetch(ctx, sheet)
	if err != nil {
		return nil, err
	}
	return ParseCSV(strings.NewReader(body))
}

// Fetch returns the raw CSV export body of a sheet tab
func (c *Client) Fetch(ctx context.Context, sheet string) (string, error) {
	return c.Get(ctx, c.ExportURL(sheet))
}

// Get performs a GET with the client's user agent and returns the body.
// Any status other than 200 is an error.
func (c *Client) Get(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	return string(data), nil
}
