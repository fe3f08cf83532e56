// Package fetch resolves display metadata for evidence links. It fetches a
// page and reads its title so an attached link gets a human-readable name
// without the candidate typing one.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds a single metadata fetch.
const DefaultTimeout = 10 * time.Second

// defaultUserAgent identifies the engine to fetched sites.
const defaultUserAgent = "Mozilla/5.0 (compatible; TalentOnboarding/1.0)"

// maxConcurrentFetches bounds parallel metadata lookups.
const maxConcurrentFetches = 4

// Error represents a failure fetching link metadata.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("link fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("link fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// LinkMeta is the resolved metadata for one link.
type LinkMeta struct {
	URL   string
	Title string
}

// Client fetches link metadata over HTTP.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient creates a metadata client with the default timeout.
func NewClient() *Client {
	return &Client{
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: defaultUserAgent,
	}
}

// Title fetches the page at rawURL and returns its title. When the page has
// no title the host name stands in, so the caller always gets a usable
// display name.
func (c *Client) Title(ctx context.Context, rawURL string) (LinkMeta, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return LinkMeta{}, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return LinkMeta{}, &Error{URL: rawURL, Message: "failed to build request", Cause: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return LinkMeta{}, &Error{URL: rawURL, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return LinkMeta{}, &Error{URL: rawURL, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return LinkMeta{}, &Error{URL: rawURL, Message: "failed to parse HTML", Cause: err}
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = parsed.Host
	}
	return LinkMeta{URL: rawURL, Title: title}, nil
}

// Titles resolves metadata for several links concurrently. Order of the
// result matches the input; a failed lookup falls back to the URL host
// rather than failing the batch.
func (c *Client) Titles(ctx context.Context, rawURLs []string) []LinkMeta {
	out := make([]LinkMeta, len(rawURLs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, rawURL := range rawURLs {
		g.Go(func() error {
			meta, err := c.Title(gCtx, rawURL)
			if err != nil {
				meta = LinkMeta{URL: rawURL, Title: hostOrURL(rawURL)}
			}
			out[i] = meta
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func hostOrURL(rawURL string) string {
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Host != "" {
		return parsed.Host
	}
	return rawURL
}
