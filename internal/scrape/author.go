// Package scrape extracts post authors from linked blog pages.
package scrape

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"blogpulse/internal/util"
)

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	// authorSelector marks the single canonical author link on a post page.
	authorSelector = `a[rel="author"]`
	// obfuscationMarker appears when the host replaces an email-only author
	// name with an inline script fragment. The real name survives in the
	// anchor's title attribute.
	obfuscationMarker = "document.write"
	// obfuscationMinLen is the anchor-text length above which the marker
	// check applies; plain names never get near it.
	obfuscationMinLen = 100

	maxBodyBytes = 5 * 1024 * 1024
)

// Scraper fetches post pages one at a time. The crawl is deliberately
// sequential and rate-limited out of courtesy to the scraped server;
// throughput is explicitly not a goal.
type Scraper struct {
	client    HTTPClient
	limiter   *rate.Limiter
	userAgent string
}

// New creates a Scraper. rps/burst bound the crawl pace.
func New(client HTTPClient, rps float64, burst int, userAgent string) *Scraper {
	if rps <= 0 {
		rps = 0.5
	}
	if burst <= 0 {
		burst = 1
	}
	return &Scraper{
		client:    client,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
		userAgent: userAgent,
	}
}

// NewDefault creates a Scraper with its own HTTP client.
func NewDefault(rps float64, burst int, timeout time.Duration, userAgent string) *Scraper {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return New(&http.Client{Timeout: timeout}, rps, burst, userAgent)
}

// Author fetches url and returns the post author's name, or "" when the
// page has no single canonical author. Network failures, error statuses,
// and unexpected markup all resolve to "" so one bad page never aborts
// the batch; the caller drops authorless records later.
func (s *Scraper) Author(ctx context.Context, url string) string {
	if url == "" {
		return ""
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return ""
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", s.userAgent)
	resp, err := s.client.Do(req)
	if err != nil {
		return ""
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return ""
	}
	return extractAuthor(doc)
}

// extractAuthor applies the markup rules: exactly one rel=author anchor,
// with the title-attribute fallback for script-obfuscated names.
func extractAuthor(doc *goquery.Document) string {
	sel := doc.Find(authorSelector)
	if sel.Length() != 1 {
		// Zero anchors is normal for non-post pages such as job
		// listings; multiple anchors is ambiguous. Both mean no author.
		return ""
	}
	name := util.NormalizeWhitespace(sel.Text())
	if len(name) > obfuscationMinLen && strings.Contains(name, obfuscationMarker) {
		name = util.NormalizeWhitespace(sel.AttrOr("title", ""))
	}
	return name
}
