// Package fetcher retrieves third-party webpages over HTTP(S) and parses
// them into queryable documents. Every failure class the transform surface
// must render differently (unreachable site, non-HTML resource, timeout) is
// exposed as a distinct error so handlers can pick the right response.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	acceptHeader         = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptLanguageHeader = "en-US,en;q=0.9"
)

// ErrNotHTML is returned when the target responds with a content type that
// does not indicate an HTML document (a PDF, an image, a JSON API).
var ErrNotHTML = errors.New("target is not an HTML document")

// StatusError is returned when the target responds with a non-2xx status.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %s", e.Status)
}

type Fetcher struct {
	client *http.Client
	log    *slog.Logger
}

// New builds a fetcher whose every request is bounded by timeout.
func New(timeout time.Duration, log *slog.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// FetchDocument performs one GET against targetURL and parses the body into
// a document. Redirects are followed; there are no retries.
func (f *Fetcher) FetchDocument(
	ctx context.Context,
	targetURL string,
) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguageHeader)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			f.log.ErrorContext(ctx, "Failed to close response body",
				"error", closeErr,
				"targetURL", targetURL)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTMLContentType(contentType) {
		return nil, fmt.Errorf("content type %q: %w", contentType, ErrNotHTML)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("create document from reader: %w", err)
	}

	return doc, nil
}

// isHTMLContentType mirrors the loose check browsers get away with: any
// content type mentioning "html" is treated as a webpage.
func isHTMLContentType(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "html")
}

// IsTimeout reports whether err was caused by the fetch deadline expiring
// rather than by the target refusing or mishandling the request.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
