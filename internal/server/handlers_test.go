package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"equinet/internal/domain"
	"equinet/internal/fetcher"
)

type stubTransformer struct {
	mu   sync.Mutex
	last domain.TransformRequest
	html string
	err  error
}

func (s *stubTransformer) Transform(
	_ context.Context,
	req domain.TransformRequest,
) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = req

	if s.err != nil {
		return "", s.err
	}

	return s.html, nil
}

func (s *stubTransformer) lastRequest() domain.TransformRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.last
}

type stubSummarizer struct {
	result domain.SummaryResult
}

func (s *stubSummarizer) Summarize(_ context.Context, _ string) domain.SummaryResult {
	return s.result
}

func newTestServer(transformer Transformer, summarizer Summarizer) *httptest.Server {
	s := New(":0", transformer, summarizer, slog.Default())

	return httptest.NewServer(s.httpServer.Handler)
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	return resp, string(body)
}

func TestTransformMissingURL(t *testing.T) {
	srv := newTestServer(&stubTransformer{html: "<html></html>"}, &stubSummarizer{})
	defer srv.Close()

	resp, _ := get(t, srv.URL+"/transform")

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestTransformRejectsNonHTTPScheme(t *testing.T) {
	srv := newTestServer(&stubTransformer{html: "<html></html>"}, &stubSummarizer{})
	defer srv.Close()

	resp, body := get(t, srv.URL+"/transform?url=ftp%3A%2F%2Fexample.com%2Ffile")

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	if !strings.Contains(body, "Invalid URL") {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestTransformRejectsUnknownMode(t *testing.T) {
	srv := newTestServer(&stubTransformer{html: "<html></html>"}, &stubSummarizer{})
	defer srv.Close()

	resp, _ := get(t, srv.URL+"/transform?url=https%3A%2F%2Fexample.com%2F&mode=loud")

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestTransformDefaultsToSimplified(t *testing.T) {
	stub := &stubTransformer{html: "<html><body>done</body></html>"}
	srv := newTestServer(stub, &stubSummarizer{})
	defer srv.Close()

	resp, _ := get(t, srv.URL+"/transform?url=https%3A%2F%2Fexample.com%2F")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if got := stub.lastRequest().Mode; got != domain.ModeSimplified {
		t.Fatalf("expected default mode simplified, got %q", got)
	}
}

func TestTransformSetsFrameAndCacheHeaders(t *testing.T) {
	srv := newTestServer(&stubTransformer{html: "<html><body>done</body></html>"}, &stubSummarizer{})
	defer srv.Close()

	resp, _ := get(t, srv.URL+"/transform?url=https%3A%2F%2Fexample.com%2F&mode=original")

	if got := resp.Header.Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Fatalf("unexpected X-Frame-Options: %q", got)
	}

	if got := resp.Header.Get("Cache-Control"); got != "no-store, max-age=0" {
		t.Fatalf("unexpected Cache-Control: %q", got)
	}

	if got := resp.Header.Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("unexpected Content-Type: %q", got)
	}
}

func TestTransformRecoversURLFromPastedText(t *testing.T) {
	stub := &stubTransformer{html: "<html></html>"}
	srv := newTestServer(stub, &stubSummarizer{})
	defer srv.Close()

	resp, _ := get(t, srv.URL+"/transform?url="+
		"check%20this%20out%3A%20https%3A%2F%2Fexample.com%2Fstory%20amazing")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if got := stub.lastRequest().TargetURL.String(); got != "https://example.com/story" {
		t.Fatalf("expected recovered URL, got %q", got)
	}
}

func TestTransformFetchFailuresRenderErrorPages(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "upstream status",
			err:  fmt.Errorf("fetch document: %w", &fetcher.StatusError{Code: 503, Status: "503 Service Unavailable"}),
			want: "Could not reach that website (503 Service Unavailable)",
		},
		{
			name: "not a webpage",
			err:  fmt.Errorf("fetch document: %w", fetcher.ErrNotHTML),
			want: "doesn't appear to be a webpage",
		},
		{
			name: "timeout",
			err:  fmt.Errorf("fetch document: %w", context.DeadlineExceeded),
			want: "took too long to respond",
		},
		{
			name: "generic",
			err:  errors.New("serialize document: boom"),
			want: "Something went wrong",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(&stubTransformer{err: tc.err}, &stubSummarizer{})
			defer srv.Close()

			resp, body := get(t, srv.URL+"/transform?url=https%3A%2F%2Fexample.com%2F")

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("error pages must keep the frame stable with 200, got %d", resp.StatusCode)
			}

			if !strings.Contains(body, "Page Could Not Be Loaded") {
				t.Fatalf("expected error card, got %q", body)
			}

			if !strings.Contains(body, tc.want) {
				t.Fatalf("expected %q in body, got %q", tc.want, body)
			}
		})
	}
}

func TestSummaryMissingURL(t *testing.T) {
	srv := newTestServer(&stubTransformer{}, &stubSummarizer{})
	defer srv.Close()

	resp, _ := get(t, srv.URL+"/summary")

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSummaryReturnsResultJSON(t *testing.T) {
	srv := newTestServer(&stubTransformer{}, &stubSummarizer{
		result: domain.SummaryResult{
			Bullets:     []string{"one", "two"},
			ReadingTime: "~3 min",
		},
	})
	defer srv.Close()

	resp, body := get(t, srv.URL+"/summary?url=https%3A%2F%2Fexample.com%2F")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result domain.SummaryResult
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}

	if len(result.Bullets) != 2 || result.ReadingTime != "~3 min" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestParseTargetURL(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"https://example.com/page", "https://example.com/page", true},
		{"http://example.com", "http://example.com", true},
		{"  https://example.com/page  ", "https://example.com/page", true},
		{"read this https://example.com/story now", "https://example.com/story", true},
		{"ftp://example.com/file", "", false},
		{"javascript:alert(1)", "", false},
		{"not a url at all", "", false},
		{"/relative/path", "", false},
	}

	for _, tc := range cases {
		u, ok := parseTargetURL(tc.raw)
		if ok != tc.ok {
			t.Fatalf("parseTargetURL(%q) ok = %v, want %v", tc.raw, ok, tc.ok)
		}

		if ok && u.String() != tc.want {
			t.Fatalf("parseTargetURL(%q) = %q, want %q", tc.raw, u.String(), tc.want)
		}
	}
}
