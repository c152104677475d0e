package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"mvdan.cc/xurls/v2"

	"equinet/internal/domain"
	"equinet/internal/fetcher"
)

// Transformer is the page pipeline as the HTTP layer sees it.
type Transformer interface {
	Transform(ctx context.Context, req domain.TransformRequest) (string, error)
}

// Summarizer never fails; a degraded result is still a result.
type Summarizer interface {
	Summarize(ctx context.Context, targetURL string) domain.SummaryResult
}

func (s *Server) handleTransform(transformer Transformer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("url")
		if strings.TrimSpace(raw) == "" {
			http.Error(w, "Missing URL", http.StatusBadRequest)
			return
		}

		targetURL, ok := parseTargetURL(raw)
		if !ok {
			http.Error(w, "Invalid URL", http.StatusBadRequest)
			return
		}

		mode, ok := domain.ParseMode(r.URL.Query().Get("mode"))
		if !ok {
			http.Error(w, "Invalid mode", http.StatusBadRequest)
			return
		}

		html, err := transformer.Transform(r.Context(), domain.TransformRequest{
			TargetURL: targetURL,
			Mode:      mode,
		})
		if err != nil {
			s.log.ErrorContext(r.Context(), "Transform failed",
				"error", err,
				"targetURL", targetURL.String(),
				"mode", mode)

			writeHTML(w, errorPage(errorMessage(err)))
			return
		}

		writeHTML(w, html)
	}
}

func (s *Server) handleSummary(summarizer Summarizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("url")
		if strings.TrimSpace(raw) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing URL"})
			return
		}

		targetURL, ok := parseTargetURL(raw)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid URL"})
			return
		}

		result := summarizer.Summarize(r.Context(), targetURL.String())
		writeJSON(w, http.StatusOK, result)
	}
}

// parseTargetURL accepts an absolute http(s) URL. Users paste whole
// sentences into URL boxes, so when the raw value is not itself a URL the
// first strict https match embedded in it is recovered instead.
func parseTargetURL(raw string) (*url.URL, bool) {
	trimmed := strings.TrimSpace(raw)

	if u, ok := parseAbsoluteURL(trimmed); ok {
		return u, true
	}

	httpsURLRe, err := xurls.StrictMatchingScheme("https://")
	if err != nil {
		return nil, false
	}

	if match := httpsURLRe.FindString(trimmed); match != "" {
		return parseAbsoluteURL(match)
	}

	return nil, false
}

func parseAbsoluteURL(raw string) (*url.URL, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, false
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, false
	}

	return u, true
}

// errorMessage maps a transform failure onto the human-readable copy shown
// inside the embedding frame. The raw error never reaches the reader except
// in the generic fallback, which carries no stack, only the message.
func errorMessage(err error) string {
	var statusErr *fetcher.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf(
			"Could not reach that website (%s). It may block automated access.",
			statusErr.Status,
		)
	}

	if errors.Is(err, fetcher.ErrNotHTML) {
		return "That URL doesn't appear to be a webpage (e.g. it might be a PDF)."
	}

	if fetcher.IsTimeout(err) {
		return "That website took too long to respond. Try a different URL."
	}

	return fmt.Sprintf("Something went wrong: %s", err.Error())
}

// writeHTML serves a transformed page. Caching is disabled because the
// document embeds per-request rewrites, and framing is restricted to the
// gateway's own origin.
func writeHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.Header().Set("X-Frame-Options", "SAMEORIGIN")
	_, _ = w.Write([]byte(html))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
