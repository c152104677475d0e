// Package transform implements the page-rewriting pipeline: fetch, base-URL
// correction, script stripping, noise removal, selective text rewriting
// through the completion service, and re-injection of the accessibility
// controller. The fetched document is owned by a single request and never
// outlives it.
package transform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"equinet/internal/completion"
	"equinet/internal/domain"
	"equinet/internal/fetcher"
)

type Transformer struct {
	fetcher    *fetcher.Fetcher
	completion completion.Client
	log        *slog.Logger
}

func New(
	f *fetcher.Fetcher,
	c completion.Client,
	log *slog.Logger,
) *Transformer {
	return &Transformer{
		fetcher:    f,
		completion: c,
		log:        log,
	}
}

// Transform fetches the target page and rewrites it for the requested mode,
// returning the serialized HTML. Only fetch-stage failures are returned as
// errors; rewrite failures degrade to the original text (with a notice
// banner in simplified mode) because a partially-transformed page is still a
// usable page.
func (t *Transformer) Transform(
	ctx context.Context,
	req domain.TransformRequest,
) (string, error) {
	targetURL := req.TargetURL.String()

	doc, err := t.fetcher.FetchDocument(ctx, targetURL)
	if err != nil {
		return "", fmt.Errorf("fetch document: %w", err)
	}

	normalizeBase(doc, targetURL)
	stripScripts(doc)

	if req.Mode == domain.ModeOriginal {
		return t.finish(ctx, doc, targetURL)
	}

	t.removeNoise(ctx, doc, targetURL)

	if req.Mode == domain.ModeDyslexia {
		appendModeStyle(doc, domain.ModeDyslexia)
		return t.finish(ctx, doc, targetURL)
	}

	candidates := collectCandidates(doc)
	if len(candidates) == 0 {
		t.log.InfoContext(ctx, "No rewrite candidates, skipping completion",
			"targetURL", targetURL,
			"mode", req.Mode)

		return t.finish(ctx, doc, targetURL)
	}

	if rewriteErr := t.rewrite(ctx, candidates, req.Mode); rewriteErr != nil {
		t.log.ErrorContext(ctx, "Rewrite failed, serving original text",
			"error", rewriteErr,
			"targetURL", targetURL,
			"mode", req.Mode,
			"candidateCount", len(candidates))

		if req.Mode == domain.ModeSimplified {
			prependNoticeBanner(doc)
		}
	}

	appendModeStyle(doc, req.Mode)

	return t.finish(ctx, doc, targetURL)
}

// finish injects the accessibility controller and serializes the document.
func (t *Transformer) finish(
	ctx context.Context,
	doc *goquery.Document,
	targetURL string,
) (string, error) {
	injectControllerScript(doc)

	html, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("serialize document: %w", err)
	}

	t.log.InfoContext(ctx, "Document transformed",
		"targetURL", targetURL,
		"bytes", len(html))

	return html, nil
}
