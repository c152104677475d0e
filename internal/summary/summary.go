// Package summary is the best-effort sibling pipeline: fetch the target,
// sample its text, and ask the completion service for a three-bullet
// overview plus a reading-time estimate. It never surfaces a hard failure;
// every problem degrades to an empty result.
package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"equinet/internal/completion"
	"equinet/internal/domain"
	"equinet/internal/fetcher"
)

const (
	textSelectors  = "h1, h2, h3, h4, p, li, blockquote"
	noiseSelectors = "nav, header, footer, aside, script, noscript, style, .cookie-banner, .modal, .ad"

	// sampleLimit keeps the prompt inside the summary token budget; three
	// bullets do not need the whole page.
	sampleLimit    = 6000
	minSampleRunes = 100
	maxBullets     = 3
	summaryTokens  = 512
	wordsPerMinute = 200
)

// modelReply is the shape the summary prompt demands back from the model.
type modelReply struct {
	Bullets     []string `json:"bullets"`
	ReadingTime string   `json:"readingTime"`
}

type Summarizer struct {
	fetcher    *fetcher.Fetcher
	completion completion.Client
	log        *slog.Logger
}

func New(
	f *fetcher.Fetcher,
	c completion.Client,
	log *slog.Logger,
) *Summarizer {
	return &Summarizer{
		fetcher:    f,
		completion: c,
		log:        log,
	}
}

// Summarize fetches targetURL and produces at most three bullet sentences
// plus an estimated reading time. All failures, including an unreachable
// target and garbage model output, yield the empty result.
func (s *Summarizer) Summarize(
	ctx context.Context,
	targetURL string,
) domain.SummaryResult {
	empty := domain.SummaryResult{Bullets: []string{}, ReadingTime: ""}

	doc, err := s.fetcher.FetchDocument(ctx, targetURL)
	if err != nil {
		s.log.WarnContext(ctx, "Summary fetch failed",
			"error", err,
			"targetURL", targetURL)

		return empty
	}

	doc.Find(noiseSelectors).Remove()

	var b strings.Builder
	doc.Find(textSelectors).Each(func(_ int, sel *goquery.Selection) {
		b.WriteString(sel.Text())
		b.WriteString("\n")
	})
	fullText := b.String()

	sample := truncateRunes(fullText, sampleLimit)
	if len([]rune(strings.TrimSpace(sample))) < minSampleRunes {
		s.log.InfoContext(ctx, "Text sample too short to summarize",
			"targetURL", targetURL,
			"sampleLength", len(sample))

		return empty
	}

	readingTime := estimateReadingTime(fullText)

	raw, err := s.completion.Complete(ctx, buildPrompt(sample, readingTime), summaryTokens)
	if err != nil {
		s.log.WarnContext(ctx, "Summary completion failed",
			"error", err,
			"targetURL", targetURL)

		return empty
	}

	extracted, err := completion.ExtractJSONObject(raw)
	if err != nil {
		s.log.WarnContext(ctx, "Summary response had no JSON object",
			"error", err,
			"targetURL", targetURL)

		return empty
	}

	var parsed modelReply
	if err := json.Unmarshal([]byte(extracted), &parsed); err != nil {
		s.log.WarnContext(ctx, "Summary response was not valid JSON",
			"error", err,
			"targetURL", targetURL)

		return empty
	}

	bullets := parsed.Bullets
	if bullets == nil {
		bullets = []string{}
	}
	if len(bullets) > maxBullets {
		bullets = bullets[:maxBullets]
	}

	resultReadingTime := strings.TrimSpace(parsed.ReadingTime)
	if resultReadingTime == "" {
		resultReadingTime = readingTime
	}

	return domain.SummaryResult{
		Bullets:     bullets,
		ReadingTime: resultReadingTime,
	}
}

func buildPrompt(sample, readingTime string) string {
	return fmt.Sprintf(`You must respond with ONLY a raw JSON object — no markdown, no code fences, no explanation, no extra text.
Return exactly this structure: {"bullets": ["sentence one", "sentence two", "sentence three"], "readingTime": %q}

Rules:
- Exactly 3 bullet points
- Each bullet must be one clear sentence, under 20 words
- Use simple language (Grade 5 reading level)
- Focus on what the page is ACTUALLY about

Webpage text to summarise:
%s`, readingTime, sample)
}

// estimateReadingTime assumes 200 words per minute, rounding up, with a
// one-minute floor.
func estimateReadingTime(text string) string {
	wordCount := len(strings.Fields(text))

	minutes := (wordCount + wordsPerMinute - 1) / wordsPerMinute
	if minutes <= 1 {
		return "~1 min"
	}

	return fmt.Sprintf("~%d min", minutes)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}
