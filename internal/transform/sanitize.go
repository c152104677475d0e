package transform

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// noiseSelectors is the denylist of structural chrome and junk removed for
// every mode except original: navigation, cookie/GDPR banners, popups,
// overlays and ad containers, matched by tag, class or id substring, or
// ARIA role.
var noiseSelectors = []string{
	"nav", "header", "footer", "aside",
	".cookie-banner", ".cookie-notice", ".gdpr", "#cookie",
	".popup", ".modal", ".overlay",
	".ad", ".ads", ".advertisement",
	`[class*="cookie"]`, `[class*="popup"]`, `[class*="banner"]`, `[id*="cookie"]`,
	`[role="banner"]`, `[role="navigation"]`,
}

// stripScripts removes executable content unconditionally. The gateway must
// never re-serve remote script, whatever the mode.
func stripScripts(doc *goquery.Document) {
	doc.Find("script").Remove()
	doc.Find("noscript").Remove()
}

// removeNoise applies the denylist one selector at a time. A selector that
// fails to compile is logged and skipped; the rest of the list still runs.
func (t *Transformer) removeNoise(
	ctx context.Context,
	doc *goquery.Document,
	targetURL string,
) {
	for _, selector := range noiseSelectors {
		matcher, err := cascadia.Compile(selector)
		if err != nil {
			t.log.WarnContext(ctx, "Skipping invalid noise selector",
				"error", err,
				"selector", selector,
				"targetURL", targetURL)

			continue
		}

		doc.FindMatcher(matcher).Remove()
	}
}
