package transform

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// normalizeBase makes relative links and assets in the re-served document
// resolve against the origin site instead of the gateway. Any pre-existing
// <base> is dropped and a fresh one is prepended as the first head child.
func normalizeBase(doc *goquery.Document, targetURL string) {
	doc.Find("head base").Remove()

	if doc.Find("head").Length() == 0 {
		doc.Find("html").PrependHtml("<head></head>")
	}

	doc.Find("head").PrependHtml(
		fmt.Sprintf(`<base href="%s">`, html.EscapeString(baseHref(targetURL))),
	)
}

// baseHref is the target URL itself when it names a directory, otherwise the
// URL truncated to its last slash.
func baseHref(targetURL string) string {
	if strings.HasSuffix(targetURL, "/") {
		return targetURL
	}

	idx := strings.LastIndex(targetURL, "/")
	if idx == -1 {
		return targetURL
	}

	return targetURL[:idx+1]
}
