package transform

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	// textSelectors covers the content-bearing tags worth rewriting.
	textSelectors = "h1, h2, h3, h4, h5, h6, p, li, td, th, figcaption, blockquote, dt, dd"

	// minCandidateRunes filters out trivial fragments (icons, counters,
	// single-word labels) whose rewrite would only waste tokens.
	minCandidateRunes = 15

	// maxCandidates caps one completion request's payload. Batches beyond
	// this blow the token budget and the latency budget alike.
	maxCandidates = 50
)

// candidate is one text-bearing node selected for rewriting. Index is the
// node's position in the full extraction query result; surviving indices may
// be sparse, and they key the batch sent to the model, so they must never be
// renumbered between extraction and write-back.
type candidate struct {
	index     int
	text      string
	selection *goquery.Selection
}

// collectCandidates walks the content tags in document order, keeping nodes
// whose direct text (descendant element text excluded, so nested matches are
// not double-counted) is long enough, up to the batch cap.
func collectCandidates(doc *goquery.Document) []candidate {
	var candidates []candidate

	doc.Find(textSelectors).Each(func(i int, s *goquery.Selection) {
		if len(candidates) >= maxCandidates {
			return
		}

		text := strings.TrimSpace(directText(s))
		if utf8.RuneCountInString(text) <= minCandidateRunes {
			return
		}

		candidates = append(candidates, candidate{
			index:     i,
			text:      text,
			selection: s,
		})
	})

	return candidates
}

// directText concatenates the text children of the selection's nodes,
// excluding text inside descendant elements.
func directText(s *goquery.Selection) string {
	var b strings.Builder

	for _, node := range s.Nodes {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.TextNode {
				b.WriteString(child.Data)
			}
		}
	}

	return b.String()
}
