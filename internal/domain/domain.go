package domain

import "net/url"

// Mode selects how a fetched page is rewritten before it is re-served.
type Mode string

const (
	ModeOriginal   Mode = "original"
	ModeSimplified Mode = "simplified"
	ModeTranslated Mode = "translated"
	ModeDyslexia   Mode = "dyslexia"
)

// ParseMode maps a query-parameter value to a Mode. An empty value falls back
// to ModeSimplified.
func ParseMode(raw string) (Mode, bool) {
	switch Mode(raw) {
	case ModeOriginal, ModeSimplified, ModeTranslated, ModeDyslexia:
		return Mode(raw), true
	case "":
		return ModeSimplified, true
	default:
		return "", false
	}
}

type TransformRequest struct {
	TargetURL *url.URL
	Mode      Mode
}

type SummaryResult struct {
	Bullets     []string `json:"bullets"`
	ReadingTime string   `json:"readingTime"`
}
