package completion

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrNoJSONObject means the model reply contains no opening brace at all.
	ErrNoJSONObject = errors.New("no JSON object found in model response")
	// ErrUnterminatedObject means brace depth never returned to zero.
	ErrUnterminatedObject = errors.New("unterminated JSON object in model response")

	codeFenceRe = regexp.MustCompile("(?m)^```(?:json)?[ \t]*|```[ \t]*$")
)

// ExtractJSONObject recovers the first {...} block from free-form model
// output. Models wrap answers in prose or markdown fences no matter how the
// prompt pleads, so fences are stripped first and then braces are counted
// byte-wise until depth returns to zero. Only the slice boundaries come from
// brace balance; whether the slice is valid JSON is the caller's problem.
func ExtractJSONObject(raw string) (string, error) {
	stripped := strings.TrimSpace(codeFenceRe.ReplaceAllString(raw, ""))

	start := strings.IndexByte(stripped, '{')
	if start == -1 {
		return "", ErrNoJSONObject
	}

	depth := 0
	for i := start; i < len(stripped); i++ {
		switch stripped[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return stripped[start : i+1], nil
			}
		}
	}

	return "", ErrUnterminatedObject
}
