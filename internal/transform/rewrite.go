package transform

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"equinet/internal/completion"
	"equinet/internal/domain"
)

const rewriteMaxTokens = 2048

const simplifyInstruction = `You must respond with ONLY a raw JSON object — no markdown, no code fences, no explanation, no extra text.
Rewrite every VALUE in the JSON object below so it reads at a 6th-grade level:
- Replace technical jargon with plain, everyday words
- Keep sentences short and clear
- Keep numbers and proper nouns exactly as-is
- Keep all JSON keys exactly the same
Example output format: {"0": "Simple text here", "1": "Simple text here"}

JSON to rewrite:`

const translateInstruction = `You must respond with ONLY a raw JSON object — no markdown, no code fences, no explanation, no extra text.
Translate every VALUE in the JSON object below into Tamil. Keep all JSON keys exactly the same.
Example output format: {"0": "Tamil text here", "1": "Tamil text here"}

JSON to translate:`

// rewrite batches the candidates into one indexed JSON payload, issues a
// single completion request, and writes the returned values back onto the
// matching nodes. Keys are strings end to end: numeric identity cannot be
// trusted to survive a round trip through a text model. A key missing from
// the reply, or mapped to a non-string, leaves that node's original text in
// place — partial success is success. Any error fails the whole batch and
// leaves every node untouched.
func (t *Transformer) rewrite(
	ctx context.Context,
	candidates []candidate,
	mode domain.Mode,
) error {
	batch := make(map[string]string, len(candidates))
	for _, c := range candidates {
		batch[strconv.Itoa(c.index)] = c.text
	}

	payload, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}

	instruction := simplifyInstruction
	if mode == domain.ModeTranslated {
		instruction = translateInstruction
	}

	raw, err := t.completion.Complete(
		ctx,
		instruction+"\n"+string(payload),
		rewriteMaxTokens,
	)
	if err != nil {
		return fmt.Errorf("complete: %w", err)
	}

	extracted, err := completion.ExtractJSONObject(raw)
	if err != nil {
		return fmt.Errorf("extract JSON object: %w", err)
	}

	var rewritten map[string]any
	if err := json.Unmarshal([]byte(extracted), &rewritten); err != nil {
		return fmt.Errorf("unmarshal rewritten batch: %w", err)
	}

	for _, c := range candidates {
		value, ok := rewritten[strconv.Itoa(c.index)]
		if !ok {
			continue
		}

		text, ok := value.(string)
		if !ok || text == "" {
			continue
		}

		c.selection.SetText(text)
	}

	return nil
}
