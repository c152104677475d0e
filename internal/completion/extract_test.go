package completion

import (
	"errors"
	"testing"
)

func TestExtractJSONObjectStripsCodeFences(t *testing.T) {
	raw := "Here is the result:\n```json\n{\"0\":\"a\",\"1\":\"b\"}\n```\nThanks!"

	got, err := ExtractJSONObject(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != `{"0":"a","1":"b"}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSONObjectBareObject(t *testing.T) {
	got, err := ExtractJSONObject(`{"bullets": ["one"], "readingTime": "~1 min"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != `{"bullets": ["one"], "readingTime": "~1 min"}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSONObjectNestedBraces(t *testing.T) {
	got, err := ExtractJSONObject(`prose before {"a": {"b": {"c": 1}}} prose after`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != `{"a": {"b": {"c": 1}}}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSONObjectFenceWithoutLanguageTag(t *testing.T) {
	raw := "```\n{\"k\":\"v\"}\n```"

	got, err := ExtractJSONObject(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != `{"k":"v"}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSONObjectNoObject(t *testing.T) {
	if _, err := ExtractJSONObject("the model refused to answer"); !errors.Is(err, ErrNoJSONObject) {
		t.Fatalf("expected ErrNoJSONObject, got %v", err)
	}
}

func TestExtractJSONObjectUnterminated(t *testing.T) {
	if _, err := ExtractJSONObject(`{"a": {"b": 1}`); !errors.Is(err, ErrUnterminatedObject) {
		t.Fatalf("expected ErrUnterminatedObject, got %v", err)
	}
}
