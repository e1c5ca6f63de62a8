// Package extract turns free-form model output into validated records.
//
// The extractor is deliberately naive: it takes the span from the first '{'
// to the last '}' and hands it to encoding/json. It does not repair
// malformed JSON and does not try a second candidate span.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Record is a parsed JSON object. It lives for a single request.
type Record = map[string]interface{}

// ErrEmptyText is returned by Normalize when nothing usable remains.
var ErrEmptyText = errors.New("text is empty")

// ExtractionError means the response contained no '{' ... '}' span.
type ExtractionError struct {
	Response string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("no JSON object found in model response (raw: %s)", truncate(e.Response, 200))
}

// ParseError means the brace span was not valid JSON.
type ParseError struct {
	Span string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing extracted JSON: %v (span: %s)", e.Err, truncate(e.Span, 200))
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Normalize strips NUL bytes and surrounding whitespace from OCR or model text.
func Normalize(text string) (string, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, "\x00", ""))
	if cleaned == "" {
		return "", ErrEmptyText
	}
	return cleaned, nil
}

// Span returns the substring from the first '{' to the last '}' inclusive.
func Span(resp string) (string, bool) {
	start := strings.Index(resp, "{")
	end := strings.LastIndex(resp, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return resp[start : end+1], true
}

// JSON locates the outermost brace span in resp and parses it as an object.
func JSON(resp string) (Record, error) {
	span, ok := Span(resp)
	if !ok {
		return nil, &ExtractionError{Response: resp}
	}

	var rec Record
	if err := json.Unmarshal([]byte(span), &rec); err != nil {
		return nil, &ParseError{Span: span, Err: err}
	}
	return rec, nil
}

// Decode re-encodes rec into the typed value pointed to by v.
func Decode(rec Record, v interface{}) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
