package llm

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// ErrEmptyCompletion means the provider answered but returned no text.
var ErrEmptyCompletion = errors.New("empty completion from language model")

// APIError is a non-200 answer from a provider.
type APIError struct {
	Provider string
	Status   int
	Body     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.Status, Truncate(e.Body, 500))
}

// Truncate shortens s to at most maxLen bytes for logging without splitting a rune.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// Timeout converts a seconds setting to a client timeout, defaulting to 120s.
func Timeout(secs int) time.Duration {
	if secs <= 0 {
		return 120 * time.Second
	}
	return time.Duration(secs) * time.Second
}
