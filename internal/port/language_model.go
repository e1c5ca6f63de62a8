package port

import "context"

// CompletionRequest carries a single-turn prompt and its sampling limits.
type CompletionRequest struct {
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Completion is the raw text returned by a language model.
type Completion struct {
	Text  string
	Model string
}

// LanguageModel abstracts a text-completion provider.
type LanguageModel interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}
