package port

import (
	"context"
	"time"
)

// ExtractionRecord is the transcript of one model extraction, kept for diagnosis.
type ExtractionRecord struct {
	Kind        string    `json:"kind"`
	RequestID   string    `json:"request_id"`
	CallerID    string    `json:"caller_id"`
	Model       string    `json:"model"`
	Prompt      string    `json:"prompt"`
	RawResponse string    `json:"raw_response"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExtractionArchive stores extraction transcripts.
type ExtractionArchive interface {
	Store(ctx context.Context, rec *ExtractionRecord) error
}
