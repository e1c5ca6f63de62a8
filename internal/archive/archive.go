// Package archive keeps transcripts of model extractions for later diagnosis.
package archive

import (
	"context"
	"fmt"
	"path"

	"github.com/rs/zerolog"

	"tripwise/internal/port"
)

// ObjectKey returns {prefix}/{kind}/{yyyy}/{mm}/{dd}/{requestID}.json for rec.
func ObjectKey(prefix string, rec *port.ExtractionRecord) string {
	t := rec.CreatedAt.UTC()
	return path.Join(
		prefix,
		rec.Kind,
		fmt.Sprintf("%04d", t.Year()),
		fmt.Sprintf("%02d", int(t.Month())),
		fmt.Sprintf("%02d", t.Day()),
		rec.RequestID+".json",
	)
}

// Noop discards records, logging them at debug level.
type Noop struct{}

// NewNoop returns an archive that stores nothing.
func NewNoop() *Noop { return &Noop{} }

func (Noop) Store(ctx context.Context, rec *port.ExtractionRecord) error {
	zerolog.Ctx(ctx).Debug().
		Str("kind", rec.Kind).
		Str("model", rec.Model).
		Int("response_bytes", len(rec.RawResponse)).
		Msg("extraction not archived")
	return nil
}
