package port

import "context"

// TextDetector abstracts OCR over an encoded image.
type TextDetector interface {
	DetectText(ctx context.Context, image []byte) (string, error)
}
