// Package ocr detects text in receipt images.
package ocr

import "errors"

// ErrNoText means the detector found no text in the image.
var ErrNoText = errors.New("no text detected in image")
