package ocr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"tripwise/internal/port"
)

// CachedDetector memoizes successful detections by image digest. Entries are
// shared by every caller of the process, so it is only installed when
// ocr.cache_ttl is set.
type CachedDetector struct {
	next  port.TextDetector
	cache *cache.Cache
}

// NewCachedDetector wraps next with a cache whose entries expire after ttl.
func NewCachedDetector(next port.TextDetector, ttl time.Duration) *CachedDetector {
	return &CachedDetector{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (d *CachedDetector) DetectText(ctx context.Context, image []byte) (string, error) {
	sum := sha256.Sum256(image)
	key := hex.EncodeToString(sum[:])

	if v, found := d.cache.Get(key); found {
		zerolog.Ctx(ctx).Debug().Str("image_sha256", key).Msg("ocr cache hit")
		return v.(string), nil
	}

	text, err := d.next.DetectText(ctx, image)
	if err != nil {
		return "", err
	}
	if text != "" {
		d.cache.SetDefault(key, text)
	}
	return text, nil
}

// Len reports the number of cached detections.
func (d *CachedDetector) Len() int {
	return d.cache.ItemCount()
}
