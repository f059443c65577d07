package decode

import (
	"log"

	lru "github.com/hashicorp/golang-lru/v2"

	"viewer/internal/debug"
	"viewer/internal/imagepath"
)

// CachedDecoder keeps recently decoded rasters keyed by path, size and
// modification time. Cached images are shared and must not be modified.
type CachedDecoder struct {
	next  Decoder
	cache *lru.Cache[string, *Image]
}

// NewCachedDecoder wraps next with an LRU of size entries. A size below 1
// returns next unchanged.
func NewCachedDecoder(next Decoder, size int) Decoder {
	if size < 1 {
		return next
	}
	cache, err := lru.NewWithEvict[string, *Image](size, func(key string, _ *Image) {
		debug.Logf("evicted decoded image %s", key)
	})
	if err != nil {
		log.Printf("Error: Failed to create decode cache: %v", err)
		return next
	}
	return &CachedDecoder{next: next, cache: cache}
}

func (d *CachedDecoder) Decode(p imagepath.ImagePath) (*Image, error) {
	key, err := imagepath.Fingerprint(p)
	if err != nil {
		return nil, err
	}
	if img, ok := d.cache.Get(key); ok {
		debug.Logf("decode cache hit %s", p)
		return img, nil
	}
	img, err := d.next.Decode(p)
	if err != nil {
		return nil, err
	}
	d.cache.Add(key, img)
	return img, nil
}

// Len returns the number of cached images.
func (d *CachedDecoder) Len() int {
	return d.cache.Len()
}
