package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/webp"
)

const (
	// Quality settings
	qualityThumb  = 80
	qualityMedium = 75
	// MediumSize is the max dimension of an item preview image
	MediumSize = 800
	// DefaultThumbSize is the edge of an export card image slot
	DefaultThumbSize = 60
)

// ThumbCache stores optimized images on disk keyed by item id
type ThumbCache struct {
	dir string
}

// NewThumbCache creates a cache rooted at dir. An empty dir disables caching.
func NewThumbCache(dir string) *ThumbCache {
	return &ThumbCache{dir: dir}
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Path returns the cache file path for an item id and size. Ids are case-insensitive.
func (c *ThumbCache) Path(itemID string, size int) string {
	filename := fmt.Sprintf("item_%s_%d.jpg", unsafeFileChars.ReplaceAllString(strings.ToLower(itemID), "_"), size)
	return filepath.Join(c.dir, filename)
}

// Read returns the cached image, if present
func (c *ThumbCache) Read(itemID string, size int) ([]byte, bool) {
	if c == nil || c.dir == "" {
		return nil, false
	}
	data, err := os.ReadFile(c.Path(itemID, size))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Save writes an optimized image to the cache
func (c *ThumbCache) Save(itemID string, size int, data []byte) error {
	if c == nil || c.dir == "" {
		return nil
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create cache directory")
	}
	if err := os.WriteFile(c.Path(itemID, size), data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write to cache")
	}
	return nil
}

// Thumbnail decodes an image (PNG, JPEG or WebP), crops it to a centred
// size×size square and encodes it as JPEG.
func Thumbnail(imageData []byte, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultThumbSize
	}
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}

	thumb := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)
	return encodeJPEG(thumb, qualityThumb)
}

// OptimizeImage shrinks an image so neither side exceeds the medium size,
// keeping its aspect ratio, and re-encodes it as JPEG.
func OptimizeImage(imageData []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}

	bounds := img.Bounds()
	if bounds.Dx() > MediumSize || bounds.Dy() > MediumSize {
		img = imaging.Fit(img, MediumSize, MediumSize, imaging.Lanczos)
	}
	return encodeJPEG(img, qualityMedium)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, errors.Wrap(err, "failed to encode to JPEG")
	}
	return buf.Bytes(), nil
}
