// Package imagestore keeps uploaded receipt images.
package imagestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNotFound         = errors.New("image not found")
	ErrUnsupportedImage = errors.New("unsupported image type")
)

var allowedMimes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
}

// Store saves and loads images by key.
type Store interface {
	Save(ctx context.Context, key string, data []byte, contentType string) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// DetectImage sniffs data and returns its MIME type if it is an accepted
// receipt image. The declared content type is ignored.
func DetectImage(data []byte) (string, error) {
	detected := mimetype.Detect(data).String()
	if !allowedMimes[detected] {
		return "", fmt.Errorf("%w: %s (allowed: jpeg, png, webp, heic)", ErrUnsupportedImage, detected)
	}
	return detected, nil
}

// KeyFor returns the storage key of a bill's receipt image.
func KeyFor(billID, contentType string) string {
	ext := ".img"
	if m := mimetype.Lookup(contentType); m != nil {
		ext = m.Extension()
	}
	return "receipts/" + billID + ext
}

// validateKey rejects storage keys containing path traversal segments.
func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") {
		return fmt.Errorf("invalid storage key %q", key)
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == ".." || segment == "." || segment == "" {
			return fmt.Errorf("path traversal detected in storage key")
		}
	}
	return nil
}
