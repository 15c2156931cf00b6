// Package storage saves recipe images and returns the URL they are served from.
package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidImage is returned for images that are not a base64 data URI of a
// JPEG, PNG or GIF.
var ErrInvalidImage = errors.New("invalid image")

// ImageStore persists image bytes under a generated key.
type ImageStore interface {
	Save(ctx context.Context, data []byte, contentType string) (string, error)
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// DecodeDataURI decodes "data:image/png;base64,...." and sniffs the content
// type from the bytes rather than trusting the declared one.
func DecodeDataURI(uri string) ([]byte, string, error) {
	header, payload, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, "", fmt.Errorf("%w: expected a base64 data URI", ErrInvalidImage)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty image", ErrInvalidImage)
	}

	contentType := http.DetectContentType(data)
	if _, ok := extensions[contentType]; !ok {
		return nil, "", fmt.Errorf("%w: only JPEG, PNG and GIF images are allowed", ErrInvalidImage)
	}
	return data, contentType, nil
}

// objectKey generates a unique key under recipes/ for contentType.
func objectKey(contentType string) string {
	return "recipes/" + uuid.NewString() + extensions[contentType]
}
