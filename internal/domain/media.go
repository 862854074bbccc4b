package domain

import (
	"context"
	"io"
)

// MaxImageUploadBytes is the headshot upload size ceiling (2 MiB).
const MaxImageUploadBytes = 2 * 1024 * 1024

// allowedImageTypes is the declared content types accepted for headshot
// uploads.
var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// AllowedImageType reports whether the declared content type is on the
// headshot allow-list.
func AllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}

// ImageUpload is an uploaded headshot file as received at the boundary.
// Size and ContentType are the client-declared values; both are validated
// before any write happens.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// MediaStore persists uploaded files bound to a record and returns a public
// URL for the stored asset.
type MediaStore interface {
	Upload(ctx context.Context, up *ImageUpload, recordID int64) (url string, err error)
}
