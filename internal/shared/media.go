package shared

import "context"

// Object key prefixes of uploaded media
const (
	ProfileImagePrefix = "profile_pics"
	PostImagePrefix    = "book_images"
)

// MediaStore persists uploaded images. Implemented by the MinIO storage.
type MediaStore interface {
	// SaveImage validates the upload, stores it under prefix and returns the object key
	SaveImage(ctx context.Context, prefix string, data []byte) (string, error)

	// RemoveImages schedules deletion of every object under prefix
	RemoveImages(ctx context.Context, prefix string) error
}
