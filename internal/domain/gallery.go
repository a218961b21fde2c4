package domain

import (
	"context"
	"time"
)

// GalleryImage is the metadata record for a photo uploaded to an event's
// shared gallery. BlobPath is opaque and never handed to clients; reads go
// through time-limited signed grants only.
// swagger:model GalleryImage
type GalleryImage struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	UploaderID string    `json:"uploader_id"`
	BlobPath   string    `json:"-"`
	InsertedAt time.Time `json:"inserted_at"`
}

// GalleryImageWithURL is a gallery listing row: the image id plus a fresh
// signed grant URL valid for the configured TTL.
// swagger:model GalleryImageWithURL
type GalleryImageWithURL struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	UploaderID string    `json:"uploader_id"`
	URL        string    `json:"url"`
	InsertedAt time.Time `json:"inserted_at"`
}

// GalleryImageRepository defines the interface for gallery metadata storage.
type GalleryImageRepository interface {
	Create(ctx context.Context, image *GalleryImage) error
	GetByID(ctx context.Context, id string) (*GalleryImage, error)
	// ListByEventID returns the event's images oldest first.
	ListByEventID(ctx context.Context, eventID string) ([]*GalleryImage, error)
	Delete(ctx context.Context, id string) error
}

// BlobStore is the blob storage boundary. Paths are namespaced per event; the
// store issues unguessable, time-bounded read grants instead of stable URLs.
type BlobStore interface {
	Put(ctx context.Context, path string, data []byte, contentType string) error
	Remove(ctx context.Context, paths []string) error
	List(ctx context.Context, prefix string) ([]string, error)
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
}

// GalleryService defines the gallery access layer.
type GalleryService interface {
	// Upload stores the blob first and the metadata record second. An
	// orphaned blob after a failed metadata write is tolerated and reconciled
	// lazily.
	Upload(ctx context.Context, eventID, uploaderID string, data []byte, filename string) (*GalleryImage, error)
	// ListImages issues a fresh signed grant per image. A grant failure drops
	// that image from the result instead of failing the listing, and a
	// cancelled context returns whatever completed.
	ListImages(ctx context.Context, eventID string) ([]*GalleryImageWithURL, error)
	// DeleteImage removes the blob first and the metadata record second, so a
	// blob-removal failure never leaves a record pointing at a missing blob.
	DeleteImage(ctx context.Context, eventID, requesterID, imageID string) error
}
