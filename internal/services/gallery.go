package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"gatherly/internal/domain"
)

type galleryService struct {
	imageRepo domain.GalleryImageRepository
	eventRepo domain.EventRepository
	rsvpRepo  domain.RSVPRepository
	blobs     domain.BlobStore
	grantTTL  time.Duration
	logger    *slog.Logger
}

// NewGalleryService creates the gallery access layer. grantTTL bounds the
// validity of every signed read grant it issues.
func NewGalleryService(
	imageRepo domain.GalleryImageRepository,
	eventRepo domain.EventRepository,
	rsvpRepo domain.RSVPRepository,
	blobs domain.BlobStore,
	grantTTL time.Duration,
	logger *slog.Logger,
) domain.GalleryService {
	return &galleryService{
		imageRepo: imageRepo,
		eventRepo: eventRepo,
		rsvpRepo:  rsvpRepo,
		blobs:     blobs,
		grantTTL:  grantTTL,
		logger:    logger,
	}
}

func (s *galleryService) Upload(ctx context.Context, eventID, uploaderID string, data []byte, filename string) (*domain.GalleryImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Uploads are limited to the host and guests with an RSVP on record.
	if event.HostID != uploaderID {
		if _, err := s.rsvpRepo.GetByEventAndGuest(ctx, eventID, uploaderID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrForbidden
			}
			return nil, fmt.Errorf("get uploader rsvp: %w", err)
		}
	}

	now := time.Now()
	path := blobPath(eventID, filename, now)

	// Blob first, record second. A metadata failure after a successful put
	// leaves an orphaned blob, which is tolerated and reconciled lazily; the
	// reverse order would leave a record claiming a blob that does not exist.
	if err := s.blobs.Put(ctx, path, data, contentTypeFor(filename)); err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}

	image := &domain.GalleryImage{
		EventID:    eventID,
		UploaderID: uploaderID,
		BlobPath:   path,
		InsertedAt: now,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		s.logger.WarnContext(ctx, "image metadata write failed, blob orphaned", "path", path, "err", err)
		return nil, fmt.Errorf("create image record: %w", err)
	}
	return image, nil
}

func (s *galleryService) ListImages(ctx context.Context, eventID string) ([]*domain.GalleryImageWithURL, error) {
	images, err := s.imageRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	results := make([]*domain.GalleryImageWithURL, 0, len(images))
	for _, img := range images {
		if ctx.Err() != nil {
			// Cancelled mid-listing: hand back what completed.
			break
		}
		url, err := s.blobs.SignedURL(ctx, img.BlobPath, s.grantTTL)
		if err != nil {
			// Partial results over total failure: drop this image and move on.
			s.logger.WarnContext(ctx, "signed grant failed, image omitted", "image_id", img.ID, "err", err)
			continue
		}
		results = append(results, &domain.GalleryImageWithURL{
			ID:         img.ID,
			EventID:    img.EventID,
			UploaderID: img.UploaderID,
			URL:        url,
			InsertedAt: img.InsertedAt,
		})
	}
	return results, nil
}

func (s *galleryService) DeleteImage(ctx context.Context, eventID, requesterID, imageID string) error {
	image, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get image: %w", err)
	}
	if image.EventID != eventID {
		return domain.ErrNotFound
	}

	// The uploader may always remove their own photo; the event host may
	// moderate any photo in their gallery.
	if image.UploaderID != requesterID {
		event, err := s.eventRepo.GetByID(ctx, eventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get event: %w", err)
		}
		if event.HostID != requesterID {
			return domain.ErrForbidden
		}
	}

	// Blob first: if removal fails the record stays, so no record ever points
	// at a blob that is already gone.
	path := CanonicalBlobPath(image.BlobPath)
	if err := s.blobs.Remove(ctx, []string{path}); err != nil {
		return fmt.Errorf("remove blob: %w", err)
	}
	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Someone else already removed the record; the end state matches.
			return nil
		}
		return fmt.Errorf("delete image record: %w", err)
	}
	return nil
}

// CanonicalBlobPath trims and NFC-normalizes a blob path. Filenames can reach
// us in different but visually identical Unicode normalization forms, so all
// comparisons and removals go through the canonical form.
func CanonicalBlobPath(path string) string {
	return norm.NFC.String(strings.TrimSpace(path))
}

// blobPath derives a collision-resistant storage path from the event id, a
// timestamp, and the original file extension. The client's filename itself
// never reaches the store.
func blobPath(eventID, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(CanonicalBlobPath(filename)))
	return fmt.Sprintf("events/%s/%d%s", eventID, now.UnixNano(), ext)
}

func contentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
