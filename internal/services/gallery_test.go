package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatherly/internal/domain"
)

func TestGalleryService_Upload(t *testing.T) {
	ctx := context.Background()

	setup := func() (*fakeImageRepo, *fakeRSVPRepo, *fakeBlobStore, domain.GalleryService, *domain.Event) {
		images := newFakeImageRepo()
		events := newFakeEventRepo()
		rsvps := newFakeRSVPRepo()
		blobs := newFakeBlobStore()
		svc := NewGalleryService(images, events, rsvps, blobs, time.Hour, testLogger())
		event := events.add(&domain.Event{HostID: "host-1", Name: "Garden Party", EventDate: time.Now()})
		return images, rsvps, blobs, svc, event
	}

	t.Run("host uploads", func(t *testing.T) {
		images, _, blobs, svc, event := setup()

		img, err := svc.Upload(ctx, event.ID, "host-1", []byte("jpegbytes"), "photo.JPG")
		require.NoError(t, err)
		assert.NotEmpty(t, img.ID)
		assert.Equal(t, "host-1", img.UploaderID)
		assert.True(t, strings.HasPrefix(img.BlobPath, "events/"+event.ID+"/"))
		assert.True(t, strings.HasSuffix(img.BlobPath, ".jpg"))
		assert.Contains(t, blobs.objects, img.BlobPath)
		assert.Len(t, images.byID, 1)
	})

	t.Run("attendee with rsvp uploads", func(t *testing.T) {
		_, rsvps, _, svc, event := setup()
		rsvps.add(&domain.RSVP{EventID: event.ID, GuestID: "guest-2", Status: domain.StatusYes, Role: domain.RoleGuest})

		_, err := svc.Upload(ctx, event.ID, "guest-2", []byte("jpegbytes"), "photo.jpg")
		require.NoError(t, err)
	})

	t.Run("stranger is refused", func(t *testing.T) {
		_, _, blobs, svc, event := setup()

		_, err := svc.Upload(ctx, event.ID, "stranger", []byte("jpegbytes"), "photo.jpg")
		require.ErrorIs(t, err, domain.ErrForbidden)
		assert.Empty(t, blobs.objects)
	})

	t.Run("empty file rejected", func(t *testing.T) {
		_, _, _, svc, event := setup()
		_, err := svc.Upload(ctx, event.ID, "host-1", nil, "photo.jpg")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("blob failure writes no metadata", func(t *testing.T) {
		images, _, blobs, svc, event := setup()
		blobs.putErr = assert.AnError

		_, err := svc.Upload(ctx, event.ID, "host-1", []byte("jpegbytes"), "photo.jpg")
		require.Error(t, err)
		assert.Empty(t, images.byID)
	})

	t.Run("metadata failure leaves blob orphaned", func(t *testing.T) {
		images, _, blobs, svc, event := setup()
		images.createErr = assert.AnError

		_, err := svc.Upload(ctx, event.ID, "host-1", []byte("jpegbytes"), "photo.jpg")
		require.Error(t, err)
		// The blob stays put: an orphan is reconciled lazily, the reverse
		// ordering would fabricate a record without a blob.
		assert.Len(t, blobs.objects, 1)
	})
}

func TestGalleryService_ListImages(t *testing.T) {
	ctx := context.Background()

	setup := func() (*fakeImageRepo, *fakeBlobStore, domain.GalleryService, *domain.Event) {
		images := newFakeImageRepo()
		events := newFakeEventRepo()
		blobs := newFakeBlobStore()
		svc := NewGalleryService(images, events, newFakeRSVPRepo(), blobs, time.Hour, testLogger())
		event := events.add(&domain.Event{HostID: "host-1", Name: "Garden Party", EventDate: time.Now()})
		return images, blobs, svc, event
	}

	t.Run("every image carries a fresh signed url", func(t *testing.T) {
		images, _, svc, event := setup()
		base := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
		images.add(&domain.GalleryImage{EventID: event.ID, UploaderID: "host-1", BlobPath: "events/e/a.jpg", InsertedAt: base})
		images.add(&domain.GalleryImage{EventID: event.ID, UploaderID: "guest-2", BlobPath: "events/e/b.jpg", InsertedAt: base.Add(time.Minute)})

		out, err := svc.ListImages(ctx, event.ID)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "https://blobs.test/events/e/a.jpg?sig=abc", out[0].URL)
		assert.Equal(t, "https://blobs.test/events/e/b.jpg?sig=abc", out[1].URL)
		// Insertion order is preserved.
		assert.True(t, out[0].InsertedAt.Before(out[1].InsertedAt))
	})

	t.Run("grant failure drops the image, not the listing", func(t *testing.T) {
		images, blobs, svc, event := setup()
		images.add(&domain.GalleryImage{EventID: event.ID, BlobPath: "events/e/a.jpg"})
		images.add(&domain.GalleryImage{EventID: event.ID, BlobPath: "events/e/broken.jpg"})
		images.add(&domain.GalleryImage{EventID: event.ID, BlobPath: "events/e/c.jpg"})
		blobs.signErr["events/e/broken.jpg"] = assert.AnError

		out, err := svc.ListImages(ctx, event.ID)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "https://blobs.test/events/e/a.jpg?sig=abc", out[0].URL)
		assert.Equal(t, "https://blobs.test/events/e/c.jpg?sig=abc", out[1].URL)
	})

	t.Run("cancelled context returns what completed", func(t *testing.T) {
		images, _, svc, event := setup()
		images.add(&domain.GalleryImage{EventID: event.ID, BlobPath: "events/e/a.jpg"})
		images.add(&domain.GalleryImage{EventID: event.ID, BlobPath: "events/e/b.jpg"})

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		out, err := svc.ListImages(cancelled, event.ID)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("empty gallery", func(t *testing.T) {
		_, _, svc, event := setup()
		out, err := svc.ListImages(ctx, event.ID)
		require.NoError(t, err)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})
}

func TestGalleryService_DeleteImage(t *testing.T) {
	ctx := context.Background()

	setup := func() (*fakeImageRepo, *fakeBlobStore, domain.GalleryService, *domain.Event) {
		images := newFakeImageRepo()
		events := newFakeEventRepo()
		blobs := newFakeBlobStore()
		svc := NewGalleryService(images, events, newFakeRSVPRepo(), blobs, time.Hour, testLogger())
		event := events.add(&domain.Event{HostID: "host-1", Name: "Garden Party", EventDate: time.Now()})
		return images, blobs, svc, event
	}

	t.Run("uploader deletes own image", func(t *testing.T) {
		images, blobs, svc, event := setup()
		img := images.add(&domain.GalleryImage{EventID: event.ID, UploaderID: "guest-2", BlobPath: "events/e/a.jpg"})
		blobs.objects["events/e/a.jpg"] = []byte("x")

		require.NoError(t, svc.DeleteImage(ctx, event.ID, "guest-2", img.ID))
		assert.Empty(t, images.byID)
		assert.Equal(t, []string{"events/e/a.jpg"}, blobs.removed)
	})

	t.Run("host moderates any image", func(t *testing.T) {
		images, _, svc, event := setup()
		img := images.add(&domain.GalleryImage{EventID: event.ID, UploaderID: "guest-2", BlobPath: "events/e/a.jpg"})

		require.NoError(t, svc.DeleteImage(ctx, event.ID, "host-1", img.ID))
		assert.Empty(t, images.byID)
	})

	t.Run("anyone else is refused", func(t *testing.T) {
		images, _, svc, event := setup()
		img := images.add(&domain.GalleryImage{EventID: event.ID, UploaderID: "guest-2", BlobPath: "events/e/a.jpg"})

		err := svc.DeleteImage(ctx, event.ID, "guest-3", img.ID)
		require.ErrorIs(t, err, domain.ErrForbidden)
		assert.Len(t, images.byID, 1)
	})

	t.Run("blob removal failure keeps the record", func(t *testing.T) {
		images, blobs, svc, event := setup()
		img := images.add(&domain.GalleryImage{EventID: event.ID, UploaderID: "guest-2", BlobPath: "events/e/a.jpg"})
		blobs.removeErr = assert.AnError

		err := svc.DeleteImage(ctx, event.ID, "guest-2", img.ID)
		require.Error(t, err)
		assert.Len(t, images.byID, 1)
	})

	t.Run("image from another event reads as missing", func(t *testing.T) {
		images, _, svc, event := setup()
		img := images.add(&domain.GalleryImage{EventID: "other-event", UploaderID: "guest-2", BlobPath: "events/o/a.jpg"})

		err := svc.DeleteImage(ctx, event.ID, "guest-2", img.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("path is canonicalized before removal", func(t *testing.T) {
		images, blobs, svc, event := setup()
		// NFD form of "café.jpg"; the store holds the NFC form.
		img := images.add(&domain.GalleryImage{EventID: event.ID, UploaderID: "guest-2", BlobPath: "events/e/café.jpg"})

		require.NoError(t, svc.DeleteImage(ctx, event.ID, "guest-2", img.ID))
		require.Len(t, blobs.removed, 1)
		assert.Equal(t, "events/e/café.jpg", blobs.removed[0])
	})
}

func TestCanonicalBlobPath(t *testing.T) {
	assert.Equal(t, "events/e/café.jpg", CanonicalBlobPath("  events/e/café.jpg "))
	assert.Equal(t, "plain.jpg", CanonicalBlobPath("plain.jpg"))
}
