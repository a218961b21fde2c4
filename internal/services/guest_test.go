package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatherly/internal/domain"
)

func TestGuestService_CreateProfile(t *testing.T) {
	ctx := context.Background()

	setup := func() (*fakeGuestRepo, *fakeEmailService, domain.GuestService) {
		guests := newFakeGuestRepo()
		emails := &fakeEmailService{}
		return guests, emails, NewGuestService(guests, emails, testLogger())
	}

	t.Run("creates profile and sends welcome email", func(t *testing.T) {
		_, emails, svc := setup()

		guest, err := svc.CreateProfile(ctx, "identity-1", "Emma@Example.com", " Emma ", " Otteson ")
		require.NoError(t, err)
		assert.NotEmpty(t, guest.ID)
		assert.Equal(t, "emma@example.com", guest.Email)
		assert.Equal(t, "Emma", guest.FirstName)
		assert.Equal(t, "Otteson", guest.LastName)
		require.Len(t, emails.welcomes, 1)
		assert.Equal(t, "emma@example.com", emails.welcomes[0].Email)
	})

	t.Run("second profile for the same identity", func(t *testing.T) {
		_, _, svc := setup()
		_, err := svc.CreateProfile(ctx, "identity-1", "emma@example.com", "Emma", "Otteson")
		require.NoError(t, err)

		_, err = svc.CreateProfile(ctx, "identity-1", "other@example.com", "Other", "Name")
		require.ErrorIs(t, err, domain.ErrDuplicateProfile)
	})

	t.Run("missing names rejected", func(t *testing.T) {
		_, _, svc := setup()
		_, err := svc.CreateProfile(ctx, "identity-1", "emma@example.com", "   ", "Otteson")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("malformed email rejected", func(t *testing.T) {
		_, _, svc := setup()
		_, err := svc.CreateProfile(ctx, "identity-1", "not-an-email", "Emma", "Otteson")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("welcome email failure does not fail creation", func(t *testing.T) {
		_, emails, svc := setup()
		emails.err = assert.AnError

		guest, err := svc.CreateProfile(ctx, "identity-1", "emma@example.com", "Emma", "Otteson")
		require.NoError(t, err)
		assert.NotEmpty(t, guest.ID)
	})
}

func TestGuestService_ResolveProfile(t *testing.T) {
	ctx := context.Background()
	guests := newFakeGuestRepo()
	svc := NewGuestService(guests, &fakeEmailService{}, testLogger())

	created := guests.add(&domain.Guest{IdentityID: "identity-1", Email: "emma@example.com", FirstName: "Emma"})

	got, err := svc.ResolveProfile(ctx, "identity-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.ResolveProfile(ctx, "identity-unknown")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
