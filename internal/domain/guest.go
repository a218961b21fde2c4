package domain

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateProfile is returned when an identity already has a guest profile.
var ErrDuplicateProfile = errors.New("profile already exists for this identity")

// Guest is a registered participant: exactly one profile per authenticated
// identity, created lazily on first profile submission. IdentityID is
// immutable after creation and guests are never deleted by normal flow.
// swagger:model Guest
type Guest struct {
	ID         string    `json:"id"`
	IdentityID string    `json:"identity_id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewGuest returns a new Guest with the given fields. ID is set by the repository on create.
func NewGuest(identityID, email, firstName, lastName string, createdAt, updatedAt time.Time) *Guest {
	return &Guest{
		IdentityID: identityID,
		Email:      email,
		FirstName:  firstName,
		LastName:   lastName,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}

// GuestRepository defines the interface for guest profile storage.
type GuestRepository interface {
	Create(ctx context.Context, guest *Guest) error
	GetByIdentityID(ctx context.Context, identityID string) (*Guest, error)
	GetByID(ctx context.Context, id string) (*Guest, error)
	// SearchByName matches first and/or last name case-insensitively.
	// Empty filter strings match everything for that field.
	SearchByName(ctx context.Context, firstName, lastName string, matchEither bool) ([]*Guest, error)
}

// GuestService defines the guest directory: identity in, profile out.
type GuestService interface {
	ResolveProfile(ctx context.Context, identityID string) (*Guest, error)
	CreateProfile(ctx context.Context, identityID, email, firstName, lastName string) (*Guest, error)
}
