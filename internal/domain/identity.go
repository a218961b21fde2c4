package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for identity operations.
var (
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Identity is an authenticated principal. Guests reference identities via
// Guest.IdentityID; credential storage never leaves this layer.
type Identity struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SessionIdentity is the value handed to callers after authentication. It is
// threaded explicitly through every request; there is no ambient current-user
// state anywhere in the core.
type SessionIdentity struct {
	IdentityID string `json:"identity_id"`
	Email      string `json:"email"`
	Token      string `json:"token"`
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated identity.
type TokenIssuer interface {
	Issue(identityID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated identity ID.
type TokenVerifier interface {
	Verify(token string) (identityID string, err error)
}

// IdentityRepository defines the interface for identity storage.
type IdentityRepository interface {
	Create(ctx context.Context, identity *Identity) error
	GetByEmail(ctx context.Context, email string) (*Identity, error)
	GetByID(ctx context.Context, id string) (*Identity, error)
}

// IdentityService is the identity boundary: credential checks in, session
// identities out.
type IdentityService interface {
	SignUp(ctx context.Context, email, password string) (*SessionIdentity, error)
	Authenticate(ctx context.Context, email, password string) (*SessionIdentity, error)
}
