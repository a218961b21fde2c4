package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gatherly/internal/domain"
)

const minPasswordLen = 8

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type identityService struct {
	identityRepo domain.IdentityRepository
	hasher       domain.PasswordHasher
	tokenIssuer  domain.TokenIssuer
	tokenExpiry  time.Duration
}

// NewIdentityService creates an IdentityService with the given repository and auth ports.
func NewIdentityService(identityRepo domain.IdentityRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration) domain.IdentityService {
	return &identityService{
		identityRepo: identityRepo,
		hasher:       hasher,
		tokenIssuer:  tokenIssuer,
		tokenExpiry:  tokenExpiry,
	}
}

func (s *identityService) SignUp(ctx context.Context, email, password string) (*domain.SessionIdentity, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	identity := &domain.Identity{
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.identityRepo.Create(ctx, identity); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create identity: %w", err)
	}

	return s.issueSession(identity)
}

func (s *identityService) Authenticate(ctx context.Context, email, password string) (*domain.SessionIdentity, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	identity, err := s.identityRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get identity: %w", err)
	}
	if err := s.hasher.Compare(identity.PasswordHash, identity.Salt, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return s.issueSession(identity)
}

func (s *identityService) issueSession(identity *domain.Identity) (*domain.SessionIdentity, error) {
	token, err := s.tokenIssuer.Issue(identity.ID, identity.Email, s.tokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &domain.SessionIdentity{
		IdentityID: identity.ID,
		Email:      identity.Email,
		Token:      token,
	}, nil
}
