package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gatherly/internal/domain"
)

type guestService struct {
	guestRepo    domain.GuestRepository
	emailService domain.EmailService
	logger       *slog.Logger
}

// NewGuestService creates the guest directory service.
func NewGuestService(guestRepo domain.GuestRepository, emailService domain.EmailService, logger *slog.Logger) domain.GuestService {
	return &guestService{
		guestRepo:    guestRepo,
		emailService: emailService,
		logger:       logger,
	}
}

func (s *guestService) ResolveProfile(ctx context.Context, identityID string) (*domain.Guest, error) {
	guest, err := s.guestRepo.GetByIdentityID(ctx, identityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get guest profile: %w", err)
	}
	return guest, nil
}

func (s *guestService) CreateProfile(ctx context.Context, identityID, email, firstName, lastName string) (*domain.Guest, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(strings.ToLower(email))
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("%w: first_name and last_name are required", domain.ErrInvalidInput)
	}
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}

	// The unique constraint on identity_id is the dedupe authority; there is
	// no racy pre-check here.
	now := time.Now()
	guest := domain.NewGuest(identityID, email, firstName, lastName, now, now)
	if err := s.guestRepo.Create(ctx, guest); err != nil {
		if errors.Is(err, domain.ErrDuplicateProfile) {
			return nil, domain.ErrDuplicateProfile
		}
		return nil, fmt.Errorf("create guest profile: %w", err)
	}

	if s.emailService != nil {
		data := &domain.WelcomeEmailData{Email: guest.Email, FirstName: guest.FirstName}
		if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "welcome email failed", "guest_id", guest.ID, "err", err)
		}
	}

	return guest, nil
}
