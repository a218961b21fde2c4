package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gatherly/internal/domain"
)

type rsvpService struct {
	rsvpRepo     domain.RSVPRepository
	eventRepo    domain.EventRepository
	guestRepo    domain.GuestRepository
	emailService domain.EmailService
	logger       *slog.Logger
}

// NewRSVPService creates the RSVP ledger service.
func NewRSVPService(
	rsvpRepo domain.RSVPRepository,
	eventRepo domain.EventRepository,
	guestRepo domain.GuestRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.RSVPService {
	return &rsvpService{
		rsvpRepo:     rsvpRepo,
		eventRepo:    eventRepo,
		guestRepo:    guestRepo,
		emailService: emailService,
		logger:       logger,
	}
}

func (s *rsvpService) UpsertRSVP(ctx context.Context, guestID, eventID, status string) (*domain.RSVP, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	now := time.Now()
	rsvp := &domain.RSVP{
		EventID:   eventID,
		GuestID:   guestID,
		Status:    status,
		Role:      domain.RoleGuest,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.rsvpRepo.Upsert(ctx, rsvp); err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			return nil, domain.ErrAlreadyExists
		case errors.Is(err, domain.ErrInvalidStatus):
			return nil, domain.ErrInvalidStatus
		}
		return nil, fmt.Errorf("upsert rsvp: %w", err)
	}

	s.notifyHost(ctx, event, guestID, status)

	return rsvp, nil
}

// notifyHost emails the event host about the new response. Best effort: a
// failure is logged and never propagated to the RSVP caller.
func (s *rsvpService) notifyHost(ctx context.Context, event *domain.Event, guestID, status string) {
	if s.emailService == nil || event.HostID == guestID {
		return
	}
	host, err := s.guestRepo.GetByID(ctx, event.HostID)
	if err != nil {
		s.logger.WarnContext(ctx, "rsvp notification skipped", "event_id", event.ID, "err", err)
		return
	}
	guest, err := s.guestRepo.GetByID(ctx, guestID)
	if err != nil {
		s.logger.WarnContext(ctx, "rsvp notification skipped", "event_id", event.ID, "err", err)
		return
	}
	data := &domain.RSVPNotificationEmailData{
		HostEmail: host.Email,
		HostName:  host.FirstName,
		GuestName: guest.FirstName + " " + guest.LastName,
		EventName: event.Name,
		Status:    status,
	}
	if err := s.emailService.SendRSVPNotification(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "rsvp notification failed", "event_id", event.ID, "err", err)
	}
}

func (s *rsvpService) ListAttendees(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	attendees, err := s.rsvpRepo.ListAttendeesByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	if attendees == nil {
		attendees = []*domain.Attendee{}
	}
	return attendees, nil
}

func (s *rsvpService) SetRole(ctx context.Context, actingGuestID, eventID, targetRSVPID, newRole string) (*domain.RSVP, error) {
	if !domain.ValidRole(newRole) {
		return nil, domain.ErrInvalidRole
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// The host holds implicit admin authority over their event; anyone else
	// needs an admin-role RSVP of their own.
	if actingGuestID != event.HostID {
		acting, err := s.rsvpRepo.GetByEventAndGuest(ctx, eventID, actingGuestID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrForbidden
			}
			return nil, fmt.Errorf("get acting rsvp: %w", err)
		}
		if acting.Role != domain.RoleAdmin {
			return nil, domain.ErrForbidden
		}
	}

	target, err := s.rsvpRepo.GetByID(ctx, targetRSVPID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get target rsvp: %w", err)
	}
	if target.EventID != eventID {
		return nil, domain.ErrNotFound
	}
	// The host's own row is off limits: their authority never hinges on it.
	if target.GuestID == event.HostID {
		return nil, domain.ErrForbidden
	}

	updated, err := s.rsvpRepo.UpdateRole(ctx, targetRSVPID, newRole)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update rsvp role: %w", err)
	}
	return updated, nil
}
