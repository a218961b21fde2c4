package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gatherly/internal/domain"
)

type eventService struct {
	eventRepo domain.EventRepository
}

// NewEventService creates the event registry service.
func NewEventService(eventRepo domain.EventRepository) domain.EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) CreateEvent(ctx context.Context, hostID, name, description, location string, eventDate time.Time) (*domain.Event, error) {
	name = strings.TrimSpace(name)
	if hostID == "" {
		return nil, fmt.Errorf("%w: event host is required", domain.ErrInvalidInput)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if eventDate.IsZero() {
		return nil, fmt.Errorf("%w: event_date is required", domain.ErrInvalidInput)
	}

	now := time.Now()
	event := domain.NewEvent(hostID, name, strings.TrimSpace(description), strings.TrimSpace(location), eventDate, now, now)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListHostedEvents(ctx context.Context, hostID string) ([]*domain.Event, error) {
	events, err := s.eventRepo.ListByHostID(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("list hosted events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) ListOtherEvents(ctx context.Context, excludingHostID string) ([]*domain.Event, error) {
	events, err := s.eventRepo.ListExcludingHost(ctx, excludingHostID)
	if err != nil {
		return nil, fmt.Errorf("list other events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) FirstEventByHost(ctx context.Context, hostID string) (*domain.Event, error) {
	event, err := s.eventRepo.FirstByHostID(ctx, hostID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get first event by host: %w", err)
	}
	return event, nil
}
