package domain

import (
	"context"
	"time"
)

// Event is a gathering owned by exactly one host guest. The host is set at
// creation and never reassigned.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	HostID      string    `json:"host_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	EventDate   time.Time `json:"event_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(hostID, name, description, location string, eventDate, createdAt, updatedAt time.Time) *Event {
	return &Event{
		HostID:      hostID,
		Name:        name,
		Description: description,
		Location:    location,
		EventDate:   eventDate,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// ListByHostID returns the host's events ascending by event_date.
	ListByHostID(ctx context.Context, hostID string) ([]*Event, error)
	// ListExcludingHost returns every event not hosted by the given guest,
	// ascending by event_date.
	ListExcludingHost(ctx context.Context, hostID string) ([]*Event, error)
	// FirstByHostID returns the host's earliest event by event_date, id as
	// tie-break, or ErrNotFound when the host has no events.
	FirstByHostID(ctx context.Context, hostID string) (*Event, error)
}

// EventService defines the event registry operations.
type EventService interface {
	CreateEvent(ctx context.Context, hostID, name, description, location string, eventDate time.Time) (*Event, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	ListHostedEvents(ctx context.Context, hostID string) ([]*Event, error)
	ListOtherEvents(ctx context.Context, excludingHostID string) ([]*Event, error)
	FirstEventByHost(ctx context.Context, hostID string) (*Event, error)
}
