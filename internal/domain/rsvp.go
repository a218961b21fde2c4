package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for RSVP operations.
var (
	ErrInvalidStatus = errors.New("invalid rsvp status")
	ErrInvalidRole   = errors.New("invalid rsvp role")
)

// RSVP statuses. Any status outside this set is rejected before the store is
// touched; the rsvps table carries a matching CHECK constraint as backstop.
const (
	StatusYes   = "yes"
	StatusMaybe = "maybe"
	StatusNo    = "no"
)

// RSVP roles, scoped to a single event via that guest's RSVP row.
const (
	RoleGuest = "guest"
	RoleAdmin = "admin"
)

// ValidStatus reports whether s is an allowed RSVP status.
func ValidStatus(s string) bool {
	return s == StatusYes || s == StatusMaybe || s == StatusNo
}

// ValidRole reports whether r is an allowed RSVP role.
func ValidRole(r string) bool {
	return r == RoleGuest || r == RoleAdmin
}

// RSVP is a per-guest-per-event record of attendance intent and administrative
// role. At most one row exists per (event, guest); the store's unique
// constraint is the source of truth for that invariant.
// swagger:model RSVP
type RSVP struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	GuestID   string    `json:"guest_id"`
	Status    string    `json:"status"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AttendeeGuest is the joined guest display data on an attendee row. Ptr
// fields absent when the guest row could not be joined; use DisplayName for
// the fallback form.
type AttendeeGuest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Attendee is one row of an event's RSVP list: the RSVP joined with the
// guest's display name.
// swagger:model Attendee
type Attendee struct {
	RSVPID  string         `json:"rsvp_id"`
	GuestID string         `json:"guest_id"`
	Status  string         `json:"status"`
	Role    string         `json:"role"`
	Guest   *AttendeeGuest `json:"guest,omitempty"`
}

// DisplayName returns the attendee's joined name, or "Unknown" when the guest
// row was absent.
func (a *Attendee) DisplayName() string {
	if a.Guest == nil || a.Guest.FirstName == "" {
		return "Unknown"
	}
	if a.Guest.LastName == "" {
		return a.Guest.FirstName
	}
	return a.Guest.FirstName + " " + a.Guest.LastName
}

// RSVPRepository defines the interface for RSVP storage.
type RSVPRepository interface {
	// Upsert atomically inserts or updates the (event, guest) row, keyed on
	// the store's unique constraint. Implementations must not emulate this
	// with read-then-write.
	Upsert(ctx context.Context, rsvp *RSVP) error
	GetByID(ctx context.Context, id string) (*RSVP, error)
	GetByEventAndGuest(ctx context.Context, eventID, guestID string) (*RSVP, error)
	// ListAttendeesByEventID returns attendee rows ordered by arrival.
	ListAttendeesByEventID(ctx context.Context, eventID string) ([]*Attendee, error)
	UpdateRole(ctx context.Context, rsvpID, role string) (*RSVP, error)
}

// RSVPService defines the RSVP ledger operations.
type RSVPService interface {
	// UpsertRSVP records or overwrites the guest's attendance for the event.
	// Idempotent per (event, guest); last write wins.
	UpsertRSVP(ctx context.Context, guestID, eventID, status string) (*RSVP, error)
	ListAttendees(ctx context.Context, eventID string) ([]*Attendee, error)
	// SetRole changes the target RSVP's role. The acting guest must hold an
	// admin RSVP for the event or be the event's host, and the target row
	// must not belong to the host.
	SetRole(ctx context.Context, actingGuestID, eventID, targetRSVPID, newRole string) (*RSVP, error)
}
