package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gatherly/internal/domain"
)

type rsvpRepository struct {
	DB *sql.DB
}

func NewRSVPRepository(db *sql.DB) domain.RSVPRepository {
	return &rsvpRepository{DB: db}
}

// Upsert relies on the store's unique constraint on (event_id, guest_id). A
// second write for the same pair overwrites the status in place and keeps the
// row's role and arrival time.
func (r *rsvpRepository) Upsert(ctx context.Context, rsvp *domain.RSVP) error {
	query := `
		INSERT INTO rsvps (event_id, guest_id, status, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id, guest_id)
		DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
		RETURNING id, role, created_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		rsvp.EventID, rsvp.GuestID, rsvp.Status, rsvp.Role, rsvp.CreatedAt, rsvp.UpdatedAt).
		Scan(&rsvp.ID, &rsvp.Role, &rsvp.CreatedAt)
	if err != nil {
		// The atomic upsert normally absorbs duplicates, but a concurrent
		// insert can still surface the unique violation; report it as
		// "already recorded" rather than an infrastructure failure.
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		if isCheckViolation(err) {
			return domain.ErrInvalidStatus
		}
		return err
	}
	return nil
}

func (r *rsvpRepository) GetByID(ctx context.Context, id string) (*domain.RSVP, error) {
	query := `
		SELECT id, event_id, guest_id, status, role, created_at, updated_at
		FROM rsvps
		WHERE id = $1
	`
	return scanRSVP(r.DB.QueryRowContext(ctx, query, id))
}

func (r *rsvpRepository) GetByEventAndGuest(ctx context.Context, eventID, guestID string) (*domain.RSVP, error) {
	query := `
		SELECT id, event_id, guest_id, status, role, created_at, updated_at
		FROM rsvps
		WHERE event_id = $1 AND guest_id = $2
	`
	return scanRSVP(r.DB.QueryRowContext(ctx, query, eventID, guestID))
}

// ListAttendeesByEventID joins guest display data. The join is LEFT so a
// missing guest row degrades to the unknown-guest fallback instead of
// dropping the RSVP.
func (r *rsvpRepository) ListAttendeesByEventID(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	query := `
		SELECT r.id, r.guest_id, r.status, r.role, g.first_name, g.last_name, g.email
		FROM rsvps r
		LEFT JOIN guests g ON g.id = r.guest_id
		WHERE r.event_id = $1
		ORDER BY r.created_at ASC, r.id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendees []*domain.Attendee
	for rows.Next() {
		a := &domain.Attendee{}
		var firstName, lastName, email sql.NullString
		if err := rows.Scan(&a.RSVPID, &a.GuestID, &a.Status, &a.Role, &firstName, &lastName, &email); err != nil {
			return nil, err
		}
		if firstName.Valid || lastName.Valid || email.Valid {
			a.Guest = &domain.AttendeeGuest{
				FirstName: firstName.String,
				LastName:  lastName.String,
				Email:     email.String,
			}
		}
		attendees = append(attendees, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if attendees == nil {
		attendees = []*domain.Attendee{}
	}
	return attendees, nil
}

func (r *rsvpRepository) UpdateRole(ctx context.Context, rsvpID, role string) (*domain.RSVP, error) {
	query := `
		UPDATE rsvps
		SET role = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, event_id, guest_id, status, role, created_at, updated_at
	`
	rsvp, err := scanRSVP(r.DB.QueryRowContext(ctx, query, rsvpID, role))
	if err != nil {
		if isCheckViolation(err) {
			return nil, domain.ErrInvalidRole
		}
		return nil, err
	}
	return rsvp, nil
}

func scanRSVP(row *sql.Row) (*domain.RSVP, error) {
	rsvp := &domain.RSVP{}
	err := row.Scan(&rsvp.ID, &rsvp.EventID, &rsvp.GuestID, &rsvp.Status, &rsvp.Role, &rsvp.CreatedAt, &rsvp.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rsvp, nil
}
