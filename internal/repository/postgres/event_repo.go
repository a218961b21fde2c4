package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gatherly/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (host_id, name, description, location, event_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		event.HostID, event.Name, nullable(event.Description), nullable(event.Location),
		event.EventDate, event.CreatedAt, event.UpdatedAt).
		Scan(&event.ID)
}

const eventColumns = `id, host_id, name, COALESCE(description, ''), COALESCE(location, ''), event_date, created_at, updated_at`

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`
	return scanEvent(r.DB.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) ListByHostID(ctx context.Context, hostID string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE host_id = $1
		ORDER BY event_date ASC
	`
	return r.list(ctx, query, hostID)
}

func (r *eventRepository) ListExcludingHost(ctx context.Context, hostID string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE host_id <> $1
		ORDER BY event_date ASC
	`
	return r.list(ctx, query, hostID)
}

func (r *eventRepository) FirstByHostID(ctx context.Context, hostID string) (*domain.Event, error) {
	// Deterministic pick when a host has several events: earliest date wins,
	// id breaks ties.
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE host_id = $1
		ORDER BY event_date ASC, id ASC
		LIMIT 1
	`
	return scanEvent(r.DB.QueryRowContext(ctx, query, hostID))
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		ev := &domain.Event{}
		if err := rows.Scan(&ev.ID, &ev.HostID, &ev.Name, &ev.Description, &ev.Location, &ev.EventDate, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func scanEvent(row *sql.Row) (*domain.Event, error) {
	ev := &domain.Event{}
	err := row.Scan(&ev.ID, &ev.HostID, &ev.Name, &ev.Description, &ev.Location, &ev.EventDate, &ev.CreatedAt, &ev.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return ev, nil
}

// nullable maps the empty string to SQL NULL for optional text columns.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
