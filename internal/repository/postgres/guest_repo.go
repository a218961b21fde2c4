package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gatherly/internal/domain"
)

type guestRepository struct {
	DB *sql.DB
}

func NewGuestRepository(db *sql.DB) domain.GuestRepository {
	return &guestRepository{DB: db}
}

func (r *guestRepository) Create(ctx context.Context, g *domain.Guest) error {
	query := `
		INSERT INTO guests (identity_id, email, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, g.IdentityID, g.Email, g.FirstName, g.LastName, g.CreatedAt, g.UpdatedAt).
		Scan(&g.ID)
	if err != nil {
		// guests.identity_id carries a unique constraint: one profile per identity.
		if isUniqueViolation(err) {
			return domain.ErrDuplicateProfile
		}
		return err
	}
	return nil
}

func (r *guestRepository) GetByIdentityID(ctx context.Context, identityID string) (*domain.Guest, error) {
	query := `
		SELECT id, identity_id, email, first_name, last_name, created_at, updated_at
		FROM guests
		WHERE identity_id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, identityID))
}

func (r *guestRepository) GetByID(ctx context.Context, id string) (*domain.Guest, error) {
	query := `
		SELECT id, identity_id, email, first_name, last_name, created_at, updated_at
		FROM guests
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *guestRepository) scanOne(row *sql.Row) (*domain.Guest, error) {
	g := &domain.Guest{}
	err := row.Scan(&g.ID, &g.IdentityID, &g.Email, &g.FirstName, &g.LastName, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *guestRepository) SearchByName(ctx context.Context, firstName, lastName string, matchEither bool) ([]*domain.Guest, error) {
	var query string
	var args []any
	if matchEither {
		query = `
			SELECT id, identity_id, email, first_name, last_name, created_at, updated_at
			FROM guests
			WHERE first_name ILIKE $1 OR last_name ILIKE $1
		`
		args = []any{"%" + firstName + "%"}
	} else {
		query = `
			SELECT id, identity_id, email, first_name, last_name, created_at, updated_at
			FROM guests
			WHERE first_name ILIKE $1 AND last_name ILIKE $2
		`
		args = []any{"%" + firstName + "%", "%" + lastName + "%"}
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guests []*domain.Guest
	for rows.Next() {
		g := &domain.Guest{}
		if err := rows.Scan(&g.ID, &g.IdentityID, &g.Email, &g.FirstName, &g.LastName, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if guests == nil {
		guests = []*domain.Guest{}
	}
	return guests, nil
}
