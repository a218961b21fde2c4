package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"gatherly/internal/domain"
)

func TestGuestRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		guest   *domain.Guest
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			guest: &domain.Guest{
				IdentityID: "identity-uuid-1",
				Email:      "emma@example.com",
				FirstName:  "Emma",
				LastName:   "Otteson",
				CreatedAt:  now,
				UpdatedAt:  now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO guests`).
					WithArgs("identity-uuid-1", "emma@example.com", "Emma", "Otteson", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("guest-uuid-1"))
			},
		},
		{
			name: "second profile for identity returns ErrDuplicateProfile",
			guest: &domain.Guest{
				IdentityID: "identity-uuid-1",
				Email:      "emma@example.com",
				FirstName:  "Emma",
				LastName:   "Otteson",
				CreatedAt:  now,
				UpdatedAt:  now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO guests`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateProfile,
		},
		{
			name: "db error",
			guest: &domain.Guest{
				IdentityID: "identity-uuid-1",
				Email:      "emma@example.com",
				FirstName:  "Emma",
				LastName:   "Otteson",
				CreatedAt:  now,
				UpdatedAt:  now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO guests`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewGuestRepository(db)
			err = repo.Create(ctx, tt.guest)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, "guest-uuid-1", tt.guest.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGuestRepository_GetByIdentityID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	cols := []string{"id", "identity_id", "email", "first_name", "last_name", "created_at", "updated_at"}

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE identity_id = \$1`).
			WithArgs("identity-uuid-1").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("guest-uuid-1", "identity-uuid-1", "emma@example.com", "Emma", "Otteson", now, now))

		repo := NewGuestRepository(db)
		g, err := repo.GetByIdentityID(ctx, "identity-uuid-1")
		require.NoError(t, err)
		require.Equal(t, "guest-uuid-1", g.ID)
		require.Equal(t, "Emma", g.FirstName)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no profile yet", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE identity_id = \$1`).
			WithArgs("identity-uuid-2").
			WillReturnError(sql.ErrNoRows)

		repo := NewGuestRepository(db)
		_, err = repo.GetByIdentityID(ctx, "identity-uuid-2")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGuestRepository_SearchByName(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	cols := []string{"id", "identity_id", "email", "first_name", "last_name", "created_at", "updated_at"}

	t.Run("single token matches either name column", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`first_name ILIKE \$1 OR last_name ILIKE \$1`).
			WithArgs("%emma%").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("guest-uuid-1", "identity-uuid-1", "emma@example.com", "Emma", "Otteson", now, now))

		repo := NewGuestRepository(db)
		guests, err := repo.SearchByName(ctx, "emma", "", true)
		require.NoError(t, err)
		require.Len(t, guests, 1)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("two tokens require both columns", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`first_name ILIKE \$1 AND last_name ILIKE \$2`).
			WithArgs("%emma%", "%otteson%").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("guest-uuid-1", "identity-uuid-1", "emma@example.com", "Emma", "Otteson", now, now))

		repo := NewGuestRepository(db)
		guests, err := repo.SearchByName(ctx, "emma", "otteson", false)
		require.NoError(t, err)
		require.Len(t, guests, 1)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`first_name ILIKE \$1 OR last_name ILIKE \$1`).
			WithArgs("%zzz%").
			WillReturnRows(sqlmock.NewRows(cols))

		repo := NewGuestRepository(db)
		guests, err := repo.SearchByName(ctx, "zzz", "", true)
		require.NoError(t, err)
		require.NotNil(t, guests)
		require.Empty(t, guests)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
