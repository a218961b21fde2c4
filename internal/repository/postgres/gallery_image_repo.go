package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gatherly/internal/domain"
)

type galleryImageRepository struct {
	DB *sql.DB
}

func NewGalleryImageRepository(db *sql.DB) domain.GalleryImageRepository {
	return &galleryImageRepository{DB: db}
}

func (r *galleryImageRepository) Create(ctx context.Context, image *domain.GalleryImage) error {
	query := `
		INSERT INTO event_images (event_id, uploader_id, blob_path, inserted_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, image.EventID, image.UploaderID, image.BlobPath, image.InsertedAt).
		Scan(&image.ID)
}

func (r *galleryImageRepository) GetByID(ctx context.Context, id string) (*domain.GalleryImage, error) {
	query := `
		SELECT id, event_id, uploader_id, blob_path, inserted_at
		FROM event_images
		WHERE id = $1
	`
	img := &domain.GalleryImage{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&img.ID, &img.EventID, &img.UploaderID, &img.BlobPath, &img.InsertedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return img, nil
}

func (r *galleryImageRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.GalleryImage, error) {
	query := `
		SELECT id, event_id, uploader_id, blob_path, inserted_at
		FROM event_images
		WHERE event_id = $1
		ORDER BY inserted_at ASC, id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []*domain.GalleryImage
	for rows.Next() {
		img := &domain.GalleryImage{}
		if err := rows.Scan(&img.ID, &img.EventID, &img.UploaderID, &img.BlobPath, &img.InsertedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if images == nil {
		images = []*domain.GalleryImage{}
	}
	return images, nil
}

func (r *galleryImageRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM event_images WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
