package repository

import (
	"context"
	"database/sql"

	"github.com/jmbtrust/donation-backend/internal/model"
)

// ImageRepo persists the sponsor image singleton and the daily donor image
// gallery.  File contents live on disk; only metadata is stored here.
type ImageRepo struct{ DB *sql.DB }

func NewImageRepo(db *sql.DB) *ImageRepo { return &ImageRepo{DB: db} }

// ----- sponsors -----

// ListSponsors returns sponsor records newest first.  At most one row
// exists, but the listing shape matches the other resources.
func (r *ImageRepo) ListSponsors(ctx context.Context) ([]model.Sponsor, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, filename, created_at FROM sponsors ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Sponsor
	for rows.Next() {
		var s model.Sponsor
		if err := rows.Scan(&s.ID, &s.Filename, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CreateSponsor inserts the sponsor record, enforcing the singleton
// constraint: while any row exists the insert is refused with ErrConflict
// and the caller must delete the existing image first.
func (r *ImageRepo) CreateSponsor(ctx context.Context, s *model.Sponsor) error {
	// Guarded insert: the SELECT in the same statement keeps check and
	// insert atomic without an explicit transaction.
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO sponsors (filename)
		 SELECT ? FROM DUAL WHERE NOT EXISTS (SELECT 1 FROM sponsors)`,
		s.Filename)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetSponsor fetches a sponsor record by id.
func (r *ImageRepo) GetSponsor(ctx context.Context, id uint64) (model.Sponsor, error) {
	var s model.Sponsor
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, filename, created_at FROM sponsors WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.Filename, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return s, ErrNotFound
	}
	return s, err
}

// DeleteSponsor removes the sponsor record.  The caller removes the file.
func (r *ImageRepo) DeleteSponsor(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM sponsors WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ----- daily donor images -----

// ListDonorImages returns all daily donor images, newest first.
func (r *ImageRepo) ListDonorImages(ctx context.Context) ([]model.DailyDonorImage, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, filename, path, created_at FROM daily_donor_images ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.DailyDonorImage
	for rows.Next() {
		var img model.DailyDonorImage
		if err := rows.Scan(&img.ID, &img.Filename, &img.Path, &img.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

// CreateDonorImage inserts a new daily donor image record.
func (r *ImageRepo) CreateDonorImage(ctx context.Context, img *model.DailyDonorImage) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO daily_donor_images (filename, path) VALUES (?,?)",
		img.Filename, img.Path)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	img.ID = uint64(id)
	return nil
}

// GetDonorImage fetches a daily donor image by id.
func (r *ImageRepo) GetDonorImage(ctx context.Context, id uint64) (model.DailyDonorImage, error) {
	var img model.DailyDonorImage
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, filename, path, created_at FROM daily_donor_images WHERE id=? LIMIT 1",
		id).Scan(&img.ID, &img.Filename, &img.Path, &img.CreatedAt)
	if err == sql.ErrNoRows {
		return img, ErrNotFound
	}
	return img, err
}

// UpdateDonorImage replaces the stored filename/path after a re-upload.
func (r *ImageRepo) UpdateDonorImage(ctx context.Context, id uint64, filename, path string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE daily_donor_images SET filename=?, path=? WHERE id=?", filename, path, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteDonorImage removes the record.  The caller removes the file.
func (r *ImageRepo) DeleteDonorImage(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM daily_donor_images WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
