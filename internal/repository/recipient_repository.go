package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmbtrust/donation-backend/internal/model"
)

// RecipientRepo persists the report-recipient subscription list.
type RecipientRepo struct{ DB *sql.DB }

func NewRecipientRepo(db *sql.DB) *RecipientRepo { return &RecipientRepo{DB: db} }

const recipientColumns = "id, email, frequency, formats, created_at"

func scanRecipient(scan func(dest ...any) error) (model.ReportRecipient, error) {
	var (
		rec     model.ReportRecipient
		formats sql.NullString
	)
	if err := scan(&rec.ID, &rec.Email, &rec.Frequency, &formats, &rec.CreatedAt); err != nil {
		return rec, err
	}
	rec.Formats = model.SplitFormats(formats.String)
	return rec, nil
}

// Create subscribes a new recipient.  The email column is unique; a
// duplicate maps to ErrEmailExists.
func (r *RecipientRepo) Create(ctx context.Context, rec *model.ReportRecipient) error {
	rec.Email = strings.ToLower(strings.TrimSpace(rec.Email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO report_recipients (email, frequency, formats) VALUES (?,?,?)",
		rec.Email, rec.Frequency, model.JoinFormats(rec.Formats))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return nil
}

// List returns all recipients, newest first.
func (r *RecipientRepo) List(ctx context.Context) ([]model.ReportRecipient, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+recipientColumns+" FROM report_recipients ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ReportRecipient
	for rows.Next() {
		rec, err := scanRecipient(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListByFrequency returns recipients subscribed at the given frequency;
// each report job pulls its own audience.
func (r *RecipientRepo) ListByFrequency(ctx context.Context, frequency string) ([]model.ReportRecipient, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+recipientColumns+" FROM report_recipients WHERE frequency=?", frequency)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ReportRecipient
	for rows.Next() {
		rec, err := scanRecipient(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Update replaces a recipient's email, frequency and formats.
func (r *RecipientRepo) Update(ctx context.Context, id uint64, email, frequency string, formats []string) (model.ReportRecipient, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"UPDATE report_recipients SET email=?, frequency=?, formats=? WHERE id=?",
		email, frequency, model.JoinFormats(formats), id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.ReportRecipient{}, ErrEmailExists
		}
		return model.ReportRecipient{}, err
	}
	if _, err := res.RowsAffected(); err != nil {
		return model.ReportRecipient{}, err
	}
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+recipientColumns+" FROM report_recipients WHERE id=? LIMIT 1", id)
	rec, err := scanRecipient(row.Scan)
	if err == sql.ErrNoRows {
		return rec, ErrNotFound
	}
	return rec, err
}

// Delete unsubscribes a recipient.
func (r *RecipientRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM report_recipients WHERE id=?", id)
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
