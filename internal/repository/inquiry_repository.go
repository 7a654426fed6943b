package repository

import (
	"context"
	"database/sql"

	"github.com/jmbtrust/donation-backend/internal/model"
)

// InquiryRepo persists contact-form inquiries and their admin remark trail.
type InquiryRepo struct{ DB *sql.DB }

func NewInquiryRepo(db *sql.DB) *InquiryRepo { return &InquiryRepo{DB: db} }

// Create stores a public contact-form submission in "new" status.
func (r *InquiryRepo) Create(ctx context.Context, in *model.Inquiry) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO inquiries (name, email, phone, country, comments, source, status) VALUES (?,?,?,?,?,?,?)",
		in.Name, in.Email, in.Phone, nullable(in.Country), in.Comments, in.Source, model.InquiryStatusNew)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	in.ID = uint64(id)
	in.Status = model.InquiryStatusNew
	return nil
}

// List returns all inquiries newest first, with the assigned admin's
// username joined in and remarks attached.
func (r *InquiryRepo) List(ctx context.Context) ([]model.Inquiry, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT i.id, i.name, i.email, i.phone, i.country, i.comments, i.source, i.status,
		        i.assigned_admin, u.username, i.created_at
		 FROM inquiries i LEFT JOIN users u ON u.id = i.assigned_admin
		 ORDER BY i.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Inquiry
	index := map[uint64]int{}
	for rows.Next() {
		var (
			in       model.Inquiry
			country  sql.NullString
			admin    sql.NullInt64
			username sql.NullString
		)
		if err := rows.Scan(&in.ID, &in.Name, &in.Email, &in.Phone, &country, &in.Comments,
			&in.Source, &in.Status, &admin, &username, &in.CreatedAt); err != nil {
			return nil, err
		}
		in.Country = country.String
		if admin.Valid {
			in.AssignedAdminID = uint64(admin.Int64)
		}
		in.AssignedAdminName = username.String
		index[in.ID] = len(out)
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	// Attach remarks in one pass rather than one query per inquiry.
	remarkRows, err := r.DB.QueryContext(ctx,
		"SELECT id, inquiry_id, admin_id, remark, created_at FROM inquiry_remarks ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer remarkRows.Close()
	for remarkRows.Next() {
		var rm model.InquiryRemark
		if err := remarkRows.Scan(&rm.ID, &rm.InquiryID, &rm.AdminID, &rm.Remark, &rm.CreatedAt); err != nil {
			return nil, err
		}
		if i, ok := index[rm.InquiryID]; ok {
			out[i].Remarks = append(out[i].Remarks, rm)
		}
	}
	return out, remarkRows.Err()
}

// GetByID fetches one inquiry with its remarks.
func (r *InquiryRepo) GetByID(ctx context.Context, id uint64) (model.Inquiry, error) {
	var (
		in      model.Inquiry
		country sql.NullString
		admin   sql.NullInt64
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, email, phone, country, comments, source, status, assigned_admin, created_at FROM inquiries WHERE id=? LIMIT 1",
		id).Scan(&in.ID, &in.Name, &in.Email, &in.Phone, &country, &in.Comments, &in.Source,
		&in.Status, &admin, &in.CreatedAt)
	if err == sql.ErrNoRows {
		return in, ErrNotFound
	}
	if err != nil {
		return in, err
	}
	in.Country = country.String
	if admin.Valid {
		in.AssignedAdminID = uint64(admin.Int64)
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, inquiry_id, admin_id, remark, created_at FROM inquiry_remarks WHERE inquiry_id=? ORDER BY created_at", id)
	if err != nil {
		return in, err
	}
	defer rows.Close()
	for rows.Next() {
		var rm model.InquiryRemark
		if err := rows.Scan(&rm.ID, &rm.InquiryID, &rm.AdminID, &rm.Remark, &rm.CreatedAt); err != nil {
			return in, err
		}
		in.Remarks = append(in.Remarks, rm)
	}
	return in, rows.Err()
}

// UpdateStatus claims the inquiry for adminID if unassigned, updates the
// status when one is supplied, and appends a remark when one is supplied.
// Assignment is sticky: a guarded UPDATE only matches when the inquiry is
// unassigned or already assigned to the caller, so a second admin's update
// maps to ErrConflict and never touches the row.
func (r *InquiryRepo) UpdateStatus(ctx context.Context, id, adminID uint64, status, remark string) (model.Inquiry, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Inquiry{}, err
	}
	defer func() { _ = tx.Rollback() }()

	q := "UPDATE inquiries SET assigned_admin=?"
	args := []any{adminID}
	if status != "" {
		q += ", status=?"
		args = append(args, status)
	}
	q += " WHERE id=? AND (assigned_admin IS NULL OR assigned_admin=?)"
	args = append(args, id, adminID)

	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return model.Inquiry{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Inquiry{}, err
	}
	if n == 0 {
		// Either the id is unknown or another admin holds the inquiry.
		var holder sql.NullInt64
		err := tx.QueryRowContext(ctx,
			"SELECT assigned_admin FROM inquiries WHERE id=?", id).Scan(&holder)
		if err == sql.ErrNoRows {
			return model.Inquiry{}, ErrNotFound
		}
		if err != nil {
			return model.Inquiry{}, err
		}
		if holder.Valid && uint64(holder.Int64) != adminID {
			return model.Inquiry{}, ErrConflict
		}
		// No-op update (same status, same admin); fall through to remark.
	}

	if remark != "" {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO inquiry_remarks (inquiry_id, admin_id, remark) VALUES (?,?,?)",
			id, adminID, remark); err != nil {
			return model.Inquiry{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return model.Inquiry{}, err
	}
	return r.GetByID(ctx, id)
}
