package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmbtrust/donation-backend/internal/model"
)

// DonationRepo persists online (payment-gateway) donations.
type DonationRepo struct{ DB *sql.DB }

func NewDonationRepo(db *sql.DB) *DonationRepo { return &DonationRepo{DB: db} }

const donationColumns = `id, name, whatsapp, email, amount, note, order_id, payment_id,
razorpay_signature, status, receipt_number, aadhar_card, pan_card, is_deleted, created_at`

func scanDonation(scan func(dest ...any) error) (model.OnlineDonation, error) {
	var (
		d       model.OnlineDonation
		email   sql.NullString
		note    sql.NullString
		order   sql.NullString
		payment sql.NullString
		sig     sql.NullString
		receipt sql.NullString
		aadhar  sql.NullString
		pan     sql.NullString
	)
	err := scan(&d.ID, &d.Name, &d.Whatsapp, &email, &d.Amount, &note, &order, &payment,
		&sig, &d.Status, &receipt, &aadhar, &pan, &d.IsDeleted, &d.CreatedAt)
	if err != nil {
		return d, err
	}
	d.Email = email.String
	d.Note = note.String
	d.OrderID = order.String
	d.PaymentID = payment.String
	d.Signature = sig.String
	d.ReceiptNumber = receipt.String
	d.AadharCard = aadhar.String
	d.PanCard = pan.String
	return d, nil
}

// Create inserts a donation in "created" status and returns its ID.  The
// gateway order id is attached afterwards via SetOrderID once the order is
// opened.
func (r *DonationRepo) Create(ctx context.Context, d *model.OnlineDonation) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO donations (name, whatsapp, email, amount, note, aadhar_card, pan_card, status)
		 VALUES (?,?,?,?,?,?,?,?)`,
		d.Name, d.Whatsapp, nullable(d.Email), d.Amount, nullable(d.Note),
		nullable(d.AadharCard), nullable(d.PanCard), model.StatusCreated)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	d.Status = model.StatusCreated
	return nil
}

// SetOrderID stores the gateway order reference on a created donation.
func (r *DonationRepo) SetOrderID(ctx context.Context, id uint64, orderID string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE donations SET order_id=? WHERE id=?", orderID, id)
	return err
}

// GetByOrderID resolves the donation awaiting a given gateway order.
func (r *DonationRepo) GetByOrderID(ctx context.Context, orderID string) (model.OnlineDonation, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+donationColumns+" FROM donations WHERE order_id=? LIMIT 1", orderID)
	d, err := scanDonation(row.Scan)
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	return d, err
}

// GetByID fetches a donation by id, soft-deleted or not.  Soft-deleted
// records remain reachable through the shareable receipt link.
func (r *DonationRepo) GetByID(ctx context.Context, id uint64) (model.OnlineDonation, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+donationColumns+" FROM donations WHERE id=? LIMIT 1", id)
	d, err := scanDonation(row.Scan)
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	return d, err
}

// MarkPaid records a verified payment: payment id, gateway signature, the
// freshly minted receipt number, and the created→paid status transition.
func (r *DonationRepo) MarkPaid(ctx context.Context, id uint64, paymentID, signature, receiptNumber string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE donations SET payment_id=?, razorpay_signature=?, receipt_number=?, status=?
		 WHERE id=? AND status=?`,
		paymentID, signature, receiptNumber, model.StatusPaid, id, model.StatusCreated)
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

// List returns donations newest first, excluding soft-deleted rows.
func (r *DonationRepo) List(ctx context.Context) ([]model.OnlineDonation, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+donationColumns+" FROM donations WHERE is_deleted=0 ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDonations(rows)
}

// ListBetween returns non-deleted donations created inside [from, to], used
// by the report aggregator.
func (r *DonationRepo) ListBetween(ctx context.Context, from, to time.Time) ([]model.OnlineDonation, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+donationColumns+" FROM donations WHERE is_deleted=0 AND created_at >= ? AND created_at <= ? ORDER BY created_at",
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDonations(rows)
}

// SoftDelete flags a donation as logically removed.  The row stays in the
// store for audit and direct lookup.
func (r *DonationRepo) SoftDelete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE donations SET is_deleted=1 WHERE id=? AND is_deleted=0", id)
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

func collectDonations(rows *sql.Rows) ([]model.OnlineDonation, error) {
	var out []model.OnlineDonation
	for rows.Next() {
		d, err := scanDonation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// nullable maps "" to NULL so optional text columns stay NULL instead of
// accumulating empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
