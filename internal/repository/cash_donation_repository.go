package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmbtrust/donation-backend/internal/model"
	"github.com/jmbtrust/donation-backend/internal/utils"
)

// CashDonationRepo persists donations collected in person by volunteers.
// Creation mints the sequential receipt number inside the same transaction
// as the insert, so a failed insert rolls the counter increment back and a
// failed increment persists nothing.
type CashDonationRepo struct {
	DB       *sql.DB
	Counters *CounterRepo
}

func NewCashDonationRepo(db *sql.DB, counters *CounterRepo) *CashDonationRepo {
	return &CashDonationRepo{DB: db, Counters: counters}
}

const cashColumns = `c.id, c.volunteer_id, c.name, c.phone, c.email, c.amount, c.note,
c.donation_type, c.bank_name, c.cheque_number, c.upi_transaction_id, c.aadhar_card, c.pan_card,
c.status, c.receipt_number, c.deposit_acknowledged, c.deposit_note, c.deposit_verified,
c.deposit_verified_at, c.deposit_verified_by, c.is_deleted, c.created_at`

func scanCashDonation(scan func(dest ...any) error, withVolunteer bool) (model.CashDonation, error) {
	var (
		d          model.CashDonation
		email      sql.NullString
		note       sql.NullString
		bank       sql.NullString
		cheque     sql.NullString
		upi        sql.NullString
		aadhar     sql.NullString
		pan        sql.NullString
		depNote    sql.NullString
		verifiedAt sql.NullTime
		verifiedBy sql.NullInt64
		username   sql.NullString
	)
	dest := []any{&d.ID, &d.VolunteerID, &d.Name, &d.Phone, &email, &d.Amount, &note,
		&d.DonationType, &bank, &cheque, &upi, &aadhar, &pan,
		&d.Status, &d.ReceiptNumber, &d.DepositAcknowledged, &depNote, &d.DepositVerified,
		&verifiedAt, &verifiedBy, &d.IsDeleted, &d.CreatedAt}
	if withVolunteer {
		dest = append(dest, &username)
	}
	if err := scan(dest...); err != nil {
		return d, err
	}
	d.Email = email.String
	d.Note = note.String
	d.BankName = bank.String
	d.ChequeNumber = cheque.String
	d.UPITransactionID = upi.String
	d.AadharCard = aadhar.String
	d.PanCard = pan.String
	d.DepositNote = depNote.String
	if verifiedAt.Valid {
		t := verifiedAt.Time
		d.DepositVerifiedAt = &t
	}
	if verifiedBy.Valid {
		d.DepositVerifiedBy = uint64(verifiedBy.Int64)
	}
	d.VolunteerUsername = username.String
	return d, nil
}

// Create inserts a cash donation, minting its receipt number from the
// volunteerReceipt counter inside one transaction.  On success the record's
// ID, ReceiptNumber, Status and CreatedAt are populated.
func (r *CashDonationRepo) Create(ctx context.Context, d *model.CashDonation) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	seq, err := r.Counters.NextTx(ctx, tx, model.CounterVolunteerReceipt)
	if err != nil {
		return err
	}
	d.ReceiptNumber = utils.CashReceiptNumber(seq)
	d.Status = model.StatusCollected

	res, err := tx.ExecContext(ctx,
		`INSERT INTO cash_donations
		 (volunteer_id, name, phone, email, amount, note, donation_type, bank_name,
		  cheque_number, upi_transaction_id, aadhar_card, pan_card, status, receipt_number)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		d.VolunteerID, d.Name, d.Phone, nullable(d.Email), d.Amount, nullable(d.Note),
		d.DonationType, nullable(d.BankName), nullable(d.ChequeNumber),
		nullable(d.UPITransactionID), nullable(d.AadharCard), nullable(d.PanCard),
		d.Status, d.ReceiptNumber)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	d.CreatedAt = time.Now().UTC()
	return tx.Commit()
}

// GetByID fetches a cash donation with the owning volunteer's username
// joined in.  Soft-deleted rows remain reachable for the receipt link.
func (r *CashDonationRepo) GetByID(ctx context.Context, id uint64) (model.CashDonation, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+cashColumns+", u.username FROM cash_donations c JOIN users u ON u.id = c.volunteer_id WHERE c.id=? LIMIT 1", id)
	d, err := scanCashDonation(row.Scan, true)
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	return d, err
}

// List returns all non-deleted cash donations, newest first, with volunteer
// usernames for the admin/accounts/trustee view.
func (r *CashDonationRepo) List(ctx context.Context) ([]model.CashDonation, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+cashColumns+", u.username FROM cash_donations c JOIN users u ON u.id = c.volunteer_id WHERE c.is_deleted=0 ORDER BY c.created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCashDonations(rows, true)
}

// ListByVolunteer returns a volunteer's own non-deleted donations.
func (r *CashDonationRepo) ListByVolunteer(ctx context.Context, volunteerID uint64) ([]model.CashDonation, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+cashColumns+" FROM cash_donations c WHERE c.volunteer_id=? AND c.is_deleted=0 ORDER BY c.created_at DESC",
		volunteerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCashDonations(rows, false)
}

// ListBetween returns non-deleted donations created inside [from, to] with
// volunteer usernames, for the trustee report profile.
func (r *CashDonationRepo) ListBetween(ctx context.Context, from, to time.Time) ([]model.CashDonation, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+cashColumns+", u.username FROM cash_donations c JOIN users u ON u.id = c.volunteer_id WHERE c.is_deleted=0 AND c.created_at >= ? AND c.created_at <= ? ORDER BY c.created_at",
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCashDonations(rows, true)
}

// ListByVolunteerBetween returns one volunteer's non-deleted donations
// inside [from, to], for the per-volunteer daily report.
func (r *CashDonationRepo) ListByVolunteerBetween(ctx context.Context, volunteerID uint64, from, to time.Time) ([]model.CashDonation, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+cashColumns+" FROM cash_donations c WHERE c.volunteer_id=? AND c.is_deleted=0 AND c.created_at >= ? AND c.created_at <= ? ORDER BY c.created_at",
		volunteerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCashDonations(rows, false)
}

// Acknowledge sets the deposit-acknowledged flag and note on a single
// donation.  When ownerID is non-zero the update only applies if that
// volunteer owns the record; a mismatch maps to ErrForbidden.
func (r *CashDonationRepo) Acknowledge(ctx context.Context, id, ownerID uint64, note string) error {
	q := "UPDATE cash_donations SET deposit_acknowledged=1, deposit_note=? WHERE id=?"
	args := []any{note, id}
	if ownerID != 0 {
		q += " AND volunteer_id=?"
		args = append(args, ownerID)
	}
	res, err := r.DB.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Zero affected rows is either a missing id, a record owned by a
		// different volunteer, or an update that changed nothing (already
		// acknowledged with the same note).  Tell them apart by owner.
		var owner uint64
		err := r.DB.QueryRowContext(ctx,
			"SELECT volunteer_id FROM cash_donations WHERE id=?", id).Scan(&owner)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if ownerID != 0 && owner != ownerID {
			return ErrForbidden
		}
	}
	return nil
}

// AcknowledgeBatch applies one shared note to many donations.  Ids that do
// not exist, or that belong to a different volunteer when ownerID is
// non-zero, are skipped rather than failing the batch; the skipped ids are
// reported back alongside the number of rows updated.
func (r *CashDonationRepo) AcknowledgeBatch(ctx context.Context, ids []uint64, ownerID uint64, note string) (updated int64, skipped []uint64, err error) {
	for _, id := range ids {
		switch err := r.Acknowledge(ctx, id, ownerID, note); err {
		case nil:
			updated++
		case ErrNotFound, ErrForbidden:
			skipped = append(skipped, id)
		default:
			return updated, skipped, err
		}
	}
	return updated, skipped, nil
}

// VerifyDeposit stamps the verifier's identity and the current time on a
// donation.  Verification does not require prior acknowledgment; the two
// flags are independent.
func (r *CashDonationRepo) VerifyDeposit(ctx context.Context, id, verifierID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE cash_donations SET deposit_verified=1, deposit_verified_at=?, deposit_verified_by=? WHERE id=?",
		time.Now().UTC(), verifierID, id)
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

// SoftDelete flags a cash donation as logically removed.
func (r *CashDonationRepo) SoftDelete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE cash_donations SET is_deleted=1 WHERE id=? AND is_deleted=0", id)
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

func collectCashDonations(rows *sql.Rows, withVolunteer bool) ([]model.CashDonation, error) {
	var out []model.CashDonation
	for rows.Next() {
		d, err := scanCashDonation(rows.Scan, withVolunteer)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
