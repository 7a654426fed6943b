package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/jmbtrust/donation-backend/internal/model"
)

func newCashRepo(t *testing.T) (*CashDonationRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewCashDonationRepo(db, NewCounterRepo(db)), mock
}

func TestCashDonationCreateMintsReceipt(t *testing.T) {
	repo, mock := newCashRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO counters").
		WithArgs(model.CounterVolunteerReceipt).
		WillReturnResult(sqlmock.NewResult(7, 2))
	mock.ExpectExec("INSERT INTO cash_donations").
		WithArgs(uint64(3), "Ravi", "999", nil, int64(500), nil,
			model.DonationTypeCash, nil, nil, nil, nil, nil,
			model.StatusCollected, "JMB000007").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	d := model.CashDonation{
		VolunteerID:  3,
		Name:         "Ravi",
		Phone:        "999",
		Amount:       500,
		DonationType: model.DonationTypeCash,
	}
	if err := repo.Create(context.Background(), &d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.ID != 11 {
		t.Errorf("id = %d, want 11", d.ID)
	}
	if d.ReceiptNumber != "JMB000007" {
		t.Errorf("receipt = %q, want JMB000007", d.ReceiptNumber)
	}
	if d.Status != model.StatusCollected {
		t.Errorf("status = %q, want %q", d.Status, model.StatusCollected)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCashDonationCreateRollsBackOnInsertFailure(t *testing.T) {
	repo, mock := newCashRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO counters").
		WithArgs(model.CounterVolunteerReceipt).
		WillReturnResult(sqlmock.NewResult(8, 2))
	mock.ExpectExec("INSERT INTO cash_donations").
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	d := model.CashDonation{VolunteerID: 3, Name: "Ravi", Phone: "999", Amount: 500, DonationType: model.DonationTypeCash}
	if err := repo.Create(context.Background(), &d); err == nil {
		t.Fatal("Create succeeded, want error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAcknowledgeOwnerMismatch(t *testing.T) {
	repo, mock := newCashRepo(t)

	mock.ExpectExec("UPDATE cash_donations SET deposit_acknowledged").
		WithArgs("banked", uint64(5), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT volunteer_id FROM cash_donations").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"volunteer_id"}).AddRow(9))

	err := repo.Acknowledge(context.Background(), 5, 2, "banked")
	if err != ErrForbidden {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAcknowledgeUnknownID(t *testing.T) {
	repo, mock := newCashRepo(t)

	mock.ExpectExec("UPDATE cash_donations SET deposit_acknowledged").
		WithArgs("banked", uint64(5), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT volunteer_id FROM cash_donations").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"volunteer_id"}))

	if err := repo.Acknowledge(context.Background(), 5, 2, "banked"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAcknowledgeBatchSkipsAndCounts(t *testing.T) {
	repo, mock := newCashRepo(t)

	// id 1 updates, id 2 belongs to a different volunteer, id 3 is unknown.
	mock.ExpectExec("UPDATE cash_donations SET deposit_acknowledged").
		WithArgs("note", uint64(1), uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE cash_donations SET deposit_acknowledged").
		WithArgs("note", uint64(2), uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT volunteer_id FROM cash_donations").
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"volunteer_id"}).AddRow(8))
	mock.ExpectExec("UPDATE cash_donations SET deposit_acknowledged").
		WithArgs("note", uint64(3), uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT volunteer_id FROM cash_donations").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"volunteer_id"}))

	updated, skipped, err := repo.AcknowledgeBatch(context.Background(), []uint64{1, 2, 3}, 4, "note")
	if err != nil {
		t.Fatalf("AcknowledgeBatch: %v", err)
	}
	if updated != 1 {
		t.Errorf("updated = %d, want 1", updated)
	}
	if len(skipped) != 2 || skipped[0] != 2 || skipped[1] != 3 {
		t.Errorf("skipped = %v, want [2 3]", skipped)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func cashRows(withVolunteer bool) *sqlmock.Rows {
	cols := []string{
		"id", "volunteer_id", "name", "phone", "email", "amount", "note",
		"donation_type", "bank_name", "cheque_number", "upi_transaction_id", "aadhar_card", "pan_card",
		"status", "receipt_number", "deposit_acknowledged", "deposit_note", "deposit_verified",
		"deposit_verified_at", "deposit_verified_by", "is_deleted", "created_at",
	}
	if withVolunteer {
		cols = append(cols, "username")
	}
	return sqlmock.NewRows(cols)
}

func TestListExcludesSoftDeleted(t *testing.T) {
	repo, mock := newCashRepo(t)

	// The expectation only matches a query carrying the is_deleted guard,
	// so dropping the guard fails the test.
	mock.ExpectQuery(`SELECT .+ FROM cash_donations c JOIN users u ON u\.id = c\.volunteer_id WHERE c\.is_deleted=0 ORDER BY c\.created_at DESC`).
		WillReturnRows(cashRows(true).AddRow(
			1, 3, "Ravi", "999", nil, 500, nil, model.DonationTypeCash, nil, nil, nil, nil, nil,
			model.StatusCollected, "JMB000001", false, nil, false, nil, nil, false, time.Now(), "vol1"))

	donations, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(donations) != 1 || donations[0].VolunteerUsername != "vol1" {
		t.Errorf("donations = %+v", donations)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListBetweenExcludesSoftDeleted(t *testing.T) {
	repo, mock := newCashRepo(t)
	from := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	mock.ExpectQuery(`SELECT .+ FROM cash_donations c JOIN users u ON u\.id = c\.volunteer_id WHERE c\.is_deleted=0 AND c\.created_at >= \? AND c\.created_at <= \?`).
		WithArgs(from, to).
		WillReturnRows(cashRows(true).AddRow(
			2, 3, "Asha", "888", nil, 250, nil, model.DonationTypeUPI, nil, nil, "upi-1", nil, nil,
			model.StatusCollected, "JMB000002", false, nil, false, nil, nil, false, from.Add(time.Hour), "vol1"))

	donations, err := repo.ListBetween(context.Background(), from, to)
	if err != nil {
		t.Fatalf("ListBetween: %v", err)
	}
	if len(donations) != 1 || donations[0].ReceiptNumber != "JMB000002" {
		t.Errorf("donations = %+v", donations)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetByIDReturnsSoftDeleted(t *testing.T) {
	repo, mock := newCashRepo(t)

	// The shareable receipt link stays valid after a soft delete, so the
	// lookup carries no is_deleted guard and surfaces the flag instead.
	mock.ExpectQuery(`SELECT .+ FROM cash_donations c JOIN users u ON u\.id = c\.volunteer_id WHERE c\.id=\?`).
		WithArgs(uint64(5)).
		WillReturnRows(cashRows(true).AddRow(
			5, 3, "Ravi", "999", nil, 500, nil, model.DonationTypeCash, nil, nil, nil, nil, nil,
			model.StatusCollected, "JMB000005", false, nil, false, nil, nil, true, time.Now(), "vol1"))

	d, err := repo.GetByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !d.IsDeleted {
		t.Error("soft-deleted flag not surfaced")
	}
	if d.ReceiptNumber != "JMB000005" {
		t.Errorf("receipt = %q", d.ReceiptNumber)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSoftDeleteNotFound(t *testing.T) {
	repo, mock := newCashRepo(t)

	mock.ExpectExec("UPDATE cash_donations SET is_deleted=1").
		WithArgs(uint64(77)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.SoftDelete(context.Background(), 77); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
