package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/jmbtrust/donation-backend/internal/model"
)

func TestCounterNextFirstUse(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	// A fresh row takes the VALUES branch and reports insert-id 0; the
	// stored seq is 1.
	mock.ExpectExec("INSERT INTO counters").
		WithArgs(model.CounterVolunteerReceipt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	seq, err := NewCounterRepo(db).Next(context.Background(), model.CounterVolunteerReceipt)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if seq != 1 {
		t.Errorf("first use seq = %d, want 1", seq)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCounterNextIncrement(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	// LAST_INSERT_ID(seq + 1) surfaces the incremented value as insert-id.
	mock.ExpectExec("INSERT INTO counters").
		WithArgs(model.CounterVolunteerReceipt).
		WillReturnResult(sqlmock.NewResult(42, 2))

	seq, err := NewCounterRepo(db).Next(context.Background(), model.CounterVolunteerReceipt)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if seq != 42 {
		t.Errorf("seq = %d, want 42", seq)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
