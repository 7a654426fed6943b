package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/jmbtrust/donation-backend/internal/model"
)

func newImageRepo(t *testing.T) (*ImageRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewImageRepo(db), mock
}

func TestCreateSponsorSingleton(t *testing.T) {
	repo, mock := newImageRepo(t)

	// First create: no existing row, the guarded insert matches.
	mock.ExpectExec("INSERT INTO sponsors").
		WithArgs("first.png").
		WillReturnResult(sqlmock.NewResult(1, 1))
	// Second create: the NOT EXISTS guard filters the insert out.
	mock.ExpectExec("INSERT INTO sponsors").
		WithArgs("second.png").
		WillReturnResult(sqlmock.NewResult(0, 0))

	first := model.Sponsor{Filename: "first.png"}
	if err := repo.CreateSponsor(context.Background(), &first); err != nil {
		t.Fatalf("first CreateSponsor: %v", err)
	}
	if first.ID != 1 {
		t.Errorf("first sponsor id = %d, want 1", first.ID)
	}

	second := model.Sponsor{Filename: "second.png"}
	if err := repo.CreateSponsor(context.Background(), &second); err != ErrConflict {
		t.Fatalf("second CreateSponsor err = %v, want ErrConflict", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateSponsorAfterDelete(t *testing.T) {
	repo, mock := newImageRepo(t)

	// Deleting the existing sponsor frees the singleton slot.
	mock.ExpectExec("DELETE FROM sponsors").
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO sponsors").
		WithArgs("next.png").
		WillReturnResult(sqlmock.NewResult(2, 1))

	if err := repo.DeleteSponsor(context.Background(), 1); err != nil {
		t.Fatalf("DeleteSponsor: %v", err)
	}
	s := model.Sponsor{Filename: "next.png"}
	if err := repo.CreateSponsor(context.Background(), &s); err != nil {
		t.Fatalf("CreateSponsor after delete: %v", err)
	}
	if s.ID != 2 {
		t.Errorf("sponsor id = %d, want 2", s.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDeleteSponsorNotFound(t *testing.T) {
	repo, mock := newImageRepo(t)

	mock.ExpectExec("DELETE FROM sponsors").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteSponsor(context.Background(), 7); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
