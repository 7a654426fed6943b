package repository

import (
	"context"
	"database/sql"
)

// CounterRepo hands out values from named, persistent sequences.  The
// `counters` table is the single point of write contention in the system:
// every cash-donation creation serializes against the volunteerReceipt row.
type CounterRepo struct{ DB *sql.DB }

func NewCounterRepo(db *sql.DB) *CounterRepo { return &CounterRepo{DB: db} }

// nextQuery performs an atomic upsert-increment.  LAST_INSERT_ID(seq + 1)
// both stores the incremented value and exposes it to LastInsertId on the
// result, so no two callers can observe the same value and there is no
// application-level read-modify-write.
const nextQuery = `INSERT INTO counters (name, seq) VALUES (?, 1)
ON DUPLICATE KEY UPDATE seq = LAST_INSERT_ID(seq + 1)`

// Next returns the post-increment value of the named counter, creating the
// row at 1 on first use.
func (r *CounterRepo) Next(ctx context.Context, name string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, nextQuery, name)
	if err != nil {
		return 0, err
	}
	return lastSeq(res)
}

// NextTx is Next inside an existing transaction.  Donation creation uses
// this so a failed insert rolls the increment back and no receipt number is
// burned on a record that was never persisted.
func (r *CounterRepo) NextTx(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	res, err := tx.ExecContext(ctx, nextQuery, name)
	if err != nil {
		return 0, err
	}
	return lastSeq(res)
}

func lastSeq(res sql.Result) (int64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if id == 0 {
		// A fresh row reports insert-id 0 for the VALUES branch on some
		// server configs; the stored seq is 1 in that case.
		return 1, nil
	}
	return id, nil
}
