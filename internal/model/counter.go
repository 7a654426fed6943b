package model

// CounterVolunteerReceipt is the counter row backing cash-donation receipt
// numbers.  The counter persists across restarts; it is never reset.
const CounterVolunteerReceipt = "volunteerReceipt"

// Counter mirrors the `counters` table: a named, monotonically increasing
// sequence.  Every path that mints a receipt number serializes against the
// atomic increment of its row.
type Counter struct {
	Name string `json:"name"` // counters.name (primary key)
	Seq  int64  `json:"seq"`  // counters.seq
}
