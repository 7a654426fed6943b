package model

import "time"

// Sponsor mirrors the `sponsors` table.  At most one sponsor image may
// exist at a time; creation fails while a row is present and the caller
// must delete the existing one first.
type Sponsor struct {
	ID        uint64    `json:"id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"createdAt"`
}

// DailyDonorImage mirrors the `daily_donor_images` table: an uploaded image
// shown on the daily donors board.  Path is the on-disk location used when
// deleting or replacing the file.
type DailyDonorImage struct {
	ID        uint64    `json:"id"`
	Filename  string    `json:"filename"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"createdAt"`
}
