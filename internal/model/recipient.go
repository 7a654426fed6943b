package model

import (
	"strings"
	"time"
)

// Report frequencies.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// ValidFrequency reports whether s is a recognized report frequency.
func ValidFrequency(s string) bool {
	return s == FrequencyDaily || s == FrequencyWeekly || s == FrequencyMonthly
}

// Report output formats a recipient may request.  Only "csv" currently
// produces an attachment; "pdf" and "xlsx" are accepted and stored so the
// preference survives until those renderers exist.
const (
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// ValidFormat reports whether s is a recognized output format.
func ValidFormat(s string) bool {
	return s == FormatCSV || s == FormatPDF || s == FormatXLSX
}

// ReportRecipient mirrors the `report_recipients` table: an email address
// subscribed to the periodic donation reports.  Formats is stored as a
// comma-joined string column and exposed as a slice.
type ReportRecipient struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"` // unique
	Frequency string    `json:"frequency"`
	Formats   []string  `json:"formats"`
	CreatedAt time.Time `json:"createdAt"`
}

// WantsFormat reports whether the recipient asked for the given format.
func (r ReportRecipient) WantsFormat(format string) bool {
	for _, f := range r.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// JoinFormats serializes a format list for storage.
func JoinFormats(formats []string) string {
	return strings.Join(formats, ",")
}

// SplitFormats parses a stored format column back into a slice.  An empty
// column yields a nil slice, not a one-element slice of "".
func SplitFormats(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
