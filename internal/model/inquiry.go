package model

import "time"

// Inquiry statuses.
const (
	InquiryStatusNew        = "new"
	InquiryStatusInProgress = "in-progress"
	InquiryStatusClosed     = "closed"
)

// ValidInquiryStatus reports whether s is a recognized inquiry status.
func ValidInquiryStatus(s string) bool {
	return s == InquiryStatusNew || s == InquiryStatusInProgress || s == InquiryStatusClosed
}

// Inquiry mirrors the `inquiries` table: a contact-form submission.
// AssignedAdminID is sticky: the first admin to update the inquiry claims
// it, and from then on only that admin may change its status.
type Inquiry struct {
	ID                uint64          `json:"id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone"`
	Country           string          `json:"country,omitempty"`
	Comments          string          `json:"comments"`
	Source            string          `json:"source"` // e.g. "about", "contact"
	Status            string          `json:"status"`
	AssignedAdminID   uint64          `json:"assignedAdmin,omitempty"`
	AssignedAdminName string          `json:"assignedAdminName,omitempty"` // joined from users, list views only
	Remarks           []InquiryRemark `json:"adminRemarks,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// InquiryRemark mirrors the `inquiry_remarks` table.  Remarks are
// append-only; they are never edited or removed.
type InquiryRemark struct {
	ID        uint64    `json:"id"`
	InquiryID uint64    `json:"-"`
	AdminID   uint64    `json:"admin"`
	Remark    string    `json:"remark"`
	CreatedAt time.Time `json:"createdAt"`
}
