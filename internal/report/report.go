package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jmbtrust/donation-backend/internal/model"
)

// Kind selects which donation stream a report covers.
type Kind string

const (
	KindOnline Kind = "online"
	KindCash   Kind = "cash"
	KindBoth   Kind = "both"
)

// Audience selects the column profile.  Trustee reports carry every field
// including gateway references and volunteer attribution; volunteer
// reports are the subset a volunteer may see about their own collections.
type Audience string

const (
	AudienceTrustee   Audience = "trustee"
	AudienceVolunteer Audience = "volunteer"
)

// OnlineStore is the slice of the donation repository the builder needs.
type OnlineStore interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]model.OnlineDonation, error)
}

// CashStore is the slice of the cash donation repository the builder needs.
type CashStore interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]model.CashDonation, error)
	ListByVolunteerBetween(ctx context.Context, volunteerID uint64, from, to time.Time) ([]model.CashDonation, error)
}

// Row is one donation flattened into the report shape.  Online and cash
// rows share it; fields the source stream lacks stay zero and render as
// empty cells.
type Row struct {
	DonationType        string // "online" or the cash sub-type
	ReceiptNumber       string
	Name                string
	Whatsapp            string
	Phone               string
	Email               string
	Amount              int64
	Note                string
	Status              string
	CreatedAt           time.Time
	BankName            string
	ChequeNumber        string
	UPITransactionID    string
	AadharCard          string
	PanCard             string
	DepositAcknowledged bool
	DepositNote         string
	DepositVerified     bool
	DepositVerifiedAt   *time.Time
	VolunteerUsername   string
	OrderID             string
	PaymentID           string
	Signature           string
}

// Report is a built report ready for dispatch.
type Report struct {
	Rows    []Row
	Summary string
	CSV     []byte
}

// Builder aggregates donation rows into CSV reports.
type Builder struct {
	Online OnlineStore
	Cash   CashStore
}

func NewBuilder(online OnlineStore, cash CashStore) *Builder {
	return &Builder{Online: online, Cash: cash}
}

// Window returns the trailing report window for a frequency, anchored at
// now: 24 hours for daily, 7 days for weekly, 30 days for monthly.
func Window(frequency string, now time.Time) (from, to time.Time) {
	switch frequency {
	case model.FrequencyWeekly:
		return now.Add(-7 * 24 * time.Hour), now
	case model.FrequencyMonthly:
		return now.Add(-30 * 24 * time.Hour), now
	default:
		return now.Add(-24 * time.Hour), now
	}
}

// Build aggregates the requested stream(s) over [from, to] and renders the
// CSV for the given audience.  Soft-deleted rows never reach the builder;
// the stores exclude them at the query level.
func (b *Builder) Build(ctx context.Context, kind Kind, audience Audience, from, to time.Time) (Report, error) {
	var rows []Row
	if kind == KindOnline || kind == KindBoth {
		online, err := b.Online.ListBetween(ctx, from, to)
		if err != nil {
			return Report{}, fmt.Errorf("list online donations: %w", err)
		}
		for _, d := range online {
			rows = append(rows, onlineRow(d))
		}
	}
	if kind == KindCash || kind == KindBoth {
		cash, err := b.Cash.ListBetween(ctx, from, to)
		if err != nil {
			return Report{}, fmt.Errorf("list cash donations: %w", err)
		}
		for _, d := range cash {
			rows = append(rows, cashRow(d))
		}
	}
	return render(rows, audience)
}

// BuildForVolunteer aggregates one volunteer's cash collections over
// [from, to] using the volunteer column profile.
func (b *Builder) BuildForVolunteer(ctx context.Context, volunteerID uint64, from, to time.Time) (Report, error) {
	cash, err := b.Cash.ListByVolunteerBetween(ctx, volunteerID, from, to)
	if err != nil {
		return Report{}, fmt.Errorf("list volunteer donations: %w", err)
	}
	rows := make([]Row, 0, len(cash))
	for _, d := range cash {
		rows = append(rows, cashRow(d))
	}
	return render(rows, AudienceVolunteer)
}

func render(rows []Row, audience Audience) (Report, error) {
	cols := trusteeColumns
	if audience == AudienceVolunteer {
		cols = volunteerColumns
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.label
	}
	if err := w.Write(header); err != nil {
		return Report{}, err
	}
	var sum int64
	for _, row := range rows {
		record := make([]string, len(cols))
		for i, col := range cols {
			record[i] = col.value(row)
		}
		if err := w.Write(record); err != nil {
			return Report{}, err
		}
		sum += row.Amount
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Report{}, err
	}

	return Report{
		Rows:    rows,
		Summary: fmt.Sprintf("Total Donations: %d\nSum of Amounts: ₹%d", len(rows), sum),
		CSV:     buf.Bytes(),
	}, nil
}

type column struct {
	label string
	value func(Row) string
}

// trusteeColumns is the full back-office profile.  Column order is fixed;
// consumers key spreadsheets off it.
var trusteeColumns = []column{
	{"Donation Type", func(r Row) string { return r.DonationType }},
	{"Receipt Number", func(r Row) string { return r.ReceiptNumber }},
	{"Name", func(r Row) string { return r.Name }},
	{"Whatsapp", func(r Row) string { return r.Whatsapp }},
	{"Phone", func(r Row) string { return r.Phone }},
	{"Email", func(r Row) string { return r.Email }},
	{"Amount", func(r Row) string { return strconv.FormatInt(r.Amount, 10) }},
	{"Note", func(r Row) string { return r.Note }},
	{"Status", func(r Row) string { return r.Status }},
	{"Created At", func(r Row) string { return r.CreatedAt.Format(time.RFC3339) }},
	{"Bank Name", func(r Row) string { return r.BankName }},
	{"Cheque Number", func(r Row) string { return r.ChequeNumber }},
	{"UPI Transaction ID", func(r Row) string { return r.UPITransactionID }},
	{"Aadhar Card", func(r Row) string { return r.AadharCard }},
	{"PAN Card", func(r Row) string { return r.PanCard }},
	{"Deposit Acknowledged", func(r Row) string { return boolCell(r.DepositAcknowledged) }},
	{"Deposit Note", func(r Row) string { return r.DepositNote }},
	{"Deposit Verified", func(r Row) string { return boolCell(r.DepositVerified) }},
	{"Deposit Verified At", func(r Row) string { return timeCell(r.DepositVerifiedAt) }},
	{"Volunteer", func(r Row) string { return r.VolunteerUsername }},
	{"Order ID", func(r Row) string { return r.OrderID }},
	{"Payment ID", func(r Row) string { return r.PaymentID }},
	{"Signature", func(r Row) string { return r.Signature }},
}

// volunteerColumns omits gateway references and cross-volunteer
// attribution.
var volunteerColumns = []column{
	{"Donation Type", func(r Row) string { return r.DonationType }},
	{"Receipt Number", func(r Row) string { return r.ReceiptNumber }},
	{"Name", func(r Row) string { return r.Name }},
	{"Phone", func(r Row) string { return r.Phone }},
	{"Email", func(r Row) string { return r.Email }},
	{"Amount", func(r Row) string { return strconv.FormatInt(r.Amount, 10) }},
	{"Note", func(r Row) string { return r.Note }},
	{"Status", func(r Row) string { return r.Status }},
	{"Created At", func(r Row) string { return r.CreatedAt.Format(time.RFC3339) }},
	{"Bank Name", func(r Row) string { return r.BankName }},
	{"Cheque Number", func(r Row) string { return r.ChequeNumber }},
	{"UPI Transaction ID", func(r Row) string { return r.UPITransactionID }},
	{"Deposit Acknowledged", func(r Row) string { return boolCell(r.DepositAcknowledged) }},
	{"Deposit Note", func(r Row) string { return r.DepositNote }},
	{"Deposit Verified", func(r Row) string { return boolCell(r.DepositVerified) }},
}

func boolCell(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func timeCell(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func onlineRow(d model.OnlineDonation) Row {
	return Row{
		DonationType:  "online",
		ReceiptNumber: d.ReceiptNumber,
		Name:          d.Name,
		Whatsapp:      d.Whatsapp,
		Email:         d.Email,
		Amount:        d.Amount,
		Note:          d.Note,
		Status:        d.Status,
		CreatedAt:     d.CreatedAt,
		AadharCard:    d.AadharCard,
		PanCard:       d.PanCard,
		OrderID:       d.OrderID,
		PaymentID:     d.PaymentID,
		Signature:     d.Signature,
	}
}

func cashRow(d model.CashDonation) Row {
	return Row{
		DonationType:        d.DonationType,
		ReceiptNumber:       d.ReceiptNumber,
		Name:                d.Name,
		Phone:               d.Phone,
		Email:               d.Email,
		Amount:              d.Amount,
		Note:                d.Note,
		Status:              d.Status,
		CreatedAt:           d.CreatedAt,
		BankName:            d.BankName,
		ChequeNumber:        d.ChequeNumber,
		UPITransactionID:    d.UPITransactionID,
		AadharCard:          d.AadharCard,
		PanCard:             d.PanCard,
		DepositAcknowledged: d.DepositAcknowledged,
		DepositNote:         d.DepositNote,
		DepositVerified:     d.DepositVerified,
		DepositVerifiedAt:   d.DepositVerifiedAt,
		VolunteerUsername:   d.VolunteerUsername,
	}
}
