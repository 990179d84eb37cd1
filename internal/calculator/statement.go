package calculator

import "github.com/tabkeep/tabkeep/internal/models"

// ChargeRow is one purchase's charge against the statement's person.
type ChargeRow struct {
	PurchaseID  string                `json:"purchase_id"`
	Date        string                `json:"date"`
	Title       string                `json:"title"`
	AmountCents int64                 `json:"amount_cents"`
	Status      models.PurchaseStatus `json:"status"`
	Notes       string                `json:"notes,omitempty"`
}

// PaymentRow is one payment made by the statement's person.
type PaymentRow struct {
	PaymentID   string `json:"payment_id"`
	Date        string `json:"date"`
	AmountCents int64  `json:"amount_cents"`
	Method      string `json:"method,omitempty"`
	Note        string `json:"note,omitempty"`
}

// StatementTotals summarizes a statement. BalanceCents follows the same
// sign convention as Balance: charges minus payments.
type StatementTotals struct {
	ChargesCents  int64 `json:"charges_cents"`
	PaymentsCents int64 `json:"payments_cents"`
	BalanceCents  int64 `json:"balance_cents"`
}

// Statement is one person's account: every purchase they shared at
// least one item on, and every payment they made. Rows keep the
// snapshot's own order; the builder never re-sorts by date.
type Statement struct {
	PersonID    string          `json:"person_id"`
	ChargeRows  []ChargeRow     `json:"charge_rows"`
	PaymentRows []PaymentRow    `json:"payment_rows"`
	Totals      StatementTotals `json:"totals"`
}

// BuildStatement filters and projects the snapshot for one person.
// Purchases the person is not on are skipped entirely, so a person with
// no activity gets an empty statement with zero totals.
func BuildStatement(ledger models.Ledger, personID string) Statement {
	stmt := Statement{PersonID: personID}

	for _, purchase := range ledger.Purchases {
		cents, ok := Allocate(purchase)[personID]
		if !ok {
			continue
		}
		stmt.ChargeRows = append(stmt.ChargeRows, ChargeRow{
			PurchaseID:  purchase.ID,
			Date:        purchase.Date,
			Title:       purchase.Title,
			AmountCents: cents,
			Status:      purchase.Status,
			Notes:       purchase.Notes,
		})
		stmt.Totals.ChargesCents += cents
	}

	for _, payment := range ledger.Payments {
		if payment.PersonID != personID {
			continue
		}
		stmt.PaymentRows = append(stmt.PaymentRows, PaymentRow{
			PaymentID:   payment.ID,
			Date:        payment.Date,
			AmountCents: payment.AmountCents,
			Method:      payment.Method,
			Note:        payment.Note,
		})
		stmt.Totals.PaymentsCents += payment.AmountCents
	}

	stmt.Totals.BalanceCents = stmt.Totals.ChargesCents - stmt.Totals.PaymentsCents
	return stmt
}

// ExportRow is the flattened, table-ready form of one statement line.
// Payment amounts are negated so a single running-total column
// reconciles charges and payments by plain summation.
type ExportRow struct {
	Type        string `json:"type"`
	Date        string `json:"date"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
	Status      string `json:"status,omitempty"`
	Method      string `json:"method,omitempty"`
	Note        string `json:"note,omitempty"`
}

// Row type labels used in exports.
const (
	RowTypeCharge  = "Charge"
	RowTypePayment = "Payment"
)

// ExportRows flattens the statement: charges first, then payments, each
// group in statement order.
func (s Statement) ExportRows() []ExportRow {
	rows := make([]ExportRow, 0, len(s.ChargeRows)+len(s.PaymentRows))
	for _, c := range s.ChargeRows {
		rows = append(rows, ExportRow{
			Type:        RowTypeCharge,
			Date:        c.Date,
			Description: c.Title,
			AmountCents: c.AmountCents,
			Status:      string(c.Status),
			Note:        c.Notes,
		})
	}
	for _, p := range s.PaymentRows {
		rows = append(rows, ExportRow{
			Type:        RowTypePayment,
			Date:        p.Date,
			Description: RowTypePayment,
			AmountCents: -p.AmountCents,
			Method:      p.Method,
			Note:        p.Note,
		})
	}
	return rows
}
