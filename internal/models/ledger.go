package models

// PurchaseStatus marks a purchase as open or settled. It is a manual
// bookkeeping tag: balances are computed the same either way.
type PurchaseStatus string

const (
	StatusOpen    PurchaseStatus = "open"
	StatusSettled PurchaseStatus = "settled"
)

// Valid reports whether the status is one of the known values.
func (s PurchaseStatus) Valid() bool {
	return s == StatusOpen || s == StatusSettled
}

// Person is a member of the group whose debts are tracked.
type Person struct {
	// ID is the unique identifier for the person (UUID format).
	ID string `json:"id"`

	// Name is the display name shown on statements.
	Name string `json:"name"`
}

// Item is a single line item on a purchase, split equally among the
// people assigned to it.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Description is free text; the service layer fills in a
	// placeholder when it is left blank.
	Description string `json:"description"`

	// PriceCents is the item price in cents. Never negative, fixed at
	// creation.
	PriceCents int64 `json:"price_cents"`

	// ParticipantIDs are the people splitting this item. Order does not
	// matter and duplicates count once. An ID referencing a removed
	// person is kept and shown as "Unknown", never dropped.
	ParticipantIDs []string `json:"participant_ids"`
}

// Purchase is one shopping trip or bill: its items, the shared fees on
// top of them (tax, delivery, tips), and a manual open/settled tag.
type Purchase struct {
	// ID is the unique identifier for the purchase (UUID format).
	ID string `json:"id"`

	// Title is the human-readable name for the purchase.
	Title string `json:"title"`

	// Date is the purchase's calendar date in ISO form (2006-01-02).
	Date string `json:"date"`

	// Items in entry order. The set is fixed once the purchase is
	// saved.
	Items []Item `json:"items"`

	// FeeCents is the shared fee amount in cents, split across
	// everyone who is on at least one item. Never negative.
	FeeCents int64 `json:"fee_cents"`

	// Notes is optional free text; empty means none.
	Notes string `json:"notes,omitempty"`

	// ReceiptRef is an opaque reference to an attached receipt; empty
	// means no attachment.
	ReceiptRef string `json:"receipt_ref,omitempty"`

	// Status is the manual open/settled tag.
	Status PurchaseStatus `json:"status"`
}

// Payment is money handed to the tracker owner. Immutable once saved.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string `json:"id"`

	// PersonID is who paid.
	PersonID string `json:"person_id"`

	// AmountCents is the payment amount in cents, always positive.
	AmountCents int64 `json:"amount_cents"`

	// Date is the payment's calendar date in ISO form (2006-01-02).
	Date string `json:"date"`

	// Note is optional free text; empty means none.
	Note string `json:"note,omitempty"`

	// Method is an optional label like "cash" or "venmo"; empty means
	// none.
	Method string `json:"method,omitempty"`
}

// Ledger is one account's snapshot at a point in time. Collection order
// is the account's own entry order and is preserved everywhere: the
// calculator never re-sorts it.
type Ledger struct {
	People    []Person   `json:"people"`
	Purchases []Purchase `json:"purchases"`
	Payments  []Payment  `json:"payments"`
}

// UnknownName labels participant IDs that no longer resolve to a
// person, e.g. after someone was removed from the group.
const UnknownName = "Unknown"

// PersonName resolves an ID to a display name, falling back to
// UnknownName for IDs that are not in the snapshot.
func (l *Ledger) PersonName(id string) string {
	for _, p := range l.People {
		if p.ID == id {
			return p.Name
		}
	}
	return UnknownName
}
