package calculator

import "github.com/tabkeep/tabkeep/internal/models"

// Balance is one person's aggregate position across the whole ledger.
type Balance struct {
	// OwedCents is the sum of this person's allocation across every
	// purchase.
	OwedCents int64

	// PaidCents is the sum of this person's payments.
	PaidCents int64

	// BalanceCents is owed minus paid. Positive means they still owe
	// the tracker owner, negative means they have overpaid, zero means
	// settled exactly.
	BalanceCents int64
}

// LedgerBalances reduces a snapshot to per-person totals, keyed by
// person ID. Everyone in the snapshot's People appears, zeros included.
// IDs that show up only on items or payments (say, someone removed from
// the group) appear under their ID too. Purchase status is ignored:
// settling is informational, not a financial event.
func LedgerBalances(ledger models.Ledger) map[string]Balance {
	balances := make(map[string]Balance, len(ledger.People))
	for _, person := range ledger.People {
		balances[person.ID] = Balance{}
	}

	for _, purchase := range ledger.Purchases {
		for id, cents := range Allocate(purchase) {
			b := balances[id]
			b.OwedCents += cents
			balances[id] = b
		}
	}

	for _, payment := range ledger.Payments {
		b := balances[payment.PersonID]
		b.PaidCents += payment.AmountCents
		balances[payment.PersonID] = b
	}

	for id, b := range balances {
		b.BalanceCents = b.OwedCents - b.PaidCents
		balances[id] = b
	}

	return balances
}
