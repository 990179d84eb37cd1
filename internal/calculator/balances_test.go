package calculator

import (
	"reflect"
	"testing"

	"github.com/tabkeep/tabkeep/internal/models"
)

func testLedger() models.Ledger {
	return models.Ledger{
		People: []models.Person{
			{ID: "alice", Name: "Alice"},
			{ID: "bob", Name: "Bob"},
			{ID: "carol", Name: "Carol"},
		},
		Purchases: []models.Purchase{
			{
				ID:    "p1",
				Title: "Groceries",
				Date:  "2025-03-01",
				Items: []models.Item{
					{PriceCents: 2000, ParticipantIDs: []string{"alice", "bob"}},
					{PriceCents: 500, ParticipantIDs: []string{"bob"}},
				},
				FeeCents: 101,
				Status:   models.StatusOpen,
			},
			{
				ID:    "p2",
				Title: "Pizza night",
				Date:  "2025-03-05",
				Items: []models.Item{
					{PriceCents: 3000, ParticipantIDs: []string{"alice"}},
				},
				Status: models.StatusSettled,
			},
		},
		Payments: []models.Payment{
			{ID: "m1", PersonID: "alice", AmountCents: 1500, Date: "2025-03-06"},
			{ID: "m2", PersonID: "bob", AmountCents: 2000, Date: "2025-03-07", Method: "cash"},
			{ID: "m3", PersonID: "alice", AmountCents: 500, Date: "2025-03-08"},
		},
	}
}

func TestLedgerBalances(t *testing.T) {
	got := LedgerBalances(testLedger())

	// p1: alice 1000 items + 51 fee, bob 1000+500 items + 50 fee.
	// p2: alice 3000. Settled status changes nothing.
	want := map[string]Balance{
		"alice": {OwedCents: 4051, PaidCents: 2000, BalanceCents: 2051},
		"bob":   {OwedCents: 1550, PaidCents: 2000, BalanceCents: -450},
		"carol": {},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LedgerBalances() = %v, want %v", got, want)
	}
}

func TestBalanceIdentity(t *testing.T) {
	for id, b := range LedgerBalances(testLedger()) {
		if b.BalanceCents != b.OwedCents-b.PaidCents {
			t.Errorf("%s: balance %d != owed %d - paid %d",
				id, b.BalanceCents, b.OwedCents, b.PaidCents)
		}
	}
}

// Someone with no purchases and one payment shows as overpaid.
func TestPaymentOnlyPerson(t *testing.T) {
	ledger := models.Ledger{
		People:   []models.Person{{ID: "dave", Name: "Dave"}},
		Payments: []models.Payment{{ID: "m1", PersonID: "dave", AmountCents: 500}},
	}

	got := LedgerBalances(ledger)["dave"]
	want := Balance{OwedCents: 0, PaidCents: 500, BalanceCents: -500}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

// IDs referencing removed people still accumulate; they are rendered as
// Unknown downstream, never dropped.
func TestUnknownParticipantKeepsBalance(t *testing.T) {
	ledger := models.Ledger{
		People: []models.Person{{ID: "alice", Name: "Alice"}},
		Purchases: []models.Purchase{
			{
				ID: "p1",
				Items: []models.Item{
					{PriceCents: 1000, ParticipantIDs: []string{"alice", "ghost"}},
				},
			},
		},
	}

	got := LedgerBalances(ledger)
	if got["ghost"].OwedCents != 500 {
		t.Errorf("ghost owed = %d, want 500", got["ghost"].OwedCents)
	}
	if got["alice"].OwedCents != 500 {
		t.Errorf("alice owed = %d, want 500", got["alice"].OwedCents)
	}
}

func TestNoParticipantPurchaseContributesNothing(t *testing.T) {
	ledger := models.Ledger{
		People: []models.Person{{ID: "alice", Name: "Alice"}},
		Purchases: []models.Purchase{
			{ID: "p1", Items: []models.Item{{PriceCents: 5000}}, FeeCents: 700},
		},
	}

	got := LedgerBalances(ledger)
	want := map[string]Balance{"alice": {}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEmptyLedger(t *testing.T) {
	got := LedgerBalances(models.Ledger{})
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
