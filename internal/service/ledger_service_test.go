package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabkeep/tabkeep/internal/models"
	"github.com/tabkeep/tabkeep/internal/storage/sqlite"
)

func newTestService(t *testing.T) *LedgerService {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return NewLedgerService(store)
}

func TestAddPerson(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := svc.AddPerson(ctx, "acct", "")
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("assigns id and persists", func(t *testing.T) {
		person, err := svc.AddPerson(ctx, "acct", "Alice")
		require.NoError(t, err)
		assert.NotEmpty(t, person.ID)

		ledger, err := svc.Snapshot(ctx, "acct")
		require.NoError(t, err)
		require.Len(t, ledger.People, 1)
		assert.Equal(t, "Alice", ledger.People[0].Name)
	})
}

func TestRemovePerson(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	person, err := svc.AddPerson(ctx, "acct", "Alice")
	require.NoError(t, err)

	t.Run("unknown person errors", func(t *testing.T) {
		assert.ErrorIs(t, svc.RemovePerson(ctx, "acct", "nope"), ErrPersonNotFound)
	})

	t.Run("removes and leaves item references dangling", func(t *testing.T) {
		_, err := svc.AddPurchase(ctx, "acct", models.Purchase{
			Title: "Snacks",
			Items: []models.Item{{PriceCents: 100, ParticipantIDs: []string{person.ID}}},
		})
		require.NoError(t, err)

		require.NoError(t, svc.RemovePerson(ctx, "acct", person.ID))

		ledger, err := svc.Snapshot(ctx, "acct")
		require.NoError(t, err)
		assert.Empty(t, ledger.People)
		// The participant reference survives; it renders as Unknown.
		require.Len(t, ledger.Purchases, 1)
		assert.Equal(t, []string{person.ID}, ledger.Purchases[0].Items[0].ParticipantIDs)
		assert.Equal(t, models.UnknownName, ledger.PersonName(person.ID))
	})
}

func TestAddPurchaseValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		purchase models.Purchase
		wantErr  error
	}{
		{"missing title", models.Purchase{Items: []models.Item{{PriceCents: 1}}}, ErrTitleRequired},
		{"no items", models.Purchase{Title: "x"}, ErrNoItems},
		{"negative price", models.Purchase{Title: "x", Items: []models.Item{{PriceCents: -1}}}, ErrNegativePrice},
		{"negative fee", models.Purchase{Title: "x", FeeCents: -1, Items: []models.Item{{PriceCents: 1}}}, ErrNegativeFee},
		{"bad status", models.Purchase{Title: "x", Status: "paid", Items: []models.Item{{PriceCents: 1}}}, ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddPurchase(ctx, "acct", tt.purchase)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAddPurchaseDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	purchase, err := svc.AddPurchase(ctx, "acct", models.Purchase{
		Title: "Groceries",
		Items: []models.Item{{PriceCents: 100, ParticipantIDs: []string{"a"}}},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, purchase.ID)
	assert.NotEmpty(t, purchase.Items[0].ID)
	assert.Equal(t, "Item", purchase.Items[0].Description)
	assert.Equal(t, models.StatusOpen, purchase.Status)
	assert.NotEmpty(t, purchase.Date)
}

func TestSetPurchaseStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	purchase, err := svc.AddPurchase(ctx, "acct", models.Purchase{
		Title: "Groceries",
		Items: []models.Item{{PriceCents: 100, ParticipantIDs: []string{"a"}}},
	})
	require.NoError(t, err)

	t.Run("rejects unknown status", func(t *testing.T) {
		assert.ErrorIs(t, svc.SetPurchaseStatus(ctx, "acct", purchase.ID, "paid"), ErrInvalidStatus)
	})

	t.Run("rejects unknown purchase", func(t *testing.T) {
		assert.ErrorIs(t, svc.SetPurchaseStatus(ctx, "acct", "nope", models.StatusSettled), ErrPurchaseNotFound)
	})

	t.Run("toggles back and forth without touching balances", func(t *testing.T) {
		before, _, err := svc.Balances(ctx, "acct")
		require.NoError(t, err)

		require.NoError(t, svc.SetPurchaseStatus(ctx, "acct", purchase.ID, models.StatusSettled))
		require.NoError(t, svc.SetPurchaseStatus(ctx, "acct", purchase.ID, models.StatusOpen))
		require.NoError(t, svc.SetPurchaseStatus(ctx, "acct", purchase.ID, models.StatusSettled))

		after, ledger, err := svc.Balances(ctx, "acct")
		require.NoError(t, err)
		assert.Equal(t, before, after)
		assert.Equal(t, models.StatusSettled, ledger.Purchases[0].Status)
	})
}

func TestRecordPaymentValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.RecordPayment(ctx, "acct", models.Payment{AmountCents: 100})
	assert.ErrorIs(t, err, ErrPersonRequired)

	_, err = svc.RecordPayment(ctx, "acct", models.Payment{PersonID: "a", AmountCents: 0})
	assert.ErrorIs(t, err, ErrAmountNotPositive)

	_, err = svc.RecordPayment(ctx, "acct", models.Payment{PersonID: "a", AmountCents: -5})
	assert.ErrorIs(t, err, ErrAmountNotPositive)
}

func TestBalancesAndStatementEndToEnd(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	alice, err := svc.AddPerson(ctx, "acct", "Alice")
	require.NoError(t, err)
	bob, err := svc.AddPerson(ctx, "acct", "Bob")
	require.NoError(t, err)

	_, err = svc.AddPurchase(ctx, "acct", models.Purchase{
		Title: "Snacks",
		Items: []models.Item{
			{PriceCents: 599, ParticipantIDs: []string{alice.ID, bob.ID}},
			{PriceCents: 350, ParticipantIDs: []string{alice.ID}},
		},
		FeeCents: 101,
	})
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, "acct", models.Payment{PersonID: bob.ID, AmountCents: 350})
	require.NoError(t, err)

	balances, _, err := svc.Balances(ctx, "acct")
	require.NoError(t, err)

	assert.Equal(t, int64(701), balances[alice.ID].OwedCents)
	assert.Equal(t, int64(701), balances[alice.ID].BalanceCents)
	assert.Equal(t, int64(350), balances[bob.ID].OwedCents)
	assert.Equal(t, int64(0), balances[bob.ID].BalanceCents)

	stmt, _, err := svc.Statement(ctx, "acct", bob.ID)
	require.NoError(t, err)
	require.Len(t, stmt.ChargeRows, 1)
	assert.Equal(t, int64(350), stmt.ChargeRows[0].AmountCents)
	require.Len(t, stmt.PaymentRows, 1)
	assert.Equal(t, int64(0), stmt.Totals.BalanceCents)
}
