// Package service owns the load-mutate-save cycle over ledger
// snapshots and the data-entry validation the engine itself never does.
// Every mutation loads the account's snapshot, changes the copy, and
// replaces the stored document wholesale, so the engine always sees one
// consistent snapshot.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tabkeep/tabkeep/internal/calculator"
	"github.com/tabkeep/tabkeep/internal/models"
	"github.com/tabkeep/tabkeep/internal/storage"
)

// Validation errors reported back to the user at the data-entry
// boundary. The calculator never raises these; it is total over any
// snapshot the service hands it.
var (
	ErrNameRequired      = errors.New("person name is required")
	ErrTitleRequired     = errors.New("purchase title is required")
	ErrNoItems           = errors.New("purchase needs at least one item")
	ErrNegativePrice     = errors.New("item price cannot be negative")
	ErrNegativeFee       = errors.New("shared fees cannot be negative")
	ErrPersonRequired    = errors.New("payment needs a person")
	ErrAmountNotPositive = errors.New("payment amount must be positive")
	ErrInvalidStatus     = errors.New("status must be open or settled")
	ErrPurchaseNotFound  = errors.New("purchase not found")
	ErrPersonNotFound    = errors.New("person not found")
)

// defaultItemDescription fills in blank item descriptions on save.
const defaultItemDescription = "Item"

// isoDate is the calendar-date layout used on purchases and payments.
const isoDate = "2006-01-02"

// LedgerService exposes the tracker's operations for one account at a
// time. Derivations (balances, statements) delegate to the calculator;
// mutations validate, stamp IDs, and replace the snapshot.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a LedgerService backed by the given store.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

// Snapshot returns the account's current ledger.
func (s *LedgerService) Snapshot(ctx context.Context, accountID string) (*models.Ledger, error) {
	return s.store.GetLedger(ctx, accountID)
}

// AddPerson adds a named person to the group.
func (s *LedgerService) AddPerson(ctx context.Context, accountID, name string) (*models.Person, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	ledger, err := s.store.GetLedger(ctx, accountID)
	if err != nil {
		return nil, err
	}

	person := models.Person{ID: uuid.New().String(), Name: name}
	ledger.People = append(ledger.People, person)

	if err := s.store.SaveLedger(ctx, accountID, ledger); err != nil {
		return nil, err
	}

	slog.Info("person added", "account_id", accountID, "person_id", person.ID)
	return &person, nil
}

// RemovePerson removes a person from the group. Participant references
// on existing items are left alone: they keep accruing under the old ID
// and render as Unknown. Cleaning them up is the caller's call, not
// this layer's.
func (s *LedgerService) RemovePerson(ctx context.Context, accountID, personID string) error {
	ledger, err := s.store.GetLedger(ctx, accountID)
	if err != nil {
		return err
	}

	kept := ledger.People[:0:0]
	found := false
	for _, p := range ledger.People {
		if p.ID == personID {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return ErrPersonNotFound
	}
	ledger.People = kept

	if err := s.store.SaveLedger(ctx, accountID, ledger); err != nil {
		return err
	}

	slog.Info("person removed", "account_id", accountID, "person_id", personID)
	return nil
}

// AddPurchase validates and saves a purchase. IDs are assigned here;
// blank item descriptions get a placeholder, a blank date gets today,
// and a blank status opens the purchase. The item set is fixed once
// saved.
func (s *LedgerService) AddPurchase(ctx context.Context, accountID string, purchase models.Purchase) (*models.Purchase, error) {
	if purchase.Title == "" {
		return nil, ErrTitleRequired
	}
	if len(purchase.Items) == 0 {
		return nil, ErrNoItems
	}
	if purchase.FeeCents < 0 {
		return nil, ErrNegativeFee
	}
	for _, item := range purchase.Items {
		if item.PriceCents < 0 {
			return nil, ErrNegativePrice
		}
	}

	purchase.ID = uuid.New().String()
	if purchase.Date == "" {
		purchase.Date = time.Now().Format(isoDate)
	}
	if purchase.Status == "" {
		purchase.Status = models.StatusOpen
	}
	if !purchase.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	for i := range purchase.Items {
		purchase.Items[i].ID = uuid.New().String()
		if purchase.Items[i].Description == "" {
			purchase.Items[i].Description = defaultItemDescription
		}
	}

	ledger, err := s.store.GetLedger(ctx, accountID)
	if err != nil {
		return nil, err
	}
	ledger.Purchases = append(ledger.Purchases, purchase)

	if err := s.store.SaveLedger(ctx, accountID, ledger); err != nil {
		return nil, err
	}

	slog.Info("purchase added",
		"account_id", accountID,
		"purchase_id", purchase.ID,
		"items", len(purchase.Items),
		"fee_cents", purchase.FeeCents,
	)
	return &purchase, nil
}

// SetPurchaseStatus toggles the manual open/settled tag. It may flip
// any number of times and never touches the financials.
func (s *LedgerService) SetPurchaseStatus(ctx context.Context, accountID, purchaseID string, status models.PurchaseStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	ledger, err := s.store.GetLedger(ctx, accountID)
	if err != nil {
		return err
	}

	for i := range ledger.Purchases {
		if ledger.Purchases[i].ID == purchaseID {
			ledger.Purchases[i].Status = status
			return s.store.SaveLedger(ctx, accountID, ledger)
		}
	}
	return fmt.Errorf("%w: %s", ErrPurchaseNotFound, purchaseID)
}

// RecordPayment validates and saves a payment. Payments are immutable
// once recorded.
func (s *LedgerService) RecordPayment(ctx context.Context, accountID string, payment models.Payment) (*models.Payment, error) {
	if payment.PersonID == "" {
		return nil, ErrPersonRequired
	}
	if payment.AmountCents <= 0 {
		return nil, ErrAmountNotPositive
	}

	payment.ID = uuid.New().String()
	if payment.Date == "" {
		payment.Date = time.Now().Format(isoDate)
	}

	ledger, err := s.store.GetLedger(ctx, accountID)
	if err != nil {
		return nil, err
	}
	ledger.Payments = append(ledger.Payments, payment)

	if err := s.store.SaveLedger(ctx, accountID, ledger); err != nil {
		return nil, err
	}

	slog.Info("payment recorded",
		"account_id", accountID,
		"payment_id", payment.ID,
		"person_id", payment.PersonID,
		"amount_cents", payment.AmountCents,
	)
	return &payment, nil
}

// Balances computes owed/paid/balance per person over the account's
// current snapshot.
func (s *LedgerService) Balances(ctx context.Context, accountID string) (map[string]calculator.Balance, *models.Ledger, error) {
	ledger, err := s.store.GetLedger(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	return calculator.LedgerBalances(*ledger), ledger, nil
}

// Statement builds one person's statement over the account's current
// snapshot.
func (s *LedgerService) Statement(ctx context.Context, accountID, personID string) (calculator.Statement, *models.Ledger, error) {
	ledger, err := s.store.GetLedger(ctx, accountID)
	if err != nil {
		return calculator.Statement{}, nil, err
	}
	return calculator.BuildStatement(*ledger, personID), ledger, nil
}
