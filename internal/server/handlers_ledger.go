package server

import (
	"net/http"

	"github.com/tabkeep/tabkeep/internal/calculator"
	"github.com/tabkeep/tabkeep/internal/middleware"
	"github.com/tabkeep/tabkeep/internal/models"
	"github.com/tabkeep/tabkeep/internal/money"
)

// Money fields arrive as the raw text the user typed ("$12.50",
// "12,50"); parsing is lenient and unparseable text means zero.

type addPersonRequest struct {
	Name string `json:"name"`
}

type itemRequest struct {
	Description    string   `json:"description"`
	Price          string   `json:"price"`
	ParticipantIDs []string `json:"participant_ids"`
}

type addPurchaseRequest struct {
	Title      string        `json:"title"`
	Date       string        `json:"date"`
	Items      []itemRequest `json:"items"`
	Fee        string        `json:"fee"`
	Notes      string        `json:"notes"`
	ReceiptRef string        `json:"receipt_ref"`
}

type setStatusRequest struct {
	Status models.PurchaseStatus `json:"status"`
}

type recordPaymentRequest struct {
	PersonID string `json:"person_id"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Note     string `json:"note"`
	Method   string `json:"method"`
}

type balanceEntry struct {
	PersonID     string `json:"person_id"`
	Name         string `json:"name"`
	OwedCents    int64  `json:"owed_cents"`
	PaidCents    int64  `json:"paid_cents"`
	BalanceCents int64  `json:"balance_cents"`
	Balance      string `json:"balance"`
}

type statementResponse struct {
	PersonID   string                 `json:"person_id"`
	PersonName string                 `json:"person_name"`
	Statement  calculator.Statement   `json:"statement"`
	ExportRows []calculator.ExportRow `json:"export_rows"`
	Totals     statementTotals        `json:"totals"`
}

type statementTotals struct {
	Charges  string `json:"charges"`
	Payments string `json:"payments"`
	Balance  string `json:"balance"`
}

func (s *Server) handleGetLedger(w http.ResponseWriter, r *http.Request) {
	ledger, err := s.ledgers.Snapshot(r.Context(), middleware.GetAccountID(r.Context()))
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, ledger)
}

func (s *Server) handleAddPerson(w http.ResponseWriter, r *http.Request) {
	var req addPersonRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errBadBody)
		return
	}

	person, err := s.ledgers.AddPerson(r.Context(), middleware.GetAccountID(r.Context()), req.Name)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, person)
}

func (s *Server) handleRemovePerson(w http.ResponseWriter, r *http.Request) {
	err := s.ledgers.RemovePerson(r.Context(), middleware.GetAccountID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddPurchase(w http.ResponseWriter, r *http.Request) {
	var req addPurchaseRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errBadBody)
		return
	}

	items := make([]models.Item, len(req.Items))
	for i, item := range req.Items {
		items[i] = models.Item{
			Description:    item.Description,
			PriceCents:     money.ParseToCents(item.Price),
			ParticipantIDs: item.ParticipantIDs,
		}
	}

	purchase, err := s.ledgers.AddPurchase(r.Context(), middleware.GetAccountID(r.Context()), models.Purchase{
		Title:      req.Title,
		Date:       req.Date,
		Items:      items,
		FeeCents:   money.ParseToCents(req.Fee),
		Notes:      req.Notes,
		ReceiptRef: req.ReceiptRef,
	})
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, purchase)
}

func (s *Server) handleSetPurchaseStatus(w http.ResponseWriter, r *http.Request) {
	var req setStatusRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errBadBody)
		return
	}

	err := s.ledgers.SetPurchaseStatus(r.Context(), middleware.GetAccountID(r.Context()), r.PathValue("id"), req.Status)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errBadBody)
		return
	}

	payment, err := s.ledgers.RecordPayment(r.Context(), middleware.GetAccountID(r.Context()), models.Payment{
		PersonID:    req.PersonID,
		AmountCents: money.ParseToCents(req.Amount),
		Date:        req.Date,
		Note:        req.Note,
		Method:      req.Method,
	})
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (s *Server) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	balances, ledger, err := s.ledgers.Balances(r.Context(), middleware.GetAccountID(r.Context()))
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	// People first in snapshot order, then any dangling IDs, so the
	// response order is stable.
	entries := make([]balanceEntry, 0, len(balances))
	listed := make(map[string]bool, len(ledger.People))
	for _, person := range ledger.People {
		entries = append(entries, newBalanceEntry(person.ID, person.Name, balances[person.ID]))
		listed[person.ID] = true
	}
	for _, purchase := range ledger.Purchases {
		for _, id := range calculator.ParticipantSet(purchase) {
			if !listed[id] {
				entries = append(entries, newBalanceEntry(id, models.UnknownName, balances[id]))
				listed[id] = true
			}
		}
	}
	for _, payment := range ledger.Payments {
		if !listed[payment.PersonID] {
			entries = append(entries, newBalanceEntry(payment.PersonID, models.UnknownName, balances[payment.PersonID]))
			listed[payment.PersonID] = true
		}
	}

	writeJSON(w, http.StatusOK, entries)
}

func newBalanceEntry(id, name string, b calculator.Balance) balanceEntry {
	return balanceEntry{
		PersonID:     id,
		Name:         name,
		OwedCents:    b.OwedCents,
		PaidCents:    b.PaidCents,
		BalanceCents: b.BalanceCents,
		Balance:      money.Format(b.BalanceCents),
	}
}

func (s *Server) handleGetStatement(w http.ResponseWriter, r *http.Request) {
	personID := r.PathValue("id")
	stmt, ledger, err := s.ledgers.Statement(r.Context(), middleware.GetAccountID(r.Context()), personID)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	writeJSON(w, http.StatusOK, statementResponse{
		PersonID:   personID,
		PersonName: ledger.PersonName(personID),
		Statement:  stmt,
		ExportRows: stmt.ExportRows(),
		Totals: statementTotals{
			Charges:  money.Format(stmt.Totals.ChargesCents),
			Payments: money.Format(stmt.Totals.PaymentsCents),
			Balance:  money.Format(stmt.Totals.BalanceCents),
		},
	})
}
