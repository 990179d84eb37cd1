// Package server exposes the tracker over a JSON HTTP API. Handlers do
// request decoding, money-text parsing, and name resolution; everything
// financial is delegated to the service and calculator layers.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tabkeep/tabkeep/internal/auth"
	"github.com/tabkeep/tabkeep/internal/middleware"
	"github.com/tabkeep/tabkeep/internal/service"
)

// Server holds the handler dependencies.
type Server struct {
	ledgers *service.LedgerService
	auths   *service.AuthService
	tokens  *auth.JWTManager
}

// New creates a Server.
func New(ledgers *service.LedgerService, auths *service.AuthService, tokens *auth.JWTManager) *Server {
	return &Server{ledgers: ledgers, auths: auths, tokens: tokens}
}

// Handler builds the full route table with middleware applied.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /api/v1/ledger", s.handleGetLedger)
	api.HandleFunc("POST /api/v1/people", s.handleAddPerson)
	api.HandleFunc("DELETE /api/v1/people/{id}", s.handleRemovePerson)
	api.HandleFunc("GET /api/v1/people/{id}/statement", s.handleGetStatement)
	api.HandleFunc("POST /api/v1/purchases", s.handleAddPurchase)
	api.HandleFunc("PATCH /api/v1/purchases/{id}/status", s.handleSetPurchaseStatus)
	api.HandleFunc("POST /api/v1/payments", s.handleRecordPayment)
	api.HandleFunc("GET /api/v1/balances", s.handleGetBalances)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/", middleware.RequireAuth(s.tokens, api))
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return middleware.Metrics(middleware.Logging(middleware.CORS(mux)))
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

var errBadBody = errors.New("invalid request body")

// statusForError maps validation errors to 400 and everything else
// (store failures) to 500.
func statusForError(err error) int {
	for _, validation := range []error{
		service.ErrNameRequired,
		service.ErrTitleRequired,
		service.ErrNoItems,
		service.ErrNegativePrice,
		service.ErrNegativeFee,
		service.ErrPersonRequired,
		service.ErrAmountNotPositive,
		service.ErrInvalidStatus,
	} {
		if errors.Is(err, validation) {
			return http.StatusBadRequest
		}
	}
	if errors.Is(err, service.ErrPurchaseNotFound) || errors.Is(err, service.ErrPersonNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
