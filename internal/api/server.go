// Package api provides the HTTP server for the POS daemon. The UI in
// front of it owns rendering and permissions; this surface only speaks
// typed operations and typed errors.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lumistudio/pos/internal/app/ledger"
	"github.com/lumistudio/pos/internal/app/settle"
	"github.com/lumistudio/pos/internal/app/writer"
	"github.com/lumistudio/pos/internal/domain"
	"github.com/lumistudio/pos/internal/infra/sqlite"
)

// Server is the POS HTTP API server.
type Server struct {
	db             *sqlite.DB
	writer         *writer.Service
	settler        *settle.Service
	ledger         *ledger.Service
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(db *sqlite.DB, w *writer.Service, st *settle.Service, l *ledger.Service) *Server {
	return &Server{db: db, writer: w, settler: st, ledger: l}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/invoices", s.handleCreateInvoice)
		r.Get("/invoices/{id}", s.handleGetInvoice)
		r.Post("/invoices/{id}/settle", s.handleSettle(domain.KindInvoice))

		r.Post("/bills", s.handleCreateBill)
		r.Get("/bills/{id}", s.handleGetBill)
		r.Post("/bills/{id}/settle", s.handleSettle(domain.KindBill))

		r.Post("/bookings", s.handleCreateBooking)
		r.Get("/bookings/{id}", s.handleGetBooking)
		r.Post("/bookings/{id}/settle", s.handleSettle(domain.KindBooking))

		r.Post("/expenses", s.handleAddExpense)

		r.Get("/ledger/{date}", s.handleDailyReport)
		r.Post("/ledger/{date}/recompute", s.handleRecompute)

		r.Post("/frames", s.handleUpsertFrame)
		r.Get("/frames/{id}", s.handleGetFrame)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ─── Response Helpers ───────────────────────────────────────────────────────

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a domain error onto an HTTP status and writes it.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errStatus(err), map[string]any{
		"error": map[string]any{
			"message": err.Error(),
			"type":    errType(err),
		},
	})
}

func errStatus(err error) int {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrUnderpayment),
		errors.Is(err, domain.ErrAlreadySettled):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errType(err error) string {
	switch {
	case domain.IsValidation(err):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrUnderpayment):
		return "underpayment"
	case errors.Is(err, domain.ErrAlreadySettled):
		return "already_settled"
	case errors.Is(err, domain.ErrPersistence):
		return "persistence"
	default:
		return "internal"
	}
}
