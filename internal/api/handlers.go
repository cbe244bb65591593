package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lumistudio/pos/internal/app/writer"
	"github.com/lumistudio/pos/internal/domain"
	"github.com/lumistudio/pos/internal/infra/sqlite"
)

// creatorHeader carries the current user id supplied by the identity
// gate in front of this API. Permission checks happen out there.
const creatorHeader = "X-Creator-Id"

// ─── Transaction Writer Handlers ────────────────────────────────────────────

func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	var p writer.CreateInvoiceParams
	if err := decodeBody(r, &p); err != nil {
		writeError(w, err)
		return
	}
	overrideCreator(r, &p.CreatedBy)
	inv, err := s.writer.CreateInvoice(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var p writer.CreateBillParams
	if err := decodeBody(r, &p); err != nil {
		writeError(w, err)
		return
	}
	overrideCreator(r, &p.CreatedBy)
	b, err := s.writer.CreateBill(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var p writer.CreateBookingParams
	if err := decodeBody(r, &p); err != nil {
		writeError(w, err)
		return
	}
	overrideCreator(r, &p.CreatedBy)
	bk, receipt, err := s.writer.CreateBooking(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"booking":    bk,
		"receipt_id": receipt,
	})
}

// ─── Settlement Handler ─────────────────────────────────────────────────────

type settleRequest struct {
	CashReceived int64 `json:"cash_received"`
}

func (s *Server) handleSettle(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, err)
			return
		}
		var req settleRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
		res, err := s.settler.Settle(r.Context(), kind, id, req.CashReceived)
		if err != nil && res == nil {
			writeError(w, err)
			return
		}
		// res non-nil with err set means settled but the document
		// failed to render; the settlement stands.
		writeJSON(w, http.StatusOK, res)
	}
}

// ─── Read Handlers ──────────────────────────────────────────────────────────

func (s *Server) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	inv, err := s.db.GetInvoice(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (s *Server) handleGetBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	b, err := s.db.GetBill(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	bk, err := s.db.GetBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bk)
}

// ─── Expense and Ledger Handlers ────────────────────────────────────────────

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var e domain.ManualExpense
	if err := decodeBody(r, &e); err != nil {
		writeError(w, err)
		return
	}
	overrideCreator(r, &e.CreatedBy)
	out, err := s.ledger.AddExpense(r.Context(), e)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleDailyReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.ledger.DailyReport(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleRecompute(w http.ResponseWriter, r *http.Request) {
	bal, err := s.ledger.Recompute(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bal)
}

// ─── Directory Handlers ─────────────────────────────────────────────────────

func (s *Server) handleUpsertFrame(w http.ResponseWriter, r *http.Request) {
	var f sqlite.Frame
	if err := decodeBody(r, &f); err != nil {
		writeError(w, err)
		return
	}
	if f.Name == "" {
		writeError(w, domain.Validation("name", "must not be empty"))
		return
	}
	if f.Stock < 0 {
		writeError(w, domain.Validation("stock", "must not be negative"))
		return
	}
	if err := s.db.UpsertFrame(r.Context(), &f); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleGetFrame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	f, err := s.db.GetFrame(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// ─── Request Helpers ────────────────────────────────────────────────────────

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.Validation("body", "malformed JSON: "+err.Error())
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validation("id", "must be a positive integer")
	}
	return id, nil
}

// overrideCreator replaces the body's created_by with the identity
// gate's header when present.
func overrideCreator(r *http.Request, createdBy *int64) {
	if v := r.Header.Get(creatorHeader); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			*createdBy = id
		}
	}
}
