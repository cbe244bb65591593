// Package settle is the settlement engine. It drives the one-way
// open→settled transition and hands the resulting snapshot to the
// document generator.
package settle

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/lumistudio/pos/internal/domain"
	"github.com/lumistudio/pos/internal/infra/observability"
	"github.com/lumistudio/pos/internal/infra/sqlite"
)

// Service settles invoices, bills, and bookings.
type Service struct {
	db       *sqlite.DB
	renderer domain.Renderer
}

// New creates a settlement engine. renderer may be nil, in which case
// no document is produced.
func New(db *sqlite.DB, renderer domain.Renderer) *Service {
	return &Service{db: db, renderer: renderer}
}

// Result is a completed settlement: the snapshot plus the path of the
// rendered document ("" when no renderer is configured).
type Result struct {
	Snapshot     *domain.SettlementSnapshot `json:"snapshot"`
	DocumentPath string                     `json:"document_path,omitempty"`
}

// Settle transitions the transaction to settled. Repeated calls fail
// with ErrAlreadySettled; cash below the balance due fails with
// ErrUnderpayment and mutates nothing.
func (s *Service) Settle(ctx context.Context, kind domain.Kind, id int64, cashReceived int64) (*Result, error) {
	snap, err := s.db.Settle(ctx, kind, id, cashReceived)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadySettled):
			observability.SettlementRejections.WithLabelValues("already_settled").Inc()
		case errors.Is(err, domain.ErrUnderpayment):
			observability.SettlementRejections.WithLabelValues("underpayment").Inc()
		case errors.Is(err, domain.ErrNotFound):
			observability.SettlementRejections.WithLabelValues("not_found").Inc()
		}
		return nil, err
	}
	snap.SnapshotID = uuid.NewString()

	observability.Settlements.WithLabelValues(string(kind)).Inc()
	observability.SettlementChange.Observe(float64(snap.Change))

	res := &Result{Snapshot: snap}
	if s.renderer != nil {
		path, rerr := s.renderer.Render(*snap)
		if rerr != nil {
			// The settlement is committed; a render failure cannot
			// unsettle it. Both the result and the error go back.
			return res, rerr
		}
		res.DocumentPath = path
	}
	return res, nil
}
