// Package ledger is the daily balance service: it records manual
// expenses and rolls income and expenses into per-date opening/closing
// totals.
package ledger

import (
	"context"

	"github.com/lumistudio/pos/internal/domain"
	"github.com/lumistudio/pos/internal/infra/observability"
	"github.com/lumistudio/pos/internal/infra/sqlite"
)

// Service maintains the daily balance rollup.
type Service struct {
	db *sqlite.DB
}

// New creates a ledger service over the store.
func New(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Recompute rebuilds the balance row for date. Idempotent: unchanged
// inputs yield an identical row.
func (s *Service) Recompute(ctx context.Context, date string) (*domain.DailyBalance, error) {
	bal, err := s.db.RecomputeDailyBalance(ctx, date)
	if err != nil {
		return nil, err
	}
	observability.LedgerRecomputes.Inc()
	return bal, nil
}

// Report is the daily view handed to dashboards: the balance row plus
// the bill-sales figure that sits outside total_income, and the
// expense lines behind total_expenses.
type Report struct {
	Balance   domain.DailyBalance    `json:"balance"`
	BillSales int64                  `json:"bill_sales"`
	Expenses  []domain.ManualExpense `json:"expenses,omitempty"`
}

// DailyReport recomputes the date and returns the full view. Reads
// recompute rather than trust the cache, so a report is always
// consistent with the income and expense sources.
func (s *Service) DailyReport(ctx context.Context, date string) (*Report, error) {
	bal, err := s.Recompute(ctx, date)
	if err != nil {
		return nil, err
	}
	bills, err := s.db.BillSalesTotal(ctx, date)
	if err != nil {
		return nil, err
	}
	expenses, err := s.db.ExpensesForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return &Report{Balance: *bal, BillSales: bills, Expenses: expenses}, nil
}

// AddExpense validates and records a manual expense; the store
// refreshes the affected date's balance in the same transaction.
func (s *Service) AddExpense(ctx context.Context, e domain.ManualExpense) (*domain.ManualExpense, error) {
	date, err := domain.ParseDate(e.ExpenseDate)
	if err != nil {
		return nil, domain.Validation("expense_date", "must be formatted YYYY-MM-DD")
	}
	e.ExpenseDate = date
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.InsertExpense(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
