package domain

import "time"

// ─── Manual Expenses ────────────────────────────────────────────────────────

// ManualExpense is a staff-entered cash outflow for a given day.
type ManualExpense struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	ExpenseDate string    `json:"expense_date"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks the expense before it is written.
func (e ManualExpense) Validate() error {
	if e.Description == "" {
		return Validation("description", "must not be empty")
	}
	if e.Amount <= 0 {
		return Validation("amount", "must be positive")
	}
	if _, err := ParseDate(e.ExpenseDate); err != nil {
		return err
	}
	return nil
}

// ─── Daily Balance ──────────────────────────────────────────────────────────

// DailyBalance is the per-date cash rollup. It is derived data: every
// row can be rebuilt from the invoice and expense history, and
// recomputing an unchanged date yields an identical row.
type DailyBalance struct {
	Date           string    `json:"balance_date"`
	OpeningBalance int64     `json:"opening_balance"`
	TotalIncome    int64     `json:"total_income"`
	TotalExpenses  int64     `json:"total_expenses"`
	ClosingBalance int64     `json:"closing_balance"`
	UpdatedAt      time.Time `json:"updated_at"`
}
