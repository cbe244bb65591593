package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumistudio/pos/internal/domain"
)

// ─── Daily Balance Operations ───────────────────────────────────────────────
// daily_balances is a derived cache. The opening balance is a full
// historical fold over all activity before the date, so a calendar gap
// (a day with no row) can never reset the chain.
//
// Bills are a separate sales channel and are deliberately not folded
// into total_income; BillSalesTotal exposes them alongside the ledger.

// RecomputeDailyBalance rebuilds and upserts the balance row for date.
// Safe to call repeatedly: unchanged inputs yield an identical row.
func (db *DB) RecomputeDailyBalance(ctx context.Context, date string) (*domain.DailyBalance, error) {
	canonical, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	var bal domain.DailyBalance
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		b, err := recomputeTx(tx, canonical)
		if err != nil {
			return err
		}
		bal = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &bal, nil
}

// recomputeTx recomputes one date inside an existing transaction. The
// writer and expense paths call this so the ledger is never stale for a
// date whose inputs just changed.
func recomputeTx(tx *sql.Tx, date string) (domain.DailyBalance, error) {
	bal := domain.DailyBalance{Date: date}

	if err := tx.QueryRow(`
		SELECT COALESCE(SUM(total_amount), 0) FROM invoices WHERE invoice_date = ?
	`, date).Scan(&bal.TotalIncome); err != nil {
		return bal, err
	}
	if err := tx.QueryRow(`
		SELECT COALESCE(SUM(amount), 0) FROM manual_expenses WHERE expense_date = ?
	`, date).Scan(&bal.TotalExpenses); err != nil {
		return bal, err
	}

	var incomeBefore, expensesBefore int64
	if err := tx.QueryRow(`
		SELECT COALESCE(SUM(total_amount), 0) FROM invoices WHERE invoice_date < ?
	`, date).Scan(&incomeBefore); err != nil {
		return bal, err
	}
	if err := tx.QueryRow(`
		SELECT COALESCE(SUM(amount), 0) FROM manual_expenses WHERE expense_date < ?
	`, date).Scan(&expensesBefore); err != nil {
		return bal, err
	}

	bal.OpeningBalance = incomeBefore - expensesBefore
	bal.ClosingBalance = bal.OpeningBalance + bal.TotalIncome - bal.TotalExpenses

	if _, err := tx.Exec(`
		INSERT INTO daily_balances (balance_date, opening_balance, total_income, total_expenses, closing_balance, updated_at)
		VALUES (?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(balance_date) DO UPDATE SET
			opening_balance = excluded.opening_balance,
			total_income    = excluded.total_income,
			total_expenses  = excluded.total_expenses,
			closing_balance = excluded.closing_balance,
			updated_at      = datetime('now')
	`, date, bal.OpeningBalance, bal.TotalIncome, bal.TotalExpenses, bal.ClosingBalance); err != nil {
		return bal, err
	}

	var updated string
	if err := tx.QueryRow(`SELECT updated_at FROM daily_balances WHERE balance_date = ?`, date).Scan(&updated); err != nil {
		return bal, err
	}
	bal.UpdatedAt = parseTimestamp(updated)
	return bal, nil
}

// GetDailyBalance reads the cached balance row for date.
func (db *DB) GetDailyBalance(ctx context.Context, date string) (*domain.DailyBalance, error) {
	canonical, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	var bal domain.DailyBalance
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		var updated string
		err := tx.QueryRow(`
			SELECT balance_date, opening_balance, total_income, total_expenses, closing_balance, updated_at
			FROM daily_balances WHERE balance_date = ?
		`, canonical).Scan(&bal.Date, &bal.OpeningBalance, &bal.TotalIncome, &bal.TotalExpenses, &bal.ClosingBalance, &updated)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: daily balance %s", domain.ErrNotFound, canonical)
		}
		if err != nil {
			return err
		}
		bal.UpdatedAt = parseTimestamp(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &bal, nil
}

// BillSalesTotal sums walk-in bill sales for a date. Bills sit outside
// total_income; dashboards read this figure separately.
func (db *DB) BillSalesTotal(ctx context.Context, date string) (int64, error) {
	canonical, err := domain.ParseDate(date)
	if err != nil {
		return 0, err
	}
	var total int64
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRow(`
			SELECT COALESCE(SUM(total_amount), 0) FROM bills WHERE bill_date = ?
		`, canonical).Scan(&total)
	})
	return total, err
}

// ─── Manual Expense Operations ──────────────────────────────────────────────

// InsertExpense writes a manual expense and refreshes the balance row
// for its date in the same transaction.
func (db *DB) InsertExpense(ctx context.Context, e *domain.ManualExpense) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO manual_expenses (description, amount, expense_date, created_by)
			VALUES (?, ?, ?, ?)
		`, e.Description, e.Amount, e.ExpenseDate, e.CreatedBy)
		if err != nil {
			return err
		}
		e.ID, err = res.LastInsertId()
		if err != nil {
			return err
		}
		if _, err := recomputeTx(tx, e.ExpenseDate); err != nil {
			return err
		}
		var created string
		if err := tx.QueryRow(`SELECT created_at FROM manual_expenses WHERE id = ?`, e.ID).Scan(&created); err != nil {
			return err
		}
		e.CreatedAt = parseTimestamp(created)
		return nil
	})
}

// ExpensesForDate lists the manual expenses recorded for a date.
func (db *DB) ExpensesForDate(ctx context.Context, date string) ([]domain.ManualExpense, error) {
	canonical, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	var out []domain.ManualExpense
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.Query(`
			SELECT id, description, amount, expense_date, created_by, created_at
			FROM manual_expenses WHERE expense_date = ? ORDER BY id
		`, canonical)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var e domain.ManualExpense
			var created string
			if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.ExpenseDate, &e.CreatedBy, &created); err != nil {
				return err
			}
			e.CreatedAt = parseTimestamp(created)
			out = append(out, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
