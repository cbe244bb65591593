package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lumistudio/pos/internal/domain"
)

// ─── Settlement Operations ──────────────────────────────────────────────────
// Two states per transaction: open (balance > 0) and settled
// (balance == 0). The transition fires exactly once; the balance read,
// the update, and the booking status flip share one transaction.

// Settle closes out the remaining balance of an invoice, bill, or
// booking and returns the snapshot for the document generator. The
// snapshot's SnapshotID is left empty for the caller to assign.
func (db *DB) Settle(ctx context.Context, kind domain.Kind, id int64, cashReceived int64) (*domain.SettlementSnapshot, error) {
	if !kind.Valid() {
		return nil, domain.Validation("kind", fmt.Sprintf("unknown transaction kind %q", kind))
	}
	if cashReceived < 0 {
		return nil, domain.Validation("cash_received", "must not be negative")
	}

	snap := &domain.SettlementSnapshot{
		Kind:          kind,
		TransactionID: id,
		CashReceived:  cashReceived,
		SettledAt:     time.Now(),
	}
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		switch kind {
		case domain.KindInvoice:
			return settleHeader(tx, "invoices", id, cashReceived, snap)
		case domain.KindBill:
			return settleHeader(tx, "bills", id, cashReceived, snap)
		default:
			return settleBooking(tx, id, cashReceived, snap)
		}
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// settleHeader settles an invoice or bill row.
func settleHeader(tx *sql.Tx, table string, id, cash int64, snap *domain.SettlementSnapshot) error {
	var (
		number     string
		customerID sql.NullInt64
		guest      sql.NullString
		total      int64
		paid       int64
		balance    int64
	)
	err := tx.QueryRow(fmt.Sprintf(`
		SELECT number, customer_id, guest_name, total_amount, paid_amount, balance_amount
		FROM %s WHERE id = ?
	`, table), id).Scan(&number, &customerID, &guest, &total, &paid, &balance)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s %d", domain.ErrNotFound, snap.Kind, id)
	}
	if err != nil {
		return err
	}
	if err := checkSettleable(balance, cash, snap.Kind, id); err != nil {
		return err
	}

	if _, err := tx.Exec(fmt.Sprintf(`
		UPDATE %s SET paid_amount = paid_amount + balance_amount, balance_amount = 0
		WHERE id = ?
	`, table), id); err != nil {
		return err
	}

	snap.ReceiptID = number
	snap.Number = number
	snap.CustomerName = guest.String
	if customerID.Valid && snap.CustomerName == "" {
		var name string
		if err := tx.QueryRow(`SELECT name FROM customers WHERE id = ?`, customerID.Int64).Scan(&name); err == nil {
			snap.CustomerName = name
		}
	}
	snap.TotalAmount = total
	snap.PreviousPaid = paid
	snap.BalanceDue = balance
	snap.Change = cash - balance
	return nil
}

// settleBooking settles a booking and flips its status to COMPLETED.
func settleBooking(tx *sql.Tx, id, cash int64, snap *domain.SettlementSnapshot) error {
	var (
		name    string
		full    int64
		advance int64
		balance int64
	)
	err := tx.QueryRow(`
		SELECT customer_name, full_amount, advance_payment, balance_amount
		FROM bookings WHERE id = ?
	`, id).Scan(&name, &full, &advance, &balance)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: booking %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return err
	}
	if err := checkSettleable(balance, cash, domain.KindBooking, id); err != nil {
		return err
	}

	if _, err := tx.Exec(`
		UPDATE bookings
		SET advance_payment = advance_payment + balance_amount,
			balance_amount = 0,
			status = ?,
			updated_at = datetime('now')
		WHERE id = ?
	`, domain.BookingCompleted, id); err != nil {
		return err
	}

	snap.ReceiptID = domain.BookingSettlementReceiptID(id)
	snap.CustomerName = name
	snap.TotalAmount = full
	snap.PreviousPaid = advance
	snap.BalanceDue = balance
	snap.Change = cash - balance
	return nil
}

func checkSettleable(balance, cash int64, kind domain.Kind, id int64) error {
	if balance == 0 {
		return fmt.Errorf("%w: %s %d", domain.ErrAlreadySettled, kind, id)
	}
	if cash < balance {
		return fmt.Errorf("%w: %s %d needs %d, got %d", domain.ErrUnderpayment, kind, id, balance, cash)
	}
	return nil
}
