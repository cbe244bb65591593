package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumistudio/pos/internal/domain"
)

// ─── Transaction Writer Operations ──────────────────────────────────────────
// Header, items, stock decrement, and the daily-balance refresh for the
// affected date all commit as one transaction.

// CreateInvoice persists an invoice with its items, decrementing frame
// stock for every frame line. On success inv is updated in place with
// the issued id, number, and timestamps.
func (db *DB) CreateInvoice(ctx context.Context, inv *domain.Invoice) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		number, err := nextNumber(tx, domain.InvoicePrefix)
		if err != nil {
			return err
		}
		if err := decrementFrameStock(tx, inv.Items); err != nil {
			return err
		}

		res, err := tx.Exec(`
			INSERT INTO invoices (number, booking_id, customer_id, guest_name, invoice_date,
				subtotal, discount, category_service_cost, advance_payment,
				total_amount, paid_amount, balance_amount, created_by)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, number, inv.BookingID, inv.CustomerID, nullString(inv.GuestName), inv.InvoiceDate,
			inv.Subtotal, inv.Discount, inv.CategoryServiceCost, inv.AdvancePayment,
			inv.TotalAmount, inv.PaidAmount, inv.BalanceAmount, inv.CreatedBy)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for i := range inv.Items {
			it := &inv.Items[i]
			res, err := tx.Exec(`
				INSERT INTO invoice_items (invoice_id, item_type, item_id, item_name, quantity, unit_price, total_price, buying_price)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, id, it.Type, it.ItemID, it.Name, it.Quantity, it.UnitPrice, it.TotalPrice, it.BuyingPrice)
			if err != nil {
				return err
			}
			it.ID, _ = res.LastInsertId()
		}

		// Invoice income lands on the ledger immediately.
		if _, err := recomputeTx(tx, inv.InvoiceDate); err != nil {
			return err
		}

		inv.ID = id
		inv.Number = number
		var created string
		if err := tx.QueryRow(`SELECT created_at FROM invoices WHERE id = ?`, id).Scan(&created); err != nil {
			return err
		}
		inv.CreatedAt = parseTimestamp(created)
		return nil
	})
}

// CreateBill persists a walk-in sale with its items, decrementing frame
// stock for every frame line.
func (db *DB) CreateBill(ctx context.Context, b *domain.Bill) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		number, err := nextNumber(tx, domain.BillPrefix)
		if err != nil {
			return err
		}
		if err := decrementFrameStock(tx, b.Items); err != nil {
			return err
		}

		res, err := tx.Exec(`
			INSERT INTO bills (number, customer_id, guest_name, bill_date,
				subtotal, discount, service_charge, cash_given, advance_payment,
				total_amount, paid_amount, balance_amount, created_by)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, number, b.CustomerID, nullString(b.GuestName), b.BillDate,
			b.Subtotal, b.Discount, b.ServiceCharge, b.CashGiven, b.AdvancePayment,
			b.TotalAmount, b.PaidAmount, b.BalanceAmount, b.CreatedBy)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for i := range b.Items {
			it := &b.Items[i]
			res, err := tx.Exec(`
				INSERT INTO bill_items (bill_id, item_type, item_id, item_name, quantity, unit_price, total_price, buying_price)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, id, it.Type, it.ItemID, it.Name, it.Quantity, it.UnitPrice, it.TotalPrice, it.BuyingPrice)
			if err != nil {
				return err
			}
			it.ID, _ = res.LastInsertId()
		}

		b.ID = id
		b.Number = number
		var created string
		if err := tx.QueryRow(`SELECT created_at FROM bills WHERE id = ?`, id).Scan(&created); err != nil {
			return err
		}
		b.CreatedAt = parseTimestamp(created)
		return nil
	})
}

// CreateBooking persists a service reservation with its deposit.
func (db *DB) CreateBooking(ctx context.Context, bk *domain.Booking) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO bookings (customer_name, mobile_number, photoshoot_category,
				full_amount, advance_payment, balance_amount, booking_date,
				location, description, status, created_by)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, bk.CustomerName, bk.MobileNumber, bk.Category,
			bk.FullAmount, bk.AdvancePayment, bk.BalanceAmount, bk.BookingDate,
			bk.Location, bk.Description, bk.Status, bk.CreatedBy)
		if err != nil {
			return err
		}
		bk.ID, err = res.LastInsertId()
		if err != nil {
			return err
		}
		var created, updated string
		if err := tx.QueryRow(`SELECT created_at, updated_at FROM bookings WHERE id = ?`, bk.ID).
			Scan(&created, &updated); err != nil {
			return err
		}
		bk.CreatedAt = parseTimestamp(created)
		bk.UpdatedAt = parseTimestamp(updated)
		return nil
	})
}

// decrementFrameStock verifies and decrements stock for every frame
// line. A frame without enough stock aborts the whole operation.
func decrementFrameStock(tx *sql.Tx, items []domain.LineItem) error {
	for _, it := range items {
		if it.Type != domain.ItemFrame {
			continue
		}
		res, err := tx.Exec(`
			UPDATE photo_frames SET stock = stock - ? WHERE id = ? AND stock >= ?
		`, it.Quantity, it.ItemID, it.Quantity)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			var exists int
			if err := tx.QueryRow(`SELECT COUNT(*) FROM photo_frames WHERE id = ?`, it.ItemID).Scan(&exists); err != nil {
				return err
			}
			if exists == 0 {
				return fmt.Errorf("%w: frame %d", domain.ErrNotFound, it.ItemID)
			}
			return fmt.Errorf("%w: frame %d, want %d", domain.ErrInsufficientStock, it.ItemID, it.Quantity)
		}
	}
	return nil
}

// ─── Reads ──────────────────────────────────────────────────────────────────

// GetInvoice loads an invoice header with its items.
func (db *DB) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		var created string
		var guest sql.NullString
		err := tx.QueryRow(`
			SELECT id, number, booking_id, customer_id, guest_name, invoice_date,
				subtotal, discount, category_service_cost, advance_payment,
				total_amount, paid_amount, balance_amount, created_by, created_at
			FROM invoices WHERE id = ?
		`, id).Scan(&inv.ID, &inv.Number, &inv.BookingID, &inv.CustomerID, &guest, &inv.InvoiceDate,
			&inv.Subtotal, &inv.Discount, &inv.CategoryServiceCost, &inv.AdvancePayment,
			&inv.TotalAmount, &inv.PaidAmount, &inv.BalanceAmount, &inv.CreatedBy, &created)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: invoice %d", domain.ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		inv.GuestName = guest.String
		inv.CreatedAt = parseTimestamp(created)
		inv.Items, err = loadItems(tx, "invoice_items", "invoice_id", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetBill loads a bill header with its items.
func (db *DB) GetBill(ctx context.Context, id int64) (*domain.Bill, error) {
	var b domain.Bill
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		var created string
		var guest sql.NullString
		err := tx.QueryRow(`
			SELECT id, number, customer_id, guest_name, bill_date,
				subtotal, discount, service_charge, cash_given, advance_payment,
				total_amount, paid_amount, balance_amount, created_by, created_at
			FROM bills WHERE id = ?
		`, id).Scan(&b.ID, &b.Number, &b.CustomerID, &guest, &b.BillDate,
			&b.Subtotal, &b.Discount, &b.ServiceCharge, &b.CashGiven, &b.AdvancePayment,
			&b.TotalAmount, &b.PaidAmount, &b.BalanceAmount, &b.CreatedBy, &created)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: bill %d", domain.ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		b.GuestName = guest.String
		b.CreatedAt = parseTimestamp(created)
		b.Items, err = loadItems(tx, "bill_items", "bill_id", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBooking loads a booking.
func (db *DB) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	var bk domain.Booking
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		return scanBooking(tx, id, &bk)
	})
	if err != nil {
		return nil, err
	}
	return &bk, nil
}

func scanBooking(tx *sql.Tx, id int64, bk *domain.Booking) error {
	var created, updated string
	err := tx.QueryRow(`
		SELECT id, customer_name, mobile_number, photoshoot_category,
			full_amount, advance_payment, balance_amount, booking_date,
			location, description, status, created_by, created_at, updated_at
		FROM bookings WHERE id = ?
	`, id).Scan(&bk.ID, &bk.CustomerName, &bk.MobileNumber, &bk.Category,
		&bk.FullAmount, &bk.AdvancePayment, &bk.BalanceAmount, &bk.BookingDate,
		&bk.Location, &bk.Description, &bk.Status, &bk.CreatedBy, &created, &updated)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: booking %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return err
	}
	bk.CreatedAt = parseTimestamp(created)
	bk.UpdatedAt = parseTimestamp(updated)
	return nil
}

func loadItems(tx *sql.Tx, table, fk string, id int64) ([]domain.LineItem, error) {
	rows, err := tx.Query(fmt.Sprintf(`
		SELECT id, item_type, item_id, item_name, quantity, unit_price, total_price, buying_price
		FROM %s WHERE %s = ? ORDER BY id
	`, table, fk), id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.LineItem
	for rows.Next() {
		var it domain.LineItem
		if err := rows.Scan(&it.ID, &it.Type, &it.ItemID, &it.Name, &it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.BuyingPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
