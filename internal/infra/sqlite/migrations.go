package sqlite

// Migrations returns the schema migration statements.
// Each string is a single SQL statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		// Atomic transaction-number counters, one row per prefix.
		`CREATE TABLE IF NOT EXISTS sequences (
			prefix TEXT PRIMARY KEY,
			next   INTEGER NOT NULL DEFAULT 0
		)`,

		// Bookings
		`CREATE TABLE IF NOT EXISTS bookings (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			customer_name       TEXT NOT NULL,
			mobile_number       TEXT NOT NULL,
			photoshoot_category TEXT NOT NULL,
			full_amount         INTEGER NOT NULL,
			advance_payment     INTEGER NOT NULL DEFAULT 0,
			balance_amount      INTEGER NOT NULL,
			booking_date        TEXT NOT NULL,
			location            TEXT NOT NULL DEFAULT '',
			description         TEXT NOT NULL DEFAULT '',
			status              TEXT NOT NULL DEFAULT 'PENDING',
			created_by          INTEGER NOT NULL,
			created_at          TEXT NOT NULL DEFAULT (datetime('now')),
			updated_at          TEXT NOT NULL DEFAULT (datetime('now')),
			CHECK (balance_amount = full_amount - advance_payment)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_date ON bookings(booking_date)`,

		// Invoice headers
		`CREATE TABLE IF NOT EXISTS invoices (
			id                    INTEGER PRIMARY KEY AUTOINCREMENT,
			number                TEXT NOT NULL UNIQUE,
			booking_id            INTEGER REFERENCES bookings(id),
			customer_id           INTEGER,
			guest_name            TEXT,
			invoice_date          TEXT NOT NULL DEFAULT (date('now')),
			subtotal              INTEGER NOT NULL,
			discount              INTEGER NOT NULL DEFAULT 0,
			category_service_cost INTEGER NOT NULL DEFAULT 0,
			advance_payment       INTEGER NOT NULL DEFAULT 0,
			total_amount          INTEGER NOT NULL,
			paid_amount           INTEGER NOT NULL DEFAULT 0,
			balance_amount        INTEGER NOT NULL,
			created_by            INTEGER NOT NULL,
			created_at            TEXT NOT NULL DEFAULT (datetime('now')),
			CHECK (balance_amount = total_amount - paid_amount)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_invoices_date ON invoices(invoice_date)`,

		`CREATE TABLE IF NOT EXISTS invoice_items (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			invoice_id   INTEGER NOT NULL REFERENCES invoices(id),
			item_type    TEXT NOT NULL,
			item_id      INTEGER NOT NULL DEFAULT 0,
			item_name    TEXT NOT NULL,
			quantity     INTEGER NOT NULL,
			unit_price   INTEGER NOT NULL,
			total_price  INTEGER NOT NULL,
			buying_price INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items(invoice_id)`,

		// Bill headers (walk-in sales channel)
		`CREATE TABLE IF NOT EXISTS bills (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			number          TEXT NOT NULL UNIQUE,
			customer_id     INTEGER,
			guest_name      TEXT,
			bill_date       TEXT NOT NULL DEFAULT (date('now')),
			subtotal        INTEGER NOT NULL,
			discount        INTEGER NOT NULL DEFAULT 0,
			service_charge  INTEGER NOT NULL DEFAULT 0,
			cash_given      INTEGER NOT NULL DEFAULT 0,
			advance_payment INTEGER NOT NULL DEFAULT 0,
			total_amount    INTEGER NOT NULL,
			paid_amount     INTEGER NOT NULL DEFAULT 0,
			balance_amount  INTEGER NOT NULL,
			created_by      INTEGER NOT NULL,
			created_at      TEXT NOT NULL DEFAULT (datetime('now')),
			CHECK (balance_amount = total_amount - paid_amount)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bills_date ON bills(bill_date)`,

		`CREATE TABLE IF NOT EXISTS bill_items (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			bill_id      INTEGER NOT NULL REFERENCES bills(id),
			item_type    TEXT NOT NULL,
			item_id      INTEGER NOT NULL DEFAULT 0,
			item_name    TEXT NOT NULL,
			quantity     INTEGER NOT NULL,
			unit_price   INTEGER NOT NULL,
			total_price  INTEGER NOT NULL,
			buying_price INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bill_items_bill ON bill_items(bill_id)`,

		// Manual expenses
		`CREATE TABLE IF NOT EXISTS manual_expenses (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			description  TEXT NOT NULL,
			amount       INTEGER NOT NULL,
			expense_date TEXT NOT NULL,
			created_by   INTEGER NOT NULL,
			created_at   TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_date ON manual_expenses(expense_date)`,

		// Daily balance cache (derived, rebuildable)
		`CREATE TABLE IF NOT EXISTS daily_balances (
			balance_date    TEXT PRIMARY KEY,
			opening_balance INTEGER NOT NULL DEFAULT 0,
			total_income    INTEGER NOT NULL DEFAULT 0,
			total_expenses  INTEGER NOT NULL DEFAULT 0,
			closing_balance INTEGER NOT NULL DEFAULT 0,
			updated_at      TEXT NOT NULL DEFAULT (datetime('now'))
		)`,

		// Directory tables: lookups only, no invariants beyond uniqueness
		// (and the stock floor on frames).
		`CREATE TABLE IF NOT EXISTS photo_frames (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			name         TEXT NOT NULL UNIQUE,
			price        INTEGER NOT NULL DEFAULT 0,
			buying_price INTEGER NOT NULL DEFAULT 0,
			stock        INTEGER NOT NULL DEFAULT 0,
			CHECK (stock >= 0)
		)`,

		`CREATE TABLE IF NOT EXISTS services (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			name  TEXT NOT NULL UNIQUE,
			price INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS categories (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			name         TEXT NOT NULL UNIQUE,
			service_cost INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS customers (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			name          TEXT NOT NULL,
			mobile_number TEXT NOT NULL UNIQUE
		)`,
	}
}
