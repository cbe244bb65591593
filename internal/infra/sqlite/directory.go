package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumistudio/pos/internal/domain"
)

// ─── Directory Operations ───────────────────────────────────────────────────
// Read-mostly lookup tables the transaction writer resolves names,
// prices, and stock from. No invariants beyond uniqueness, except the
// stock floor on frames.

// Frame is a sellable photo frame with tracked stock.
type Frame struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	BuyingPrice int64  `json:"buying_price"`
	Stock       int64  `json:"stock"`
}

// Service is a priced studio service.
type Service struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Category is a photoshoot category with its flat service surcharge.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ServiceCost int64  `json:"service_cost"`
}

// Customer is a registered customer directory entry.
type Customer struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	MobileNumber string `json:"mobile_number"`
}

// UpsertFrame inserts or updates a frame by name and returns its id.
func (db *DB) UpsertFrame(ctx context.Context, f *Frame) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRow(`
			INSERT INTO photo_frames (name, price, buying_price, stock)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				price        = excluded.price,
				buying_price = excluded.buying_price,
				stock        = excluded.stock
			RETURNING id
		`, f.Name, f.Price, f.BuyingPrice, f.Stock).Scan(&f.ID)
	})
}

// GetFrame loads a frame by id.
func (db *DB) GetFrame(ctx context.Context, id int64) (*Frame, error) {
	var f Frame
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRow(`
			SELECT id, name, price, buying_price, stock FROM photo_frames WHERE id = ?
		`, id).Scan(&f.ID, &f.Name, &f.Price, &f.BuyingPrice, &f.Stock)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: frame %d", domain.ErrNotFound, id)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// UpsertService inserts or updates a service by name.
func (db *DB) UpsertService(ctx context.Context, s *Service) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRow(`
			INSERT INTO services (name, price) VALUES (?, ?)
			ON CONFLICT(name) DO UPDATE SET price = excluded.price
			RETURNING id
		`, s.Name, s.Price).Scan(&s.ID)
	})
}

// GetService loads a service by id.
func (db *DB) GetService(ctx context.Context, id int64) (*Service, error) {
	var s Service
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRow(`SELECT id, name, price FROM services WHERE id = ?`, id).
			Scan(&s.ID, &s.Name, &s.Price)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: service %d", domain.ErrNotFound, id)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpsertCategory inserts or updates a category by name.
func (db *DB) UpsertCategory(ctx context.Context, c *Category) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRow(`
			INSERT INTO categories (name, service_cost) VALUES (?, ?)
			ON CONFLICT(name) DO UPDATE SET service_cost = excluded.service_cost
			RETURNING id
		`, c.Name, c.ServiceCost).Scan(&c.ID)
	})
}

// GetCategory loads a category by id.
func (db *DB) GetCategory(ctx context.Context, id int64) (*Category, error) {
	var c Category
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRow(`SELECT id, name, service_cost FROM categories WHERE id = ?`, id).
			Scan(&c.ID, &c.Name, &c.ServiceCost)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: category %d", domain.ErrNotFound, id)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertCustomer inserts or updates a customer by mobile number.
func (db *DB) UpsertCustomer(ctx context.Context, c *Customer) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRow(`
			INSERT INTO customers (name, mobile_number) VALUES (?, ?)
			ON CONFLICT(mobile_number) DO UPDATE SET name = excluded.name
			RETURNING id
		`, c.Name, c.MobileNumber).Scan(&c.ID)
	})
}

// GetCustomer loads a customer by id.
func (db *DB) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	var c Customer
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRow(`SELECT id, name, mobile_number FROM customers WHERE id = ?`, id).
			Scan(&c.ID, &c.Name, &c.MobileNumber)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: customer %d", domain.ErrNotFound, id)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}
