// Package sqlite is the persistent store for the POS core. One SQLite
// file, one process, one writer.
//
// Every logical operation — numbering plus header insert, stock check
// plus decrement plus item insert, settlement read-modify-write — runs
// inside a single guarded transaction, so concurrent callers can never
// interleave between the statements of one operation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lumistudio/pos/internal/domain"
)

// DB wraps the SQLite handle behind a process-wide mutual-exclusion
// guard. The guard is held for a whole open→execute→commit cycle.
type DB struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (creating if needed) the store at path and applies the
// schema. busyTimeout bounds how long a statement waits on a locked
// database before failing.
func Open(path string, busyTimeout time.Duration) (*DB, error) {
	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		path, busyTimeout.Milliseconds(),
	)
	handle, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	// Single connection: the store is single-writer and the guard
	// serializes callers anyway.
	handle.SetMaxOpenConns(1)

	db := &DB{db: handle}
	for _, stmt := range Migrations() {
		if _, err := handle.Exec(stmt); err != nil {
			handle.Close()
			return nil, fmt.Errorf("%w: applying schema: %v", domain.ErrPersistence, err)
		}
	}
	return db, nil
}

// Close releases the underlying handle.
func (db *DB) Close() error {
	return db.db.Close()
}

// withTx runs fn inside one guarded transaction. fn's error aborts the
// transaction; nothing partial is ever committed.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr(err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return storeErr(err)
	}
	if err := tx.Commit(); err != nil {
		return storeErr(err)
	}
	return nil
}

// storeErr maps driver failures onto the domain taxonomy while leaving
// already-typed domain errors untouched.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if domain.IsValidation(err) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrInsufficientStock) ||
		errors.Is(err, domain.ErrUnderpayment) ||
		errors.Is(err, domain.ErrAlreadySettled) ||
		errors.Is(err, domain.ErrPersistence) {
		return err
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
}

// parseTimestamp reads the datetime('now') format written by SQLite.
func parseTimestamp(s string) time.Time {
	t, _ := time.Parse("2006-01-02 15:04:05", s)
	return t
}
