package settle

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumistudio/pos/internal/domain"
	"github.com/lumistudio/pos/internal/infra/docspool"
	"github.com/lumistudio/pos/internal/infra/sqlite"
)

func newTestEngine(t *testing.T) (*Service, *sqlite.DB) {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(filepath.Join(dir, "pos.db"), time.Second)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	spool, err := docspool.New(filepath.Join(dir, "docs"))
	if err != nil {
		t.Fatalf("docspool.New() error: %v", err)
	}
	return New(db, spool), db
}

func pendingBooking(t *testing.T, db *sqlite.DB) *domain.Booking {
	t.Helper()
	bk := &domain.Booking{
		CustomerName: "Nadia", MobileNumber: "0771234567", Category: "Wedding",
		FullAmount: 20000, AdvancePayment: 5000, BalanceAmount: 15000,
		BookingDate: "2025-06-01", Status: domain.BookingPending, CreatedBy: 1,
	}
	if err := db.CreateBooking(context.Background(), bk); err != nil {
		t.Fatal(err)
	}
	return bk
}

func TestSettle_RendersDocument(t *testing.T) {
	svc, db := newTestEngine(t)
	bk := pendingBooking(t, db)

	res, err := svc.Settle(context.Background(), domain.KindBooking, bk.ID, 16000)
	if err != nil {
		t.Fatalf("Settle() error: %v", err)
	}
	snap := res.Snapshot
	if snap.SnapshotID == "" {
		t.Error("snapshot id not assigned")
	}
	if snap.Change != 1000 {
		t.Errorf("change = %d, want 1000", snap.Change)
	}
	if snap.CustomerName != "Nadia" {
		t.Errorf("customer = %q", snap.CustomerName)
	}
	if res.DocumentPath == "" {
		t.Fatal("no document path")
	}
	if _, err := os.Stat(res.DocumentPath); err != nil {
		t.Errorf("document missing: %v", err)
	}
}

func TestSettle_UnderpaymentLeavesStateAlone(t *testing.T) {
	svc, db := newTestEngine(t)
	bk := pendingBooking(t, db)
	ctx := context.Background()

	_, err := svc.Settle(ctx, domain.KindBooking, bk.ID, 14000)
	if !errors.Is(err, domain.ErrUnderpayment) {
		t.Fatalf("err = %v, want ErrUnderpayment", err)
	}

	got, _ := db.GetBooking(ctx, bk.ID)
	if got.BalanceAmount != 15000 || got.Status != domain.BookingPending {
		t.Errorf("state mutated on rejection: balance %d status %q", got.BalanceAmount, got.Status)
	}
}

func TestSettle_RepeatRejected(t *testing.T) {
	svc, db := newTestEngine(t)
	bk := pendingBooking(t, db)
	ctx := context.Background()

	if _, err := svc.Settle(ctx, domain.KindBooking, bk.ID, 15000); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Settle(ctx, domain.KindBooking, bk.ID, 15000)
	if !errors.Is(err, domain.ErrAlreadySettled) {
		t.Errorf("err = %v, want ErrAlreadySettled", err)
	}
}

func TestSettle_UnknownKind(t *testing.T) {
	svc, _ := newTestEngine(t)
	_, err := svc.Settle(context.Background(), domain.Kind("refund"), 1, 100)
	if !domain.IsValidation(err) {
		t.Errorf("err = %v, want ValidationError", err)
	}
}
