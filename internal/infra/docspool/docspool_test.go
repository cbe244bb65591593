package docspool

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lumistudio/pos/internal/domain"
)

func TestRender_WritesSnapshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")
	spool, err := New(dir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	snap := domain.SettlementSnapshot{
		SnapshotID:    "snap-1",
		ReceiptID:     "SETTLE-BK-7",
		Kind:          domain.KindBooking,
		TransactionID: 7,
		CustomerName:  "Nadia",
		TotalAmount:   20000,
		PreviousPaid:  5000,
		BalanceDue:    15000,
		CashReceived:  15000,
		SettledAt:     time.Now(),
	}
	path, err := spool.Render(snap)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "SETTLE-BK-7-") {
		t.Errorf("file name = %q, want SETTLE-BK-7- prefix", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("document missing: %v", err)
	}
	var got domain.SettlementSnapshot
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("document is not JSON: %v", err)
	}
	if got.BalanceDue != 15000 || got.CustomerName != "Nadia" {
		t.Errorf("snapshot round-trip = %+v", got)
	}
}

func TestRender_DistinctPathsPerRender(t *testing.T) {
	spool, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	snap := domain.SettlementSnapshot{ReceiptID: "INV000001"}
	p1, err := spool.Render(snap)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := spool.Render(snap)
	if err != nil {
		t.Fatal(err)
	}
	if p1 == p2 {
		t.Error("repeated renders reused the same path")
	}
}
