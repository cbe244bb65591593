package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumistudio/pos/internal/domain"
	"github.com/lumistudio/pos/internal/infra/sqlite"
)

func newTestService(t *testing.T) (*Service, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "pos.db"), time.Second)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), db
}

func TestAddExpense_RefreshesBalance(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	e, err := svc.AddExpense(ctx, domain.ManualExpense{
		Description: "Backdrop paper",
		Amount:      1200,
		ExpenseDate: "2025-04-01",
		CreatedBy:   3,
	})
	if err != nil {
		t.Fatalf("AddExpense() error: %v", err)
	}
	if e.ID == 0 {
		t.Error("expense id not assigned")
	}

	bal, err := db.GetDailyBalance(ctx, "2025-04-01")
	if err != nil {
		t.Fatalf("balance row not written: %v", err)
	}
	if bal.TotalExpenses != 1200 {
		t.Errorf("expenses = %d, want 1200", bal.TotalExpenses)
	}
	if bal.ClosingBalance != -1200 {
		t.Errorf("closing = %d, want -1200", bal.ClosingBalance)
	}
}

func TestAddExpense_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		e    domain.ManualExpense
	}{
		{"empty description", domain.ManualExpense{Amount: 100, ExpenseDate: "2025-04-01"}},
		{"zero amount", domain.ManualExpense{Description: "x", ExpenseDate: "2025-04-01"}},
		{"negative amount", domain.ManualExpense{Description: "x", Amount: -5, ExpenseDate: "2025-04-01"}},
		{"bad date", domain.ManualExpense{Description: "x", Amount: 100, ExpenseDate: "April 1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.AddExpense(ctx, tt.e); !domain.IsValidation(err) {
				t.Errorf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestDailyReport_SeparatesBillSales(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	inv := &domain.Invoice{
		GuestName: "Amara", InvoiceDate: "2025-04-02",
		Subtotal: 5000, TotalAmount: 5000, PaidAmount: 5000, BalanceAmount: 0,
		CreatedBy: 1,
		Items: []domain.LineItem{{
			Type: domain.ItemService, ItemID: 1, Name: "Shoot",
			Quantity: 1, UnitPrice: 5000, TotalPrice: 5000,
		}},
	}
	if err := db.CreateInvoice(ctx, inv); err != nil {
		t.Fatal(err)
	}
	b := &domain.Bill{
		GuestName: "Walk-in", BillDate: "2025-04-02",
		Subtotal: 900, TotalAmount: 900, PaidAmount: 900, BalanceAmount: 0,
		CreatedBy: 1,
		Items: []domain.LineItem{{
			Type: domain.ItemService, ItemID: 1, Name: "Prints",
			Quantity: 1, UnitPrice: 900, TotalPrice: 900,
		}},
	}
	if err := db.CreateBill(ctx, b); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddExpense(ctx, domain.ManualExpense{
		Description: "Courier", Amount: 300, ExpenseDate: "2025-04-02", CreatedBy: 1,
	}); err != nil {
		t.Fatal(err)
	}

	report, err := svc.DailyReport(ctx, "2025-04-02")
	if err != nil {
		t.Fatalf("DailyReport() error: %v", err)
	}
	if report.Balance.TotalIncome != 5000 {
		t.Errorf("income = %d, want 5000 (invoices only)", report.Balance.TotalIncome)
	}
	if report.BillSales != 900 {
		t.Errorf("bill sales = %d, want 900", report.BillSales)
	}
	if report.Balance.TotalExpenses != 300 {
		t.Errorf("expenses = %d, want 300", report.Balance.TotalExpenses)
	}
	if report.Balance.ClosingBalance != 4700 {
		t.Errorf("closing = %d, want 4700", report.Balance.ClosingBalance)
	}
	if len(report.Expenses) != 1 || report.Expenses[0].Description != "Courier" {
		t.Errorf("expenses list = %+v", report.Expenses)
	}
}

func TestRecompute_BadDate(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Recompute(context.Background(), "not-a-date"); !domain.IsValidation(err) {
		t.Errorf("err = %v, want ValidationError", err)
	}
}
