package writer

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
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

func serviceItems(total int64) []domain.LineItem {
	return []domain.LineItem{{
		Type: domain.ItemService, ItemID: 1, Name: "Portrait session",
		Quantity: 1, UnitPrice: total, TotalPrice: total,
	}}
}

func TestCreateInvoice_ComputesTotals(t *testing.T) {
	svc, _ := newTestService(t)

	inv, err := svc.CreateInvoice(context.Background(), CreateInvoiceParams{
		GuestName:           "Amara",
		Date:                "2025-03-10",
		Discount:            1000,
		CategoryServiceCost: 500,
		PaidAmount:          4000,
		CreatedBy:           7,
		Items:               serviceItems(10000),
	})
	if err != nil {
		t.Fatalf("CreateInvoice() error: %v", err)
	}
	if inv.Subtotal != 10000 {
		t.Errorf("subtotal = %d, want 10000 (recomputed from items)", inv.Subtotal)
	}
	if inv.TotalAmount != 9500 {
		t.Errorf("total = %d, want 9500", inv.TotalAmount)
	}
	if inv.BalanceAmount != 5500 {
		t.Errorf("balance = %d, want 5500", inv.BalanceAmount)
	}
	if inv.BalanceAmount != inv.TotalAmount-inv.PaidAmount {
		t.Error("balance identity broken")
	}
	if !strings.HasPrefix(inv.Number, "INV") {
		t.Errorf("number = %q", inv.Number)
	}
}

func TestCreateInvoice_SubtotalMismatch(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateInvoice(context.Background(), CreateInvoiceParams{
		GuestName: "Amara",
		Subtotal:  9999, // items sum to 10000
		CreatedBy: 7,
		Items:     serviceItems(10000),
	})
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestCreateInvoice_PartyMutuallyExclusive(t *testing.T) {
	svc, _ := newTestService(t)
	id := int64(3)

	_, err := svc.CreateInvoice(context.Background(), CreateInvoiceParams{
		CustomerID: &id,
		GuestName:  "Amara",
		CreatedBy:  7,
		Items:      serviceItems(1000),
	})
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestCreateInvoice_RejectsBadAmounts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		p    CreateInvoiceParams
	}{
		{"no items", CreateInvoiceParams{GuestName: "A", CreatedBy: 1}},
		{"negative discount", CreateInvoiceParams{GuestName: "A", Discount: -1, CreatedBy: 1, Items: serviceItems(1000)}},
		{"paid over total", CreateInvoiceParams{GuestName: "A", PaidAmount: 2000, CreatedBy: 1, Items: serviceItems(1000)}},
		{"bad date", CreateInvoiceParams{GuestName: "A", Date: "10/03/2025", CreatedBy: 1, Items: serviceItems(1000)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateInvoice(ctx, tt.p); !domain.IsValidation(err) {
				t.Errorf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestCreateBill_InsufficientStock(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	frame := &sqlite.Frame{Name: "Classic 8x10", Price: 1500, BuyingPrice: 900, Stock: 2}
	if err := db.UpsertFrame(ctx, frame); err != nil {
		t.Fatal(err)
	}

	_, err := svc.CreateBill(ctx, CreateBillParams{
		GuestName:  "Walk-in",
		PaidAmount: 4500,
		CreatedBy:  1,
		Items: []domain.LineItem{{
			Type: domain.ItemFrame, ItemID: frame.ID, Name: frame.Name,
			Quantity: 3, UnitPrice: 1500, TotalPrice: 4500, BuyingPrice: 900,
		}},
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	f, _ := db.GetFrame(ctx, frame.ID)
	if f.Stock != 2 {
		t.Errorf("stock = %d, want 2 (unchanged)", f.Stock)
	}
}

func TestCreateBooking(t *testing.T) {
	svc, _ := newTestService(t)

	bk, receipt, err := svc.CreateBooking(context.Background(), CreateBookingParams{
		CustomerName:   "Nadia",
		MobileNumber:   "0771234567",
		Category:       "Wedding",
		FullAmount:     20000,
		AdvancePayment: 5000,
		BookingDate:    "2025-06-01",
		Location:       "Studio",
		CreatedBy:      2,
	})
	if err != nil {
		t.Fatalf("CreateBooking() error: %v", err)
	}
	if bk.BalanceAmount != 15000 {
		t.Errorf("balance = %d, want 15000", bk.BalanceAmount)
	}
	if bk.Status != domain.BookingPending {
		t.Errorf("status = %q, want PENDING", bk.Status)
	}
	if !strings.HasPrefix(receipt, "BK-") {
		t.Errorf("receipt = %q, want BK- prefix", receipt)
	}
}

func TestCreateBooking_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	base := CreateBookingParams{
		CustomerName: "Nadia", MobileNumber: "077", Category: "Wedding",
		FullAmount: 20000, AdvancePayment: 5000, BookingDate: "2025-06-01", CreatedBy: 2,
	}

	tests := []struct {
		name   string
		mutate func(*CreateBookingParams)
	}{
		{"missing name", func(p *CreateBookingParams) { p.CustomerName = "" }},
		{"missing mobile", func(p *CreateBookingParams) { p.MobileNumber = "" }},
		{"missing category", func(p *CreateBookingParams) { p.Category = "" }},
		{"zero amount", func(p *CreateBookingParams) { p.FullAmount = 0 }},
		{"advance over full", func(p *CreateBookingParams) { p.AdvancePayment = 25000 }},
		{"bad date", func(p *CreateBookingParams) { p.BookingDate = "June 1st" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			if _, _, err := svc.CreateBooking(ctx, p); !domain.IsValidation(err) {
				t.Errorf("err = %v, want ValidationError", err)
			}
		})
	}
}
