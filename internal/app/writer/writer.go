// Package writer is the transaction writer. It validates input,
// computes totals and balances, and hands fully-formed records to the
// store, which commits header, items, stock decrement, and the ledger
// refresh as one unit.
package writer

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumistudio/pos/internal/domain"
	"github.com/lumistudio/pos/internal/infra/observability"
	"github.com/lumistudio/pos/internal/infra/sqlite"
)

// Service creates invoices, bills, and bookings.
type Service struct {
	db *sqlite.DB
}

// New creates a transaction writer over the store.
func New(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// ─── Invoices ───────────────────────────────────────────────────────────────

// CreateInvoiceParams carries the caller's input for a new invoice.
// Subtotal is asserted against the sum of the items, never trusted.
type CreateInvoiceParams struct {
	BookingID           *int64            `json:"booking_id,omitempty"`
	CustomerID          *int64            `json:"customer_id,omitempty"`
	GuestName           string            `json:"guest_name,omitempty"`
	Date                string            `json:"invoice_date,omitempty"`
	Subtotal            int64             `json:"subtotal"`
	Discount            int64             `json:"discount"`
	CategoryServiceCost int64             `json:"category_service_cost"`
	AdvancePayment      int64             `json:"advance_payment"`
	PaidAmount          int64             `json:"paid_amount"`
	CreatedBy           int64             `json:"created_by"`
	Items               []domain.LineItem `json:"items"`
}

// CreateInvoice validates and persists an invoice with its items.
func (s *Service) CreateInvoice(ctx context.Context, p CreateInvoiceParams) (*domain.Invoice, error) {
	date, err := resolveDate(p.Date)
	if err != nil {
		return nil, err
	}
	if err := checkParty(p.CustomerID, p.GuestName); err != nil {
		return nil, err
	}
	subtotal, err := checkItems(p.Items, p.Subtotal)
	if err != nil {
		return nil, err
	}
	total, paid, err := checkAmounts(subtotal, p.CategoryServiceCost, p.Discount, p.PaidAmount, p.AdvancePayment)
	if err != nil {
		return nil, err
	}

	inv := &domain.Invoice{
		BookingID:           p.BookingID,
		CustomerID:          p.CustomerID,
		GuestName:           p.GuestName,
		InvoiceDate:         date,
		Subtotal:            subtotal,
		Discount:            p.Discount,
		CategoryServiceCost: p.CategoryServiceCost,
		AdvancePayment:      p.AdvancePayment,
		TotalAmount:         total,
		PaidAmount:          paid,
		BalanceAmount:       total - paid,
		CreatedBy:           p.CreatedBy,
		Items:               p.Items,
	}
	if err := s.db.CreateInvoice(ctx, inv); err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			observability.StockRejections.Inc()
		}
		return nil, err
	}
	observability.TransactionsCreated.WithLabelValues(string(domain.KindInvoice)).Inc()
	return inv, nil
}

// ─── Bills ──────────────────────────────────────────────────────────────────

// CreateBillParams carries the caller's input for a walk-in sale.
// CashGiven is display-only; it never enters the balance computation.
type CreateBillParams struct {
	CustomerID     *int64            `json:"customer_id,omitempty"`
	GuestName      string            `json:"guest_name,omitempty"`
	Date           string            `json:"bill_date,omitempty"`
	Subtotal       int64             `json:"subtotal"`
	Discount       int64             `json:"discount"`
	ServiceCharge  int64             `json:"service_charge"`
	CashGiven      int64             `json:"cash_given"`
	AdvancePayment int64             `json:"advance_payment"`
	PaidAmount     int64             `json:"paid_amount"`
	CreatedBy      int64             `json:"created_by"`
	Items          []domain.LineItem `json:"items"`
}

// CreateBill validates and persists a bill with its items.
func (s *Service) CreateBill(ctx context.Context, p CreateBillParams) (*domain.Bill, error) {
	date, err := resolveDate(p.Date)
	if err != nil {
		return nil, err
	}
	if err := checkParty(p.CustomerID, p.GuestName); err != nil {
		return nil, err
	}
	subtotal, err := checkItems(p.Items, p.Subtotal)
	if err != nil {
		return nil, err
	}
	total, paid, err := checkAmounts(subtotal, p.ServiceCharge, p.Discount, p.PaidAmount, p.AdvancePayment)
	if err != nil {
		return nil, err
	}
	if p.CashGiven < 0 {
		return nil, domain.Validation("cash_given", "must not be negative")
	}

	b := &domain.Bill{
		CustomerID:     p.CustomerID,
		GuestName:      p.GuestName,
		BillDate:       date,
		Subtotal:       subtotal,
		Discount:       p.Discount,
		ServiceCharge:  p.ServiceCharge,
		CashGiven:      p.CashGiven,
		AdvancePayment: p.AdvancePayment,
		TotalAmount:    total,
		PaidAmount:     paid,
		BalanceAmount:  total - paid,
		CreatedBy:      p.CreatedBy,
		Items:          p.Items,
	}
	if err := s.db.CreateBill(ctx, b); err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			observability.StockRejections.Inc()
		}
		return nil, err
	}
	observability.TransactionsCreated.WithLabelValues(string(domain.KindBill)).Inc()
	return b, nil
}

// ─── Bookings ───────────────────────────────────────────────────────────────

// CreateBookingParams carries the caller's input for a reservation.
type CreateBookingParams struct {
	CustomerName   string `json:"customer_name"`
	MobileNumber   string `json:"mobile_number"`
	Category       string `json:"photoshoot_category"`
	FullAmount     int64  `json:"full_amount"`
	AdvancePayment int64  `json:"advance_payment"`
	BookingDate    string `json:"booking_date"`
	Location       string `json:"location"`
	Description    string `json:"description,omitempty"`
	CreatedBy      int64  `json:"created_by"`
}

// CreateBooking validates and persists a booking. The returned receipt
// id identifies the deposit receipt handed to the customer.
func (s *Service) CreateBooking(ctx context.Context, p CreateBookingParams) (*domain.Booking, string, error) {
	if p.CustomerName == "" {
		return nil, "", domain.Validation("customer_name", "must not be empty")
	}
	if p.MobileNumber == "" {
		return nil, "", domain.Validation("mobile_number", "must not be empty")
	}
	if p.Category == "" {
		return nil, "", domain.Validation("photoshoot_category", "must not be empty")
	}
	if p.FullAmount <= 0 {
		return nil, "", domain.Validation("full_amount", "must be positive")
	}
	if p.AdvancePayment < 0 {
		return nil, "", domain.Validation("advance_payment", "must not be negative")
	}
	if p.AdvancePayment > p.FullAmount {
		return nil, "", domain.Validation("advance_payment", "must not exceed full_amount")
	}
	date, err := domain.ParseDate(p.BookingDate)
	if err != nil {
		return nil, "", domain.Validation("booking_date", "must be formatted YYYY-MM-DD")
	}

	bk := &domain.Booking{
		CustomerName:   p.CustomerName,
		MobileNumber:   p.MobileNumber,
		Category:       p.Category,
		FullAmount:     p.FullAmount,
		AdvancePayment: p.AdvancePayment,
		BalanceAmount:  p.FullAmount - p.AdvancePayment,
		BookingDate:    date,
		Location:       p.Location,
		Description:    p.Description,
		Status:         domain.BookingPending,
		CreatedBy:      p.CreatedBy,
	}
	if err := s.db.CreateBooking(ctx, bk); err != nil {
		return nil, "", err
	}
	observability.TransactionsCreated.WithLabelValues(string(domain.KindBooking)).Inc()
	return bk, domain.BookingReceiptID(bk.CreatedAt), nil
}

// ─── Shared Validation ──────────────────────────────────────────────────────

// checkParty enforces registered-customer XOR guest-name; both absent
// is allowed, both present is not.
func checkParty(customerID *int64, guestName string) error {
	if customerID != nil && guestName != "" {
		return domain.Validation("customer", "customer_id and guest_name are mutually exclusive")
	}
	if customerID != nil && *customerID <= 0 {
		return domain.Validation("customer_id", "must be positive")
	}
	return nil
}

// checkItems validates every line and asserts the declared subtotal
// against the recomputed item sum.
func checkItems(items []domain.LineItem, declared int64) (int64, error) {
	if len(items) == 0 {
		return 0, domain.Validation("items", "at least one line item is required")
	}
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return 0, fmt.Errorf("item %d: %w", i, err)
		}
	}
	subtotal := domain.SumItems(items)
	if declared != 0 && declared != subtotal {
		return 0, domain.Validation("subtotal", fmt.Sprintf("declared %d, items sum to %d", declared, subtotal))
	}
	return subtotal, nil
}

// checkAmounts computes the clamped total and verifies the payment
// split leaves a non-negative balance.
func checkAmounts(subtotal, surcharge, discount, paid, advance int64) (total, paidOut int64, err error) {
	if discount < 0 {
		return 0, 0, domain.Validation("discount", "must not be negative")
	}
	if surcharge < 0 {
		return 0, 0, domain.Validation("surcharge", "must not be negative")
	}
	if paid < 0 {
		return 0, 0, domain.Validation("paid_amount", "must not be negative")
	}
	if advance < 0 {
		return 0, 0, domain.Validation("advance_payment", "must not be negative")
	}
	total = domain.TotalAmount(subtotal, surcharge, discount)
	if paid > total {
		return 0, 0, domain.Validation("paid_amount", "must not exceed total_amount")
	}
	return total, paid, nil
}

func resolveDate(s string) (string, error) {
	if s == "" {
		return domain.Today(), nil
	}
	return domain.ParseDate(s)
}
