// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring — it depends on nothing.
//
// All monetary amounts are int64 values in the smallest currency unit.
// Arithmetic is integer-only; no floating point ever touches money.
package domain

import (
	"fmt"
	"time"
)

// ─── Transaction Kinds ──────────────────────────────────────────────────────

// Kind identifies which money-bearing record a settlement targets.
type Kind string

const (
	KindInvoice Kind = "invoice"
	KindBill    Kind = "bill"
	KindBooking Kind = "booking"
)

// Valid reports whether k is a known transaction kind.
func (k Kind) Valid() bool {
	switch k {
	case KindInvoice, KindBill, KindBooking:
		return true
	}
	return false
}

// ─── Line Items ─────────────────────────────────────────────────────────────

// ItemType discriminates the source a line item was priced from.
type ItemType string

const (
	ItemService         ItemType = "SERVICE"
	ItemFrame           ItemType = "FRAME"
	ItemCategoryService ItemType = "CATEGORY_SERVICE"
	ItemBookingService  ItemType = "BOOKING_SERVICE"
)

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	switch t {
	case ItemService, ItemFrame, ItemCategoryService, ItemBookingService:
		return true
	}
	return false
}

// LineItem is one priced row on an invoice or bill.
//
// BuyingPrice is meaningful only for frame items, where it feeds profit
// reporting; every other item type must leave it zero.
type LineItem struct {
	ID          int64    `json:"id"`
	Type        ItemType `json:"item_type"`
	ItemID      int64    `json:"item_id"`
	Name        string   `json:"item_name"`
	Quantity    int64    `json:"quantity"`
	UnitPrice   int64    `json:"unit_price"`
	TotalPrice  int64    `json:"total_price"`
	BuyingPrice int64    `json:"buying_price,omitempty"`
}

// Validate checks a line item's internal consistency.
func (it LineItem) Validate() error {
	if !it.Type.Valid() {
		return Validation("item_type", fmt.Sprintf("unknown type %q", it.Type))
	}
	if it.Name == "" {
		return Validation("item_name", "must not be empty")
	}
	if it.Quantity <= 0 {
		return Validation("quantity", "must be positive")
	}
	if it.UnitPrice < 0 {
		return Validation("unit_price", "must not be negative")
	}
	if it.TotalPrice != it.Quantity*it.UnitPrice {
		return Validation("total_price", "must equal quantity * unit_price")
	}
	if it.Type != ItemFrame && it.BuyingPrice != 0 {
		return Validation("buying_price", "only frame items carry a buying price")
	}
	if it.BuyingPrice < 0 {
		return Validation("buying_price", "must not be negative")
	}
	return nil
}

// SumItems returns the subtotal implied by a set of line items.
func SumItems(items []LineItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.TotalPrice
	}
	return sum
}

// ─── Invoice ────────────────────────────────────────────────────────────────

// Invoice is a booking-linked or ad-hoc billing record. The customer is
// either a registered directory id or a free-text guest name, never both.
type Invoice struct {
	ID                  int64      `json:"id"`
	Number              string     `json:"number"`
	BookingID           *int64     `json:"booking_id,omitempty"`
	CustomerID          *int64     `json:"customer_id,omitempty"`
	GuestName           string     `json:"guest_name,omitempty"`
	InvoiceDate         string     `json:"invoice_date"`
	Subtotal            int64      `json:"subtotal"`
	Discount            int64      `json:"discount"`
	CategoryServiceCost int64      `json:"category_service_cost"`
	AdvancePayment      int64      `json:"advance_payment"`
	TotalAmount         int64      `json:"total_amount"`
	PaidAmount          int64      `json:"paid_amount"`
	BalanceAmount       int64      `json:"balance_amount"`
	CreatedBy           int64      `json:"created_by"`
	CreatedAt           time.Time  `json:"created_at"`
	Items               []LineItem `json:"items,omitempty"`
}

// Open reports whether the invoice still carries an unpaid balance.
func (inv *Invoice) Open() bool { return inv.BalanceAmount > 0 }

// ─── Bill ───────────────────────────────────────────────────────────────────

// Bill is a walk-in sale, structurally parallel to Invoice. ServiceCharge
// replaces the invoice's category surcharge; CashGiven is display-only
// and never enters any balance computation.
type Bill struct {
	ID             int64      `json:"id"`
	Number         string     `json:"number"`
	CustomerID     *int64     `json:"customer_id,omitempty"`
	GuestName      string     `json:"guest_name,omitempty"`
	BillDate       string     `json:"bill_date"`
	Subtotal       int64      `json:"subtotal"`
	Discount       int64      `json:"discount"`
	ServiceCharge  int64      `json:"service_charge"`
	CashGiven      int64      `json:"cash_given"`
	AdvancePayment int64      `json:"advance_payment"`
	TotalAmount    int64      `json:"total_amount"`
	PaidAmount     int64      `json:"paid_amount"`
	BalanceAmount  int64      `json:"balance_amount"`
	CreatedBy      int64      `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
	Items          []LineItem `json:"items,omitempty"`
}

// Open reports whether the bill still carries an unpaid balance.
func (b *Bill) Open() bool { return b.BalanceAmount > 0 }

// ─── Booking ────────────────────────────────────────────────────────────────

// BookingStatus tracks a booking through its lifecycle.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking is a forward-dated service reservation carrying its own
// deposit and balance. The customer fields are free text — a booking is
// not required to reference a registered customer.
type Booking struct {
	ID             int64         `json:"id"`
	CustomerName   string        `json:"customer_name"`
	MobileNumber   string        `json:"mobile_number"`
	Category       string        `json:"photoshoot_category"`
	FullAmount     int64         `json:"full_amount"`
	AdvancePayment int64         `json:"advance_payment"`
	BalanceAmount  int64         `json:"balance_amount"`
	BookingDate    string        `json:"booking_date"`
	Location       string        `json:"location"`
	Description    string        `json:"description,omitempty"`
	Status         BookingStatus `json:"status"`
	CreatedBy      int64         `json:"created_by"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Open reports whether the booking still carries an unpaid balance.
func (bk *Booking) Open() bool { return bk.BalanceAmount > 0 }

// ─── Amount Computations ────────────────────────────────────────────────────

// TotalAmount computes a transaction total: subtotal plus surcharge
// minus discount, clamped to zero.
func TotalAmount(subtotal, surcharge, discount int64) int64 {
	t := subtotal + surcharge - discount
	if t < 0 {
		return 0
	}
	return t
}

// ─── Receipt Identifiers ────────────────────────────────────────────────────

const (
	InvoicePrefix = "INV"
	BillPrefix    = "BILL"
)

// BookingReceiptID formats the ad-hoc receipt id handed out when a
// booking is created.
func BookingReceiptID(at time.Time) string {
	return fmt.Sprintf("BK-%d", at.Unix())
}

// BookingSettlementReceiptID formats the receipt id for a booking
// settlement document.
func BookingSettlementReceiptID(bookingID int64) string {
	return fmt.Sprintf("SETTLE-BK-%d", bookingID)
}
