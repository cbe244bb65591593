package domain

import "time"

// SettlementSnapshot is the data handed to the document generator after
// a transaction is settled. The settlement engine produces data only;
// layout and rendering belong to the collaborator.
type SettlementSnapshot struct {
	SnapshotID    string    `json:"snapshot_id"`
	ReceiptID     string    `json:"receipt_id"`
	Kind          Kind      `json:"kind"`
	TransactionID int64     `json:"transaction_id"`
	Number        string    `json:"number,omitempty"`
	CustomerName  string    `json:"customer_name,omitempty"`
	TotalAmount   int64     `json:"total_amount"`
	PreviousPaid  int64     `json:"previous_paid"`
	BalanceDue    int64     `json:"balance_due"`
	CashReceived  int64     `json:"cash_received"`
	Change        int64     `json:"change"`
	SettledAt     time.Time `json:"settled_at"`
}
