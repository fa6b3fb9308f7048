package models

import "time"

// PaymentStats aggregates a user's payments for the stats endpoint.
type PaymentStats struct {
	TotalPayments   int     `json:"totalPayments"`
	TotalAmount     float64 `json:"totalAmount"`
	PaidPayments    int     `json:"paidPayments"`
	UnpaidPayments  int     `json:"unpaidPayments"`
	OverduePayments int     `json:"overduePayments"`
}

// SummaryPayment is the slice of a payment included in a per-person summary.
type SummaryPayment struct {
	ID          string        `json:"id"`
	Type        PaymentType   `json:"type"`
	Amount      float64       `json:"amount"`
	Description string        `json:"description,omitempty"`
	DueDate     time.Time     `json:"dueDate"`
	Status      PaymentStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// PaymentSummary is the derived per-person balance. It is recomputed on
// every request and never persisted. Grouping is by exact personName;
// names differing only in case are distinct groups.
type PaymentSummary struct {
	PersonName string           `json:"personName"`
	ToReceive  float64          `json:"toReceive"`
	ToPay      float64          `json:"toPay"`
	NetTotal   float64          `json:"netTotal"`
	Payments   []SummaryPayment `json:"payments"`
}
