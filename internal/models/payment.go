package models

import "time"

// PaymentType is the direction of a payment: money the user owes or is owed.
type PaymentType string

const (
	TypeToPay     PaymentType = "to_pay"
	TypeToReceive PaymentType = "to_receive"
)

// Valid reports whether t is one of the two known directions.
func (t PaymentType) Valid() bool {
	return t == TypeToPay || t == TypeToReceive
}

// PaymentStatus tracks whether a payment has been settled.
// to_pay payments move between unpaid and paid; to_receive payments
// between pending and received.
type PaymentStatus string

const (
	StatusPaid     PaymentStatus = "paid"
	StatusUnpaid   PaymentStatus = "unpaid"
	StatusReceived PaymentStatus = "received"
	StatusPending  PaymentStatus = "pending"
)

// Payment is a single tracked debt or receivable owned by one user.
type Payment struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	Type        PaymentType   `json:"type"`
	PersonName  string        `json:"personName"`
	Amount      float64       `json:"amount"`
	DueDate     time.Time     `json:"dueDate"`
	Description string        `json:"description,omitempty"`
	Status      PaymentStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// DefaultStatus returns the initial status for a newly created payment
// of the given type.
func DefaultStatus(t PaymentType) PaymentStatus {
	if t == TypeToPay {
		return StatusUnpaid
	}
	return StatusPending
}

// ValidStatusFor reports whether status belongs to the status family of t.
func ValidStatusFor(t PaymentType, status PaymentStatus) bool {
	if t == TypeToPay {
		return status == StatusUnpaid || status == StatusPaid
	}
	return status == StatusPending || status == StatusReceived
}

// Toggle flips the payment between the two statuses of its type.
func (p *Payment) Toggle() {
	if p.Type == TypeToPay {
		if p.Status == StatusPaid {
			p.Status = StatusUnpaid
		} else {
			p.Status = StatusPaid
		}
		return
	}
	if p.Status == StatusReceived {
		p.Status = StatusPending
	} else {
		p.Status = StatusReceived
	}
}

// Resolved reports whether the payment has reached its settled status.
func (p *Payment) Resolved() bool {
	return p.Status == StatusPaid || p.Status == StatusReceived
}

// Overdue reports whether the payment is unresolved and its due date has
// passed. The comparison is against the full instant, not the calendar day:
// a payment due today becomes overdue once now passes midnight of the due date.
func (p *Payment) Overdue(now time.Time) bool {
	return !p.Resolved() && p.DueDate.Before(now)
}
