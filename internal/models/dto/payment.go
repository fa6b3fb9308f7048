package dto

import "github.com/nabinkhair42/pocket-due/internal/models"

type CreatePaymentRequest struct {
	Type        string  `json:"type"`
	PersonName  string  `json:"personName"`
	Amount      float64 `json:"amount"`
	DueDate     string  `json:"dueDate"`
	Description string  `json:"description,omitempty"`
}

// UpdatePaymentRequest carries a partial payment edit. Nil fields are
// left untouched.
type UpdatePaymentRequest struct {
	Type        *string  `json:"type,omitempty"`
	PersonName  *string  `json:"personName,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	DueDate     *string  `json:"dueDate,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// ToggleResponse reports the toggled payment. Deleted is always false
// under the persist policy but stays in the contract so clients written
// against the delete-on-completion variant keep working.
type ToggleResponse struct {
	Payment *models.Payment `json:"payment"`
	Deleted bool            `json:"deleted"`
}
