package domain

import (
	"errors"
	"time"
)

var ErrQuotationNotFound = errors.New("quotation not found")

// Quotation is a customer's purchase request for a product. The approved
// flag only ever moves from false to true; there is no further lifecycle.
type Quotation struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}
