package domain

import (
	"errors"
	"time"
)

var (
	ErrSellerNotFound      = errors.New("seller not found")
	ErrAlreadySeller       = errors.New("user is already a seller")
	ErrApplicationExists   = errors.New("seller application already pending")
	ErrApplicationNotFound = errors.New("seller application not found")
)

// Seller is the selling profile linked one-to-one to a user. A seller
// always references a live user; a user holds at most one seller profile.
type Seller struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Introduce string    `json:"introduce"`
	CreatedAt time.Time `json:"created_at"`
}

// SellerApplication is a customer's request to be granted the seller role.
// Approving it creates the Seller record and promotes the user.
type SellerApplication struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Introduce string    `json:"introduce"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}
