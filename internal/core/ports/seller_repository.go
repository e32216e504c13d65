package ports

import (
	"context"

	"github.com/i-kemen/tomato-market/internal/core/domain"
)

// SellerRepository defines persistence operations for seller profiles.
type SellerRepository interface {
	Create(ctx context.Context, seller *domain.Seller) (*domain.Seller, error)
	FindByID(ctx context.Context, id string) (*domain.Seller, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Seller, error)
	List(ctx context.Context, page PageRequest) ([]*domain.Seller, int64, error)
	UpdateIntroduceByUserID(ctx context.Context, userID, introduce string) error
	// Demote removes the seller record and reverts the linked user's role
	// to customer in a single transaction: if either write fails, neither
	// is applied.
	Demote(ctx context.Context, sellerID string) error
}

// ApplicationRepository defines persistence operations for seller
// applications (customers asking to be granted the seller role).
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.SellerApplication) (*domain.SellerApplication, error)
	FindByID(ctx context.Context, id string) (*domain.SellerApplication, error)
	ExistsPendingByUserID(ctx context.Context, userID string) (bool, error)
	ListPending(ctx context.Context, page PageRequest) ([]*domain.SellerApplication, int64, error)
	// Approve marks the application approved, creates the seller profile,
	// and promotes the user's role to seller in a single transaction.
	Approve(ctx context.Context, applicationID string) (*domain.Seller, error)
}
