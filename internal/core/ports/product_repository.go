package ports

import (
	"context"

	"github.com/i-kemen/tomato-market/internal/core/domain"
)

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// ListBySeller returns all products owned by the seller. Listings are
	// small enough that seller views embed the full snapshot.
	ListBySeller(ctx context.Context, sellerID string) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	// Delete removes the product; deleting an absent id returns
	// domain.ErrProductNotFound (deletion is not idempotent).
	Delete(ctx context.Context, id string) error
}
