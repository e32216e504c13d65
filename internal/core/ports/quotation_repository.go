package ports

import (
	"context"

	"github.com/i-kemen/tomato-market/internal/core/domain"
)

// QuotationRepository defines persistence operations for purchase requests.
type QuotationRepository interface {
	Create(ctx context.Context, quotation *domain.Quotation) (*domain.Quotation, error)
	FindByID(ctx context.Context, id string) (*domain.Quotation, error)
	// ListByProductIDs returns a page of quotations referencing any of the
	// given products, plus the total count.
	ListByProductIDs(ctx context.Context, productIDs []string, page PageRequest) ([]*domain.Quotation, int64, error)
	ListByUserID(ctx context.Context, userID string, page PageRequest) ([]*domain.Quotation, int64, error)
	// Approve sets the approved flag. Approving an already-approved
	// quotation is a no-op.
	Approve(ctx context.Context, id string) error
}
