package ports

import "context"

// QuotationService covers the customer side of purchase requests.
type QuotationService interface {
	// Request creates a pending quotation for an existing product.
	Request(ctx context.Context, userID, productID string) (*QuotationView, error)
	ListMine(ctx context.Context, userID string, page PageRequest) (*ListQuotationsResult, error)
}
