package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/i-kemen/tomato-market/internal/core/domain"
	"github.com/i-kemen/tomato-market/internal/core/ports"
)

// QuotationService implements the customer side of purchase requests.
type QuotationService struct {
	quotations ports.QuotationRepository
	products   ports.ProductRepository
	log        zerolog.Logger
}

func NewQuotationService(quotations ports.QuotationRepository, products ports.ProductRepository, log zerolog.Logger) *QuotationService {
	return &QuotationService{quotations: quotations, products: products, log: log}
}

// Request creates a pending quotation for an existing product.
func (s *QuotationService) Request(ctx context.Context, userID, productID string) (*ports.QuotationView, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	quotation := &domain.Quotation{
		ProductID: productID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.quotations.Create(ctx, quotation)
	if err != nil {
		return nil, fmt.Errorf("request quotation: %w", err)
	}

	s.log.Info().Str("quotation_id", created.ID).Str("product_id", productID).Msg("quotation requested")
	view := ports.NewQuotationView(created)
	return &view, nil
}

func (s *QuotationService) ListMine(ctx context.Context, userID string, page ports.PageRequest) (*ports.ListQuotationsResult, error) {
	page = normalizePage(page, "id", "created_at")

	quotations, total, err := s.quotations.ListByUserID(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("list my quotations: %w", err)
	}

	items := make([]ports.QuotationView, len(quotations))
	for i, q := range quotations {
		items[i] = ports.NewQuotationView(q)
	}

	return &ports.ListQuotationsResult{
		Items:      items,
		Pagination: paginationFor(total, page),
	}, nil
}
