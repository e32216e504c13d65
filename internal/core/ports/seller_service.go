package ports

import (
	"context"
	"time"

	"github.com/i-kemen/tomato-market/internal/core/domain"
)

// ProductView is the outward-facing snapshot of a product.
type ProductView struct {
	ID          string
	SellerID    string
	Name        string
	Price       int64
	Description string
	Category    string
	CreatedAt   time.Time
}

// NewProductView maps a product entity to its view.
func NewProductView(p *domain.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
	}
}

// SellerView is a seller profile plus a read-only snapshot of its products
// taken at query time. Callers fetch the product list explicitly before
// mapping; there is no lazy loading behind the view.
type SellerView struct {
	ID        string
	UserID    string
	Introduce string
	CreatedAt time.Time
	Products  []ProductView
}

// NewSellerView maps a seller entity and its fetched products to a view.
func NewSellerView(s *domain.Seller, products []*domain.Product) *SellerView {
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = NewProductView(p)
	}
	return &SellerView{
		ID:        s.ID,
		UserID:    s.UserID,
		Introduce: s.Introduce,
		CreatedAt: s.CreatedAt,
		Products:  views,
	}
}

// QuotationView is the outward-facing snapshot of a purchase request.
type QuotationView struct {
	ID        string
	ProductID string
	UserID    string
	Approved  bool
	CreatedAt time.Time
}

// NewQuotationView maps a quotation entity to its view.
func NewQuotationView(q *domain.Quotation) QuotationView {
	return QuotationView{
		ID:        q.ID,
		ProductID: q.ProductID,
		UserID:    q.UserID,
		Approved:  q.Approved,
		CreatedAt: q.CreatedAt,
	}
}

// ApplicationView is the outward-facing snapshot of a seller application.
type ApplicationView struct {
	ID        string
	UserID    string
	Introduce string
	Approved  bool
	CreatedAt time.Time
}

// NewApplicationView maps a seller application entity to its view.
func NewApplicationView(a *domain.SellerApplication) ApplicationView {
	return ApplicationView{
		ID:        a.ID,
		UserID:    a.UserID,
		Introduce: a.Introduce,
		Approved:  a.Approved,
		CreatedAt: a.CreatedAt,
	}
}

// CreateProductInput carries the data for a new product listing.
type CreateProductInput struct {
	SellerUserID string
	Name         string
	Price        int64
	Description  string
	Category     string
}

// UpdateProductInput is a partial update: only non-nil fields are applied.
type UpdateProductInput struct {
	Name        *string
	Price       *int64
	Description *string
	Category    *string
}

// ListSellersResult is a page of seller views.
type ListSellersResult struct {
	Items      []SellerView
	Pagination Pagination
}

// ListQuotationsResult is a page of quotation views.
type ListQuotationsResult struct {
	Items      []QuotationView
	Pagination Pagination
}

// ListApplicationsResult is a page of pending seller applications.
type ListApplicationsResult struct {
	Items      []ApplicationView
	Pagination Pagination
}

// SellerService covers seller lookup, product CRUD scoped to the owning
// seller, quotation listing/approval, profile updates, demotion, and the
// seller application workflow.
type SellerService interface {
	GetSeller(ctx context.Context, sellerID string) (*SellerView, error)
	GetSellerByUserID(ctx context.Context, userID string) (*SellerView, error)
	ListSellers(ctx context.Context, page PageRequest) (*ListSellersResult, error)

	ListMyProducts(ctx context.Context, sellerUserID string) ([]ProductView, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductView, error)
	UpdateProduct(ctx context.Context, sellerUserID, productID string, input UpdateProductInput) (*ProductView, error)
	DeleteProduct(ctx context.Context, sellerUserID, productID string) error

	ListQuotations(ctx context.Context, sellerUserID string, page PageRequest) (*ListQuotationsResult, error)
	// ApproveQuotation sets the approved flag; approving an already
	// approved quotation succeeds without effect.
	ApproveQuotation(ctx context.Context, sellerUserID, quotationID string) error

	UpdateSellerProfile(ctx context.Context, userID, introduce string) (*SellerView, error)
	DemoteSeller(ctx context.Context, sellerID string) error

	Apply(ctx context.Context, userID, introduce string) (*ApplicationView, error)
	ListApplications(ctx context.Context, page PageRequest) (*ListApplicationsResult, error)
	ApproveApplication(ctx context.Context, applicationID string) error
}
