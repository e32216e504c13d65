package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/i-kemen/tomato-market/internal/core/domain"
	"github.com/i-kemen/tomato-market/internal/core/ports"
)

// ListCache caches rendered listing pages. Backed by Redis in production;
// a nil cache disables caching.
type ListCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

const sellerListTTL = 60 * time.Second

// SellerService implements seller lookup and listing, product CRUD scoped
// to the owning seller, quotation listing/approval, profile updates,
// demotion, and the seller application workflow.
type SellerService struct {
	sellers      ports.SellerRepository
	products     ports.ProductRepository
	quotations   ports.QuotationRepository
	applications ports.ApplicationRepository
	users        ports.UserRepository
	cache        ListCache
	log          zerolog.Logger
}

func NewSellerService(
	sellers ports.SellerRepository,
	products ports.ProductRepository,
	quotations ports.QuotationRepository,
	applications ports.ApplicationRepository,
	users ports.UserRepository,
	cache ListCache,
	log zerolog.Logger,
) *SellerService {
	return &SellerService{
		sellers:      sellers,
		products:     products,
		quotations:   quotations,
		applications: applications,
		users:        users,
		cache:        cache,
		log:          log,
	}
}

func (s *SellerService) GetSeller(ctx context.Context, sellerID string) (*ports.SellerView, error) {
	seller, err := s.sellers.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return s.sellerView(ctx, seller)
}

func (s *SellerService) GetSellerByUserID(ctx context.Context, userID string) (*ports.SellerView, error) {
	seller, err := s.sellers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.sellerView(ctx, seller)
}

// ListSellers serves paginated seller views, each carrying a product
// snapshot taken at query time. Pages are cached briefly; a stale page is
// acceptable under the snapshot semantics of the listing.
func (s *SellerService) ListSellers(ctx context.Context, page ports.PageRequest) (*ports.ListSellersResult, error) {
	page = normalizePage(page, "id", "user_id", "created_at")

	key := fmt.Sprintf("sellers:page=%d:size=%d:sort=%s:asc=%t", page.Page, page.Size, page.SortBy, page.Asc)
	if s.cache != nil {
		var cached ports.ListSellersResult
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn().Err(err).Msg("seller list cache read failed")
		} else if found {
			return &cached, nil
		}
	}

	sellers, total, err := s.sellers.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}

	items := make([]ports.SellerView, len(sellers))
	for i, seller := range sellers {
		view, err := s.sellerView(ctx, seller)
		if err != nil {
			return nil, err
		}
		items[i] = *view
	}

	result := &ports.ListSellersResult{
		Items:      items,
		Pagination: paginationFor(total, page),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, sellerListTTL); err != nil {
			s.log.Warn().Err(err).Msg("seller list cache write failed")
		}
	}
	return result, nil
}

func (s *SellerService) ListMyProducts(ctx context.Context, sellerUserID string) ([]ports.ProductView, error) {
	seller, err := s.sellers.FindByUserID(ctx, sellerUserID)
	if err != nil {
		return nil, err
	}

	products, err := s.products.ListBySeller(ctx, seller.ID)
	if err != nil {
		return nil, fmt.Errorf("list my products: %w", err)
	}

	views := make([]ports.ProductView, len(products))
	for i, p := range products {
		views[i] = ports.NewProductView(p)
	}
	return views, nil
}

func (s *SellerService) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*ports.ProductView, error) {
	if input.Price < 0 {
		return nil, domain.ErrNegativePrice
	}

	seller, err := s.sellers.FindByUserID(ctx, input.SellerUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		SellerID:    seller.ID,
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Category:    input.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info().Str("product_id", created.ID).Str("seller_id", seller.ID).Msg("product created")
	view := ports.NewProductView(created)
	return &view, nil
}

// UpdateProduct applies a partial update. Only the owning seller may
// modify a product.
func (s *SellerService) UpdateProduct(ctx context.Context, sellerUserID, productID string, input ports.UpdateProductInput) (*ports.ProductView, error) {
	product, err := s.ownedProduct(ctx, sellerUserID, productID)
	if err != nil {
		return nil, err
	}

	if input.Price != nil && *input.Price < 0 {
		return nil, domain.ErrNegativePrice
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	view := ports.NewProductView(product)
	return &view, nil
}

func (s *SellerService) DeleteProduct(ctx context.Context, sellerUserID, productID string) error {
	if _, err := s.ownedProduct(ctx, sellerUserID, productID); err != nil {
		return err
	}

	if err := s.products.Delete(ctx, productID); err != nil {
		return err
	}

	s.log.Info().Str("product_id", productID).Msg("product deleted")
	return nil
}

// ListQuotations pages over quotations for all products owned by the
// seller. The product set is fetched explicitly first; there is no join
// hidden in the repository.
func (s *SellerService) ListQuotations(ctx context.Context, sellerUserID string, page ports.PageRequest) (*ports.ListQuotationsResult, error) {
	page = normalizePage(page, "id", "created_at")

	seller, err := s.sellers.FindByUserID(ctx, sellerUserID)
	if err != nil {
		return nil, err
	}

	products, err := s.products.ListBySeller(ctx, seller.ID)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	if len(products) == 0 {
		return &ports.ListQuotationsResult{
			Items:      []ports.QuotationView{},
			Pagination: paginationFor(0, page),
		}, nil
	}

	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	quotations, total, err := s.quotations.ListByProductIDs(ctx, ids, page)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
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

// ApproveQuotation flips the approval flag. Approving twice is a no-op,
// not an error; the flag never transitions back.
func (s *SellerService) ApproveQuotation(ctx context.Context, sellerUserID, quotationID string) error {
	quotation, err := s.quotations.FindByID(ctx, quotationID)
	if err != nil {
		return err
	}

	product, err := s.products.FindByID(ctx, quotation.ProductID)
	if err != nil {
		return fmt.Errorf("approve quotation: %w", err)
	}
	seller, err := s.sellers.FindByUserID(ctx, sellerUserID)
	if err != nil {
		return err
	}
	if product.SellerID != seller.ID {
		return domain.ErrForbidden
	}

	if quotation.Approved {
		s.log.Debug().Str("quotation_id", quotationID).Msg("quotation already approved")
		return nil
	}

	if err := s.quotations.Approve(ctx, quotationID); err != nil {
		return fmt.Errorf("approve quotation: %w", err)
	}

	s.log.Info().Str("quotation_id", quotationID).Str("seller_id", seller.ID).Msg("quotation approved")
	return nil
}

// UpdateSellerProfile changes the introduce text. Ownership has already
// been checked at the transport layer against the token claims.
func (s *SellerService) UpdateSellerProfile(ctx context.Context, userID, introduce string) (*ports.SellerView, error) {
	seller, err := s.sellers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.sellers.UpdateIntroduceByUserID(ctx, userID, introduce); err != nil {
		return nil, err
	}
	seller.Introduce = introduce

	return s.sellerView(ctx, seller)
}

// DemoteSeller removes the seller profile and reverts the linked user's
// role to customer. Both writes happen in one repository transaction, so a
// failure leaves no partial demotion behind.
func (s *SellerService) DemoteSeller(ctx context.Context, sellerID string) error {
	if err := s.sellers.Demote(ctx, sellerID); err != nil {
		return err
	}
	s.log.Info().Str("seller_id", sellerID).Msg("seller demoted")
	return nil
}

func (s *SellerService) Apply(ctx context.Context, userID, introduce string) (*ports.ApplicationView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleSeller {
		return nil, domain.ErrAlreadySeller
	}

	pending, err := s.applications.ExistsPendingByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}
	if pending {
		return nil, domain.ErrApplicationExists
	}

	app := &domain.SellerApplication{
		UserID:    userID,
		Introduce: introduce,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.applications.Create(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}

	s.log.Info().Str("application_id", created.ID).Str("user_id", userID).Msg("seller application filed")
	view := ports.NewApplicationView(created)
	return &view, nil
}

func (s *SellerService) ListApplications(ctx context.Context, page ports.PageRequest) (*ports.ListApplicationsResult, error) {
	page = normalizePage(page, "id", "created_at")

	apps, total, err := s.applications.ListPending(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	items := make([]ports.ApplicationView, len(apps))
	for i, a := range apps {
		items[i] = ports.NewApplicationView(a)
	}

	return &ports.ListApplicationsResult{
		Items:      items,
		Pagination: paginationFor(total, page),
	}, nil
}

// ApproveApplication grants the seller role. The application is marked
// approved, the seller profile created and the user promoted in one
// repository transaction. Approving twice is a no-op.
func (s *SellerService) ApproveApplication(ctx context.Context, applicationID string) error {
	app, err := s.applications.FindByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.Approved {
		s.log.Debug().Str("application_id", applicationID).Msg("application already approved")
		return nil
	}

	seller, err := s.applications.Approve(ctx, applicationID)
	if err != nil {
		return fmt.Errorf("approve application: %w", err)
	}

	s.log.Info().Str("application_id", applicationID).Str("seller_id", seller.ID).Msg("seller application approved")
	return nil
}

// ownedProduct fetches a product and verifies the caller's seller profile
// owns it.
func (s *SellerService) ownedProduct(ctx context.Context, sellerUserID, productID string) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	seller, err := s.sellers.FindByUserID(ctx, sellerUserID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != seller.ID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

func (s *SellerService) sellerView(ctx context.Context, seller *domain.Seller) (*ports.SellerView, error) {
	products, err := s.products.ListBySeller(ctx, seller.ID)
	if err != nil {
		return nil, fmt.Errorf("load seller products: %w", err)
	}
	return ports.NewSellerView(seller, products), nil
}
