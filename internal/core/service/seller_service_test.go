package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/i-kemen/tomato-market/internal/core/domain"
	"github.com/i-kemen/tomato-market/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubSellerRepo struct {
	seq     int
	sellers map[string]*domain.Seller // keyed by id
	users   *stubUserRepo             // for role reverts on demotion
	// when set, Demote fails without touching any state, mirroring a
	// rolled-back transaction
	demoteErr error
}

func newStubSellerRepo(users *stubUserRepo) *stubSellerRepo {
	return &stubSellerRepo{sellers: make(map[string]*domain.Seller), users: users}
}

func cloneSeller(s *domain.Seller) *domain.Seller {
	clone := *s
	return &clone
}

func (r *stubSellerRepo) Create(_ context.Context, seller *domain.Seller) (*domain.Seller, error) {
	r.seq++
	created := cloneSeller(seller)
	created.ID = fmt.Sprintf("s%03d", r.seq)
	r.sellers[created.ID] = cloneSeller(created)
	return created, nil
}

func (r *stubSellerRepo) FindByID(_ context.Context, id string) (*domain.Seller, error) {
	s, ok := r.sellers[id]
	if !ok {
		return nil, domain.ErrSellerNotFound
	}
	return cloneSeller(s), nil
}

func (r *stubSellerRepo) FindByUserID(_ context.Context, userID string) (*domain.Seller, error) {
	for _, s := range r.sellers {
		if s.UserID == userID {
			return cloneSeller(s), nil
		}
	}
	return nil, domain.ErrSellerNotFound
}

func (r *stubSellerRepo) List(_ context.Context, page ports.PageRequest) ([]*domain.Seller, int64, error) {
	var all []*domain.Seller
	for _, s := range r.sellers {
		all = append(all, cloneSeller(s))
	}
	sort.Slice(all, func(i, j int) bool {
		less := all[i].ID < all[j].ID
		if page.Asc {
			return less
		}
		return !less
	})

	total := int64(len(all))
	skip := (page.Page - 1) * page.Size
	if skip >= len(all) {
		return []*domain.Seller{}, total, nil
	}
	end := skip + page.Size
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

func (r *stubSellerRepo) UpdateIntroduceByUserID(_ context.Context, userID, introduce string) error {
	for _, s := range r.sellers {
		if s.UserID == userID {
			s.Introduce = introduce
			return nil
		}
	}
	return domain.ErrSellerNotFound
}

// Demote mirrors the transactional repository: either both writes apply or
// neither does.
func (r *stubSellerRepo) Demote(_ context.Context, sellerID string) error {
	if r.demoteErr != nil {
		return r.demoteErr
	}
	s, ok := r.sellers[sellerID]
	if !ok {
		return domain.ErrSellerNotFound
	}
	delete(r.sellers, sellerID)
	if u, ok := r.users.users[s.UserID]; ok {
		u.Role = domain.RoleCustomer
	}
	return nil
}

type stubProductRepo struct {
	seq      int
	products map[string]*domain.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	return &clone
}

func (r *stubProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.seq++
	created := cloneProduct(product)
	created.ID = fmt.Sprintf("p%03d", r.seq)
	r.products[created.ID] = cloneProduct(created)
	return created, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) ListBySeller(_ context.Context, sellerID string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.products {
		if p.SellerID == sellerID {
			out = append(out, cloneProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

type stubQuotationRepo struct {
	seq        int
	quotations map[string]*domain.Quotation
}

func newStubQuotationRepo() *stubQuotationRepo {
	return &stubQuotationRepo{quotations: make(map[string]*domain.Quotation)}
}

func cloneQuotation(q *domain.Quotation) *domain.Quotation {
	clone := *q
	return &clone
}

func (r *stubQuotationRepo) Create(_ context.Context, quotation *domain.Quotation) (*domain.Quotation, error) {
	r.seq++
	created := cloneQuotation(quotation)
	created.ID = fmt.Sprintf("q%03d", r.seq)
	r.quotations[created.ID] = cloneQuotation(created)
	return created, nil
}

func (r *stubQuotationRepo) FindByID(_ context.Context, id string) (*domain.Quotation, error) {
	q, ok := r.quotations[id]
	if !ok {
		return nil, domain.ErrQuotationNotFound
	}
	return cloneQuotation(q), nil
}

func (r *stubQuotationRepo) ListByProductIDs(_ context.Context, productIDs []string, page ports.PageRequest) ([]*domain.Quotation, int64, error) {
	ids := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		ids[id] = struct{}{}
	}
	var matched []*domain.Quotation
	for _, q := range r.quotations {
		if _, ok := ids[q.ProductID]; ok {
			matched = append(matched, cloneQuotation(q))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginateQuotations(matched, page)
}

func (r *stubQuotationRepo) ListByUserID(_ context.Context, userID string, page ports.PageRequest) ([]*domain.Quotation, int64, error) {
	var matched []*domain.Quotation
	for _, q := range r.quotations {
		if q.UserID == userID {
			matched = append(matched, cloneQuotation(q))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginateQuotations(matched, page)
}

func paginateQuotations(matched []*domain.Quotation, page ports.PageRequest) ([]*domain.Quotation, int64, error) {
	total := int64(len(matched))
	skip := (page.Page - 1) * page.Size
	if skip >= len(matched) {
		return []*domain.Quotation{}, total, nil
	}
	end := skip + page.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubQuotationRepo) Approve(_ context.Context, id string) error {
	q, ok := r.quotations[id]
	if !ok {
		return domain.ErrQuotationNotFound
	}
	q.Approved = true
	return nil
}

type stubApplicationRepo struct {
	seq     int
	apps    map[string]*domain.SellerApplication
	sellers *stubSellerRepo
	users   *stubUserRepo
}

func newStubApplicationRepo(sellers *stubSellerRepo, users *stubUserRepo) *stubApplicationRepo {
	return &stubApplicationRepo{
		apps:    make(map[string]*domain.SellerApplication),
		sellers: sellers,
		users:   users,
	}
}

func (r *stubApplicationRepo) Create(_ context.Context, app *domain.SellerApplication) (*domain.SellerApplication, error) {
	r.seq++
	clone := *app
	clone.ID = fmt.Sprintf("a%03d", r.seq)
	stored := clone
	r.apps[clone.ID] = &stored
	return &clone, nil
}

func (r *stubApplicationRepo) FindByID(_ context.Context, id string) (*domain.SellerApplication, error) {
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubApplicationRepo) ExistsPendingByUserID(_ context.Context, userID string) (bool, error) {
	for _, a := range r.apps {
		if a.UserID == userID && !a.Approved {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubApplicationRepo) ListPending(_ context.Context, page ports.PageRequest) ([]*domain.SellerApplication, int64, error) {
	var matched []*domain.SellerApplication
	for _, a := range r.apps {
		if !a.Approved {
			clone := *a
			matched = append(matched, &clone)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := int64(len(matched))
	skip := (page.Page - 1) * page.Size
	if skip >= len(matched) {
		return []*domain.SellerApplication{}, total, nil
	}
	end := skip + page.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubApplicationRepo) Approve(ctx context.Context, applicationID string) (*domain.Seller, error) {
	a, ok := r.apps[applicationID]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	a.Approved = true
	seller, err := r.sellers.Create(ctx, &domain.Seller{UserID: a.UserID, Introduce: a.Introduce})
	if err != nil {
		return nil, err
	}
	if u, ok := r.users.users[a.UserID]; ok {
		u.Role = domain.RoleSeller
	}
	return seller, nil
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type sellerFixture struct {
	users        *stubUserRepo
	sellers      *stubSellerRepo
	products     *stubProductRepo
	quotations   *stubQuotationRepo
	applications *stubApplicationRepo
	svc          *SellerService
}

func newSellerFixture() *sellerFixture {
	users := newStubUserRepo()
	sellers := newStubSellerRepo(users)
	products := newStubProductRepo()
	quotations := newStubQuotationRepo()
	applications := newStubApplicationRepo(sellers, users)
	svc := NewSellerService(sellers, products, quotations, applications, users, nil, zerolog.Nop())
	return &sellerFixture{
		users:        users,
		sellers:      sellers,
		products:     products,
		quotations:   quotations,
		applications: applications,
		svc:          svc,
	}
}

// seedSeller creates a user with the seller role and its seller profile.
func (f *sellerFixture) seedSeller(t *testing.T, username string) (*domain.User, *domain.Seller) {
	t.Helper()
	user := seedUser(f.users, username, username+"-nick", domain.RoleSeller)
	seller, err := f.sellers.Create(context.Background(), &domain.Seller{
		UserID:    user.ID,
		Introduce: "hello",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed seller: %v", err)
	}
	return user, seller
}

// ---------------------------------------------------------------------------
// Seller lookup and listing
// ---------------------------------------------------------------------------

func TestSellerService_GetSeller_NotFound(t *testing.T) {
	f := newSellerFixture()

	if _, err := f.svc.GetSeller(context.Background(), "missing"); err != domain.ErrSellerNotFound {
		t.Fatalf("expected ErrSellerNotFound, got %v", err)
	}
}

func TestSellerService_GetSeller_IncludesProducts(t *testing.T) {
	f := newSellerFixture()
	user, seller := f.seedSeller(t, "alice")

	_, err := f.svc.CreateProduct(context.Background(), ports.CreateProductInput{
		SellerUserID: user.ID, Name: "tomato", Price: 1200, Category: "vegetable",
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	view, err := f.svc.GetSeller(context.Background(), seller.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Products) != 1 || view.Products[0].Name != "tomato" {
		t.Fatalf("expected product snapshot, got %+v", view.Products)
	}
}

func TestSellerService_GetSellerByUserID(t *testing.T) {
	f := newSellerFixture()
	user, seller := f.seedSeller(t, "alice")

	view, err := f.svc.GetSellerByUserID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.ID != seller.ID {
		t.Fatalf("expected seller %s, got %s", seller.ID, view.ID)
	}
}

func TestSellerService_ListSellers_AscendingByID(t *testing.T) {
	f := newSellerFixture()
	f.seedSeller(t, "alice")
	f.seedSeller(t, "bob")
	f.seedSeller(t, "carol")

	res, err := f.svc.ListSellers(context.Background(), ports.PageRequest{Page: 0, Size: 10, SortBy: "id", Asc: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Items) != 3 {
		t.Fatalf("expected 3 sellers, got %d", len(res.Items))
	}
	for i := 1; i < len(res.Items); i++ {
		if res.Items[i-1].ID >= res.Items[i].ID {
			t.Fatalf("sellers not in ascending id order: %s >= %s", res.Items[i-1].ID, res.Items[i].ID)
		}
	}
}

func TestSellerService_ListSellers_PageBeyondRangeIsEmpty(t *testing.T) {
	f := newSellerFixture()
	f.seedSeller(t, "alice")

	res, err := f.svc.ListSellers(context.Background(), ports.PageRequest{Page: 42, Size: 10})
	if err != nil {
		t.Fatalf("out-of-range page must not error: %v", err)
	}
	if len(res.Items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(res.Items))
	}
}

type stubListCache struct {
	store map[string]*ports.ListSellersResult
	hits  int
}

func (c *stubListCache) Get(_ context.Context, key string, dest any) (bool, error) {
	cached, ok := c.store[key]
	if !ok {
		return false, nil
	}
	c.hits++
	*(dest.(*ports.ListSellersResult)) = *cached
	return true, nil
}

func (c *stubListCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.store[key] = value.(*ports.ListSellersResult)
	return nil
}

func TestSellerService_ListSellers_UsesCache(t *testing.T) {
	f := newSellerFixture()
	cache := &stubListCache{store: make(map[string]*ports.ListSellersResult)}
	svc := NewSellerService(f.sellers, f.products, f.quotations, f.applications, f.users, cache, zerolog.Nop())
	f.seedSeller(t, "alice")

	page := ports.PageRequest{Page: 1, Size: 10}
	if _, err := svc.ListSellers(context.Background(), page); err != nil {
		t.Fatalf("first call: %v", err)
	}
	res, err := svc.ListSellers(context.Background(), page)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if cache.hits != 1 {
		t.Fatalf("expected 1 cache hit, got %d", cache.hits)
	}
	if len(res.Items) != 1 {
		t.Fatalf("cached page lost items: %+v", res.Items)
	}
}

// ---------------------------------------------------------------------------
// Product CRUD
// ---------------------------------------------------------------------------

func TestSellerService_CreateThenListMyProducts(t *testing.T) {
	f := newSellerFixture()
	user, _ := f.seedSeller(t, "alice")

	created, err := f.svc.CreateProduct(context.Background(), ports.CreateProductInput{
		SellerUserID: user.ID, Name: "tomato", Price: 1200, Description: "ripe", Category: "vegetable",
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	products, err := f.svc.ListMyProducts(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}

	count := 0
	for _, p := range products {
		if p.ID == created.ID {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected created product exactly once, found %d times", count)
	}
}

func TestSellerService_CreateProduct_NegativePrice(t *testing.T) {
	f := newSellerFixture()
	user, _ := f.seedSeller(t, "alice")

	_, err := f.svc.CreateProduct(context.Background(), ports.CreateProductInput{
		SellerUserID: user.ID, Name: "tomato", Price: -1,
	})
	if err != domain.ErrNegativePrice {
		t.Fatalf("expected ErrNegativePrice, got %v", err)
	}
}

func TestSellerService_CreateProduct_NotASeller(t *testing.T) {
	f := newSellerFixture()
	customer := seedUser(f.users, "carl", "C", domain.RoleCustomer)

	_, err := f.svc.CreateProduct(context.Background(), ports.CreateProductInput{
		SellerUserID: customer.ID, Name: "tomato", Price: 100,
	})
	if err != domain.ErrSellerNotFound {
		t.Fatalf("expected ErrSellerNotFound, got %v", err)
	}
}

func TestSellerService_UpdateProduct_Partial(t *testing.T) {
	f := newSellerFixture()
	user, _ := f.seedSeller(t, "alice")
	created, _ := f.svc.CreateProduct(context.Background(), ports.CreateProductInput{
		SellerUserID: user.ID, Name: "tomato", Price: 1200, Description: "ripe", Category: "vegetable",
	})

	newName := "cherry tomato"
	view, err := f.svc.UpdateProduct(context.Background(), user.ID, created.ID, ports.UpdateProductInput{Name: &newName})
	if err != nil {
		t.Fatalf("update product: %v", err)
	}
	if view.Name != "cherry tomato" {
		t.Errorf("name not updated: %s", view.Name)
	}
	// Unsupplied fields stay untouched.
	if view.Price != 1200 || view.Description != "ripe" || view.Category != "vegetable" {
		t.Errorf("partial update touched other fields: %+v", view)
	}
}

func TestSellerService_UpdateProduct_NotFound(t *testing.T) {
	f := newSellerFixture()
	user, _ := f.seedSeller(t, "alice")

	_, err := f.svc.UpdateProduct(context.Background(), user.ID, "missing", ports.UpdateProductInput{})
	if err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestSellerService_UpdateProduct_ForeignSellerForbidden(t *testing.T) {
	f := newSellerFixture()
	owner, _ := f.seedSeller(t, "alice")
	other, _ := f.seedSeller(t, "bob")
	created, _ := f.svc.CreateProduct(context.Background(), ports.CreateProductInput{
		SellerUserID: owner.ID, Name: "tomato", Price: 100,
	})

	name := "stolen"
	_, err := f.svc.UpdateProduct(context.Background(), other.ID, created.ID, ports.UpdateProductInput{Name: &name})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSellerService_DeleteProduct(t *testing.T) {
	f := newSellerFixture()
	user, _ := f.seedSeller(t, "alice")
	created, _ := f.svc.CreateProduct(context.Background(), ports.CreateProductInput{
		SellerUserID: user.ID, Name: "tomato", Price: 100,
	})

	if err := f.svc.DeleteProduct(context.Background(), user.ID, created.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	products, _ := f.svc.ListMyProducts(context.Background(), user.ID)
	if len(products) != 0 {
		t.Fatalf("expected no products after delete, got %d", len(products))
	}

	// Deletion is not idempotent: the second call fails.
	if err := f.svc.DeleteProduct(context.Background(), user.ID, created.ID); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound on second delete, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Quotations
// ---------------------------------------------------------------------------

func (f *sellerFixture) seedQuotation(t *testing.T, productID, userID string) *domain.Quotation {
	t.Helper()
	q, err := f.quotations.Create(context.Background(), &domain.Quotation{
		ProductID: productID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed quotation: %v", err)
	}
	return q
}

func TestSellerService_ListQuotations_OwnProductsOnly(t *testing.T) {
	f := newSellerFixture()
	alice, _ := f.seedSeller(t, "alice")
	bob, _ := f.seedSeller(t, "bob")
	customer := seedUser(f.users, "carl", "C", domain.RoleCustomer)

	mine, _ := f.svc.CreateProduct(context.Background(), ports.CreateProductInput{SellerUserID: alice.ID, Name: "tomato", Price: 100})
	theirs, _ := f.svc.CreateProduct(context.Background(), ports.CreateProductInput{SellerUserID: bob.ID, Name: "potato", Price: 100})

	f.seedQuotation(t, mine.ID, customer.ID)
	f.seedQuotation(t, theirs.ID, customer.ID)

	res, err := f.svc.ListQuotations(context.Background(), alice.ID, ports.PageRequest{Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("expected 1 quotation, got %d", len(res.Items))
	}
	if res.Items[0].ProductID != mine.ID {
		t.Fatalf("quotation for wrong product: %+v", res.Items[0])
	}
}

func TestSellerService_ListQuotations_NoProducts(t *testing.T) {
	f := newSellerFixture()
	alice, _ := f.seedSeller(t, "alice")

	res, err := f.svc.ListQuotations(context.Background(), alice.ID, ports.PageRequest{Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Items) != 0 || res.Pagination.Total != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestSellerService_ApproveQuotation_Idempotent(t *testing.T) {
	f := newSellerFixture()
	alice, _ := f.seedSeller(t, "alice")
	customer := seedUser(f.users, "carl", "C", domain.RoleCustomer)
	product, _ := f.svc.CreateProduct(context.Background(), ports.CreateProductInput{SellerUserID: alice.ID, Name: "tomato", Price: 100})
	quotation := f.seedQuotation(t, product.ID, customer.ID)

	if err := f.svc.ApproveQuotation(context.Background(), alice.ID, quotation.ID); err != nil {
		t.Fatalf("first approve: %v", err)
	}
	if !f.quotations.quotations[quotation.ID].Approved {
		t.Fatal("approval flag not set")
	}

	// Second approval is a no-op, not an error.
	if err := f.svc.ApproveQuotation(context.Background(), alice.ID, quotation.ID); err != nil {
		t.Fatalf("second approve must not error: %v", err)
	}
	if !f.quotations.quotations[quotation.ID].Approved {
		t.Fatal("approval flag lost after second call")
	}
}

func TestSellerService_ApproveQuotation_NotFound(t *testing.T) {
	f := newSellerFixture()
	alice, _ := f.seedSeller(t, "alice")

	if err := f.svc.ApproveQuotation(context.Background(), alice.ID, "missing"); err != domain.ErrQuotationNotFound {
		t.Fatalf("expected ErrQuotationNotFound, got %v", err)
	}
}

func TestSellerService_ApproveQuotation_ForeignSellerForbidden(t *testing.T) {
	f := newSellerFixture()
	alice, _ := f.seedSeller(t, "alice")
	bob, _ := f.seedSeller(t, "bob")
	customer := seedUser(f.users, "carl", "C", domain.RoleCustomer)
	product, _ := f.svc.CreateProduct(context.Background(), ports.CreateProductInput{SellerUserID: alice.ID, Name: "tomato", Price: 100})
	quotation := f.seedQuotation(t, product.ID, customer.ID)

	if err := f.svc.ApproveQuotation(context.Background(), bob.ID, quotation.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if f.quotations.quotations[quotation.ID].Approved {
		t.Fatal("foreign seller must not approve")
	}
}

// ---------------------------------------------------------------------------
// Profile update and demotion
// ---------------------------------------------------------------------------

func TestSellerService_UpdateSellerProfile(t *testing.T) {
	f := newSellerFixture()
	user, seller := f.seedSeller(t, "alice")

	view, err := f.svc.UpdateSellerProfile(context.Background(), user.ID, "fresh produce daily")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Introduce != "fresh produce daily" {
		t.Errorf("introduce not updated: %s", view.Introduce)
	}
	if f.sellers.sellers[seller.ID].Introduce != "fresh produce daily" {
		t.Error("introduce not persisted")
	}
}

func TestSellerService_UpdateSellerProfile_NotASeller(t *testing.T) {
	f := newSellerFixture()
	customer := seedUser(f.users, "carl", "C", domain.RoleCustomer)

	if _, err := f.svc.UpdateSellerProfile(context.Background(), customer.ID, "hi"); err != domain.ErrSellerNotFound {
		t.Fatalf("expected ErrSellerNotFound, got %v", err)
	}
}

func TestSellerService_DemoteSeller(t *testing.T) {
	f := newSellerFixture()
	user, seller := f.seedSeller(t, "alice")

	if err := f.svc.DemoteSeller(context.Background(), seller.ID); err != nil {
		t.Fatalf("demote: %v", err)
	}

	if _, err := f.svc.GetSeller(context.Background(), seller.ID); err != domain.ErrSellerNotFound {
		t.Fatalf("expected ErrSellerNotFound after demotion, got %v", err)
	}
	if f.users.users[user.ID].Role != domain.RoleCustomer {
		t.Fatalf("expected role reverted to customer, got %s", f.users.users[user.ID].Role)
	}
}

func TestSellerService_DemoteSeller_NotFound(t *testing.T) {
	f := newSellerFixture()

	if err := f.svc.DemoteSeller(context.Background(), "missing"); err != domain.ErrSellerNotFound {
		t.Fatalf("expected ErrSellerNotFound, got %v", err)
	}
}

func TestSellerService_DemoteSeller_FailureLeavesSellerIntact(t *testing.T) {
	f := newSellerFixture()
	user, seller := f.seedSeller(t, "alice")

	// A failed transaction applies neither write.
	f.sellers.demoteErr = errors.New("txn aborted")
	if err := f.svc.DemoteSeller(context.Background(), seller.ID); err == nil {
		t.Fatal("expected demotion to fail")
	}

	if _, ok := f.sellers.sellers[seller.ID]; !ok {
		t.Fatal("seller record must survive a failed demotion")
	}
	if f.users.users[user.ID].Role != domain.RoleSeller {
		t.Fatalf("role must survive a failed demotion, got %s", f.users.users[user.ID].Role)
	}
}

// ---------------------------------------------------------------------------
// Seller applications
// ---------------------------------------------------------------------------

func TestSellerService_Apply(t *testing.T) {
	f := newSellerFixture()
	customer := seedUser(f.users, "carl", "C", domain.RoleCustomer)

	view, err := f.svc.Apply(context.Background(), customer.ID, "let me sell")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if view.Approved {
		t.Fatal("new application must be pending")
	}

	// A second application while one is pending conflicts.
	if _, err := f.svc.Apply(context.Background(), customer.ID, "again"); err != domain.ErrApplicationExists {
		t.Fatalf("expected ErrApplicationExists, got %v", err)
	}
}

func TestSellerService_Apply_AlreadySeller(t *testing.T) {
	f := newSellerFixture()
	user, _ := f.seedSeller(t, "alice")

	if _, err := f.svc.Apply(context.Background(), user.ID, "more"); err != domain.ErrAlreadySeller {
		t.Fatalf("expected ErrAlreadySeller, got %v", err)
	}
}

func TestSellerService_ApproveApplication(t *testing.T) {
	f := newSellerFixture()
	customer := seedUser(f.users, "carl", "C", domain.RoleCustomer)
	app, _ := f.svc.Apply(context.Background(), customer.ID, "let me sell")

	if err := f.svc.ApproveApplication(context.Background(), app.ID); err != nil {
		t.Fatalf("approve application: %v", err)
	}

	seller, err := f.svc.GetSellerByUserID(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("seller profile not created: %v", err)
	}
	if seller.Introduce != "let me sell" {
		t.Errorf("introduce not carried over: %s", seller.Introduce)
	}
	if f.users.users[customer.ID].Role != domain.RoleSeller {
		t.Fatalf("user not promoted, role %s", f.users.users[customer.ID].Role)
	}

	// Second approval is a no-op.
	if err := f.svc.ApproveApplication(context.Background(), app.ID); err != nil {
		t.Fatalf("second approve must not error: %v", err)
	}
}
