package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/i-kemen/tomato-market/internal/core/domain"
	"github.com/i-kemen/tomato-market/internal/core/ports"
)

// stubSellerService records the last call and returns canned values.
type stubSellerService struct {
	lastUserID    string
	lastProductID string
	approvedID    string
	demotedID     string
	err           error
}

func (s *stubSellerService) GetSeller(_ context.Context, sellerID string) (*ports.SellerView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ports.SellerView{ID: sellerID, Products: []ports.ProductView{}}, nil
}

func (s *stubSellerService) GetSellerByUserID(_ context.Context, userID string) (*ports.SellerView, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastUserID = userID
	return &ports.SellerView{ID: "s001", UserID: userID, Products: []ports.ProductView{}}, nil
}

func (s *stubSellerService) ListSellers(_ context.Context, _ ports.PageRequest) (*ports.ListSellersResult, error) {
	return &ports.ListSellersResult{Items: []ports.SellerView{{ID: "s001"}}, Pagination: ports.Pagination{Total: 1, Page: 1, Size: 20, TotalPages: 1}}, nil
}

func (s *stubSellerService) ListMyProducts(_ context.Context, userID string) ([]ports.ProductView, error) {
	s.lastUserID = userID
	return []ports.ProductView{}, nil
}

func (s *stubSellerService) CreateProduct(_ context.Context, input ports.CreateProductInput) (*ports.ProductView, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastUserID = input.SellerUserID
	return &ports.ProductView{ID: "p001", Name: input.Name, Price: input.Price, Category: input.Category}, nil
}

func (s *stubSellerService) UpdateProduct(_ context.Context, userID, productID string, _ ports.UpdateProductInput) (*ports.ProductView, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastUserID, s.lastProductID = userID, productID
	return &ports.ProductView{ID: productID}, nil
}

func (s *stubSellerService) DeleteProduct(_ context.Context, userID, productID string) error {
	if s.err != nil {
		return s.err
	}
	s.lastUserID, s.lastProductID = userID, productID
	return nil
}

func (s *stubSellerService) ListQuotations(_ context.Context, userID string, _ ports.PageRequest) (*ports.ListQuotationsResult, error) {
	s.lastUserID = userID
	return &ports.ListQuotationsResult{Items: []ports.QuotationView{}}, nil
}

func (s *stubSellerService) ApproveQuotation(_ context.Context, userID, quotationID string) error {
	if s.err != nil {
		return s.err
	}
	s.lastUserID, s.approvedID = userID, quotationID
	return nil
}

func (s *stubSellerService) UpdateSellerProfile(_ context.Context, userID, introduce string) (*ports.SellerView, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastUserID = userID
	return &ports.SellerView{ID: "s001", UserID: userID, Introduce: introduce, Products: []ports.ProductView{}}, nil
}

func (s *stubSellerService) DemoteSeller(_ context.Context, sellerID string) error {
	if s.err != nil {
		return s.err
	}
	s.demotedID = sellerID
	return nil
}

func (s *stubSellerService) Apply(_ context.Context, userID, introduce string) (*ports.ApplicationView, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastUserID = userID
	return &ports.ApplicationView{ID: "a001", UserID: userID, Introduce: introduce}, nil
}

func (s *stubSellerService) ListApplications(_ context.Context, _ ports.PageRequest) (*ports.ListApplicationsResult, error) {
	return &ports.ListApplicationsResult{Items: []ports.ApplicationView{}}, nil
}

func (s *stubSellerService) ApproveApplication(_ context.Context, applicationID string) error {
	if s.err != nil {
		return s.err
	}
	s.approvedID = applicationID
	return nil
}

func TestSellerHandler_CreateProduct_Created(t *testing.T) {
	e := newTestEcho()
	svc := &stubSellerService{}
	h := NewSellerHandler(svc)

	c, rec := newTestContext(e, http.MethodPost, "/sellers/products",
		`{"name":"tomato","price":1200,"category":"vegetable"}`)
	c.Set("user_id", "u001")
	c.Set("role", "seller")

	if err := h.CreateProduct(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.lastUserID != "u001" {
		t.Fatalf("seller user id not forwarded: %q", svc.lastUserID)
	}

	var resp productResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Name != "tomato" || resp.Price != 1200 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSellerHandler_CreateProduct_NegativePriceRejected(t *testing.T) {
	e := newTestEcho()
	h := NewSellerHandler(&stubSellerService{})

	c, _ := newTestContext(e, http.MethodPost, "/sellers/products",
		`{"name":"tomato","price":-5}`)
	c.Set("user_id", "u001")
	c.Set("role", "seller")

	err := h.CreateProduct(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}

func TestSellerHandler_CreateProduct_MissingClaims(t *testing.T) {
	e := newTestEcho()
	h := NewSellerHandler(&stubSellerService{})

	c, _ := newTestContext(e, http.MethodPost, "/sellers/products",
		`{"name":"tomato","price":10}`)

	err := h.CreateProduct(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestSellerHandler_DeleteProduct_NoContent(t *testing.T) {
	e := newTestEcho()
	svc := &stubSellerService{}
	h := NewSellerHandler(svc)

	c, rec := newTestContext(e, http.MethodDelete, "/sellers/products/p001", "")
	c.SetParamNames("productId")
	c.SetParamValues("p001")
	c.Set("user_id", "u001")
	c.Set("role", "seller")

	if err := h.DeleteProduct(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if svc.lastProductID != "p001" {
		t.Fatalf("product id not forwarded: %q", svc.lastProductID)
	}
}

func TestSellerHandler_ApproveQuotation_NoContent(t *testing.T) {
	e := newTestEcho()
	svc := &stubSellerService{}
	h := NewSellerHandler(svc)

	c, rec := newTestContext(e, http.MethodPatch, "/sellers/quotations/q001", "")
	c.SetParamNames("requestId")
	c.SetParamValues("q001")
	c.Set("user_id", "u001")
	c.Set("role", "seller")

	if err := h.ApproveQuotation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if svc.approvedID != "q001" {
		t.Fatalf("quotation id not forwarded: %q", svc.approvedID)
	}
}

func TestSellerHandler_UpdateSellerProfile_SelfOnly(t *testing.T) {
	e := newTestEcho()
	h := NewSellerHandler(&stubSellerService{})

	c, _ := newTestContext(e, http.MethodPatch, "/sellers/u002",
		`{"introduce":"hi"}`)
	c.SetParamNames("userId")
	c.SetParamValues("u002")
	c.Set("user_id", "u001")
	c.Set("role", "seller")

	// The path names a different user than the token.
	err := h.UpdateSellerProfile(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}

func TestSellerHandler_UpdateSellerProfile_OK(t *testing.T) {
	e := newTestEcho()
	svc := &stubSellerService{}
	h := NewSellerHandler(svc)

	c, rec := newTestContext(e, http.MethodPatch, "/sellers/u001",
		`{"introduce":"fresh produce"}`)
	c.SetParamNames("userId")
	c.SetParamValues("u001")
	c.Set("user_id", "u001")
	c.Set("role", "seller")

	if err := h.UpdateSellerProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastUserID != "u001" {
		t.Fatalf("user id not forwarded: %q", svc.lastUserID)
	}
}

func TestSellerHandler_DemoteSeller_NoContent(t *testing.T) {
	e := newTestEcho()
	svc := &stubSellerService{}
	h := NewSellerHandler(svc)

	c, rec := newTestContext(e, http.MethodDelete, "/sellers/s001", "")
	c.SetParamNames("sellerId")
	c.SetParamValues("s001")
	c.Set("user_id", "admin1")
	c.Set("role", "admin")

	if err := h.DemoteSeller(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if svc.demotedID != "s001" {
		t.Fatalf("seller id not forwarded: %q", svc.demotedID)
	}
}

func TestSellerHandler_NotFoundPassesThrough(t *testing.T) {
	e := newTestEcho()
	h := NewSellerHandler(&stubSellerService{err: domain.ErrSellerNotFound})

	c, _ := newTestContext(e, http.MethodGet, "/sellers/missing", "")
	c.SetParamNames("sellerId")
	c.SetParamValues("missing")

	if err := h.GetSeller(c); !errors.Is(err, domain.ErrSellerNotFound) {
		t.Fatalf("expected ErrSellerNotFound, got %v", err)
	}
}
