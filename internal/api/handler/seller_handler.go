package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/i-kemen/tomato-market/internal/api/metrics"
	"github.com/i-kemen/tomato-market/internal/core/ports"
)

type SellerHandler struct {
	sellerService ports.SellerService
}

func NewSellerHandler(sellerService ports.SellerService) *SellerHandler {
	return &SellerHandler{sellerService: sellerService}
}

// --- Request / Response types ---

type createProductRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Price       int64  `json:"price" validate:"gte=0"`
	Description string `json:"description" validate:"max=1000"`
	Category    string `json:"category" validate:"max=50"`
}

type updateProductRequest struct {
	Name        *string `json:"name,omitempty"`
	Price       *int64  `json:"price,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
}

type updateIntroduceRequest struct {
	Introduce string `json:"introduce" validate:"max=1000"`
}

type applyRequest struct {
	Introduce string `json:"introduce" validate:"required,max=1000"`
}

type productResponse struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"seller_id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

func newProductResponse(v ports.ProductView) productResponse {
	return productResponse{
		ID:          v.ID,
		SellerID:    v.SellerID,
		Name:        v.Name,
		Price:       v.Price,
		Description: v.Description,
		Category:    v.Category,
		CreatedAt:   v.CreatedAt,
	}
}

type sellerResponse struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Introduce string            `json:"introduce"`
	CreatedAt time.Time         `json:"created_at"`
	Products  []productResponse `json:"products"`
}

func newSellerResponse(v *ports.SellerView) sellerResponse {
	products := make([]productResponse, len(v.Products))
	for i, p := range v.Products {
		products[i] = newProductResponse(p)
	}
	return sellerResponse{
		ID:        v.ID,
		UserID:    v.UserID,
		Introduce: v.Introduce,
		CreatedAt: v.CreatedAt,
		Products:  products,
	}
}

type quotationResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

func newQuotationResponse(v ports.QuotationView) quotationResponse {
	return quotationResponse{
		ID:        v.ID,
		ProductID: v.ProductID,
		UserID:    v.UserID,
		Approved:  v.Approved,
		CreatedAt: v.CreatedAt,
	}
}

type applicationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Introduce string    `json:"introduce"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

func newApplicationResponse(v ports.ApplicationView) applicationResponse {
	return applicationResponse{
		ID:        v.ID,
		UserID:    v.UserID,
		Introduce: v.Introduce,
		Approved:  v.Approved,
		CreatedAt: v.CreatedAt,
	}
}

type listSellersResponse struct {
	Items      []sellerResponse   `json:"items"`
	Pagination paginationResponse `json:"pagination"`
}

type listQuotationsResponse struct {
	Items      []quotationResponse `json:"items"`
	Pagination paginationResponse  `json:"pagination"`
}

type listApplicationsResponse struct {
	Items      []applicationResponse `json:"items"`
	Pagination paginationResponse    `json:"pagination"`
}

// --- Public seller listing ---

// ListSellers returns a page of sellers, each with a product snapshot.
//
// @Summary      List sellers
// @Tags         sellers
// @Produce      json
// @Param        page     query     int     false  "1-based page"
// @Param        size     query     int     false  "page size (max 100)"
// @Param        sort_by  query     string  false  "sort field"
// @Param        asc      query     bool    false  "ascending order"
// @Success      200      {object}  listSellersResponse
// @Router       /sellers [get]
func (h *SellerHandler) ListSellers(c echo.Context) error {
	res, err := h.sellerService.ListSellers(c.Request().Context(), pageFromQuery(c))
	if err != nil {
		return err
	}

	items := make([]sellerResponse, len(res.Items))
	for i := range res.Items {
		items[i] = newSellerResponse(&res.Items[i])
	}
	return c.JSON(http.StatusOK, listSellersResponse{
		Items:      items,
		Pagination: newPaginationResponse(res.Pagination),
	})
}

// GetSeller returns one seller with its products.
//
// @Summary      Get a seller
// @Tags         sellers
// @Produce      json
// @Param        sellerId  path      string  true  "Seller id"
// @Success      200       {object}  sellerResponse
// @Failure      404       {object}  map[string]string
// @Router       /sellers/{sellerId} [get]
func (h *SellerHandler) GetSeller(c echo.Context) error {
	view, err := h.sellerService.GetSeller(c.Request().Context(), c.Param("sellerId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSellerResponse(view))
}

// GetSellerByUserID returns the caller's own seller profile.
//
// @Summary      Get own seller profile
// @Tags         sellers
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id (must match the token)"
// @Success      200     {object}  sellerResponse
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /sellers/users/{userId} [get]
func (h *SellerHandler) GetSellerByUserID(c echo.Context) error {
	userID, err := requireSelf(c, "userId")
	if err != nil {
		return err
	}

	view, err := h.sellerService.GetSellerByUserID(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSellerResponse(view))
}

// --- Product CRUD ---

// ListMyProducts returns the caller's product listings.
//
// @Summary      List own products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   productResponse
// @Failure      404  {object}  map[string]string
// @Router       /sellers/products [get]
func (h *SellerHandler) ListMyProducts(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	views, err := h.sellerService.ListMyProducts(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	items := make([]productResponse, len(views))
	for i, v := range views {
		items[i] = newProductResponse(v)
	}
	return c.JSON(http.StatusOK, items)
}

// CreateProduct lists a new product under the caller's seller profile.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /sellers/products [post]
func (h *SellerHandler) CreateProduct(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.sellerService.CreateProduct(c.Request().Context(), ports.CreateProductInput{
		SellerUserID: userID,
		Name:         req.Name,
		Price:        req.Price,
		Description:  req.Description,
		Category:     req.Category,
	})
	if err != nil {
		return err
	}

	metrics.ProductsCreatedTotal.WithLabelValues(view.Category).Inc()
	return c.JSON(http.StatusCreated, newProductResponse(*view))
}

// UpdateProduct applies a partial update to an owned product.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path      string                true  "Product id"
// @Param        body       body      updateProductRequest  true  "Fields to change"
// @Success      200        {object}  productResponse
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Failure      422        {object}  map[string]string
// @Router       /sellers/products/{productId} [patch]
func (h *SellerHandler) UpdateProduct(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	view, err := h.sellerService.UpdateProduct(c.Request().Context(), userID, c.Param("productId"), ports.UpdateProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newProductResponse(*view))
}

// DeleteProduct removes an owned product.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        productId  path  string  true  "Product id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /sellers/products/{productId} [delete]
func (h *SellerHandler) DeleteProduct(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.sellerService.DeleteProduct(c.Request().Context(), userID, c.Param("productId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Quotations (seller side) ---

// ListQuotations pages over quotations on the caller's products.
//
// @Summary      List quotations on own products
// @Tags         quotations
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "1-based page"
// @Param        size  query     int  false  "page size (max 100)"
// @Success      200   {object}  listQuotationsResponse
// @Failure      404   {object}  map[string]string
// @Router       /sellers/quotations [get]
func (h *SellerHandler) ListQuotations(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	res, err := h.sellerService.ListQuotations(c.Request().Context(), userID, pageFromQuery(c))
	if err != nil {
		return err
	}

	items := make([]quotationResponse, len(res.Items))
	for i, v := range res.Items {
		items[i] = newQuotationResponse(v)
	}
	return c.JSON(http.StatusOK, listQuotationsResponse{
		Items:      items,
		Pagination: newPaginationResponse(res.Pagination),
	})
}

// ApproveQuotation marks a quotation approved.
//
// @Summary      Approve a quotation
// @Tags         quotations
// @Security     BearerAuth
// @Param        requestId  path  string  true  "Quotation id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /sellers/quotations/{requestId} [patch]
func (h *SellerHandler) ApproveQuotation(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.sellerService.ApproveQuotation(c.Request().Context(), userID, c.Param("requestId")); err != nil {
		return err
	}

	metrics.QuotationsApprovedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// --- Profile and demotion ---

// UpdateSellerProfile changes the caller's introduce text.
//
// @Summary      Update own seller profile
// @Tags         sellers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string                  true  "User id (must match the token)"
// @Param        body    body      updateIntroduceRequest  true  "New introduce text"
// @Success      200     {object}  sellerResponse
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /sellers/{userId} [patch]
func (h *SellerHandler) UpdateSellerProfile(c echo.Context) error {
	userID, err := requireSelf(c, "userId")
	if err != nil {
		return err
	}

	var req updateIntroduceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.sellerService.UpdateSellerProfile(c.Request().Context(), userID, req.Introduce)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSellerResponse(view))
}

// DemoteSeller removes a seller profile and reverts the user to customer.
//
// @Summary      Demote a seller
// @Tags         sellers
// @Security     BearerAuth
// @Param        sellerId  path  string  true  "Seller id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /sellers/{sellerId} [delete]
func (h *SellerHandler) DemoteSeller(c echo.Context) error {
	if err := h.sellerService.DemoteSeller(c.Request().Context(), c.Param("sellerId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Seller applications ---

// Apply files a seller application for the caller.
//
// @Summary      Apply to become a seller
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      applyRequest  true  "Application details"
// @Success      201   {object}  applicationResponse
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /sellers/apply [post]
func (h *SellerHandler) Apply(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.sellerService.Apply(c.Request().Context(), userID, req.Introduce)
	if err != nil {
		return err
	}

	metrics.SellerApplicationsTotal.WithLabelValues("filed").Inc()
	return c.JSON(http.StatusCreated, newApplicationResponse(*view))
}

// ListApplications pages over pending seller applications.
//
// @Summary      List pending seller applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "1-based page"
// @Param        size  query     int  false  "page size (max 100)"
// @Success      200   {object}  listApplicationsResponse
// @Failure      403   {object}  map[string]string
// @Router       /sellers/waitings [get]
func (h *SellerHandler) ListApplications(c echo.Context) error {
	res, err := h.sellerService.ListApplications(c.Request().Context(), pageFromQuery(c))
	if err != nil {
		return err
	}

	items := make([]applicationResponse, len(res.Items))
	for i, v := range res.Items {
		items[i] = newApplicationResponse(v)
	}
	return c.JSON(http.StatusOK, listApplicationsResponse{
		Items:      items,
		Pagination: newPaginationResponse(res.Pagination),
	})
}

// ApproveApplication grants the seller role to an applicant.
//
// @Summary      Approve a seller application
// @Tags         applications
// @Security     BearerAuth
// @Param        applicationId  path  string  true  "Application id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /sellers/waitings/{applicationId} [patch]
func (h *SellerHandler) ApproveApplication(c echo.Context) error {
	if err := h.sellerService.ApproveApplication(c.Request().Context(), c.Param("applicationId")); err != nil {
		return err
	}

	metrics.SellerApplicationsTotal.WithLabelValues("approved").Inc()
	return c.NoContent(http.StatusNoContent)
}
