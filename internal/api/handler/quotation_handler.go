package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/i-kemen/tomato-market/internal/api/metrics"
	"github.com/i-kemen/tomato-market/internal/core/ports"
)

type QuotationHandler struct {
	quotationService ports.QuotationService
}

func NewQuotationHandler(quotationService ports.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

type requestQuotationRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// Request opens a pending quotation for a product.
//
// @Summary      Request a quotation
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      requestQuotationRequest  true  "Product to request"
// @Success      201   {object}  quotationResponse
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /quotations [post]
func (h *QuotationHandler) Request(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req requestQuotationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.quotationService.Request(c.Request().Context(), userID, req.ProductID)
	if err != nil {
		return err
	}

	metrics.QuotationsRequestedTotal.Inc()
	return c.JSON(http.StatusCreated, newQuotationResponse(*view))
}

// ListMine pages over the caller's own quotations.
//
// @Summary      List own quotations
// @Tags         quotations
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "1-based page"
// @Param        size  query     int  false  "page size (max 100)"
// @Success      200   {object}  listQuotationsResponse
// @Router       /quotations [get]
func (h *QuotationHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	res, err := h.quotationService.ListMine(c.Request().Context(), userID, pageFromQuery(c))
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
