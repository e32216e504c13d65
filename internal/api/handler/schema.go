package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/i-kemen/tomato-market/internal/core/ports"
)

// paginationResponse echoes back the page that was actually served.
type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"total_pages"`
}

func newPaginationResponse(p ports.Pagination) paginationResponse {
	return paginationResponse{
		Total:      p.Total,
		Page:       p.Page,
		Size:       p.Size,
		TotalPages: p.TotalPages,
	}
}

// pageFromQuery reads the common paging query parameters. Out-of-range or
// malformed values are left for the service layer to normalise.
func pageFromQuery(c echo.Context) ports.PageRequest {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	asc := true
	if v := c.QueryParam("asc"); v != "" {
		asc, _ = strconv.ParseBool(v)
	}
	return ports.PageRequest{
		Page:   page,
		Size:   size,
		SortBy: c.QueryParam("sort_by"),
		Asc:    asc,
	}
}
