package service

import "github.com/i-kemen/tomato-market/internal/core/ports"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// normalizePage applies the shared paging rules: 1-based page, default and
// maximum size, and a per-listing whitelist of sortable fields (anything
// else falls back to "id").
func normalizePage(req ports.PageRequest, sortable ...string) ports.PageRequest {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Size <= 0 {
		req.Size = defaultPageSize
	}
	if req.Size > maxPageSize {
		req.Size = maxPageSize
	}
	allowed := false
	for _, f := range sortable {
		if req.SortBy == f {
			allowed = true
			break
		}
	}
	if !allowed {
		req.SortBy = "id"
	}
	return req
}

// paginationFor describes the served page for a normalised request.
func paginationFor(total int64, req ports.PageRequest) ports.Pagination {
	totalPages := int((total + int64(req.Size) - 1) / int64(req.Size))
	return ports.Pagination{
		Total:      total,
		Page:       req.Page,
		Size:       req.Size,
		TotalPages: totalPages,
	}
}
