package ports

// PageRequest carries paging and sorting parameters for list operations.
// Services normalise it: page <= 0 becomes 1, size <= 0 becomes the default
// of 20, size is capped at 100, and SortBy is matched against a per-listing
// whitelist (falling back to "id"). A page beyond the data range yields an
// empty result, never an error.
type PageRequest struct {
	Page   int
	Size   int
	SortBy string
	Asc    bool
}

// Pagination describes the page that was actually served.
type Pagination struct {
	Total      int64
	Page       int
	Size       int
	TotalPages int
}
