package entity

// PaginationMeta describes the position of one page within a filtered
// expense listing. It is derived server-side alongside each list response;
// clients treat it as authoritative.
type PaginationMeta struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// NewPaginationMeta derives pagination metadata from a total item count,
// the requested page and the page size. TotalPages is never below 1 so an
// empty result set still reports a single (empty) page.
func NewPaginationMeta(totalItems, page, limit int) PaginationMeta {
	if limit < 1 {
		limit = 1
	}
	totalPages := (totalItems + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	return PaginationMeta{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
