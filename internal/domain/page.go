package domain

// PaginationMeta is computed by the server from the total count and the limit.
// Clients treat it as authoritative.
type PaginationMeta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// PageResult is one page of articles plus its pagination metadata.
type PageResult struct {
	Articles   []Article      `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// Empty reports whether the page holds no articles.
func (p PageResult) Empty() bool {
	return len(p.Articles) == 0
}

// ShowPagination reports whether pagination controls should be rendered.
func (p PageResult) ShowPagination() bool {
	return p.Pagination.TotalPages > 1
}

// PageNumbers lists 1..TotalPages.
func (p PageResult) PageNumbers() []int {
	if p.Pagination.TotalPages <= 0 {
		return nil
	}
	pages := make([]int, p.Pagination.TotalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// NewPagination derives metadata for a locally paginated list.
func NewPagination(page, limit, total int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
