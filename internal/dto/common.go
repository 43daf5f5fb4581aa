package dto

// Pagination describes the page window of a list response, matching the
// shape the frontend consumes.
type Pagination struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
}

// PageParams are the shared page/limit query parameters.
type PageParams struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// Normalize clamps the page window to sane defaults.
func (p *PageParams) Normalize(defaultLimit int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
}

// Offset returns the row offset for the current page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// NewPagination builds the pagination block for a total row count.
func NewPagination(p PageParams, total int) Pagination {
	pages := total / p.Limit
	if total%p.Limit != 0 {
		pages++
	}
	return Pagination{Current: p.Page, Pages: pages, Total: total}
}
