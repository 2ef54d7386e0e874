package domain

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Page describes a limit/offset window over a listing.
type Page struct {
	Number int // zero-based page number
	Size   int
}

// NewPage clamps the requested page number and size to sane bounds.
func NewPage(number, size int) Page {
	if number < 0 {
		number = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return Page{Number: number, Size: size}
}

// Limit returns the SQL LIMIT for the page.
func (p Page) Limit() int { return p.Size }

// Offset returns the SQL OFFSET for the page.
func (p Page) Offset() int { return p.Number * p.Size }

// PagedResult wraps a page of items together with the total match count.
type PagedResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int64 `json:"total_pages"`
}

// NewPagedResult computes the page metadata for the given items and total.
func NewPagedResult[T any](items []T, total int64, page Page) PagedResult[T] {
	totalPages := int64(0)
	if page.Size > 0 {
		totalPages = (total + int64(page.Size) - 1) / int64(page.Size)
	}
	if items == nil {
		items = []T{}
	}
	return PagedResult[T]{
		Items:      items,
		Total:      total,
		Page:       page.Number,
		Size:       page.Size,
		TotalPages: totalPages,
	}
}
