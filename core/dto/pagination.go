package dto

// Pagination wraps a page of items with its paging metadata.
type Pagination[T any] struct {
	Items      []T   `json:"items"`
	TotalItems int64 `json:"total_items"`
	PageNumber int   `json:"page_number"`
	PageSize   int   `json:"page_size"`
}

func NewPagination[T any](items []T, totalItems int64, pageNumber, pageSize int) *Pagination[T] {
	if items == nil {
		items = []T{}
	}
	return &Pagination[T]{
		Items:      items,
		TotalItems: totalItems,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}
}
