package dto

// Page wraps one page of a listing
type Page[T any] struct {
	Count      int64 `json:"count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	Results    []T   `json:"results"`
}

// NewPage creates a paginated response
func NewPage[T any](results []T, total int64, page, pageSize int) *Page[T] {
	if results == nil {
		results = []T{}
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	return &Page[T]{
		Count:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Results:    results,
	}
}
