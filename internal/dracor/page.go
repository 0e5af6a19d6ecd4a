package dracor

// Pagination describes where a page slice sits within the full result set.
// Every paged tool response carries one of these next to its items.
type Pagination struct {
	CurrentPage     int  `json:"current_page"`
	ItemsPerPage    int  `json:"items_per_page"`
	TotalItems      int  `json:"total_items"`
	TotalPages      int  `json:"total_pages"`
	HasNextPage     bool `json:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page"`
}

// Paginate slices items into the requested page. An itemsPerPage of zero or
// less selects full-list mode: all items in a single page. Pages are
// 1-based; a page past the end yields an empty slice, never an error.
func Paginate[T any](items []T, page, itemsPerPage int) ([]T, Pagination) {
	total := len(items)

	if itemsPerPage <= 0 {
		return items, Pagination{
			CurrentPage:  1,
			ItemsPerPage: total,
			TotalItems:   total,
			TotalPages:   1,
		}
	}

	if page <= 0 {
		page = 1
	}

	totalPages := (total + itemsPerPage - 1) / itemsPerPage

	start := (page - 1) * itemsPerPage
	end := start + itemsPerPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return items[start:end], Pagination{
		CurrentPage:     page,
		ItemsPerPage:    itemsPerPage,
		TotalItems:      total,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
