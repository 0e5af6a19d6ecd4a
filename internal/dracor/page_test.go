package dracor

import (
	"reflect"
	"testing"
)

func TestPaginate_FullListMode(t *testing.T) {
	items := []string{"a", "b", "c"}

	page, pagination := Paginate(items, 0, 0)

	if !reflect.DeepEqual(page, items) {
		t.Errorf("Paginate() page = %v, expected %v", page, items)
	}

	expected := Pagination{
		CurrentPage:  1,
		ItemsPerPage: 3,
		TotalItems:   3,
		TotalPages:   1,
	}
	if pagination != expected {
		t.Errorf("Paginate() pagination = %+v, expected %+v", pagination, expected)
	}
}

func TestPaginate_BatchMode(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name         string
		page         int
		itemsPerPage int
		expected     []int
		pagination   Pagination
	}{
		{
			name:         "first page",
			page:         1,
			itemsPerPage: 3,
			expected:     []int{1, 2, 3},
			pagination: Pagination{
				CurrentPage:  1,
				ItemsPerPage: 3,
				TotalItems:   7,
				TotalPages:   3,
				HasNextPage:  true,
			},
		},
		{
			name:         "middle page",
			page:         2,
			itemsPerPage: 3,
			expected:     []int{4, 5, 6},
			pagination: Pagination{
				CurrentPage:     2,
				ItemsPerPage:    3,
				TotalItems:      7,
				TotalPages:      3,
				HasNextPage:     true,
				HasPreviousPage: true,
			},
		},
		{
			name:         "ragged last page",
			page:         3,
			itemsPerPage: 3,
			expected:     []int{7},
			pagination: Pagination{
				CurrentPage:     3,
				ItemsPerPage:    3,
				TotalItems:      7,
				TotalPages:      3,
				HasPreviousPage: true,
			},
		},
		{
			name:         "page past the end",
			page:         5,
			itemsPerPage: 3,
			expected:     []int{},
			pagination: Pagination{
				CurrentPage:     5,
				ItemsPerPage:    3,
				TotalItems:      7,
				TotalPages:      3,
				HasPreviousPage: true,
			},
		},
		{
			name:         "page size covering everything",
			page:         1,
			itemsPerPage: 10,
			expected:     []int{1, 2, 3, 4, 5, 6, 7},
			pagination: Pagination{
				CurrentPage:  1,
				ItemsPerPage: 10,
				TotalItems:   7,
				TotalPages:   1,
			},
		},
		{
			name:         "zero page clamps to first",
			page:         0,
			itemsPerPage: 4,
			expected:     []int{1, 2, 3, 4},
			pagination: Pagination{
				CurrentPage:  1,
				ItemsPerPage: 4,
				TotalItems:   7,
				TotalPages:   2,
				HasNextPage:  true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pagination := Paginate(items, tt.page, tt.itemsPerPage)

			if len(page) != len(tt.expected) {
				t.Fatalf("Paginate() returned %d items, expected %d", len(page), len(tt.expected))
			}
			for i := range page {
				if page[i] != tt.expected[i] {
					t.Errorf("Paginate() item %d = %d, expected %d", i, page[i], tt.expected[i])
				}
			}
			if pagination != tt.pagination {
				t.Errorf("Paginate() pagination = %+v, expected %+v", pagination, tt.pagination)
			}
		})
	}
}

func TestPaginate_ExactMultiple(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6}

	page, pagination := Paginate(items, 2, 3)

	if !reflect.DeepEqual(page, []int{4, 5, 6}) {
		t.Errorf("Paginate() page = %v, expected [4 5 6]", page)
	}
	if pagination.TotalPages != 2 {
		t.Errorf("Paginate() total pages = %d, expected 2", pagination.TotalPages)
	}
	if pagination.HasNextPage {
		t.Errorf("Paginate() has next page = true, expected false on the last page")
	}
}

func TestPaginate_EmptyList(t *testing.T) {
	page, pagination := Paginate([]string{}, 1, 10)

	if len(page) != 0 {
		t.Errorf("Paginate() returned %d items, expected 0", len(page))
	}

	expected := Pagination{
		CurrentPage:  1,
		ItemsPerPage: 10,
		TotalItems:   0,
		TotalPages:   0,
	}
	if pagination != expected {
		t.Errorf("Paginate() pagination = %+v, expected %+v", pagination, expected)
	}
}
