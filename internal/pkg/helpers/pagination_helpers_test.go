package helpers

import "testing"

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero size defaults", 2, 0, 10, 10},
		{"oversized defaults", 1, 500, 0, 10},
		{"zero page defaults", 0, 25, 0, 25},
		{"negative page defaults", -4, 10, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			if offset != tt.wantOffset || limit != tt.wantLimit {
				t.Fatalf("CalculateOffsetLimit(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.size, offset, limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	tests := []struct {
		name            string
		totalItems      int64
		page, size      int
		wantCurrentPage int
		wantTotalPages  int
		wantPageSize    int
	}{
		{"exact fit", 20, 1, 10, 1, 2, 10},
		{"partial last page", 21, 3, 10, 3, 3, 10},
		{"no items first page", 0, 1, 10, 1, 1, 10},
		{"no items later page", 0, 5, 10, 5, 0, 10},
		{"page beyond total clamps", 100, 99, 10, 10, 10, 10},
		{"defaults applied", 5, 0, 0, 1, 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPaginationInfo(tt.totalItems, tt.page, tt.size)
			if info.CurrentPage != tt.wantCurrentPage {
				t.Fatalf("CurrentPage = %d, want %d", info.CurrentPage, tt.wantCurrentPage)
			}
			if info.TotalPages != tt.wantTotalPages {
				t.Fatalf("TotalPages = %d, want %d", info.TotalPages, tt.wantTotalPages)
			}
			if info.PageSize != tt.wantPageSize {
				t.Fatalf("PageSize = %d, want %d", info.PageSize, tt.wantPageSize)
			}
			if info.TotalItems != tt.totalItems {
				t.Fatalf("TotalItems = %d, want %d", info.TotalItems, tt.totalItems)
			}
		})
	}
}
