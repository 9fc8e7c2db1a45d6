package models

import "testing"

func TestPagination_Offset(t *testing.T) {
	tests := []struct {
		name string
		page Pagination
		want int
	}{
		{"First page", Pagination{Page: 1, PageSize: 25}, 0},
		{"Second page", Pagination{Page: 2, PageSize: 25}, 25},
		{"Zero page clamps to first", Pagination{Page: 0, PageSize: 25}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.Offset(); got != tt.want {
				t.Errorf("Offset() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPagination_Limit(t *testing.T) {
	tests := []struct {
		name string
		page Pagination
		want int
	}{
		{"Normal size", Pagination{PageSize: 25}, 25},
		{"Zero defaults", Pagination{PageSize: 0}, 25},
		{"Capped at 100", Pagination{PageSize: 500}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.Limit(); got != tt.want {
				t.Errorf("Limit() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPagination_TotalPages(t *testing.T) {
	tests := []struct {
		name  string
		page  Pagination
		total int
		want  int
	}{
		{"Exact fit", Pagination{PageSize: 25}, 50, 2},
		{"Partial last page", Pagination{PageSize: 25}, 51, 3},
		{"Empty result", Pagination{PageSize: 25}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.TotalPages(tt.total); got != tt.want {
				t.Errorf("TotalPages(%d) = %d, want %d", tt.total, got, tt.want)
			}
		})
	}
}

func TestStatus_Valid(t *testing.T) {
	if !StatusActive.Valid() || !StatusInactive.Valid() {
		t.Error("expected known statuses to be valid")
	}
	if Status("Retired").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}
