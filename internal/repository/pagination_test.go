package repository

import "testing"

func TestClampPage(t *testing.T) {
	cases := []struct {
		name          string
		page          int
		pageSize      int
		total         int64
		wantPage      int
		wantTotalPage int64
	}{
		{"normal", 2, 10, 25, 2, 3},
		{"zero page", 0, 10, 25, 1, 3},
		{"beyond last", 99, 10, 25, 3, 3},
		{"exact last", 3, 10, 25, 3, 3},
		{"empty collection", 7, 2, 0, 1, 0},
		{"empty first page", 1, 10, 0, 1, 0},
	}
	for _, tc := range cases {
		page, totalPage := ClampPage(tc.page, tc.pageSize, tc.total)
		if page != tc.wantPage || totalPage != tc.wantTotalPage {
			t.Fatalf("%s: ClampPage(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tc.name, tc.page, tc.pageSize, tc.total, page, totalPage, tc.wantPage, tc.wantTotalPage)
		}
	}
}
