// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/presensya/pkg/pagination"
)

/*
TestFromRequest verifies query parsing with clamping of invalid values.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", pagination.DefaultPage, pagination.DefaultLimit},
		{"explicit_values", "page=3&limit=25", 3, 25},
		{"zero_page", "page=0", pagination.DefaultPage, pagination.DefaultLimit},
		{"negative_page", "page=-2", pagination.DefaultPage, pagination.DefaultLimit},
		{"limit_over_max", "limit=1000", pagination.DefaultPage, pagination.DefaultLimit},
		{"non_numeric", "page=abc&limit=xyz", pagination.DefaultPage, pagination.DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/?"+tt.query, nil)
			params := pagination.FromRequest(r)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

func TestParams_Offset(t *testing.T) {
	tests := []struct {
		name   string
		params pagination.Params
		want   int
	}{
		{"first_page", pagination.Params{Page: 1, Limit: 10}, 0},
		{"second_page", pagination.Params{Page: 2, Limit: 10}, 10},
		{"large_page", pagination.Params{Page: 5, Limit: 25}, 100},
		{"zero_page", pagination.Params{Page: 0, Limit: 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Offset())
		})
	}
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name           string
		page, limit    int
		total          int
		wantTotalPages int
	}{
		{"exact_division", 1, 10, 100, 10},
		{"partial_last_page", 1, 10, 101, 11},
		{"empty_result", 1, 10, 0, 0},
		{"single_item", 1, 10, 1, 1},
		{"zero_limit", 1, 0, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pagination.NewMeta(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.page, meta.Page)
			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.wantTotalPages, meta.TotalPages)
		})
	}
}
