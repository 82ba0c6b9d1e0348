package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	testCases := []struct {
		name        string
		page, limit int
		wantPage    int
		wantLimit   int
		wantOffset  int
		total       int64
		wantHasNext bool
	}{
		{name: "defaults", page: 0, limit: 0, wantPage: 1, wantLimit: 6, wantOffset: 0, total: 7, wantHasNext: true},
		{name: "second page", page: 2, limit: 3, wantPage: 2, wantLimit: 3, wantOffset: 3, total: 6, wantHasNext: false},
		{name: "limit capped", page: 1, limit: 1000, wantPage: 1, wantLimit: MaxPageSize, wantOffset: 0, total: 50, wantHasNext: false},
		{name: "huge page capped", page: math.MaxInt, limit: 0, wantPage: MaxPage, wantLimit: 6, wantOffset: (MaxPage - 1) * 6, total: 3, wantHasNext: false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, 6)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantOffset, p.Offset())
			assert.Equal(t, tt.wantHasNext, p.HasNext(tt.total))
		})
	}
}
