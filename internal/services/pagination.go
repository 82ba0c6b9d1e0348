package services

import "math"

// MaxPageSize caps the limit a client may request
const MaxPageSize = 100

// MaxPage caps the page number so Offset stays within an int32 row count
const MaxPage = math.MaxInt32 / MaxPageSize

// Pagination selects a 1-based page of Limit items
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination normalizes client supplied values; non-positive values fall back to defaults
func NewPagination(page, limit, defaultLimit int) Pagination {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return Pagination{Page: page, Limit: limit}
}

// Offset is the number of rows skipped before the page starts
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// HasNext reports whether rows remain after this page
func (p Pagination) HasNext(total int64) bool {
	return int64(p.Page*p.Limit) < total
}
