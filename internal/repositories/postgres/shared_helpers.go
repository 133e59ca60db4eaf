package postgres

import (
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// applyPagination normalizes limit/offset and applies them to the query.
func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return query.Limit(limit).Offset(offset)
}

// applySort applies a whitelisted sort column. Unknown columns fall back to
// created_at to keep ORDER BY injection-safe.
func applySort(query *gorm.DB, sortBy, sortOrder string, allowed map[string]bool) *gorm.DB {
	if !allowed[sortBy] {
		sortBy = "created_at"
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	return query.Order(sortBy + " " + sortOrder)
}
