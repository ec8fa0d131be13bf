package persistence

import (
	"strings"

	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
	"gorm.io/gorm"
)

// searchFunc applies a repository-specific search term to a query
type searchFunc func(query *gorm.DB, term string) *gorm.DB

// allowedOrderColumns guards ORDER BY against injection; only known column
// names pass through.
var allowedOrderColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"barcode":    true,
	"quantity":   true,
	"mrp":        true,
}

// applyFilter applies search, ordering and pagination to the query
func applyFilter(query *gorm.DB, filter shared.Filter, search searchFunc) *gorm.DB {
	query = applySearch(query, filter, search)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" && allowedOrderColumns[filter.OrderBy] {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applySearch applies only the search term, for count queries
func applySearch(query *gorm.DB, filter shared.Filter, search searchFunc) *gorm.DB {
	if filter.Search != "" && search != nil {
		query = search(query, filter.Search)
	}
	return query
}
