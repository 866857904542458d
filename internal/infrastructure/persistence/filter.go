package persistence

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/markethub/backend/internal/domain/shared"
)

// allowed sort columns, keyed by column name
var sortableColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// applyFilter applies pagination and ordering from a shared.Filter
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := filter.OrderBy
	if !sortableColumns[orderBy] {
		orderBy = "created_at"
	}
	orderDir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		orderDir = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	return query
}
