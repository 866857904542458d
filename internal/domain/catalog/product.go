package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// Product is the shop-independent card of a good. Its identity is the
// (name, category) pair; every shop selling the same good under the same
// name shares one product row.
type Product struct {
	shared.BaseAggregateRoot
	Name       string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_product_name_category,priority:1"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_name_category,priority:2;index"`

	Category *Category `gorm:"foreignKey:CategoryID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product in the given category
func NewProduct(name string, categoryID uuid.UUID) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Product requires a category")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		CategoryID:        categoryID,
	}, nil
}
