package catalog

import (
	"strings"
	"time"

	"github.com/markethub/backend/internal/domain/shared"
)

// Category represents a product category shared across shops.
// Its identity is the externally supplied integer id carried by feeds;
// renaming a category in one feed renames it for every shop.
type Category struct {
	shared.BaseAggregateRoot
	ExternalID int    `gorm:"not null;uniqueIndex"`
	Name       string `gorm:"type:varchar(100);not null"`

	Shops []Shop `gorm:"many2many:shop_categories"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category with the given external id
func NewCategory(externalID int, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if externalID <= 0 {
		return nil, shared.NewDomainError("INVALID_CATEGORY_ID", "Category id must be a positive integer")
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ExternalID:        externalID,
		Name:              name,
	}, nil
}

// Rename updates the category name in place
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
