package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

// GormImportRepository implements catalog.FeedImportStore. A whole feed
// import runs in one transaction: partial imports never become visible
// and a failing document leaves the previous catalog slice intact.
type GormImportRepository struct {
	db *gorm.DB
}

// NewGormImportRepository creates a new GormImportRepository
func NewGormImportRepository(db *gorm.DB) *GormImportRepository {
	return &GormImportRepository{db: db}
}

// ImportFeed replaces the shop's catalog slice from a validated document
func (r *GormImportRepository) ImportFeed(ctx context.Context, shop *catalog.Shop, doc *catalog.FeedDocument) (*catalog.ImportStats, error) {
	stats := &catalog.ImportStats{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Row lock on the shop serializes concurrent imports at the
		// database level, on top of the application lock. SQLite locks
		// the whole database per transaction and has no FOR UPDATE.
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&catalog.Shop{}, "id = ?", shop.ID).Error; err != nil {
				return fmt.Errorf("failed to lock shop row: %w", err)
			}
		}

		categoryIDs, err := r.upsertCategories(tx, shop, doc.Categories)
		if err != nil {
			return err
		}
		stats.Categories = len(doc.Categories)

		if err := r.deleteShopOffers(tx, shop.ID); err != nil {
			return err
		}

		if err := r.insertGoods(tx, shop, doc.Goods, categoryIDs); err != nil {
			return err
		}
		stats.Goods = len(doc.Goods)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// upsertCategories gets or creates each feed category by external id,
// renames changed names in place and attaches the category to the shop.
// It returns the external id -> row id mapping for good resolution.
func (r *GormImportRepository) upsertCategories(tx *gorm.DB, shop *catalog.Shop, feedCategories []catalog.FeedCategory) (map[int]uuid.UUID, error) {
	ids := make(map[int]uuid.UUID, len(feedCategories))

	for _, fc := range feedCategories {
		var category catalog.Category
		err := tx.First(&category, "external_id = ?", fc.ID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created, derr := catalog.NewCategory(fc.ID, fc.Name)
			if derr != nil {
				return nil, derr
			}
			if cerr := tx.Omit("Shops").Create(created).Error; cerr != nil {
				return nil, fmt.Errorf("failed to create category %d: %w", fc.ID, cerr)
			}
			category = *created
		case err != nil:
			return nil, err
		default:
			if category.Name != fc.Name {
				if derr := category.Rename(fc.Name); derr != nil {
					return nil, derr
				}
				if uerr := tx.Model(&catalog.Category{}).
					Where("id = ?", category.ID).
					Updates(map[string]interface{}{"name": category.Name, "updated_at": category.UpdatedAt}).Error; uerr != nil {
					return nil, fmt.Errorf("failed to rename category %d: %w", fc.ID, uerr)
				}
			}
		}

		if aerr := tx.Exec(
			"INSERT INTO shop_categories (shop_id, category_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			shop.ID, category.ID,
		).Error; aerr != nil {
			return nil, fmt.Errorf("failed to attach category %d to shop: %w", fc.ID, aerr)
		}

		ids[fc.ID] = category.ID
	}

	return ids, nil
}

// deleteShopOffers clears the shop's catalog for the full-replace step.
// Offers referenced by order lines are archived instead of deleted so
// placed orders and baskets keep joining their price and product data;
// everything else goes, parameters included.
func (r *GormImportRepository) deleteShopOffers(tx *gorm.DB, shopID uuid.UUID) error {
	if err := tx.Model(&catalog.ProductInfo{}).
		Where("shop_id = ? AND id IN (SELECT product_info_id FROM order_items)", shopID).
		Update("archived", true).Error; err != nil {
		return fmt.Errorf("failed to archive referenced offers: %w", err)
	}
	if err := tx.Exec(
		"DELETE FROM product_parameters WHERE product_info_id IN (SELECT id FROM product_infos WHERE shop_id = ? AND NOT archived)",
		shopID,
	).Error; err != nil {
		return fmt.Errorf("failed to delete offer parameters: %w", err)
	}
	if err := tx.Where("shop_id = ? AND NOT archived", shopID).Delete(&catalog.ProductInfo{}).Error; err != nil {
		return fmt.Errorf("failed to delete offers: %w", err)
	}
	return nil
}

// insertGoods recreates the shop's offers from the document
func (r *GormImportRepository) insertGoods(tx *gorm.DB, shop *catalog.Shop, goods []catalog.FeedGood, categoryIDs map[int]uuid.UUID) error {
	for _, g := range goods {
		categoryID, ok := categoryIDs[g.Category]
		if !ok {
			// Validation guarantees this; guard against a stale document anyway
			return fmt.Errorf("good %d references unknown category %d", g.ID, g.Category)
		}

		product, err := r.getOrCreateProduct(tx, g.Name, categoryID)
		if err != nil {
			return err
		}

		info, err := catalog.NewProductInfo(
			product.ID, shop.ID, g.ID, g.Model, g.Quantity,
			decimal.NewFromFloat(g.Price), decimal.NewFromFloat(g.PriceRRC),
		)
		if err != nil {
			return err
		}
		if cerr := tx.Omit("Product", "Shop", "Parameters").Create(info).Error; cerr != nil {
			return fmt.Errorf("failed to create offer %d: %w", g.ID, cerr)
		}

		if perr := r.insertParameters(tx, info.ID, g.Parameters); perr != nil {
			return perr
		}
	}

	return nil
}

func (r *GormImportRepository) getOrCreateProduct(tx *gorm.DB, name string, categoryID uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	err := tx.First(&product, "name = ? AND category_id = ?", name, categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		created, derr := catalog.NewProduct(name, categoryID)
		if derr != nil {
			return nil, derr
		}
		if cerr := tx.Omit("Category").Create(created).Error; cerr != nil {
			return nil, fmt.Errorf("failed to create product %q: %w", name, cerr)
		}
		return created, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormImportRepository) insertParameters(tx *gorm.DB, infoID uuid.UUID, params catalog.FeedParams) error {
	for name, value := range params {
		var parameter catalog.Parameter
		err := tx.First(&parameter, "name = ?", name).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created, derr := catalog.NewParameter(name)
			if derr != nil {
				return derr
			}
			if cerr := tx.Create(created).Error; cerr != nil {
				return fmt.Errorf("failed to create parameter %q: %w", name, cerr)
			}
			parameter = *created
		} else if err != nil {
			return err
		}

		pp := &catalog.ProductParameter{
			BaseEntity:    shared.NewBaseEntity(),
			ProductInfoID: infoID,
			ParameterID:   parameter.ID,
			Value:         value,
		}
		if cerr := tx.Omit("Parameter").Create(pp).Error; cerr != nil {
			return fmt.Errorf("failed to create parameter value %q: %w", name, cerr)
		}
	}

	return nil
}

// Ensure GormImportRepository implements FeedImportStore
var _ catalog.FeedImportStore = (*GormImportRepository)(nil)
