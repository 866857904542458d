package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

// GormProductInfoRepository implements catalog.ProductInfoRepository using GORM
type GormProductInfoRepository struct {
	db *gorm.DB
}

// NewGormProductInfoRepository creates a new GormProductInfoRepository
func NewGormProductInfoRepository(db *gorm.DB) *GormProductInfoRepository {
	return &GormProductInfoRepository{db: db}
}

// FindByID finds an offer by its ID with product, shop and parameters
func (r *GormProductInfoRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductInfo, error) {
	var info catalog.ProductInfo
	if err := r.withAssociations(r.db.WithContext(ctx)).
		First(&info, "product_infos.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &info, nil
}

// FindByIDs finds multiple offers by their IDs
func (r *GormProductInfoRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.ProductInfo, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var infos []catalog.ProductInfo
	if err := r.withAssociations(r.db.WithContext(ctx)).
		Where("product_infos.id IN ?", ids).
		Find(&infos).Error; err != nil {
		return nil, err
	}
	return infos, nil
}

// Search finds live offers from active shops matching the filter; archived
// offers kept for order history never surface here. Filters compose with
// AND; each returned row is one offer with its product, category, shop and
// parameters.
func (r *GormProductInfoRepository) Search(ctx context.Context, spec catalog.SearchSpec) ([]catalog.ProductInfo, error) {
	query := r.withAssociations(r.db.WithContext(ctx)).
		Joins("JOIN shops ON shops.id = product_infos.shop_id").
		Where("shops.state = ? AND product_infos.archived = ?", true, false)

	if spec.ShopID != nil {
		query = query.Where("product_infos.shop_id = ?", *spec.ShopID)
	}
	if spec.CategoryID != nil {
		query = query.
			Joins("JOIN products ON products.id = product_infos.product_id").
			Where("products.category_id = ?", *spec.CategoryID)
	}

	var infos []catalog.ProductInfo
	if err := query.Distinct("product_infos.*").Find(&infos).Error; err != nil {
		return nil, err
	}
	return infos, nil
}

func (r *GormProductInfoRepository) withAssociations(db *gorm.DB) *gorm.DB {
	return db.Model(&catalog.ProductInfo{}).
		Preload("Product").
		Preload("Product.Category").
		Preload("Shop").
		Preload("Parameters").
		Preload("Parameters.Parameter")
}

// Ensure GormProductInfoRepository implements ProductInfoRepository
var _ catalog.ProductInfoRepository = (*GormProductInfoRepository)(nil)
