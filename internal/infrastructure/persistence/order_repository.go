package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/markethub/backend/internal/domain/order"
	"github.com/markethub/backend/internal/domain/shared"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID with items and offers attached
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.withAssociations(r.db.WithContext(ctx)).
		First(&o, "orders.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByIDForUser finds the user's order by ID with items and offers
func (r *GormOrderRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.withAssociations(r.db.WithContext(ctx)).
		First(&o, "orders.id = ? AND orders.user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindBasket finds the user's basket with items and offers
func (r *GormOrderRepository) FindBasket(ctx context.Context, userID uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.withAssociations(r.db.WithContext(ctx)).
		First(&o, "orders.user_id = ? AND orders.status = ?", userID, order.StatusBasket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindPlacedByUser finds the user's non-basket orders, newest first
func (r *GormOrderRepository) FindPlacedByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	var orders []order.Order
	if err := r.withAssociations(r.db.WithContext(ctx)).
		Where("orders.user_id = ? AND orders.status <> ?", userID, order.StatusBasket).
		Order("orders.created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindForPartner finds non-basket orders containing at least one item from
// the partner's shop, distinct per order, newest first. A disabled shop
// still sees its past orders; the visibility gate only applies to the
// buyer-facing catalog.
func (r *GormOrderRepository) FindForPartner(ctx context.Context, partnerUserID uuid.UUID) ([]order.Order, error) {
	var orderIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Distinct("orders.id").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN product_infos ON product_infos.id = order_items.product_info_id").
		Joins("JOIN shops ON shops.id = product_infos.shop_id").
		Where("shops.user_id = ? AND orders.status <> ?",
			partnerUserID, order.StatusBasket).
		Pluck("orders.id", &orderIDs).Error; err != nil {
		return nil, err
	}
	if len(orderIDs) == 0 {
		return nil, nil
	}

	var orders []order.Order
	if err := r.withAssociations(r.db.WithContext(ctx)).
		Where("orders.id IN ?", orderIDs).
		Order("orders.created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save persists the order aggregate including its items. Items missing
// from the aggregate are deleted; existing lines are updated in place.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Contact").Save(o).Error; err != nil {
			return err
		}

		keep := make([]uuid.UUID, 0, len(o.Items))
		for i := range o.Items {
			keep = append(keep, o.Items[i].ID)
		}

		prune := tx.Where("order_id = ?", o.ID)
		if len(keep) > 0 {
			prune = prune.Where("id NOT IN ?", keep)
		}
		if err := prune.Delete(&order.Item{}).Error; err != nil {
			return err
		}

		for i := range o.Items {
			item := &o.Items[i]
			item.OrderID = o.ID
			if err := tx.Omit("ProductInfo").
				Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "id"}},
					DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
				}).
				Create(item).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// MarkPlaced atomically transitions the user's basket to new and binds the
// contact. The guarded update requires at least one item.
func (r *GormOrderRepository) MarkPlaced(ctx context.Context, userID, orderID, contactID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("id = ? AND user_id = ? AND status = ?", orderID, userID, order.StatusBasket).
		Where("EXISTS (SELECT 1 FROM order_items WHERE order_items.order_id = orders.id)").
		Updates(map[string]interface{}{
			"status":     order.StatusNew,
			"contact_id": contactID,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormOrderRepository) withAssociations(db *gorm.DB) *gorm.DB {
	return db.Model(&order.Order{}).
		Preload("Items").
		Preload("Items.ProductInfo").
		Preload("Items.ProductInfo.Product").
		Preload("Items.ProductInfo.Product.Category").
		Preload("Items.ProductInfo.Shop").
		Preload("Items.ProductInfo.Parameters").
		Preload("Items.ProductInfo.Parameters.Parameter").
		Preload("Contact")
}

// Ensure GormOrderRepository implements Repository
var _ order.Repository = (*GormOrderRepository)(nil)
