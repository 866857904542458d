package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// ShopRepository defines the interface for shop persistence
type ShopRepository interface {
	// FindByID finds a shop by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)

	// FindByName finds a shop by its unique name
	FindByName(ctx context.Context, name string) (*Shop, error)

	// FindByUserID finds the shop owned by the given partner user
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Shop, error)

	// FindActive finds all shops with state=true
	FindActive(ctx context.Context, filter shared.Filter) ([]Shop, error)

	// Save creates or updates a shop
	Save(ctx context.Context, shop *Shop) error
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByExternalID finds a category by its feed-supplied id
	FindByExternalID(ctx context.Context, externalID int) (*Category, error)

	// FindAll finds all categories
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error
}

// SearchSpec narrows a catalog listing search. Nil fields do not filter.
type SearchSpec struct {
	ShopID     *uuid.UUID
	CategoryID *uuid.UUID
}

// ProductInfoRepository defines the interface for offer persistence and
// the buyer-facing catalog search
type ProductInfoRepository interface {
	// FindByID finds an offer by its ID with product, shop and parameters
	FindByID(ctx context.Context, id uuid.UUID) (*ProductInfo, error)

	// FindByIDs finds multiple offers by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ProductInfo, error)

	// Search finds offers from active shops matching the filter, one row per
	// offer, with product, category, shop and parameters attached
	Search(ctx context.Context, spec SearchSpec) ([]ProductInfo, error)
}

// ImportStats summarizes a committed feed import
type ImportStats struct {
	Categories int
	Goods      int
}

// FeedImportStore replaces a shop's catalog slice from a validated feed
// document in a single transaction: categories are upserted and attached,
// every existing offer of the shop is deleted, then the document's goods
// are recreated.
type FeedImportStore interface {
	ImportFeed(ctx context.Context, shop *Shop, doc *FeedDocument) (*ImportStats, error)
}
