package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/catalog"
)

// ShopResponse represents a shop in API responses
type ShopResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	URL   *string   `json:"url,omitempty"`
	State bool      `json:"state"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID         uuid.UUID `json:"id"`
	ExternalID int       `json:"external_id"`
	Name       string    `json:"name"`
}

// ListingResponse is one shop's offer with its product card attached
type ListingResponse struct {
	ID         uuid.UUID         `json:"id"`
	Model      string            `json:"model"`
	ExternalID int               `json:"external_id"`
	Product    ProductResponse   `json:"product"`
	Shop       ShopResponse      `json:"shop"`
	Quantity   int               `json:"quantity"`
	Price      decimal.Decimal   `json:"price"`
	PriceRRC   decimal.Decimal   `json:"price_rrc"`
	Parameters map[string]string `json:"parameters"`
}

// ProductResponse is the shop-independent product card
type ProductResponse struct {
	ID       uuid.UUID         `json:"id"`
	Name     string            `json:"name"`
	Category *CategoryResponse `json:"category,omitempty"`
}

// ListingFilter narrows the catalog search
type ListingFilter struct {
	ShopID     *uuid.UUID `form:"shop_id"`
	CategoryID *uuid.UUID `form:"category_id"`
}

// ToShopResponse converts a shop to its response representation
func ToShopResponse(shop *catalog.Shop) ShopResponse {
	return ShopResponse{
		ID:    shop.ID,
		Name:  shop.Name,
		URL:   shop.URL,
		State: shop.State,
	}
}

// ToCategoryResponse converts a category to its response representation
func ToCategoryResponse(category *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:         category.ID,
		ExternalID: category.ExternalID,
		Name:       category.Name,
	}
}

// ToListingResponse converts an offer with preloaded associations
func ToListingResponse(info *catalog.ProductInfo) ListingResponse {
	listing := ListingResponse{
		ID:         info.ID,
		Model:      info.Model,
		ExternalID: info.ExternalID,
		Quantity:   info.Quantity,
		Price:      info.Price,
		PriceRRC:   info.PriceRRC,
		Parameters: make(map[string]string, len(info.Parameters)),
	}

	if info.Product != nil {
		listing.Product = ProductResponse{
			ID:   info.Product.ID,
			Name: info.Product.Name,
		}
		if info.Product.Category != nil {
			category := ToCategoryResponse(info.Product.Category)
			listing.Product.Category = &category
		}
	}
	if info.Shop != nil {
		listing.Shop = ToShopResponse(info.Shop)
	}
	for _, p := range info.Parameters {
		if p.Parameter != nil {
			listing.Parameters[p.Parameter.Name] = p.Value
		}
	}

	return listing
}
