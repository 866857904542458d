package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

// CatalogService serves the buyer-facing catalog reads
type CatalogService struct {
	shopRepo     catalog.ShopRepository
	categoryRepo catalog.CategoryRepository
	infoRepo     catalog.ProductInfoRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	shopRepo catalog.ShopRepository,
	categoryRepo catalog.CategoryRepository,
	infoRepo catalog.ProductInfoRepository,
) *CatalogService {
	return &CatalogService{
		shopRepo:     shopRepo,
		categoryRepo: categoryRepo,
		infoRepo:     infoRepo,
	}
}

// ListShops lists the active shops
func (s *CatalogService) ListShops(ctx context.Context, filter shared.Filter) ([]ShopResponse, error) {
	shops, err := s.shopRepo.FindActive(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ShopResponse, 0, len(shops))
	for i := range shops {
		responses = append(responses, ToShopResponse(&shops[i]))
	}
	return responses, nil
}

// ListCategories lists all categories
func (s *CatalogService) ListCategories(ctx context.Context, filter shared.Filter) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, ToCategoryResponse(&categories[i]))
	}
	return responses, nil
}

// SearchListings lists offers from active shops, optionally narrowed by
// shop and category. Both filters compose with AND.
func (s *CatalogService) SearchListings(ctx context.Context, filter ListingFilter) ([]ListingResponse, error) {
	infos, err := s.infoRepo.Search(ctx, catalog.SearchSpec{
		ShopID:     filter.ShopID,
		CategoryID: filter.CategoryID,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]ListingResponse, 0, len(infos))
	for i := range infos {
		responses = append(responses, ToListingResponse(&infos[i]))
	}
	return responses, nil
}

// GetListing returns one offer by ID
func (s *CatalogService) GetListing(ctx context.Context, id uuid.UUID) (*ListingResponse, error) {
	info, err := s.infoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToListingResponse(info)
	return &response, nil
}
