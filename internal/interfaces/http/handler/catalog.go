package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcatalog "github.com/markethub/backend/internal/application/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

// CatalogHandler serves the public catalog reads
type CatalogHandler struct {
	BaseHandler
	catalogService *appcatalog.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *appcatalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ListShops godoc
// @Summary      List active shops
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalog.ShopResponse}
// @Router       /shops [get]
func (h *CatalogHandler) ListShops(c *gin.Context) {
	shops, err := h.catalogService.ListShops(c.Request.Context(), shared.DefaultFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shops)
}

// ListCategories godoc
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalog.CategoryResponse}
// @Router       /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context(), shared.DefaultFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// ListProducts godoc
// @Summary      Search catalog listings
// @Description  Lists offers of active shops, optionally narrowed by shop or category
// @Tags         catalog
// @Produce      json
// @Param        shop_id     query string false "Shop filter"
// @Param        category_id query string false "Category filter"
// @Success      200 {object} dto.Response{data=[]catalog.ListingResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var filter appcatalog.ListingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	listings, err := h.catalogService.SearchListings(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, listings)
}

// GetProduct returns one listing with its parameters
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing id")
		return
	}

	listing, err := h.catalogService.GetListing(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, listing)
}
