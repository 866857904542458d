package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/markethub/backend/internal/application/importer"
	apppartner "github.com/markethub/backend/internal/application/partner"
	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/infrastructure/worker"
	"github.com/markethub/backend/internal/interfaces/http/middleware"
)

// PartnerHandler is the shop owner's surface: feed updates, shop
// visibility and the partner's order view
type PartnerHandler struct {
	BaseHandler
	partnerService *apppartner.PartnerService
	importQueue    *importer.ImportQueue
}

// NewPartnerHandler creates a new partner handler
func NewPartnerHandler(partnerService *apppartner.PartnerService, importQueue *importer.ImportQueue) *PartnerHandler {
	return &PartnerHandler{
		partnerService: partnerService,
		importQueue:    importQueue,
	}
}

// requirePartner rejects non-shop accounts. Returns false after writing
// the response when the caller must stop.
func (h *PartnerHandler) requirePartner(c *gin.Context) bool {
	if middleware.GetJWTUserType(c) != string(identity.UserTypeShop) {
		h.Forbidden(c, "Only shop accounts can use the partner API")
		return false
	}
	return true
}

// UpdateFeed godoc
// @Summary      Update the partner's price list
// @Description  Queues a catalog import from a feed URL or an uploaded YAML file
// @Tags         partner
// @Accept       json
// @Produce      json
// @Success      202 {object} dto.Response
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /partner/update [post]
func (h *PartnerHandler) UpdateFeed(c *gin.Context) {
	if !h.requirePartner(c) {
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	email := middleware.GetJWTEmail(c)

	// Multipart upload takes precedence over a feed URL
	if file, err := c.FormFile("file"); err == nil {
		src, err := file.Open()
		if err != nil {
			h.BadRequest(c, "Cannot read uploaded file")
			return
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			h.BadRequest(c, "Cannot read uploaded file")
			return
		}

		h.enqueue(c, h.importQueue.EnqueueUpload(userID, email, data))
		return
	}

	var req importer.UpdateFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Provide a feed url or upload a file")
		return
	}

	h.enqueue(c, h.importQueue.EnqueueURL(userID, email, req.URL))
}

func (h *PartnerHandler) enqueue(c *gin.Context, err error) {
	if err != nil {
		if errors.Is(err, worker.ErrQueueFull) {
			h.ServiceUnavailable(c, "Import queue is full, try again later")
			return
		}
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, gin.H{"status": "queued"})
}

// GetState returns the partner shop's visibility
func (h *PartnerHandler) GetState(c *gin.Context) {
	if !h.requirePartner(c) {
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	state, err := h.partnerService.GetState(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, state)
}

// SetState toggles the partner shop's visibility
func (h *PartnerHandler) SetState(c *gin.Context) {
	if !h.requirePartner(c) {
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req apppartner.SetStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	state, err := h.partnerService.SetState(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, state)
}

// ListOrders returns placed orders containing the partner's goods
func (h *PartnerHandler) ListOrders(c *gin.Context) {
	if !h.requirePartner(c) {
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := h.partnerService.ListOrders(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}
