package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kuoklimg/voucher-pool/internal/helpers"
	"github.com/kuoklimg/voucher-pool/internal/service"
)

type UpdateDiscountRequest struct {
	DiscountPercentage *float64 `json:"discount_percentage" binding:"required"`
}

type OfferHandler struct {
	pool *service.VoucherPool
}

func NewOfferHandler(pool *service.VoucherPool) *OfferHandler {
	return &OfferHandler{pool: pool}
}

func (h *OfferHandler) UpdateDiscount(c *gin.Context) {
	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid offer id.")
		return
	}

	var req UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Discount percentage is required.")
		return
	}

	offer, err := h.pool.UpdateDiscount(c.Request.Context(), offerID, *req.DiscountPercentage)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, offer)
}
