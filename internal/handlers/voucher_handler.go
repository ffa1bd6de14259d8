package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kuoklimg/voucher-pool/internal/helpers"
	"github.com/kuoklimg/voucher-pool/internal/service"
)

const dateLayout = "2006-01-02"

type GenerateVoucherRequest struct {
	Email          string `json:"email" binding:"required"`
	SpecialOffer   string `json:"special_offer" binding:"required"`
	ExpirationDate string `json:"expiration_date" binding:"required"`
}

type ValidateVoucherRequest struct {
	Code  string `json:"code" binding:"required"`
	Email string `json:"email" binding:"required"`
}

type ValidateVoucherResponse struct {
	Discount       float64   `json:"discount"`
	OfferName      string    `json:"offer_name"`
	ExpirationDate string    `json:"expiration_date"`
	UsageDate      time.Time `json:"usage_date"`
}

type VoucherHandler struct {
	pool *service.VoucherPool
}

func NewVoucherHandler(pool *service.VoucherPool) *VoucherHandler {
	return &VoucherHandler{pool: pool}
}

func (h *VoucherHandler) Generate(c *gin.Context) {
	var req GenerateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	expirationDate, err := time.Parse(dateLayout, req.ExpirationDate)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid expiration date. Use YYYY-MM-DD.")
		return
	}

	voucher, err := h.pool.Generate(c.Request.Context(), req.Email, req.SpecialOffer, expirationDate)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code": voucher.Code,
	})
}

func (h *VoucherHandler) Validate(c *gin.Context) {
	var req ValidateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Code and email are required.")
		return
	}

	redemption, err := h.pool.Validate(c.Request.Context(), req.Code, req.Email)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ValidateVoucherResponse{
		Discount:       redemption.Discount,
		OfferName:      redemption.OfferName,
		ExpirationDate: redemption.ExpirationDate.Format(dateLayout),
		UsageDate:      redemption.UsageDate,
	})
}

func (h *VoucherHandler) ListValid(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Email is required.")
		return
	}

	vouchers, err := h.pool.ListValid(c.Request.Context(), email)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vouchers": vouchers,
	})
}

func (h *VoucherHandler) Stats(c *gin.Context) {
	stats, err := h.pool.Stats(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_vouchers":   stats.TotalVouchers,
		"used_vouchers":    stats.UsedVouchers,
		"unused_vouchers":  stats.UnusedVouchers,
		"usage_percentage": stats.UsagePercentage,
	})
}

// respondWithServiceError maps domain failures to client errors; anything else
// is a server fault.
func respondWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecipientNotFound),
		errors.Is(err, service.ErrSpecialOfferNotFound),
		errors.Is(err, service.ErrInvalidVoucherCode),
		errors.Is(err, service.ErrInvalidRecipientEmail),
		errors.Is(err, service.ErrVoucherAlreadyUsed),
		errors.Is(err, service.ErrVoucherExpired):
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrCodeSpaceExhausted):
		helpers.RespondWithError(c, http.StatusInternalServerError, err.Error())
	default:
		helpers.RespondWithError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}
