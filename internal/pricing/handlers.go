package pricing

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kitabghor/storefront-api/internal/common"
	"github.com/kitabghor/storefront-api/internal/coupon"
	"github.com/kitabghor/storefront-api/internal/shipping"
)

// Handler exposes the order quote endpoint.
type Handler struct {
	Svc    *Service
	Logger zerolog.Logger
}

type quoteRequest struct {
	Area        string             `json:"area" validate:"required"`
	WeightGrams decimal.Decimal    `json:"weightGrams" validate:"gte=0"`
	Subtotal    decimal.Decimal    `json:"subtotal" validate:"gte=0"`
	CouponCode  string             `json:"couponCode"`
	Items       []quoteLineRequest `json:"items" validate:"omitempty,dive"`
}

type quoteLineRequest struct {
	VariantID int64 `json:"variantId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// Quote prices an order including coupon discount and shipping.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	in := QuoteInput{
		Area:        req.Area,
		WeightGrams: req.WeightGrams,
		Subtotal:    req.Subtotal,
		CouponCode:  req.CouponCode,
	}
	for _, line := range req.Items {
		in.Items = append(in.Items, LineItem{VariantID: line.VariantID, Qty: line.Quantity})
	}
	quote, err := h.Svc.Quote(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": quote})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if common.WriteAppError(w, err) {
		return
	}
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, shipping.ErrValidation), errors.Is(err, coupon.ErrValidation):
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, ErrVariantNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, shipping.ErrNoRateAvailable):
		common.JSONError(w, http.StatusNotFound, "NO_RATE_AVAILABLE", err.Error(), nil)
	default:
		h.Logger.Error().Err(err).Msg("pricing quote failed")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal server error", nil)
	}
}
