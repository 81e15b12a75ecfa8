package coupon

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kitabghor/storefront-api/internal/common"
)

// Handler exposes coupon validation and administration endpoints.
type Handler struct {
	Svc    *Service
	Logger zerolog.Logger
}

type validateRequest struct {
	Code     string          `json:"code" validate:"required"`
	Subtotal decimal.Decimal `json:"subtotal" validate:"gte=0"`
}

type couponPayload struct {
	Code          string           `json:"code" validate:"required"`
	DiscountType  string           `json:"discountType" validate:"required,oneof=percentage fixed"`
	DiscountValue decimal.Decimal  `json:"discountValue" validate:"gt=0"`
	MinOrderValue decimal.Decimal  `json:"minOrderValue" validate:"gte=0"`
	MaxDiscount   *decimal.Decimal `json:"maxDiscount" validate:"omitempty,gte=0"`
	UsageLimit    *int32           `json:"usageLimit" validate:"omitempty,gte=0"`
	IsValid       *bool            `json:"isValid"`
	ExpiresAt     *time.Time       `json:"expiresAt"`
}

type couponPatchPayload struct {
	Code          *string                          `json:"code"`
	DiscountType  *string                          `json:"discountType" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue *decimal.Decimal                 `json:"discountValue"`
	MinOrderValue *decimal.Decimal                 `json:"minOrderValue"`
	MaxDiscount   common.Optional[decimal.Decimal] `json:"maxDiscount"`
	UsageLimit    common.Optional[int32]           `json:"usageLimit"`
	IsValid       *bool                            `json:"isValid"`
	ExpiresAt     common.Optional[time.Time]       `json:"expiresAt"`
}

// Validate applies a coupon code to a subtotal and reports the discount.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	result, err := h.Svc.Apply(r.Context(), req.Code, req.Subtotal)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"coupon":  result.Coupon,
	})
}

// AdminList returns all coupons.
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.Svc.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": coupons})
}

// AdminCreate inserts a new coupon.
func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var payload couponPayload
	if err := common.DecodeJSON(r, &payload); err != nil {
		h.writeError(w, err)
		return
	}
	valid := true
	if payload.IsValid != nil {
		valid = *payload.IsValid
	}
	created, err := h.Svc.Create(r.Context(), Input{
		Code:          payload.Code,
		DiscountType:  payload.DiscountType,
		DiscountValue: payload.DiscountValue,
		MinOrderValue: payload.MinOrderValue,
		MaxDiscount:   payload.MaxDiscount,
		UsageLimit:    payload.UsageLimit,
		IsValid:       valid,
		ExpiresAt:     payload.ExpiresAt,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": created})
}

// AdminUpdate applies a partial update to a coupon.
func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := common.ParseID(chi.URLParam(r, "id"))
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid coupon id", nil)
		return
	}
	var payload couponPatchPayload
	if err := common.DecodeJSON(r, &payload); err != nil {
		h.writeError(w, err)
		return
	}
	updated, err := h.Svc.Update(r.Context(), id, Patch{
		Code:             payload.Code,
		DiscountType:     payload.DiscountType,
		DiscountValue:    payload.DiscountValue,
		MinOrderValue:    payload.MinOrderValue,
		MaxDiscount:      payload.MaxDiscount.Value,
		ClearMaxDiscount: payload.MaxDiscount.Null(),
		UsageLimit:       payload.UsageLimit.Value,
		ClearUsageLimit:  payload.UsageLimit.Null(),
		IsValid:          payload.IsValid,
		ExpiresAt:        payload.ExpiresAt.Value,
		ClearExpiresAt:   payload.ExpiresAt.Null(),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": updated})
}

// AdminDelete removes a coupon.
func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := common.ParseID(chi.URLParam(r, "id"))
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid coupon id", nil)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	common.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if common.WriteAppError(w, err) {
		return
	}
	switch {
	case isRejection(err):
		code, _ := ErrorCode(err)
		common.JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"error":   common.ErrorBody{Code: code, Message: err.Error()},
		})
	case errors.Is(err, ErrValidation):
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, ErrCouponNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, ErrDuplicateCode):
		common.JSONError(w, http.StatusConflict, "CONFLICT", err.Error(), nil)
	default:
		h.Logger.Error().Err(err).Msg("coupon request failed")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal server error", nil)
	}
}

func isRejection(err error) bool {
	_, ok := ErrorCode(err)
	return ok
}

// ErrorCode maps a coupon rejection to its stable API code; ok is false for other errors.
func ErrorCode(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrInvalidCoupon):
		return "INVALID_COUPON", true
	case errors.Is(err, ErrCouponExpired):
		return "COUPON_EXPIRED", true
	case errors.Is(err, ErrMinimumNotMet):
		return "MINIMUM_NOT_MET", true
	}
	return "", false
}
