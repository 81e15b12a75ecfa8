package inventory

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kitabghor/storefront-api/internal/common"
)

// Handler exposes stock ledger endpoints.
type Handler struct {
	Ledger *Ledger
	Logger zerolog.Logger
}

type setPayload struct {
	WarehouseID      int64            `json:"warehouseId" validate:"required,gt=0"`
	ProductVariantID int64            `json:"productVariantId" validate:"required,gt=0"`
	Quantity         *decimal.Decimal `json:"quantity"`
	Reason           string           `json:"reason" validate:"max=200"`
}

type reservationPayload struct {
	WarehouseID      int64            `json:"warehouseId" validate:"required,gt=0"`
	ProductVariantID int64            `json:"productVariantId" validate:"required,gt=0"`
	Quantity         *decimal.Decimal `json:"quantity"`
}

// SetStockLevel handles POST /api/stock-levels.
func (h *Handler) SetStockLevel(w http.ResponseWriter, r *http.Request) {
	var payload setPayload
	if err := common.DecodeJSON(r, &payload); err != nil {
		h.writeError(w, err)
		return
	}
	qty, err := wholeQuantity(payload.Quantity)
	if err != nil {
		h.writeError(w, err)
		return
	}
	level, err := h.Ledger.SetStockLevel(r.Context(), SetInput{
		VariantID:   payload.ProductVariantID,
		WarehouseID: payload.WarehouseID,
		Quantity:    qty,
		Reason:      payload.Reason,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": level})
}

// DeleteStockLevel handles DELETE /api/stock-levels/{id}.
func (h *Handler) DeleteStockLevel(w http.ResponseWriter, r *http.Request) {
	id, ok := common.ParseID(chi.URLParam(r, "id"))
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid stock level id", nil)
		return
	}
	if err := h.Ledger.DeleteStockLevel(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	common.NoContent(w)
}

// Reserve handles POST /api/stock-levels/reserve.
func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	h.reservation(w, r, h.Ledger.Reserve)
}

// Release handles POST /api/stock-levels/release.
func (h *Handler) Release(w http.ResponseWriter, r *http.Request) {
	h.reservation(w, r, h.Ledger.Release)
}

func (h *Handler) reservation(w http.ResponseWriter, r *http.Request, apply func(context.Context, ReservationInput) (StockLevel, error)) {
	var payload reservationPayload
	if err := common.DecodeJSON(r, &payload); err != nil {
		h.writeError(w, err)
		return
	}
	qty, err := wholeQuantity(payload.Quantity)
	if err != nil {
		h.writeError(w, err)
		return
	}
	level, err := apply(r.Context(), ReservationInput{
		VariantID:   payload.ProductVariantID,
		WarehouseID: payload.WarehouseID,
		Quantity:    qty,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": level})
}

// Available handles GET /api/stock-levels/available?variantId=&warehouseId=.
func (h *Handler) Available(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	variantID, ok := common.ParseID(q.Get("variantId"))
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "variantId must be a positive integer", nil)
		return
	}
	warehouseID, ok := common.ParseID(q.Get("warehouseId"))
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "warehouseId must be a positive integer", nil)
		return
	}
	avail, err := h.Ledger.Available(r.Context(), variantID, warehouseID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{
		"productVariantId": variantID,
		"warehouseId":      warehouseID,
		"available":        avail,
	}})
}

// StockLevels handles GET /api/stock-levels?productId=.
func (h *Handler) StockLevels(w http.ResponseWriter, r *http.Request) {
	productID, ok := common.ParseID(r.URL.Query().Get("productId"))
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "productId must be a positive integer", nil)
		return
	}
	rows, err := h.Ledger.ListStockLevels(r.Context(), productID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rows})
}

// Logs handles GET /api/inventory-logs?productId=&limit=.
func (h *Handler) Logs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	productID, ok := common.ParseID(q.Get("productId"))
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "productId must be a positive integer", nil)
		return
	}
	entries, err := h.Ledger.ListLogs(r.Context(), productID, common.AtoiDefault(q.Get("limit"), defaultLogLimit))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": entries})
}

func wholeQuantity(v *decimal.Decimal) (int64, error) {
	if v == nil || !v.IsInteger() || v.IsNegative() || v.GreaterThan(decimal.NewFromInt(maxQuantity)) {
		return 0, ErrInvalidQuantity
	}
	return v.IntPart(), nil
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if common.WriteAppError(w, err) {
		return
	}
	switch {
	case errors.Is(err, ErrInvalidQuantity):
		common.JSONError(w, http.StatusBadRequest, "INVALID_QUANTITY", err.Error(), nil)
	case errors.Is(err, ErrStockLevelNotFound), errors.Is(err, ErrVariantNotFound), errors.Is(err, ErrWarehouseNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, ErrInsufficientStock):
		common.JSONError(w, http.StatusConflict, "INSUFFICIENT_STOCK", err.Error(), nil)
	default:
		h.Logger.Error().Err(err).Msg("inventory request failed")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal server error", nil)
	}
}
