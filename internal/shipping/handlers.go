package shipping

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kitabghor/storefront-api/internal/common"
)

// Handler exposes shipping quote and shipping rate administration endpoints.
type Handler struct {
	Svc    *Service
	Logger zerolog.Logger
}

type ratePayload struct {
	Country      string           `json:"country"`
	Area         string           `json:"area" validate:"required"`
	BaseCost     decimal.Decimal  `json:"baseCost" validate:"gte=0"`
	WeightSlabs  []slabPayload    `json:"weightSlabs" validate:"omitempty,dive"`
	FreeMinOrder *decimal.Decimal `json:"freeMinOrder" validate:"omitempty,gte=0"`
	IsActive     *bool            `json:"isActive"`
	Priority     int32            `json:"priority"`
}

type slabPayload struct {
	MinWeight decimal.Decimal  `json:"minWeight" validate:"gte=0"`
	MaxWeight *decimal.Decimal `json:"maxWeight"`
	Cost      decimal.Decimal  `json:"cost" validate:"gte=0"`
}

// patchPayload distinguishes absent fields from explicit nulls for nullable columns.
type patchPayload struct {
	Country      *string                          `json:"country"`
	Area         *string                          `json:"area"`
	BaseCost     *decimal.Decimal                 `json:"baseCost"`
	WeightSlabs  common.Optional[[]slabPayload]   `json:"weightSlabs"`
	FreeMinOrder common.Optional[decimal.Decimal] `json:"freeMinOrder"`
	IsActive     *bool                            `json:"isActive"`
	Priority     *int32                           `json:"priority"`
}

type quoteRequest struct {
	Area        string          `json:"area" validate:"required"`
	WeightGrams decimal.Decimal `json:"weightGrams" validate:"gte=0"`
	Subtotal    decimal.Decimal `json:"subtotal" validate:"gte=0"`
}

// Quote resolves the shipping cost for a JSON body.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	quote, err := h.Svc.Resolve(r.Context(), req.Area, req.WeightGrams, req.Subtotal)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": quote})
}

// QuoteQuery resolves the shipping cost from query-string parameters.
func (h *Handler) QuoteQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	weight, err := common.ParseDecimal(q.Get("weight"), decimal.Zero)
	if err != nil {
		h.writeError(w, errors.Join(ErrValidation, err))
		return
	}
	subtotal, err := common.ParseDecimal(q.Get("subtotal"), decimal.Zero)
	if err != nil {
		h.writeError(w, errors.Join(ErrValidation, err))
		return
	}
	quote, err := h.Svc.Resolve(r.Context(), q.Get("area"), weight, subtotal)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": quote})
}

// AdminList returns every configured shipping rate.
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	rates, err := h.Svc.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rates})
}

// AdminGet returns a single shipping rate.
func (h *Handler) AdminGet(w http.ResponseWriter, r *http.Request) {
	id, ok := common.ParseID(chi.URLParam(r, "id"))
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid shipping rate id", nil)
		return
	}
	rate, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rate})
}

// AdminCreate stores a new shipping rate.
func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var payload ratePayload
	if err := common.DecodeJSON(r, &payload); err != nil {
		h.writeError(w, err)
		return
	}
	active := true
	if payload.IsActive != nil {
		active = *payload.IsActive
	}
	rate, err := h.Svc.Create(r.Context(), RateInput{
		Country:      payload.Country,
		Area:         payload.Area,
		BaseCost:     payload.BaseCost,
		WeightSlabs:  toSlabs(payload.WeightSlabs),
		FreeMinOrder: payload.FreeMinOrder,
		IsActive:     active,
		Priority:     payload.Priority,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": rate})
}

// AdminUpdate applies a partial update to a shipping rate.
func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := common.ParseID(chi.URLParam(r, "id"))
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid shipping rate id", nil)
		return
	}
	var payload patchPayload
	if err := common.DecodeJSON(r, &payload); err != nil {
		h.writeError(w, err)
		return
	}
	patch := RatePatch{
		Country:  payload.Country,
		Area:     payload.Area,
		BaseCost: payload.BaseCost,
		IsActive: payload.IsActive,
		Priority: payload.Priority,
	}
	if payload.WeightSlabs.Set {
		patch.SetWeightSlabs = true
		if payload.WeightSlabs.Value != nil {
			patch.WeightSlabs = toSlabs(*payload.WeightSlabs.Value)
		}
	}
	patch.ClearFreeMinOrder = payload.FreeMinOrder.Null()
	patch.FreeMinOrder = payload.FreeMinOrder.Value
	rate, err := h.Svc.Update(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rate})
}

// AdminDelete removes a shipping rate.
func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := common.ParseID(chi.URLParam(r, "id"))
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid shipping rate id", nil)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	common.NoContent(w)
}

func toSlabs(payload []slabPayload) []Slab {
	if len(payload) == 0 {
		return nil
	}
	slabs := make([]Slab, 0, len(payload))
	for _, p := range payload {
		slabs = append(slabs, Slab(p))
	}
	return slabs
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if common.WriteAppError(w, err) {
		return
	}
	switch {
	case errors.Is(err, ErrInvalidSlabs), errors.Is(err, ErrValidation):
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, ErrRateNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, ErrNoRateAvailable):
		common.JSONError(w, http.StatusNotFound, "NO_RATE_AVAILABLE", err.Error(), nil)
	default:
		h.Logger.Error().Err(err).Msg("shipping request failed")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal server error", nil)
	}
}
