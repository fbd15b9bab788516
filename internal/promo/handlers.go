package promo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jackielin7778-cloud/pos/internal/common"
)

// Admin defines the store operations the promotion endpoints need.
type Admin interface {
	FindActive(ctx context.Context, productID *uuid.UUID) ([]Promotion, error)
	List(ctx context.Context) ([]Promotion, error)
	Create(ctx context.Context, p Promotion) (Promotion, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Handler exposes promotion administration endpoints.
type Handler struct {
	Store Admin
}

type createRequest struct {
	Name      string     `json:"name" validate:"required"`
	Kind      string     `json:"kind" validate:"required,oneof=percent fixed bogo second_discount amount"`
	Value     float64    `json:"value" validate:"gte=0"`
	ProductID *string    `json:"productId"`
	MinQty    int        `json:"minQty" validate:"gte=0"`
	MinAmount float64    `json:"minAmount" validate:"gte=0"`
	ValidFrom *time.Time `json:"validFrom"`
	ValidTo   *time.Time `json:"validTo"`
}

// List handles GET /api/v1/promotions. With a productId query parameter it
// returns only the active promotions applicable to that product.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "promotion store not configured", nil)
		return
	}
	if raw := r.URL.Query().Get("productId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid product id", nil)
			return
		}
		promos, err := h.Store.FindActive(r.Context(), &id)
		if err != nil {
			h.writeError(w, err)
			return
		}
		common.JSON(w, http.StatusOK, map[string]any{"data": promos})
		return
	}
	promos, err := h.Store.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": promos})
}

// Create handles POST /api/v1/promotions.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "promotion store not configured", nil)
		return
	}
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid JSON payload", nil)
		return
	}
	if err := common.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}
	p := Promotion{
		Name:      req.Name,
		Kind:      Kind(req.Kind),
		Value:     req.Value,
		MinQty:    req.MinQty,
		MinAmount: req.MinAmount,
		ValidFrom: req.ValidFrom,
		ValidTo:   req.ValidTo,
		Active:    true,
	}
	if req.ProductID != nil && *req.ProductID != "" {
		id, err := uuid.Parse(*req.ProductID)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid product id", nil)
			return
		}
		p.ProductID = &id
	}
	created, err := h.Store.Create(r.Context(), p)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": created})
}

// Deactivate handles POST /api/v1/promotions/{id}/deactivate.
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.mutateByID(w, r, func(ctx context.Context, id uuid.UUID) error {
		return h.Store.Deactivate(ctx, id)
	})
}

// Delete handles DELETE /api/v1/promotions/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	h.mutateByID(w, r, func(ctx context.Context, id uuid.UUID) error {
		return h.Store.Delete(ctx, id)
	})
}

func (h *Handler) mutateByID(w http.ResponseWriter, r *http.Request, fn func(context.Context, uuid.UUID) error) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "promotion store not configured", nil)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid promotion id", nil)
		return
	}
	if err := fn(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, common.ErrNotFound) {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "promotion not found", nil)
		return
	}
	common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}
