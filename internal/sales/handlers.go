package sales

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jackielin7778-cloud/pos/internal/common"
)

// Getter loads a single sale with its items.
type Getter interface {
	GetSale(ctx context.Context, id uuid.UUID) (Sale, []SaleItem, error)
}

// Handler exposes the sales reporting endpoints.
type Handler struct {
	Svc   *Service
	Sales Getter
}

// List handles GET /api/v1/sales with optional from, to, and memberId
// filters. from is inclusive and to exclusive, both in YYYY-MM-DD form.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "sales service not configured", nil)
		return
	}
	var params ListParams
	q := r.URL.Query()
	if raw := q.Get("from"); raw != "" {
		ts, err := time.Parse("2006-01-02", raw)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid from date", nil)
			return
		}
		params.From = &ts
	}
	if raw := q.Get("to"); raw != "" {
		ts, err := time.Parse("2006-01-02", raw)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid to date", nil)
			return
		}
		params.To = &ts
	}
	if raw := q.Get("memberId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid member id", nil)
			return
		}
		params.MemberID = &id
	}
	page, perPage := common.ParsePagination(r, h.Svc.DefaultLimit)
	params.Limit = perPage
	params.Offset = (page - 1) * perPage
	rows, err := h.Svc.List(r.Context(), params)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": rows,
		"meta": common.Pagination{Page: page, PerPage: perPage, TotalItems: len(rows)},
	})
}

// Get handles GET /api/v1/sales/{id} returning the sale and its item
// snapshots.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Sales == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "sales store not configured", nil)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid sale id", nil)
		return
	}
	sale, items, err := h.Sales.GetSale(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "sale not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"sale": sale, "items": items}})
}

// Daily handles GET /api/v1/sales/daily.
func (h *Handler) Daily(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "sales service not configured", nil)
		return
	}
	totals, err := h.Svc.Daily(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": totals})
}
