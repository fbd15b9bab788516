package member

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jackielin7778-cloud/pos/internal/common"
)

// Handler exposes member registration and lookup endpoints.
type Handler struct {
	Store *Store
}

type createRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

// Create handles POST /api/v1/members.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "member store not configured", nil)
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
	var email *string
	if req.Email != "" {
		email = &req.Email
	}
	m, err := h.Store.Create(r.Context(), req.Name, req.Phone, email)
	if err != nil {
		if errors.Is(err, ErrPhoneTaken) {
			common.JSONError(w, http.StatusConflict, "CONFLICT", "phone number already registered", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": m})
}

// FindByPhone handles GET /api/v1/members/phone/{phone}.
func (h *Handler) FindByPhone(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "member store not configured", nil)
		return
	}
	phone := chi.URLParam(r, "phone")
	m, err := h.Store.FindByPhone(r.Context(), phone)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "member not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": m})
}

// List handles GET /api/v1/members?q=searchText.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "member store not configured", nil)
		return
	}
	members, err := h.Store.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": members})
}
