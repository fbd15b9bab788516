package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/jackielin7778-cloud/pos/internal/cart"
	"github.com/jackielin7778-cloud/pos/internal/catalog"
	"github.com/jackielin7778-cloud/pos/internal/common"
	"github.com/jackielin7778-cloud/pos/internal/member"
	"github.com/jackielin7778-cloud/pos/internal/promo"
	"github.com/jackielin7778-cloud/pos/internal/sales"
)

// ProductGetter resolves products referenced by checkout lines.
type ProductGetter interface {
	Get(ctx context.Context, id uuid.UUID) (catalog.Product, error)
}

// PromotionLoader resolves active promotions per product for the evaluator.
type PromotionLoader interface {
	ActiveForProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]promo.Promotion, error)
}

// MemberFinder looks up loyalty members by phone.
type MemberFinder interface {
	FindByPhone(ctx context.Context, phone string) (member.Member, error)
}

// Handler exposes POST /api/v1/checkout. Each request carries the whole
// session cart; the handler captures current unit prices, loads the active
// promotions for the referenced products, and hands everything to the
// orchestrator in one call.
type Handler struct {
	Svc     *Service
	Catalog ProductGetter
	Promos  PromotionLoader
	Members MemberFinder
}

type lineRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

type checkoutRequest struct {
	Lines          []lineRequest `json:"lines" validate:"required,min=1,dive"`
	ManualDiscount float64       `json:"manualDiscount" validate:"gte=0"`
	MemberID       *string       `json:"memberId"`
	MemberPhone    *string       `json:"memberPhone"`
	Cash           float64       `json:"cash" validate:"gte=0"`
	PaymentMethod  string        `json:"paymentMethod"`
}

type checkoutResponse struct {
	Sale sales.Sale `json:"sale"`
}

// Checkout handles POST /api/v1/checkout.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil || h.Catalog == nil || h.Promos == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout not configured", nil)
		return
	}
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid JSON payload", nil)
		return
	}
	if err := common.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	ctx := r.Context()
	sessionCart := cart.New()
	productIDs := make([]uuid.UUID, 0, len(req.Lines))
	for _, line := range req.Lines {
		id, err := uuid.Parse(line.ProductID)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid product id", nil)
			return
		}
		product, err := h.Catalog.Get(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", map[string]string{"productId": line.ProductID})
				return
			}
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
			return
		}
		sessionCart.AddLine(product.ID, product.Name, product.PriceIncTax, line.Quantity)
		productIDs = append(productIDs, product.ID)
	}

	promotions, err := h.Promos.ActiveForProducts(ctx, productIDs)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
		return
	}

	memberID, ok := h.resolveMember(ctx, w, req)
	if !ok {
		return
	}

	sale, err := h.Svc.Checkout(ctx, Input{
		Cart:           sessionCart,
		ManualDiscount: req.ManualDiscount,
		Promotions:     promotions,
		MemberID:       memberID,
		Cash:           req.Cash,
		PaymentMethod:  req.PaymentMethod,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": checkoutResponse{Sale: sale}})
}

func (h *Handler) resolveMember(ctx context.Context, w http.ResponseWriter, req checkoutRequest) (*uuid.UUID, bool) {
	if req.MemberID != nil && *req.MemberID != "" {
		id, err := uuid.Parse(*req.MemberID)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid member id", nil)
			return nil, false
		}
		return &id, true
	}
	if req.MemberPhone != nil && *req.MemberPhone != "" {
		if h.Members == nil {
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "member lookup not configured", nil)
			return nil, false
		}
		m, err := h.Members.FindByPhone(ctx, *req.MemberPhone)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "member not found", nil)
				return nil, false
			}
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
			return nil, false
		}
		return &m.ID, true
	}
	return nil, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInsufficientPayment):
		common.JSONError(w, http.StatusUnprocessableEntity, "INSUFFICIENT_PAYMENT", err.Error(), nil)
	case errors.Is(err, sales.ErrStockUnavailable):
		common.JSONError(w, http.StatusConflict, "STOCK_UNAVAILABLE", err.Error(), nil)
	case errors.Is(err, sales.ErrMemberNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "member not found", nil)
	case errors.Is(err, common.ErrValidation):
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}
