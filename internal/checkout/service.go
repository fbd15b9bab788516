package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jackielin7778-cloud/pos/internal/cart"
	"github.com/jackielin7778-cloud/pos/internal/common"
	"github.com/jackielin7778-cloud/pos/internal/obs"
	"github.com/jackielin7778-cloud/pos/internal/promo"
	"github.com/jackielin7778-cloud/pos/internal/sales"
)

// ErrInsufficientPayment is returned when the tendered cash does not cover
// the computed total. The cart and every store are left untouched; the tender
// is never clamped or partially accepted.
var ErrInsufficientPayment = errors.New("tendered cash below total")

// Ledger commits a computed sale draft atomically.
type Ledger interface {
	CommitSale(ctx context.Context, d sales.Draft) (sales.Sale, error)
}

// Service turns a cart into a settled sale. All monetary figures are computed
// before anything is persisted; persistence itself is one atomic ledger
// commit.
type Service struct {
	Ledger Ledger
	Logger zerolog.Logger
}

// Input carries everything one checkout needs. The cart is owned by the
// caller, who clears it only after a successful return.
type Input struct {
	Cart           *cart.Cart
	ManualDiscount float64
	Promotions     map[uuid.UUID][]promo.Promotion
	MemberID       *uuid.UUID
	Cash           float64
	PaymentMethod  string
}

// Totals breaks down the figures of one checkout. Discount merges the manual
// and promotional parts, matching what the sale row stores.
type Totals struct {
	Subtotal      float64
	PromoDiscount float64
	Discount      float64
	Total         float64
}

// ComputeTotals prices the cart: the promotion evaluator runs once per line
// against that line's promotions, and the grand total is rounded half-up to
// the nearest whole currency unit.
func ComputeTotals(c *cart.Cart, manualDiscount float64, promotions map[uuid.UUID][]promo.Promotion) Totals {
	subtotal := c.Subtotal()
	var promoDiscount float64
	for _, line := range c.Lines() {
		promoDiscount += promo.Evaluate(promo.Line{
			UnitPrice: line.UnitPrice,
			Qty:       line.Qty,
			Subtotal:  line.Subtotal,
		}, promotions[line.ProductID])
	}
	promoDiscount = common.Round(promoDiscount, 2)
	total := common.RoundWhole(subtotal - manualDiscount - promoDiscount)
	return Totals{
		Subtotal:      subtotal,
		PromoDiscount: promoDiscount,
		Discount:      common.Round(manualDiscount+promoDiscount, 2),
		Total:         total,
	}
}

// Checkout validates the tender, computes totals, and commits the sale. A
// rejection before the commit leaves all state untouched; a failure inside
// the commit rolls everything back.
func (s *Service) Checkout(ctx context.Context, in Input) (sales.Sale, error) {
	if s == nil || s.Ledger == nil {
		return sales.Sale{}, errors.New("checkout service not configured")
	}
	if in.Cart == nil || in.Cart.Len() == 0 {
		return sales.Sale{}, fmt.Errorf("cart is empty: %w", common.ErrValidation)
	}
	if in.ManualDiscount < 0 {
		return sales.Sale{}, fmt.Errorf("manual discount must not be negative: %w", common.ErrValidation)
	}
	if in.Cash < 0 {
		return sales.Sale{}, fmt.Errorf("tendered cash must not be negative: %w", common.ErrValidation)
	}
	totals := ComputeTotals(in.Cart, in.ManualDiscount, in.Promotions)
	if in.ManualDiscount > totals.Subtotal {
		return sales.Sale{}, fmt.Errorf("manual discount exceeds subtotal: %w", common.ErrValidation)
	}
	if in.Cash < totals.Total {
		s.count("insufficient_payment")
		return sales.Sale{}, fmt.Errorf("tendered %.2f for total %.2f: %w", in.Cash, totals.Total, ErrInsufficientPayment)
	}
	change := common.RoundWhole(in.Cash - totals.Total)
	method := in.PaymentMethod
	if method == "" {
		method = "cash"
	}

	draft := sales.Draft{
		MemberID:      in.MemberID,
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		Total:         totals.Total,
		Cash:          in.Cash,
		Change:        change,
		PaymentMethod: method,
		Points:        sales.PointsFor(totals.Total),
		Items:         draftItems(in.Cart),
	}
	sale, err := s.Ledger.CommitSale(ctx, draft)
	if err != nil {
		if errors.Is(err, sales.ErrStockUnavailable) {
			s.count("stock_conflict")
			if obs.StockConflictTotal != nil {
				obs.StockConflictTotal.Inc()
			}
		} else {
			s.count("error")
		}
		return sales.Sale{}, err
	}
	s.count("succeeded")
	if obs.SaleAmount != nil {
		obs.SaleAmount.Observe(sale.Total)
	}
	s.Logger.Info().
		Str("sale_id", sale.ID.String()).
		Float64("subtotal", sale.Subtotal).
		Float64("discount", sale.Discount).
		Float64("total", sale.Total).
		Float64("change", sale.Change).
		Bool("member", sale.MemberID != nil).
		Msg("checkout settled")
	return sale, nil
}

func draftItems(c *cart.Cart) []sales.DraftItem {
	lines := c.Lines()
	items := make([]sales.DraftItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, sales.DraftItem{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Qty:         line.Qty,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal,
		})
	}
	return items
}

func (s *Service) count(result string) {
	if obs.CheckoutTotal != nil {
		obs.CheckoutTotal.WithLabelValues(result).Inc()
	}
}
