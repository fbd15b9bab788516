package promo

import "github.com/jackielin7778-cloud/pos/internal/common"

// Line is the slice of a cart the evaluator needs: captured unit price,
// quantity, and the resulting line subtotal.
type Line struct {
	UnitPrice float64
	Qty       int
	Subtotal  float64
}

// Evaluate computes the discount owed on one cart line given the promotions
// already filtered for that line's product. Callers supply only promotions
// whose product matches the line (or is global) and whose active flag and
// validity window have passed the store query; the evaluator does not re-check
// either. Discounts from multiple promotions stack additively and the sum is
// rounded to two decimals.
func Evaluate(line Line, promos []Promotion) float64 {
	if len(promos) == 0 || line.Qty <= 0 {
		return 0
	}
	var discount float64
	for _, p := range promos {
		if p.MinQty > 0 && line.Qty < p.MinQty {
			continue
		}
		switch p.Kind {
		case KindPercent:
			discount += line.UnitPrice * float64(line.Qty) * (p.Value / 100)
		case KindFixed:
			discount += p.Value
		case KindBogo:
			discount += float64(line.Qty/2) * line.UnitPrice
		case KindSecondDiscount:
			if line.Qty >= 2 {
				discount += line.UnitPrice * (p.Value / 100)
			}
		case KindAmount:
			if line.Subtotal >= p.MinAmount {
				discount += p.Value
			}
		}
		// Unrecognised kinds contribute nothing.
	}
	return common.Round(discount, 2)
}
