package promo

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies the shape of a discount rule. The set is closed but
// extensible: the evaluator ignores kinds it does not recognise so that newer
// rule shapes can be stored before every till understands them.
type Kind string

const (
	// KindPercent discounts a percentage of the full line subtotal.
	KindPercent Kind = "percent"
	// KindFixed discounts a flat amount regardless of quantity.
	KindFixed Kind = "fixed"
	// KindBogo makes every second unit free.
	KindBogo Kind = "bogo"
	// KindSecondDiscount discounts a percentage of exactly one unit once the
	// line holds at least two.
	KindSecondDiscount Kind = "second_discount"
	// KindAmount discounts a flat amount once the line subtotal reaches the
	// promotion's minimum amount threshold.
	KindAmount Kind = "amount"
)

// Promotion is a discount rule. ProductID scopes the rule to one product;
// a nil ProductID applies storewide. Promotions are immutable once created
// except for deactivation and deletion.
type Promotion struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Kind      Kind       `json:"kind"`
	Value     float64    `json:"value"`
	ProductID *uuid.UUID `json:"productId,omitempty"`
	MinQty    int        `json:"minQty"`
	MinAmount float64    `json:"minAmount"`
	ValidFrom *time.Time `json:"validFrom,omitempty"`
	ValidTo   *time.Time `json:"validTo,omitempty"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"createdAt"`
}
