package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackielin7778-cloud/pos/internal/cart"
	"github.com/jackielin7778-cloud/pos/internal/common"
	"github.com/jackielin7778-cloud/pos/internal/promo"
	"github.com/jackielin7778-cloud/pos/internal/sales"
)

type fakeLedger struct {
	commits []sales.Draft
	fail    error
}

func (f *fakeLedger) CommitSale(ctx context.Context, d sales.Draft) (sales.Sale, error) {
	if f.fail != nil {
		return sales.Sale{}, f.fail
	}
	f.commits = append(f.commits, d)
	return sales.Sale{
		ID:            uuid.New(),
		MemberID:      d.MemberID,
		Subtotal:      d.Subtotal,
		Discount:      d.Discount,
		Total:         d.Total,
		Cash:          d.Cash,
		Change:        d.Change,
		PaymentMethod: d.PaymentMethod,
	}, nil
}

func cartWith(lines ...cart.Line) *cart.Cart {
	c := cart.New()
	for _, l := range lines {
		c.AddLine(l.ProductID, l.Name, l.UnitPrice, l.Qty)
	}
	return c
}

func TestComputeTotalsWithPromotion(t *testing.T) {
	pid := uuid.New()
	c := cartWith(cart.Line{ProductID: pid, Name: "Tea", UnitPrice: 100, Qty: 3})
	promos := map[uuid.UUID][]promo.Promotion{
		pid: {{Kind: promo.KindPercent, Value: 10}},
	}
	totals := ComputeTotals(c, 0, promos)
	assert.Equal(t, 300.0, totals.Subtotal)
	assert.Equal(t, 30.0, totals.PromoDiscount)
	assert.Equal(t, 30.0, totals.Discount)
	assert.Equal(t, 270.0, totals.Total)
}

func TestCheckoutExactTender(t *testing.T) {
	pid := uuid.New()
	ledger := &fakeLedger{}
	svc := &Service{Ledger: ledger}
	c := cartWith(cart.Line{ProductID: pid, Name: "Tea", UnitPrice: 100, Qty: 3})
	promos := map[uuid.UUID][]promo.Promotion{
		pid: {{Kind: promo.KindFixed, Value: 20}},
	}
	sale, err := svc.Checkout(context.Background(), Input{
		Cart:       c,
		Promotions: promos,
		Cash:       280,
	})
	require.NoError(t, err)
	assert.Equal(t, 280.0, sale.Total)
	assert.Equal(t, 0.0, sale.Change)
	assert.Equal(t, "cash", sale.PaymentMethod)
	require.Len(t, ledger.commits, 1)
	draft := ledger.commits[0]
	assert.Equal(t, 300.0, draft.Subtotal)
	assert.Equal(t, 20.0, draft.Discount)
	assert.Equal(t, int64(280), draft.Points)
	require.Len(t, draft.Items, 1)
	assert.Equal(t, "Tea", draft.Items[0].ProductName)
	assert.Equal(t, 3, draft.Items[0].Qty)
}

func TestCheckoutInsufficientPayment(t *testing.T) {
	pid := uuid.New()
	ledger := &fakeLedger{}
	svc := &Service{Ledger: ledger}
	c := cartWith(cart.Line{ProductID: pid, Name: "Tea", UnitPrice: 100, Qty: 3})
	promos := map[uuid.UUID][]promo.Promotion{
		pid: {{Kind: promo.KindFixed, Value: 20}},
	}
	_, err := svc.Checkout(context.Background(), Input{
		Cart:       c,
		Promotions: promos,
		Cash:       279,
	})
	require.ErrorIs(t, err, ErrInsufficientPayment)
	// The rejection happens before the commit: nothing was persisted.
	assert.Empty(t, ledger.commits)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := &Service{Ledger: &fakeLedger{}}
	_, err := svc.Checkout(context.Background(), Input{Cart: cart.New(), Cash: 100})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestCheckoutNegativeDiscountRejected(t *testing.T) {
	svc := &Service{Ledger: &fakeLedger{}}
	c := cartWith(cart.Line{ProductID: uuid.New(), Name: "Tea", UnitPrice: 50, Qty: 1})
	_, err := svc.Checkout(context.Background(), Input{Cart: c, ManualDiscount: -1, Cash: 100})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestCheckoutStockConflictPropagates(t *testing.T) {
	ledger := &fakeLedger{fail: fmt.Errorf("product %q: %w", "Tea", sales.ErrStockUnavailable)}
	svc := &Service{Ledger: ledger}
	c := cartWith(cart.Line{ProductID: uuid.New(), Name: "Tea", UnitPrice: 50, Qty: 1})
	_, err := svc.Checkout(context.Background(), Input{Cart: c, Cash: 100})
	require.ErrorIs(t, err, sales.ErrStockUnavailable)
}

func TestCheckoutMemberAccrual(t *testing.T) {
	pid := uuid.New()
	memberID := uuid.New()
	ledger := &fakeLedger{}
	svc := &Service{Ledger: ledger}
	c := cartWith(cart.Line{ProductID: pid, Name: "Tea", UnitPrice: 85.8, Qty: 3})
	sale, err := svc.Checkout(context.Background(), Input{
		Cart:     c,
		MemberID: &memberID,
		Cash:     300,
	})
	require.NoError(t, err)
	require.Len(t, ledger.commits, 1)
	draft := ledger.commits[0]
	require.NotNil(t, draft.MemberID)
	assert.Equal(t, memberID, *draft.MemberID)
	assert.Equal(t, draft.Total, sale.Total)
	assert.Equal(t, int64(draft.Total), draft.Points)
}

func TestCheckoutChangeComputation(t *testing.T) {
	pid := uuid.New()
	ledger := &fakeLedger{}
	svc := &Service{Ledger: ledger}
	c := cartWith(cart.Line{ProductID: pid, Name: "Tea", UnitPrice: 100, Qty: 2})
	sale, err := svc.Checkout(context.Background(), Input{Cart: c, Cash: 500})
	require.NoError(t, err)
	assert.Equal(t, 200.0, sale.Total)
	assert.Equal(t, 300.0, sale.Change)
}

func TestCheckoutLedgerErrorSurfaced(t *testing.T) {
	ledger := &fakeLedger{fail: errors.New("connection reset")}
	svc := &Service{Ledger: ledger}
	c := cartWith(cart.Line{ProductID: uuid.New(), Name: "Tea", UnitPrice: 50, Qty: 1})
	_, err := svc.Checkout(context.Background(), Input{Cart: c, Cash: 100})
	require.Error(t, err)
}
