package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackielin7778-cloud/pos/internal/catalog"
	"github.com/jackielin7778-cloud/pos/internal/common"
	"github.com/jackielin7778-cloud/pos/internal/member"
	"github.com/jackielin7778-cloud/pos/internal/promo"
)

type stubCatalog struct {
	products map[uuid.UUID]catalog.Product
}

func (s stubCatalog) Get(_ context.Context, id uuid.UUID) (catalog.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return catalog.Product{}, common.ErrNotFound
	}
	return p, nil
}

type stubPromos struct {
	byProduct map[uuid.UUID][]promo.Promotion
}

func (s stubPromos) ActiveForProducts(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]promo.Promotion, error) {
	out := make(map[uuid.UUID][]promo.Promotion, len(ids))
	for _, id := range ids {
		out[id] = s.byProduct[id]
	}
	return out, nil
}

type stubMembers struct {
	byPhone map[string]member.Member
}

func (s stubMembers) FindByPhone(_ context.Context, phone string) (member.Member, error) {
	m, ok := s.byPhone[phone]
	if !ok {
		return member.Member{}, common.ErrNotFound
	}
	return m, nil
}

func newTestHandler(ledger *fakeLedger, products map[uuid.UUID]catalog.Product, promos map[uuid.UUID][]promo.Promotion) *Handler {
	return &Handler{
		Svc:     &Service{Ledger: ledger},
		Catalog: stubCatalog{products: products},
		Promos:  stubPromos{byProduct: promos},
		Members: stubMembers{byPhone: map[string]member.Member{}},
	}
}

func TestCheckoutHandlerSettles(t *testing.T) {
	pid := uuid.New()
	ledger := &fakeLedger{}
	h := newTestHandler(ledger,
		map[uuid.UUID]catalog.Product{pid: {ID: pid, Name: "Tea", PriceIncTax: 100}},
		map[uuid.UUID][]promo.Promotion{pid: {{Kind: promo.KindFixed, Value: 20}}},
	)

	body := `{"lines":[{"productId":"` + pid.String() + `","quantity":3}],"cash":280}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Checkout(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	require.Len(t, ledger.commits, 1)
	assert.Equal(t, 280.0, ledger.commits[0].Total)

	var resp struct {
		Data struct {
			Sale struct {
				Total  float64 `json:"total"`
				Change float64 `json:"change"`
			} `json:"sale"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 280.0, resp.Data.Sale.Total)
	assert.Equal(t, 0.0, resp.Data.Sale.Change)
}

func TestCheckoutHandlerInsufficientPayment(t *testing.T) {
	pid := uuid.New()
	ledger := &fakeLedger{}
	h := newTestHandler(ledger,
		map[uuid.UUID]catalog.Product{pid: {ID: pid, Name: "Tea", PriceIncTax: 100}},
		map[uuid.UUID][]promo.Promotion{pid: {{Kind: promo.KindFixed, Value: 20}}},
	)

	body := `{"lines":[{"productId":"` + pid.String() + `","quantity":3}],"cash":279}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Checkout(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Empty(t, ledger.commits)
	assert.Contains(t, rr.Body.String(), "INSUFFICIENT_PAYMENT")
}

func TestCheckoutHandlerUnknownProduct(t *testing.T) {
	ledger := &fakeLedger{}
	h := newTestHandler(ledger, map[uuid.UUID]catalog.Product{}, nil)

	body := `{"lines":[{"productId":"` + uuid.NewString() + `","quantity":1}],"cash":100}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Checkout(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Empty(t, ledger.commits)
}

func TestCheckoutHandlerMemberByPhone(t *testing.T) {
	pid := uuid.New()
	memberID := uuid.New()
	ledger := &fakeLedger{}
	h := newTestHandler(ledger,
		map[uuid.UUID]catalog.Product{pid: {ID: pid, Name: "Tea", PriceIncTax: 100}},
		nil,
	)
	h.Members = stubMembers{byPhone: map[string]member.Member{
		"0912345678": {ID: memberID, Name: "Lin Mei-Hua", Phone: "0912345678"},
	}}

	body := `{"lines":[{"productId":"` + pid.String() + `","quantity":1}],"cash":100,"memberPhone":"0912345678"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Checkout(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	require.Len(t, ledger.commits, 1)
	require.NotNil(t, ledger.commits[0].MemberID)
	assert.Equal(t, memberID, *ledger.commits[0].MemberID)
}
