package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackielin7778-cloud/pos/internal/common"
)

type fakeStore struct {
	products map[uuid.UUID]Product
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: map[uuid.UUID]Product{}}
}

func (f *fakeStore) Find(ctx context.Context, search string) ([]Product, error) {
	var out []Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStore) Get(ctx context.Context, id uuid.UUID) (Product, error) {
	p, ok := f.products[id]
	if !ok {
		return Product{}, common.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) Insert(ctx context.Context, p Product) (Product, error) {
	p.ID = uuid.New()
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeStore) Update(ctx context.Context, p Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return common.ErrNotFound
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.products[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func ptr(v float64) *float64 { return &v }

func TestCreateDerivesInclusivePrice(t *testing.T) {
	svc := &Service{Store: newFakeStore()}
	p, err := svc.Create(context.Background(), ProductInput{
		Name:       "Black Tea",
		PriceExTax: ptr(100),
		Stock:      10,
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, p.PriceExTax)
	assert.Equal(t, 105.0, p.PriceIncTax)
}

func TestCreateDerivesExclusivePrice(t *testing.T) {
	svc := &Service{Store: newFakeStore()}
	p, err := svc.Create(context.Background(), ProductInput{
		Name:        "Black Tea",
		PriceIncTax: ptr(105),
	})
	require.NoError(t, err)
	assert.Equal(t, 105.0, p.PriceIncTax)
	assert.Equal(t, 100.0, p.PriceExTax)
}

func TestCreateRejectsBothPriceSides(t *testing.T) {
	svc := &Service{Store: newFakeStore()}
	_, err := svc.Create(context.Background(), ProductInput{
		Name:        "Black Tea",
		PriceExTax:  ptr(100),
		PriceIncTax: ptr(105),
	})
	require.ErrorIs(t, err, common.ErrValidation)
	_, err = svc.Create(context.Background(), ProductInput{Name: "Black Tea"})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestCreateRejectsMissingName(t *testing.T) {
	svc := &Service{Store: newFakeStore()}
	_, err := svc.Create(context.Background(), ProductInput{PriceExTax: ptr(100)})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestUpdateSwitchesAuthoritativeSide(t *testing.T) {
	store := newFakeStore()
	svc := &Service{Store: store}
	created, err := svc.Create(context.Background(), ProductInput{
		Name:       "Oolong",
		PriceExTax: ptr(100),
		Stock:      5,
	})
	require.NoError(t, err)

	// A later edit of the inclusive side makes it authoritative; the
	// exclusive side is recomputed through the double-rounded reverse
	// formula rather than restored to its old value.
	updated, err := svc.UpdateProduct(context.Background(), created.ID, ProductInput{
		Name:        "Oolong",
		PriceIncTax: ptr(110),
		Stock:       5,
	})
	require.NoError(t, err)
	assert.Equal(t, 110.0, updated.PriceIncTax)
	assert.Equal(t, 105.0, updated.PriceExTax) // tax: round(round(110/21,1)) = 5
}

func TestUpdateMissingProduct(t *testing.T) {
	svc := &Service{Store: newFakeStore()}
	_, err := svc.UpdateProduct(context.Background(), uuid.New(), ProductInput{
		Name:       "Ghost",
		PriceExTax: ptr(10),
	})
	require.ErrorIs(t, err, common.ErrNotFound)
}
