package catalog

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/jackielin7778-cloud/pos/internal/common"
	"github.com/jackielin7778-cloud/pos/internal/tax"
)

type store interface {
	Find(ctx context.Context, search string) ([]Product, error)
	Get(ctx context.Context, id uuid.UUID) (Product, error)
	Insert(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service validates catalog mutations and keeps the two price forms
// consistent: each edit names exactly one authoritative price side and the
// converter derives the other. Applying both conversions in one edit cycle
// would compound the rounding gap, so inputs carrying both sides are
// rejected.
type Service struct {
	Store store
}

// ProductInput carries a create or update. Exactly one of PriceExTax and
// PriceIncTax must be set; it becomes the authoritative side.
type ProductInput struct {
	Name        string   `json:"name" validate:"required"`
	PriceExTax  *float64 `json:"priceExTax" validate:"omitempty,gte=0"`
	PriceIncTax *float64 `json:"priceIncTax" validate:"omitempty,gte=0"`
	Cost        float64  `json:"cost" validate:"gte=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Barcode     string   `json:"barcode"`
	Category    string   `json:"category"`
}

// Find returns products matching the search text on name or barcode.
func (s *Service) Find(ctx context.Context, search string) ([]Product, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("catalog service not configured")
	}
	return s.Store.Find(ctx, search)
}

// Get returns one product by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Product, error) {
	if s == nil || s.Store == nil {
		return Product{}, errors.New("catalog service not configured")
	}
	return s.Store.Get(ctx, id)
}

// Create validates the input, derives the non-authoritative price side, and
// inserts the product.
func (s *Service) Create(ctx context.Context, in ProductInput) (Product, error) {
	if s == nil || s.Store == nil {
		return Product{}, errors.New("catalog service not configured")
	}
	p, err := s.materialize(in)
	if err != nil {
		return Product{}, err
	}
	return s.Store.Insert(ctx, p)
}

// UpdateProduct validates the input, derives the non-authoritative price
// side, and replaces the product's mutable fields.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput) (Product, error) {
	if s == nil || s.Store == nil {
		return Product{}, errors.New("catalog service not configured")
	}
	if _, err := s.Store.Get(ctx, id); err != nil {
		return Product{}, err
	}
	p, err := s.materialize(in)
	if err != nil {
		return Product{}, err
	}
	p.ID = id
	if err := s.Store.Update(ctx, p); err != nil {
		return Product{}, err
	}
	return s.Store.Get(ctx, id)
}

// DeleteProduct removes a product from the catalog.
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if s == nil || s.Store == nil {
		return errors.New("catalog service not configured")
	}
	return s.Store.Delete(ctx, id)
}

func (s *Service) materialize(in ProductInput) (Product, error) {
	if err := common.Validate.Struct(in); err != nil {
		return Product{}, common.NewAppError("VALIDATION", err.Error(), http.StatusBadRequest, common.ErrValidation)
	}
	if (in.PriceExTax == nil) == (in.PriceIncTax == nil) {
		return Product{}, common.NewAppError("VALIDATION", "exactly one price side must be set per edit", http.StatusBadRequest, common.ErrValidation)
	}
	p := Product{
		Name:     in.Name,
		Cost:     in.Cost,
		Stock:    in.Stock,
		Category: in.Category,
	}
	if in.Barcode != "" {
		barcode := in.Barcode
		p.Barcode = &barcode
	}
	if in.PriceExTax != nil {
		p.PriceExTax = *in.PriceExTax
		p.PriceIncTax = tax.ToInclusive(*in.PriceExTax)
	} else {
		p.PriceIncTax = *in.PriceIncTax
		p.PriceExTax = tax.ToExclusive(*in.PriceIncTax)
	}
	return p, nil
}
