package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable catalog entry. Both price forms are persisted: a
// human edits one side and the tax converter recomputes the other, so the
// pair can diverge from an exact 5% relationship by rounding.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PriceExTax  float64   `json:"priceExTax"`
	PriceIncTax float64   `json:"priceIncTax"`
	Cost        float64   `json:"cost"`
	Stock       int       `json:"stock"`
	Barcode     *string   `json:"barcode,omitempty"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}
