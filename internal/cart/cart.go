// Package cart holds the in-memory line items of one in-progress checkout
// session. A Cart is exclusively owned by its caller for the duration of the
// session, never persists itself, and is consumed exactly once by a
// successful checkout (or discarded).
package cart

import (
	"github.com/google/uuid"

	"github.com/jackielin7778-cloud/pos/internal/common"
)

// Line is one product-and-quantity entry. UnitPrice is captured when the
// product is first added so a later catalog edit cannot change an open cart.
type Line struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unitPrice"`
	Qty       int       `json:"qty"`
	Subtotal  float64   `json:"subtotal"`
}

// Cart is an ordered, mutable collection of lines for a single session.
// It requires no synchronization: one session, one owner.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddLine adds quantity of a product at the captured unit price. When a line
// for the product already exists its quantity is incremented and the subtotal
// recomputed; otherwise a new line is appended. Quantities below one are
// treated as one.
func (c *Cart) AddLine(productID uuid.UUID, name string, unitPrice float64, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Qty += qty
			c.lines[i].Subtotal = common.Round(float64(c.lines[i].Qty)*c.lines[i].UnitPrice, 2)
			return
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Qty:       qty,
		Subtotal:  common.Round(float64(qty)*unitPrice, 2),
	})
}

// RemoveLine removes the line at the given index. Out-of-range indexes are
// ignored.
func (c *Cart) RemoveLine(index int) {
	if index < 0 || index >= len(c.lines) {
		return
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
}

// SetQuantity replaces the quantity of the line at the given index and
// recomputes its subtotal. A quantity below one removes the line instead.
func (c *Cart) SetQuantity(index, qty int) {
	if index < 0 || index >= len(c.lines) {
		return
	}
	if qty < 1 {
		c.RemoveLine(index)
		return
	}
	c.lines[index].Qty = qty
	c.lines[index].Subtotal = common.Round(float64(qty)*c.lines[index].UnitPrice, 2)
}

// Clear empties all lines.
func (c *Cart) Clear() {
	c.lines = nil
}

// Len reports the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy of the current lines in order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Subtotal returns the sum of all line subtotals before any discount.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, l := range c.lines {
		sum += l.Subtotal
	}
	return common.Round(sum, 2)
}
