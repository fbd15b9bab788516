package cart

import (
	"testing"

	"github.com/google/uuid"
)

func TestAddLineMergesByProduct(t *testing.T) {
	c := New()
	id := uuid.New()
	c.AddLine(id, "Milk Tea", 55, 1)
	c.AddLine(id, "Milk Tea", 55, 2)
	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 merged line, got %d", len(lines))
	}
	if lines[0].Qty != 3 || lines[0].Subtotal != 165.0 {
		t.Fatalf("unexpected merged line: %+v", lines[0])
	}
}

func TestAddLineKeepsCapturedPrice(t *testing.T) {
	c := New()
	id := uuid.New()
	c.AddLine(id, "Milk Tea", 55, 1)
	// A second add with a different price must not reprice the line.
	c.AddLine(id, "Milk Tea", 60, 1)
	lines := c.Lines()
	if lines[0].UnitPrice != 55 || lines[0].Subtotal != 110.0 {
		t.Fatalf("captured price changed: %+v", lines[0])
	}
}

func TestSetQuantity(t *testing.T) {
	c := New()
	c.AddLine(uuid.New(), "Coffee", 80, 2)
	c.SetQuantity(0, 5)
	if got := c.Lines()[0]; got.Qty != 5 || got.Subtotal != 400.0 {
		t.Fatalf("unexpected line after SetQuantity: %+v", got)
	}
}

func TestSetQuantityBelowOneRemoves(t *testing.T) {
	c := New()
	c.AddLine(uuid.New(), "Coffee", 80, 2)
	c.SetQuantity(0, 0)
	if c.Len() != 0 {
		t.Fatalf("expected empty cart, got %d lines", c.Len())
	}
}

func TestRemoveLineAndClear(t *testing.T) {
	c := New()
	c.AddLine(uuid.New(), "A", 10, 1)
	c.AddLine(uuid.New(), "B", 20, 1)
	c.RemoveLine(0)
	if c.Len() != 1 || c.Lines()[0].Name != "B" {
		t.Fatalf("unexpected lines after remove: %+v", c.Lines())
	}
	c.RemoveLine(99) // out of range is a no-op
	c.Clear()
	if c.Len() != 0 || c.Subtotal() != 0 {
		t.Fatalf("expected cleared cart")
	}
}

func TestSubtotal(t *testing.T) {
	c := New()
	c.AddLine(uuid.New(), "A", 35.5, 2)
	c.AddLine(uuid.New(), "B", 120, 1)
	if got := c.Subtotal(); got != 191.0 {
		t.Fatalf("expected subtotal 191.0, got %v", got)
	}
}
