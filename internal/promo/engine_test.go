package promo

import "testing"

func TestEvaluatePercent(t *testing.T) {
	line := Line{UnitPrice: 100, Qty: 2, Subtotal: 200}
	discount := Evaluate(line, []Promotion{{Kind: KindPercent, Value: 10}})
	if discount != 20.0 {
		t.Fatalf("expected discount 20.0, got %v", discount)
	}
}

func TestEvaluateFixedIgnoresQuantity(t *testing.T) {
	for _, qty := range []int{1, 3, 10} {
		line := Line{UnitPrice: 50, Qty: qty, Subtotal: 50 * float64(qty)}
		if got := Evaluate(line, []Promotion{{Kind: KindFixed, Value: 15}}); got != 15.0 {
			t.Fatalf("qty %d: expected 15.0, got %v", qty, got)
		}
	}
}

func TestEvaluateBogo(t *testing.T) {
	cases := []struct {
		qty  int
		want float64
	}{
		{1, 0},
		{2, 80},
		{3, 80},
		{4, 160},
	}
	for _, c := range cases {
		line := Line{UnitPrice: 80, Qty: c.qty, Subtotal: 80 * float64(c.qty)}
		if got := Evaluate(line, []Promotion{{Kind: KindBogo}}); got != c.want {
			t.Fatalf("qty %d: expected %v, got %v", c.qty, c.want, got)
		}
	}
}

func TestEvaluateSecondDiscount(t *testing.T) {
	promos := []Promotion{{Kind: KindSecondDiscount, Value: 50}}
	if got := Evaluate(Line{UnitPrice: 60, Qty: 1, Subtotal: 60}, promos); got != 0 {
		t.Fatalf("single unit should not discount, got %v", got)
	}
	// Discount applies to exactly one unit however many are bought.
	for _, qty := range []int{2, 5} {
		line := Line{UnitPrice: 60, Qty: qty, Subtotal: 60 * float64(qty)}
		if got := Evaluate(line, promos); got != 30.0 {
			t.Fatalf("qty %d: expected 30.0, got %v", qty, got)
		}
	}
}

func TestEvaluateAmountThreshold(t *testing.T) {
	promos := []Promotion{{Kind: KindAmount, Value: 25, MinAmount: 300}}
	if got := Evaluate(Line{UnitPrice: 100, Qty: 2, Subtotal: 200}, promos); got != 0 {
		t.Fatalf("below threshold should not discount, got %v", got)
	}
	if got := Evaluate(Line{UnitPrice: 100, Qty: 3, Subtotal: 300}, promos); got != 25.0 {
		t.Fatalf("at threshold expected 25.0, got %v", got)
	}
}

func TestEvaluateNoPromotions(t *testing.T) {
	if got := Evaluate(Line{UnitPrice: 999, Qty: 7, Subtotal: 6993}, nil); got != 0 {
		t.Fatalf("expected 0 with no promotions, got %v", got)
	}
}

func TestEvaluateUnknownKind(t *testing.T) {
	promos := []Promotion{
		{Kind: Kind("loyalty_multiplier"), Value: 99},
		{Kind: KindFixed, Value: 5},
	}
	if got := Evaluate(Line{UnitPrice: 10, Qty: 1, Subtotal: 10}, promos); got != 5.0 {
		t.Fatalf("unknown kind must contribute zero, got %v", got)
	}
}

func TestEvaluateStacksAdditively(t *testing.T) {
	line := Line{UnitPrice: 100, Qty: 2, Subtotal: 200}
	promos := []Promotion{
		{Kind: KindPercent, Value: 10},
		{Kind: KindFixed, Value: 5},
		{Kind: KindBogo},
	}
	// 20 + 5 + 100
	if got := Evaluate(line, promos); got != 125.0 {
		t.Fatalf("expected stacked discount 125.0, got %v", got)
	}
}

func TestEvaluateMinQtyGate(t *testing.T) {
	promos := []Promotion{{Kind: KindPercent, Value: 10, MinQty: 3}}
	if got := Evaluate(Line{UnitPrice: 100, Qty: 2, Subtotal: 200}, promos); got != 0 {
		t.Fatalf("below minimum quantity should not discount, got %v", got)
	}
	if got := Evaluate(Line{UnitPrice: 100, Qty: 3, Subtotal: 300}, promos); got != 30.0 {
		t.Fatalf("at minimum quantity expected 30.0, got %v", got)
	}
}
