package common

import (
	"math"
	"testing"
)

func TestRoundHalfUp(t *testing.T) {
	cases := []struct {
		in     float64
		places int32
		want   float64
	}{
		{4.95, 1, 5.0},
		{4.94, 1, 4.9},
		{2.675, 2, 2.68},
		{279.5, 0, 280},
		{105.0, 1, 105.0},
	}
	for _, c := range cases {
		if got := Round(c.in, c.places); got != c.want {
			t.Fatalf("Round(%v, %d) = %v, want %v", c.in, c.places, got, c.want)
		}
	}
}

func TestRoundNonFinite(t *testing.T) {
	if got := Round(math.NaN(), 1); got != 0 {
		t.Fatalf("expected 0 for NaN, got %v", got)
	}
	if got := Round(math.Inf(1), 1); got != 0 {
		t.Fatalf("expected 0 for +Inf, got %v", got)
	}
}
