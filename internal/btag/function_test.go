package btag

import (
	"math"
	"testing"
)

func TestFindBin(t *testing.T) {
	edges := []float64{20, 30, 40, 60}

	tests := []struct {
		name string
		pt   float64
		want int
	}{
		{"below first edge", 10, 0},
		{"on first edge", 20, 0},
		{"inside first bin", 25, 0},
		{"on interior edge", 30, 1},
		{"inside interior bin", 35, 1},
		{"on last edge", 60, 3},
		{"beyond last edge", 500, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findBin(edges, tt.pt); got != tt.want {
				t.Errorf("findBin(%v) = %d, want %d", tt.pt, got, tt.want)
			}
		})
	}
}

func TestBinnedTableClampsBothEnds(t *testing.T) {
	table := binnedTable{edges: []float64{20, 40, 80}, values: []float64{0.1, 0.2, 0.3}}

	if got := table.at(5); got != 0.1 {
		t.Errorf("below range: got %v, want first bin value 0.1", got)
	}
	if got := table.at(1e4); got != 0.3 {
		t.Errorf("above range: got %v, want last bin value 0.3", got)
	}
}

func TestPolyCurveEval(t *testing.T) {
	c := polyCurve{coeffs: []float64{1.0, 0.5, -0.01}, lo: 0, hi: 100}

	for _, pt := range []float64{0, 1, 10, 50, 100} {
		want := 1.0 + 0.5*pt - 0.01*pt*pt
		if got := c.eval(pt); math.Abs(got-want) > 1e-12 {
			t.Errorf("eval(%v) = %v, want %v", pt, got, want)
		}
	}
}

func TestPolyCurveClampsToDomain(t *testing.T) {
	c := polyCurve{coeffs: []float64{2.0, 0.1}, lo: 20, hi: 800}

	if got, want := c.eval(5), c.eval(20); got != want {
		t.Errorf("eval below domain: got %v, want boundary value %v", got, want)
	}
	if got, want := c.eval(2000), c.eval(800); got != want {
		t.Errorf("eval above domain: got %v, want boundary value %v", got, want)
	}
}

func TestRatioCurveEval(t *testing.T) {
	c := ratioCurve{norm: 0.9, num: 0.01, den: 0.02, lo: 20, hi: 800}

	pt := 100.0
	want := 0.9 * (1 + 0.01*pt) / (1 + 0.02*pt)
	if got := c.eval(pt); math.Abs(got-want) > 1e-12 {
		t.Errorf("eval(%v) = %v, want %v", pt, got, want)
	}

	if got, want := c.eval(10), c.eval(20); got != want {
		t.Errorf("eval below domain: got %v, want boundary value %v", got, want)
	}
}

func TestClampRange(t *testing.T) {
	if got := clampRange(5, 20, 800); got != 20 {
		t.Errorf("clampRange(5) = %v, want 20", got)
	}
	if got := clampRange(900, 20, 800); got != 800 {
		t.Errorf("clampRange(900) = %v, want 800", got)
	}
	if got := clampRange(300, 20, 800); got != 300 {
		t.Errorf("clampRange(300) = %v, want 300", got)
	}
}
