// Package btag weighs simulated events by the measured performance of
// b-tagging algorithms. Scale factors and efficiencies are evaluated per
// jet as functions of transverse momentum; per-event weights combine them
// into a single multiplicative correction.
package btag

// Function is one calibration quantity evaluated as a function of jet pt,
// together with its one-sigma systematic variants. Implementations clamp
// pt into the calibrated range rather than extrapolate.
type Function interface {
	Value(pt float64) float64
	ValuePlus(pt float64) float64
	ValueMinus(pt float64) float64
}

// ptCurve is a fitted pt parameterization with a bounded validity range.
type ptCurve interface {
	eval(pt float64) float64
	domain() (lo, hi float64)
}

// polyCurve evaluates a polynomial with coefficients in ascending order.
type polyCurve struct {
	coeffs []float64
	lo, hi float64
}

func (c polyCurve) domain() (float64, float64) { return c.lo, c.hi }

func (c polyCurve) eval(pt float64) float64 {
	pt = clampRange(pt, c.lo, c.hi)
	v := 0.0
	for i := len(c.coeffs) - 1; i >= 0; i-- {
		v = v*pt + c.coeffs[i]
	}
	return v
}

// ratioCurve evaluates norm * (1 + num*pt) / (1 + den*pt), the form the
// heavy-flavor scale fits use at the looser working points.
type ratioCurve struct {
	norm, num, den float64
	lo, hi         float64
}

func (c ratioCurve) domain() (float64, float64) { return c.lo, c.hi }

func (c ratioCurve) eval(pt float64) float64 {
	pt = clampRange(pt, c.lo, c.hi)
	return c.norm * (1 + c.num*pt) / (1 + c.den*pt)
}

// binnedTable is an ordered lookup of values by pt bin. Edges are the
// strictly increasing lower edges of each bin; lookups below the first
// edge take the first bin and lookups past the last edge take the last.
type binnedTable struct {
	edges  []float64
	values []float64
}

func (t binnedTable) at(pt float64) float64 {
	return t.values[findBin(t.edges, pt)]
}

// findBin returns the index of the highest lower edge not exceeding pt.
// Tables are small enough that a linear scan beats a binary search.
func findBin(edges []float64, pt float64) int {
	idx := 0
	for i := 1; i < len(edges); i++ {
		if pt < edges[i] {
			break
		}
		idx = i
	}
	return idx
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
