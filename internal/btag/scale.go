package btag

import "fmt"

// heavyScaleFunc is the data/MC scale factor for jets from b or c quarks.
// Both flavors share the fitted curve measured on b jets; c jets carry an
// inflated uncertainty because the measurement does not constrain them
// directly.
type heavyScaleFunc struct {
	fit     ptCurve
	errs    binnedTable
	inflate float64
}

func (f heavyScaleFunc) Value(pt float64) float64 { return f.fit.eval(pt) }

func (f heavyScaleFunc) ValuePlus(pt float64) float64 {
	return f.Value(pt) + f.uncertainty(pt)
}

func (f heavyScaleFunc) ValueMinus(pt float64) float64 {
	v := f.Value(pt) - f.uncertainty(pt)
	if v < 0 {
		return 0
	}
	return v
}

// uncertainty doubles outside the fitted pt range: the clamped value is
// still usable there but the quoted error is not.
func (f heavyScaleFunc) uncertainty(pt float64) float64 {
	lo, hi := f.fit.domain()
	factor := f.inflate
	if pt < lo || pt > hi {
		factor *= 2
		pt = clampRange(pt, lo, hi)
	}
	return factor * f.errs.at(pt)
}

// lightScaleFunc is the mistag scale factor for light-parton jets. Nominal,
// up, and down are three independently fitted curves, not a value with a
// symmetric error.
type lightScaleFunc struct {
	nominal, up, down ptCurve
}

func (f lightScaleFunc) Value(pt float64) float64      { return f.nominal.eval(pt) }
func (f lightScaleFunc) ValuePlus(pt float64) float64  { return f.up.eval(pt) }
func (f lightScaleFunc) ValueMinus(pt float64) float64 { return f.down.eval(pt) }

// NewScaleFunction returns the data/MC scale-factor function for one jet
// flavor at one working point. Unrecognized flavors fall into the light
// class, matching ParseFlavor.
func NewScaleFunction(flavor Flavor, algo Algorithm) (Function, error) {
	switch flavor.canonical() {
	case FlavorB, FlavorC:
		calib, ok := heavyScales[algo]
		if !ok {
			return nil, fmt.Errorf("btag: no heavy-flavor scale calibration for algorithm %q", algo)
		}
		inflate := 1.0
		if flavor.canonical() == FlavorC {
			inflate = 2.0
		}
		return heavyScaleFunc{
			fit:     calib.fit,
			errs:    binnedTable{edges: calib.errEdges, values: calib.errs},
			inflate: inflate,
		}, nil
	default:
		calib, ok := lightScales[algo]
		if !ok {
			return nil, fmt.Errorf("btag: no mistag scale calibration for algorithm %q", algo)
		}
		return lightScaleFunc{nominal: calib.nominal, up: calib.up, down: calib.down}, nil
	}
}
