package btag

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// JetContribution records how one jet entered the event weight.
type JetContribution struct {
	Flavor      Flavor  `json:"flavor"`
	PT          float64 `json:"pt"`
	Tagged      bool    `json:"tagged"`
	ScaleFactor float64 `json:"scale_factor"`
	Efficiency  float64 `json:"efficiency"`
	DataProb    float64 `json:"data_prob"`
	MCProb      float64 `json:"mc_prob"`
}

// Result captures the full weighing outcome for one event.
type Result struct {
	Weight        float64           `json:"weight"`
	Jets          int               `json:"jets"`
	Degenerate    bool              `json:"degenerate"`
	Contributions []JetContribution `json:"contributions,omitempty"`
}

// Weigher computes per-event tagging weights for one working point, lepton
// channel, and pair of systematic shifts. It is immutable after
// construction and safe for concurrent use.
type Weigher struct {
	algo       Algorithm
	channel    Channel
	heavyShift Shift
	lightShift Shift

	scaleB, scaleC, scaleLight Function
	effB, effC, effLight       Function
}

// NewWeigher resolves all six calibration functions up front so that a
// missing table or an unknown shift fails here rather than mid-sample.
func NewWeigher(algo Algorithm, ch Channel, heavyShift, lightShift Shift) (*Weigher, error) {
	if !heavyShift.valid() {
		return nil, fmt.Errorf("btag: unknown heavy-flavor shift %q", heavyShift)
	}
	if !lightShift.valid() {
		return nil, fmt.Errorf("btag: unknown light-flavor shift %q", lightShift)
	}

	w := &Weigher{algo: algo, channel: ch, heavyShift: heavyShift, lightShift: lightShift}

	var err error
	if w.scaleB, err = NewScaleFunction(FlavorB, algo); err != nil {
		return nil, err
	}
	if w.scaleC, err = NewScaleFunction(FlavorC, algo); err != nil {
		return nil, err
	}
	if w.scaleLight, err = NewScaleFunction(FlavorLight, algo); err != nil {
		return nil, err
	}
	if w.effB, err = NewEfficiencyFunction(FlavorB, algo, ch); err != nil {
		return nil, err
	}
	if w.effC, err = NewEfficiencyFunction(FlavorC, algo, ch); err != nil {
		return nil, err
	}
	if w.effLight, err = NewEfficiencyFunction(FlavorLight, algo, ch); err != nil {
		return nil, err
	}
	return w, nil
}

// Algorithm returns the working point the weigher was built for.
func (w *Weigher) Algorithm() Algorithm { return w.algo }

// Channel returns the lepton channel the weigher was built for.
func (w *Weigher) Channel() Channel { return w.channel }

// HeavyShift returns the systematic shift applied to b and c jets.
func (w *Weigher) HeavyShift() Shift { return w.heavyShift }

// LightShift returns the systematic shift applied to light jets.
func (w *Weigher) LightShift() Shift { return w.lightShift }

// Weight returns the multiplicative event weight that corrects the
// simulated tagging rate to the one measured in data: the probability of
// the observed tag pattern under data conditions divided by the same
// probability under simulation. An event with no jets weighs 1. If the
// simulation probability vanishes the ratio is undefined and the event is
// left uncorrected with weight 1.
func (w *Weigher) Weight(jets []Jet) float64 {
	data, mc := 1.0, 1.0
	for _, jet := range jets {
		c := w.contribution(jet)
		data *= c.DataProb
		mc *= c.MCProb
	}
	if mc == 0 {
		return 1.0
	}
	return data / mc
}

// Explain computes the same weight as Weight along with the per-jet
// probability breakdown.
func (w *Weigher) Explain(jets []Jet) Result {
	res := Result{Weight: 1.0, Jets: len(jets)}
	if len(jets) == 0 {
		return res
	}

	contribs := make([]JetContribution, len(jets))
	dataProbs := make([]float64, len(jets))
	mcProbs := make([]float64, len(jets))
	for i, jet := range jets {
		contribs[i] = w.contribution(jet)
		dataProbs[i] = contribs[i].DataProb
		mcProbs[i] = contribs[i].MCProb
	}

	mc := floats.Prod(mcProbs)
	if mc == 0 {
		res.Degenerate = true
	} else {
		res.Weight = floats.Prod(dataProbs) / mc
	}
	res.Contributions = contribs
	return res
}

// contribution evaluates one jet's data and simulation probabilities.
// Tagged jets contribute sf*eff against eff; untagged jets contribute
// 1-sf*eff against 1-eff. Both data-side terms are clamped into [0, 1]
// because a shifted scale factor can push the raw product outside the
// probability range.
func (w *Weigher) contribution(jet Jet) JetContribution {
	sf, eff, shift := w.pair(jet.Flavor)

	c := JetContribution{
		Flavor:      jet.Flavor.canonical(),
		PT:          jet.PT,
		Tagged:      jet.Tagged,
		ScaleFactor: shifted(sf, shift, jet.PT),
		Efficiency:  eff.Value(jet.PT),
	}
	if jet.Tagged {
		c.DataProb = c.ScaleFactor * c.Efficiency
		if c.DataProb > 1 {
			c.DataProb = 1
		}
		c.MCProb = c.Efficiency
		return c
	}
	c.DataProb = 1 - c.ScaleFactor*c.Efficiency
	if c.DataProb < 0 {
		c.DataProb = 0
	}
	c.MCProb = 1 - c.Efficiency
	return c
}

// pair selects the scale factor, efficiency, and systematic axis for a
// flavor. The b and c flavors shift together on the heavy axis.
func (w *Weigher) pair(f Flavor) (sf, eff Function, shift Shift) {
	switch f.canonical() {
	case FlavorB:
		return w.scaleB, w.effB, w.heavyShift
	case FlavorC:
		return w.scaleC, w.effC, w.heavyShift
	default:
		return w.scaleLight, w.effLight, w.lightShift
	}
}

func shifted(fn Function, s Shift, pt float64) float64 {
	switch s {
	case ShiftUp:
		return fn.ValuePlus(pt)
	case ShiftDown:
		return fn.ValueMinus(pt)
	default:
		return fn.Value(pt)
	}
}
