package btag

import "fmt"

// efficiencyFunc is a tagging efficiency measured in simulation. The
// tables carry no systematic variation, so the variants return the
// central value; shifting an efficiency-driven analysis is done through
// the scale factors instead.
type efficiencyFunc struct {
	table binnedTable
}

func (f efficiencyFunc) Value(pt float64) float64      { return f.table.at(pt) }
func (f efficiencyFunc) ValuePlus(pt float64) float64  { return f.Value(pt) }
func (f efficiencyFunc) ValueMinus(pt float64) float64 { return f.Value(pt) }

// NewEfficiencyFunction returns the simulated tagging efficiency for one
// jet flavor at one working point in one lepton channel.
func NewEfficiencyFunction(flavor Flavor, algo Algorithm, ch Channel) (Function, error) {
	byChannel, ok := efficiencies[algo]
	if !ok {
		return nil, fmt.Errorf("btag: no efficiency tables for algorithm %q", algo)
	}
	byFlavor, ok := byChannel[ch]
	if !ok {
		return nil, fmt.Errorf("btag: no efficiency tables for channel %q", ch)
	}
	values, ok := byFlavor[flavor.canonical()]
	if !ok {
		return nil, fmt.Errorf("btag: no efficiency table for flavor %q", flavor)
	}
	return efficiencyFunc{table: binnedTable{edges: effPTEdges, values: values}}, nil
}
