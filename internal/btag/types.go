package btag

import (
	"fmt"
	"strings"
)

// Flavor is the calibration class of the parton a jet originated from.
// The calibration distinguishes three classes: b, c, and everything else.
type Flavor string

const (
	FlavorB     Flavor = "b"
	FlavorC     Flavor = "c"
	FlavorLight Flavor = "light"
)

// ParseFlavor maps a flavor label to its calibration class. Labels may be
// names or PDG codes; anything not recognized as b or c is light, including
// gluons and pileup jets.
func ParseFlavor(s string) Flavor {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "b", "bottom", "5":
		return FlavorB
	case "c", "charm", "4":
		return FlavorC
	default:
		return FlavorLight
	}
}

// Flavors returns the calibration classes in a stable order.
func Flavors() []Flavor {
	return []Flavor{FlavorB, FlavorC, FlavorLight}
}

// canonical folds any non-b, non-c value into the light class so that
// lookups never miss on a flavor constructed outside ParseFlavor.
func (f Flavor) canonical() Flavor {
	switch f {
	case FlavorB, FlavorC:
		return f
	default:
		return FlavorLight
	}
}

// Algorithm identifies a tagging algorithm working point. Each working
// point carries its own scale-factor fits and efficiency tables.
type Algorithm string

const (
	CSVLoose  Algorithm = "csvl"
	CSVMedium Algorithm = "csvm"
	CSVTight  Algorithm = "csvt"
)

// Algorithms returns the calibrated working points in a stable order.
func Algorithms() []Algorithm {
	return []Algorithm{CSVLoose, CSVMedium, CSVTight}
}

// ParseAlgorithm resolves a working-point label.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csvl", "csv_loose", "csvloose":
		return CSVLoose, nil
	case "csvm", "csv_medium", "csvmedium":
		return CSVMedium, nil
	case "csvt", "csv_tight", "csvtight":
		return CSVTight, nil
	default:
		return "", fmt.Errorf("btag: unknown tagging algorithm %q", s)
	}
}

// Channel is the lepton selection the sample was produced with. Efficiency
// tables are measured per channel; scale factors are channel-independent.
type Channel string

const (
	ElectronChannel Channel = "electron"
	MuonChannel     Channel = "muon"
)

// Channels returns the calibrated lepton channels in a stable order.
func Channels() []Channel {
	return []Channel{ElectronChannel, MuonChannel}
}

// ParseChannel resolves a lepton-channel label.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "electron", "ele", "e":
		return ElectronChannel, nil
	case "muon", "mu":
		return MuonChannel, nil
	default:
		return "", fmt.Errorf("btag: unknown lepton channel %q", s)
	}
}

// Shift selects which systematic variant of a scale factor is evaluated.
// The heavy (b and c) and light axes shift independently.
type Shift string

const (
	ShiftNominal Shift = "nominal"
	ShiftUp      Shift = "up"
	ShiftDown    Shift = "down"
)

// Shifts returns the systematic variants in a stable order.
func Shifts() []Shift {
	return []Shift{ShiftNominal, ShiftUp, ShiftDown}
}

// ParseShift resolves a systematic-shift label. The empty string means
// nominal so that callers can leave the field unset.
func ParseShift(s string) (Shift, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nominal", "none":
		return ShiftNominal, nil
	case "up", "plus":
		return ShiftUp, nil
	case "down", "minus":
		return ShiftDown, nil
	default:
		return "", fmt.Errorf("btag: unknown systematic shift %q", s)
	}
}

func (s Shift) valid() bool {
	switch s {
	case ShiftNominal, ShiftUp, ShiftDown:
		return true
	}
	return false
}

// Jet is one reconstructed jet as the host event store hands it over:
// the calibration class of its originating parton, its transverse momentum
// in GeV, and whether the tagging algorithm selected it.
type Jet struct {
	Flavor Flavor  `json:"flavor"`
	PT     float64 `json:"pt"`
	Tagged bool    `json:"tagged"`
}

// NormalizeJets folds raw flavor labels into calibration classes in place.
// Decoded requests carry whatever label the producing framework used, so
// PDG codes and mixed-case names all land on the canonical three.
func NormalizeJets(jets []Jet) {
	for i := range jets {
		jets[i].Flavor = ParseFlavor(string(jets[i].Flavor))
	}
}
