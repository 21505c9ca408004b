package btag

import "testing"

func TestEfficiencyVariantsEqualCentralValue(t *testing.T) {
	for _, algo := range Algorithms() {
		for _, ch := range Channels() {
			for _, flavor := range []Flavor{FlavorB, FlavorC, FlavorLight} {
				fn, err := NewEfficiencyFunction(flavor, algo, ch)
				if err != nil {
					t.Fatalf("NewEfficiencyFunction(%s, %s, %s): %v", flavor, algo, ch, err)
				}
				for _, pt := range ptGrid {
					v := fn.Value(pt)
					if fn.ValuePlus(pt) != v || fn.ValueMinus(pt) != v {
						t.Errorf("%s/%s/%s at pt=%v: variants differ from central value", flavor, algo, ch, pt)
					}
				}
			}
		}
	}
}

func TestEfficiencyClampsBothEnds(t *testing.T) {
	fn, err := NewEfficiencyFunction(FlavorB, CSVMedium, MuonChannel)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := fn.Value(5), fn.Value(20); got != want {
		t.Errorf("below range: got %v, want first bin value %v", got, want)
	}
	if got, want := fn.Value(3000), fn.Value(500); got != want {
		t.Errorf("above range: got %v, want last bin value %v", got, want)
	}
}

func TestEfficiencyOrderingAcrossWorkingPoints(t *testing.T) {
	// Tighter working points tag less of everything.
	for _, ch := range Channels() {
		for _, flavor := range []Flavor{FlavorB, FlavorC, FlavorLight} {
			loose, _ := NewEfficiencyFunction(flavor, CSVLoose, ch)
			medium, _ := NewEfficiencyFunction(flavor, CSVMedium, ch)
			tight, _ := NewEfficiencyFunction(flavor, CSVTight, ch)
			for _, pt := range ptGrid {
				l, m, ti := loose.Value(pt), medium.Value(pt), tight.Value(pt)
				if !(l > m && m > ti) {
					t.Errorf("%s/%s at pt=%v: expected loose > medium > tight, got %v / %v / %v",
						flavor, ch, pt, l, m, ti)
				}
			}
		}
	}
}

func TestNewEfficiencyFunctionUnknownKeys(t *testing.T) {
	if _, err := NewEfficiencyFunction(FlavorB, Algorithm("tcheb"), MuonChannel); err == nil {
		t.Error("expected error for unknown algorithm")
	}
	if _, err := NewEfficiencyFunction(FlavorB, CSVMedium, Channel("tau")); err == nil {
		t.Error("expected error for unknown channel")
	}
}

func TestNewEfficiencyFunctionUnknownFlavorIsLight(t *testing.T) {
	got, err := NewEfficiencyFunction(Flavor("pileup"), CSVTight, ElectronChannel)
	if err != nil {
		t.Fatal(err)
	}
	light, err := NewEfficiencyFunction(FlavorLight, CSVTight, ElectronChannel)
	if err != nil {
		t.Fatal(err)
	}
	for _, pt := range ptGrid {
		if got.Value(pt) != light.Value(pt) {
			t.Fatalf("unknown flavor at pt=%v: got %v, want light value %v", pt, got.Value(pt), light.Value(pt))
		}
	}
}
