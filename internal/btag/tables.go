package btag

// Calibration constants for the 2012 dataset, 8 TeV. Scale-factor fits and
// their binned uncertainties come from the combined b-tag calibration;
// efficiencies are measured on semileptonic ttbar simulation per lepton
// channel. All fits are valid for jet pt in [20, 800] GeV.

const (
	fitPTLow  = 20.0
	fitPTHigh = 800.0
)

// heavyScaleCalib pairs the fitted scale curve with the per-bin
// uncertainties quoted alongside it.
type heavyScaleCalib struct {
	fit      ptCurve
	errEdges []float64
	errs     []float64
}

// lightScaleCalib carries the three independently fitted mistag curves.
type lightScaleCalib struct {
	nominal, up, down ptCurve
}

// scaleErrEdges are the lower edges of the uncertainty bins shared by all
// heavy-flavor scale fits.
var scaleErrEdges = []float64{
	20, 30, 40, 50, 60, 70, 80, 100, 120, 160, 210, 260, 320, 400, 500, 600,
}

var heavyScales = map[Algorithm]heavyScaleCalib{
	CSVLoose: {
		fit:      ratioCurve{norm: 0.997942, num: 0.00923753, den: 0.0096119, lo: fitPTLow, hi: fitPTHigh},
		errEdges: scaleErrEdges,
		errs: []float64{
			0.0334, 0.0189, 0.0182, 0.0193, 0.0176, 0.0158, 0.0173, 0.0178,
			0.0189, 0.0201, 0.0251, 0.0268, 0.0483, 0.0521, 0.0573, 0.0642,
		},
	},
	CSVMedium: {
		fit:      ratioCurve{norm: 0.726981, num: 0.253238, den: 0.188389, lo: fitPTLow, hi: fitPTHigh},
		errEdges: scaleErrEdges,
		errs: []float64{
			0.0415, 0.0224, 0.0212, 0.0232, 0.0207, 0.0184, 0.0209, 0.0206,
			0.0221, 0.0229, 0.0297, 0.0313, 0.0602, 0.0655, 0.0719, 0.0810,
		},
	},
	CSVTight: {
		fit:      polyCurve{coeffs: []float64{0.927563, 1.55479e-05, -1.90666e-07}, lo: fitPTLow, hi: fitPTHigh},
		errEdges: scaleErrEdges,
		errs: []float64{
			0.0515, 0.0264, 0.0272, 0.0275, 0.0248, 0.0218, 0.0253, 0.0239,
			0.0271, 0.0273, 0.0379, 0.0411, 0.0786, 0.0866, 0.0942, 0.1024,
		},
	},
}

var lightScales = map[Algorithm]lightScaleCalib{
	CSVLoose: {
		nominal: polyCurve{coeffs: []float64{1.0068, 8.1211e-05, 2.2087e-07, -2.0549e-10}, lo: fitPTLow, hi: fitPTHigh},
		up:      polyCurve{coeffs: []float64{1.0873, 1.8441e-04, 2.2643e-07, -2.1122e-10}, lo: fitPTLow, hi: fitPTHigh},
		down:    polyCurve{coeffs: []float64{0.9277, -1.6789e-05, 2.1598e-07, -1.9986e-10}, lo: fitPTLow, hi: fitPTHigh},
	},
	CSVMedium: {
		nominal: polyCurve{coeffs: []float64{0.9878, 1.0761e-04, 1.4012e-07, -1.7462e-10}, lo: fitPTLow, hi: fitPTHigh},
		up:      polyCurve{coeffs: []float64{1.0798, 2.2561e-04, 1.4431e-07, -1.7983e-10}, lo: fitPTLow, hi: fitPTHigh},
		down:    polyCurve{coeffs: []float64{0.8965, -1.3390e-06, 1.3587e-07, -1.6941e-10}, lo: fitPTLow, hi: fitPTHigh},
	},
	CSVTight: {
		nominal: polyCurve{coeffs: []float64{0.9419, 1.8627e-04, 1.5438e-07, -2.3254e-10}, lo: fitPTLow, hi: fitPTHigh},
		up:      polyCurve{coeffs: []float64{1.0542, 3.4727e-04, 1.6021e-07, -2.4108e-10}, lo: fitPTLow, hi: fitPTHigh},
		down:    polyCurve{coeffs: []float64{0.8327, 3.4270e-05, 1.4869e-07, -2.2433e-10}, lo: fitPTLow, hi: fitPTHigh},
	},
}

// effPTEdges are the lower edges of the efficiency bins shared by all
// efficiency tables.
var effPTEdges = []float64{20, 30, 40, 60, 80, 120, 240, 500}

var efficiencies = map[Algorithm]map[Channel]map[Flavor][]float64{
	CSVLoose: {
		MuonChannel: {
			FlavorB:     {0.746, 0.780, 0.804, 0.822, 0.824, 0.808, 0.752, 0.688},
			FlavorC:     {0.377, 0.392, 0.404, 0.413, 0.416, 0.410, 0.391, 0.370},
			FlavorLight: {0.082, 0.089, 0.095, 0.102, 0.110, 0.122, 0.147, 0.177},
		},
		ElectronChannel: {
			FlavorB:     {0.738, 0.772, 0.797, 0.815, 0.818, 0.801, 0.744, 0.679},
			FlavorC:     {0.370, 0.385, 0.397, 0.406, 0.409, 0.403, 0.384, 0.363},
			FlavorLight: {0.080, 0.087, 0.093, 0.100, 0.108, 0.119, 0.144, 0.174},
		},
	},
	CSVMedium: {
		MuonChannel: {
			FlavorB:     {0.584, 0.630, 0.663, 0.689, 0.693, 0.672, 0.599, 0.509},
			FlavorC:     {0.167, 0.180, 0.191, 0.199, 0.202, 0.196, 0.177, 0.154},
			FlavorLight: {0.0099, 0.0108, 0.0117, 0.0128, 0.0142, 0.0164, 0.0213, 0.0277},
		},
		ElectronChannel: {
			FlavorB:     {0.575, 0.621, 0.655, 0.681, 0.686, 0.664, 0.590, 0.500},
			FlavorC:     {0.163, 0.176, 0.186, 0.194, 0.197, 0.191, 0.172, 0.150},
			FlavorLight: {0.0096, 0.0105, 0.0114, 0.0125, 0.0138, 0.0160, 0.0208, 0.0270},
		},
	},
	CSVTight: {
		MuonChannel: {
			FlavorB:     {0.418, 0.470, 0.507, 0.535, 0.540, 0.514, 0.423, 0.325},
			FlavorC:     {0.042, 0.047, 0.052, 0.056, 0.057, 0.053, 0.044, 0.034},
			FlavorLight: {0.0012, 0.0013, 0.0015, 0.0017, 0.0020, 0.0025, 0.0036, 0.0052},
		},
		ElectronChannel: {
			FlavorB:     {0.410, 0.461, 0.499, 0.527, 0.532, 0.506, 0.415, 0.317},
			FlavorC:     {0.040, 0.046, 0.050, 0.054, 0.055, 0.052, 0.043, 0.033},
			FlavorLight: {0.0012, 0.0013, 0.0014, 0.0016, 0.0019, 0.0024, 0.0035, 0.0050},
		},
	},
}
