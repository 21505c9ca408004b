package api

import (
	"net/http"
	"strconv"

	"github.com/kripav/btagweight/internal/btag"
)

// FunctionsHandler exposes the calibration functions themselves so that
// clients can plot or cross-check them without weighing events.
type FunctionsHandler struct{}

func NewFunctionsHandler() *FunctionsHandler {
	return &FunctionsHandler{}
}

type FunctionPoint struct {
	PT         float64 `json:"pt"`
	Scale      float64 `json:"scale"`
	ScaleUp    float64 `json:"scale_up"`
	ScaleDown  float64 `json:"scale_down"`
	Efficiency float64 `json:"efficiency"`
}

type FunctionResponse struct {
	Flavor    btag.Flavor     `json:"flavor"`
	Algorithm btag.Algorithm  `json:"algorithm"`
	Channel   btag.Channel    `json:"channel"`
	Points    []FunctionPoint `json:"points"`
}

// Evaluate samples the scale-factor and efficiency functions for one
// flavor at the requested pt values. Without pt parameters the fitted
// range is sampled in 20 GeV steps.
func (h *FunctionsHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("flavor") == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "flavor required"})
		return
	}
	flavor := btag.ParseFlavor(q.Get("flavor"))

	algo, err := btag.ParseAlgorithm(q.Get("algorithm"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	ch, err := btag.ParseChannel(q.Get("channel"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var pts []float64
	for _, s := range q["pt"] {
		pt, err := strconv.ParseFloat(s, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid pt value: " + s})
			return
		}
		pts = append(pts, pt)
	}
	if len(pts) == 0 {
		for pt := 20.0; pt <= 800.0; pt += 20.0 {
			pts = append(pts, pt)
		}
	}

	scale, err := btag.NewScaleFunction(flavor, algo)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	eff, err := btag.NewEfficiencyFunction(flavor, algo, ch)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	points := make([]FunctionPoint, len(pts))
	for i, pt := range pts {
		points[i] = FunctionPoint{
			PT:         pt,
			Scale:      scale.Value(pt),
			ScaleUp:    scale.ValuePlus(pt),
			ScaleDown:  scale.ValueMinus(pt),
			Efficiency: eff.Value(pt),
		}
	}

	writeJSON(w, http.StatusOK, FunctionResponse{
		Flavor:    flavor,
		Algorithm: algo,
		Channel:   ch,
		Points:    points,
	})
}

type CatalogResponse struct {
	Algorithms []btag.Algorithm `json:"algorithms"`
	Channels   []btag.Channel   `json:"channels"`
	Flavors    []btag.Flavor    `json:"flavors"`
	Shifts     []btag.Shift     `json:"shifts"`
}

// Catalog lists every calibrated working point and the labels requests
// may combine with it.
func (h *FunctionsHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CatalogResponse{
		Algorithms: btag.Algorithms(),
		Channels:   btag.Channels(),
		Flavors:    btag.Flavors(),
		Shifts:     btag.Shifts(),
	})
}
