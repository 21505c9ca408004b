// Package summary reduces a batch of event weights to the distribution
// figures persisted with each batch record.
package summary

import (
	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Config controls the weight histogram attached to a summary.
type Config struct {
	Bins int
	Lo   float64
	Hi   float64
}

// Bin is one histogram bin. Count is a sum of weights and stays a float
// to match the histogram backend.
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count float64 `json:"count"`
}

// Summary describes the weight distribution of one processed batch.
type Summary struct {
	Events     int     `json:"events"`
	Jets       int     `json:"jets"`
	Degenerate int     `json:"degenerate"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"stddev"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Hist       []Bin   `json:"hist,omitempty"`
}

// Summarize computes the distribution snapshot for one batch of event
// weights. jets and degenerate are passthrough counts from the weighing
// pass. A batch with no events yields a zero summary.
func Summarize(weights []float64, jets, degenerate int, cfg Config) Summary {
	s := Summary{
		Events:     len(weights),
		Jets:       jets,
		Degenerate: degenerate,
	}
	if len(weights) == 0 {
		return s
	}

	s.Mean = stat.Mean(weights, nil)
	s.Min = floats.Min(weights)
	s.Max = floats.Max(weights)
	if len(weights) > 1 {
		s.StdDev = stat.StdDev(weights, nil)
	}

	if cfg.Bins > 0 && cfg.Hi > cfg.Lo {
		s.Hist = histogram(weights, cfg)
	}
	return s
}

// histogram bins the weights with hbook; weights outside [lo, hi] land in
// the under/overflow and are absent from the returned bins, which is why
// Min and Max are reported separately.
func histogram(weights []float64, cfg Config) []Bin {
	h := hbook.NewH1D(cfg.Bins, cfg.Lo, cfg.Hi)
	for _, w := range weights {
		h.Fill(w, 1)
	}

	width := (cfg.Hi - cfg.Lo) / float64(cfg.Bins)
	bins := make([]Bin, cfg.Bins)
	for i := range bins {
		x, y := h.XY(i)
		bins[i] = Bin{Lo: x, Hi: x + width, Count: y}
	}
	return bins
}
