package bus

import (
	"time"

	"github.com/kripav/btagweight/internal/btag"
)

// BatchRequestEvent asks the worker to weigh a batch of events. Weighing
// parameters left empty fall back to the configured defaults.
type BatchRequestEvent struct {
	Sample     string       `json:"sample"`
	Algorithm  string       `json:"algorithm,omitempty"`
	Channel    string       `json:"channel,omitempty"`
	HeavyShift string       `json:"heavy_shift,omitempty"`
	LightShift string       `json:"light_shift,omitempty"`
	Events     [][]btag.Jet `json:"events"`
}

type BatchCompletedEvent struct {
	BatchID    string  `json:"batch_id"`
	Sample     string  `json:"sample"`
	Events     int     `json:"events"`
	Jets       int     `json:"jets"`
	Degenerate int     `json:"degenerate"`
	MeanWeight float64 `json:"mean_weight"`
}

type BatchFailedEvent struct {
	Sample string `json:"sample"`
	Error  string `json:"error"`
}

type StatsEvent struct {
	Batches    int       `json:"batches"`
	Events     int       `json:"events"`
	Jets       int       `json:"jets"`
	Degenerate int       `json:"degenerate"`
	AvgWeight  float64   `json:"avg_weight"`
	Timestamp  time.Time `json:"timestamp"`
}
