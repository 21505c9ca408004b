package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kripav/btagweight/internal/btag"
	"github.com/kripav/btagweight/internal/metrics"
	"github.com/kripav/btagweight/internal/worker"
)

// WeightsHandler weighs single events without persisting anything.
type WeightsHandler struct {
	worker  *worker.Worker
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewWeightsHandler(wk *worker.Worker, m *metrics.Metrics, logger *slog.Logger) *WeightsHandler {
	return &WeightsHandler{worker: wk, metrics: m, logger: logger}
}

// WeighRequest carries one event's jets plus optional overrides of the
// configured weighing defaults. Both weights endpoints share it.
type WeighRequest struct {
	Algorithm  string     `json:"algorithm,omitempty"`
	Channel    string     `json:"channel,omitempty"`
	HeavyShift string     `json:"heavy_shift,omitempty"`
	LightShift string     `json:"light_shift,omitempty"`
	Jets       []btag.Jet `json:"jets"`
}

type WeighResponse struct {
	Algorithm  string  `json:"algorithm"`
	Channel    string  `json:"channel"`
	HeavyShift string  `json:"heavy_shift"`
	LightShift string  `json:"light_shift"`
	Weight     float64 `json:"weight"`
	Jets       int     `json:"jets"`
	Degenerate bool    `json:"degenerate"`
}

// Weigh returns the scalar event weight. An event with no jets is legal
// and weighs 1.
func (h *WeightsHandler) Weigh(w http.ResponseWriter, r *http.Request) {
	var req WeighRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	weigher, err := h.worker.ResolveWeigher(req.Algorithm, req.Channel, req.HeavyShift, req.LightShift)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	btag.NormalizeJets(req.Jets)
	res := weigher.Explain(req.Jets)
	h.record(res)

	writeJSON(w, http.StatusOK, WeighResponse{
		Algorithm:  string(weigher.Algorithm()),
		Channel:    string(weigher.Channel()),
		HeavyShift: string(weigher.HeavyShift()),
		LightShift: string(weigher.LightShift()),
		Weight:     res.Weight,
		Jets:       res.Jets,
		Degenerate: res.Degenerate,
	})
}

// Explain weighs the same input and returns the per-jet breakdown.
func (h *WeightsHandler) Explain(w http.ResponseWriter, r *http.Request) {
	var req WeighRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	weigher, err := h.worker.ResolveWeigher(req.Algorithm, req.Channel, req.HeavyShift, req.LightShift)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	btag.NormalizeJets(req.Jets)
	res := weigher.Explain(req.Jets)
	h.record(res)

	writeJSON(w, http.StatusOK, res)
}

// record feeds the shared collectors so single-event requests count in the
// same totals as batch weighing.
func (h *WeightsHandler) record(res btag.Result) {
	h.metrics.IncEventsWeighted()
	h.metrics.AddJetsWeighted(res.Jets)
	h.metrics.ObserveEventWeight(res.Weight)
	if res.Degenerate {
		h.metrics.IncDegenerate()
		h.logger.Warn("event left at neutral weight", "jets", res.Jets)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
