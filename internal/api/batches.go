package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kripav/btagweight/internal/btag"
	"github.com/kripav/btagweight/internal/store"
	"github.com/kripav/btagweight/internal/summary"
	"github.com/kripav/btagweight/internal/worker"
)

// BatchesHandler weighs whole samples and records the outcome.
type BatchesHandler struct {
	store  store.Store
	worker *worker.Worker
}

func NewBatchesHandler(s store.Store, wk *worker.Worker) *BatchesHandler {
	return &BatchesHandler{store: s, worker: wk}
}

type CreateBatchRequest struct {
	Sample     string       `json:"sample"`
	Algorithm  string       `json:"algorithm,omitempty"`
	Channel    string       `json:"channel,omitempty"`
	HeavyShift string       `json:"heavy_shift,omitempty"`
	LightShift string       `json:"light_shift,omitempty"`
	Events     [][]btag.Jet `json:"events"`
}

// CreateBatchResponse pairs the persisted record with the full weight
// distribution, including the histogram that is not stored.
type CreateBatchResponse struct {
	Batch   *store.BatchRecord `json:"batch"`
	Summary summary.Summary    `json:"summary"`
}

func (h *BatchesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Sample == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "sample required"})
		return
	}
	if len(req.Events) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "at least one event required"})
		return
	}

	weigher, err := h.worker.ResolveWeigher(req.Algorithm, req.Channel, req.HeavyShift, req.LightShift)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	record, sum, err := h.worker.ProcessBatch(r.Context(), req.Sample, weigher, req.Events)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, CreateBatchResponse{Batch: record, Summary: sum})
}

func (h *BatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.BatchFilter{
		Sample:    r.URL.Query().Get("sample"),
		Algorithm: r.URL.Query().Get("algorithm"),
		Channel:   r.URL.Query().Get("channel"),
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			filter.Limit = n
		}
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			filter.Offset = n
		}
	}

	batches, err := h.store.ListBatches(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if batches == nil {
		batches = []*store.BatchRecord{}
	}
	writeJSON(w, http.StatusOK, batches)
}

func (h *BatchesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid batch id"})
		return
	}

	batch, err := h.store.GetBatch(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if batch == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "batch not found"})
		return
	}
	writeJSON(w, http.StatusOK, batch)
}
