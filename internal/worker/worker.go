// Package worker drives batch weighing: it resolves calibration functions
// for a request, weighs every event, persists the batch record, and keeps
// the bus informed.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kripav/btagweight/internal/btag"
	"github.com/kripav/btagweight/internal/bus"
	"github.com/kripav/btagweight/internal/config"
	"github.com/kripav/btagweight/internal/metrics"
	"github.com/kripav/btagweight/internal/store"
	"github.com/kripav/btagweight/internal/summary"
)

type Worker struct {
	store   store.Store
	bus     bus.Client
	metrics *metrics.Metrics
	cfg     *config.Config
	logger  *slog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(s store.Store, b bus.Client, m *metrics.Metrics, cfg *config.Config, logger *slog.Logger) *Worker {
	return &Worker{
		store:   s,
		bus:     b,
		metrics: m,
		cfg:     cfg,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
}

// Start launches the periodic stats publisher. Without a bus there is
// nothing to publish to, so no goroutine is started.
func (w *Worker) Start(ctx context.Context) {
	if w.bus == nil {
		return
	}
	w.wg.Add(1)
	go w.statsLoop(ctx)
}

func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
}

func (w *Worker) statsLoop(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.cfg.StatsInterval())
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.publishStats(ctx)
		}
	}
}

func (w *Worker) publishStats(ctx context.Context) {
	stats, err := w.store.GetStats(ctx)
	if err != nil {
		w.logger.Error("failed to load batch stats", "error", err)
		return
	}
	_ = w.bus.Publish(bus.SubjectStats, bus.StatsEvent{
		Batches:    stats.TotalBatches,
		Events:     stats.TotalEvents,
		Jets:       stats.TotalJets,
		Degenerate: stats.TotalDegenerate,
		AvgWeight:  stats.AvgWeight,
		Timestamp:  time.Now(),
	})
}

// SetupSubscriptions registers the NATS subscription for batch requests.
// Subscribers join a queue group so that each request lands on one
// instance however many are running.
func (w *Worker) SetupSubscriptions() {
	if w.bus == nil {
		return
	}

	_ = w.bus.QueueSubscribe(bus.SubjectBatchRequest, bus.QueueWorkers, func(_ string, data []byte) {
		var req bus.BatchRequestEvent
		if err := json.Unmarshal(data, &req); err != nil {
			w.logger.Warn("invalid batch request event", "error", err)
			return
		}
		w.handleBatchRequest(context.Background(), req)
	})
}

func (w *Worker) handleBatchRequest(ctx context.Context, req bus.BatchRequestEvent) {
	weigher, err := w.ResolveWeigher(req.Algorithm, req.Channel, req.HeavyShift, req.LightShift)
	if err != nil {
		w.failBatch(req.Sample, err)
		return
	}
	if _, _, err := w.ProcessBatch(ctx, req.Sample, weigher, req.Events); err != nil {
		w.failBatch(req.Sample, err)
	}
}

func (w *Worker) failBatch(sample string, err error) {
	w.logger.Error("batch request failed", "sample", sample, "error", err)
	w.metrics.IncBatchErrors()
	if w.bus != nil {
		_ = w.bus.Publish(bus.SubjectBatchFailed, bus.BatchFailedEvent{
			Sample: sample,
			Error:  err.Error(),
		})
	}
}

// ResolveWeigher builds a weigher from request-level labels, falling back
// to the configured defaults for any label left empty. Errors here are
// caller errors: an unknown algorithm, channel, or shift.
func (w *Worker) ResolveWeigher(algorithm, channel, heavyShift, lightShift string) (*btag.Weigher, error) {
	if algorithm == "" {
		algorithm = w.cfg.Weighing.Algorithm
	}
	if channel == "" {
		channel = w.cfg.Weighing.Channel
	}
	if heavyShift == "" {
		heavyShift = w.cfg.Weighing.HeavyShift
	}
	if lightShift == "" {
		lightShift = w.cfg.Weighing.LightShift
	}

	algo, err := btag.ParseAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	ch, err := btag.ParseChannel(channel)
	if err != nil {
		return nil, err
	}
	hs, err := btag.ParseShift(heavyShift)
	if err != nil {
		return nil, err
	}
	ls, err := btag.ParseShift(lightShift)
	if err != nil {
		return nil, err
	}
	return btag.NewWeigher(algo, ch, hs, ls)
}

// Weigher weighs single events and reports the calibration labels it was
// built with. *btag.Weigher satisfies it.
type Weigher interface {
	Algorithm() btag.Algorithm
	Channel() btag.Channel
	HeavyShift() btag.Shift
	LightShift() btag.Shift
	Explain(jets []btag.Jet) btag.Result
}

// ProcessBatch weighs every event in the batch, persists the distribution
// summary, and announces completion on the bus. The returned record carries
// the store-assigned ID. Events that cannot be corrected keep weight 1 and
// are counted as degenerate rather than failing the batch.
func (w *Worker) ProcessBatch(ctx context.Context, sample string, weigher Weigher, events [][]btag.Jet) (*store.BatchRecord, summary.Summary, error) {
	if sample == "" {
		return nil, summary.Summary{}, fmt.Errorf("sample name is required")
	}

	weights := make([]float64, 0, len(events))
	jets, degenerate := 0, 0
	for _, eventJets := range events {
		btag.NormalizeJets(eventJets)
		res := weigher.Explain(eventJets)

		weights = append(weights, res.Weight)
		jets += res.Jets
		if res.Degenerate {
			degenerate++
			w.metrics.IncDegenerate()
		}
		w.metrics.IncEventsWeighted()
		w.metrics.ObserveEventWeight(res.Weight)
	}
	w.metrics.AddJetsWeighted(jets)
	if degenerate > 0 {
		w.logger.Warn("events left at neutral weight", "sample", sample, "count", degenerate)
	}

	sum := summary.Summarize(weights, jets, degenerate, summary.Config{
		Bins: w.cfg.Summary.HistBins,
		Lo:   w.cfg.Summary.HistMin,
		Hi:   w.cfg.Summary.HistMax,
	})

	record := &store.BatchRecord{
		Sample:       sample,
		Algorithm:    string(weigher.Algorithm()),
		Channel:      string(weigher.Channel()),
		HeavyShift:   string(weigher.HeavyShift()),
		LightShift:   string(weigher.LightShift()),
		Events:       sum.Events,
		Jets:         sum.Jets,
		Degenerate:   sum.Degenerate,
		MeanWeight:   sum.Mean,
		StdDevWeight: sum.StdDev,
		MinWeight:    sum.Min,
		MaxWeight:    sum.Max,
	}
	if err := w.store.CreateBatch(ctx, record); err != nil {
		return nil, summary.Summary{}, fmt.Errorf("persist batch: %w", err)
	}
	w.metrics.IncBatchesProcessed()

	if w.bus != nil {
		_ = w.bus.Publish(bus.SubjectBatchCompleted(record.ID.String()), bus.BatchCompletedEvent{
			BatchID:    record.ID.String(),
			Sample:     record.Sample,
			Events:     record.Events,
			Jets:       record.Jets,
			Degenerate: record.Degenerate,
			MeanWeight: record.MeanWeight,
		})
	}

	w.logger.Info("batch weighed",
		"batch_id", record.ID,
		"sample", sample,
		"events", record.Events,
		"jets", record.Jets,
		"degenerate", record.Degenerate,
		"mean_weight", record.MeanWeight)
	return record, sum, nil
}
