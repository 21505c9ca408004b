package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kripav/btagweight/internal/metrics"
	"github.com/kripav/btagweight/internal/store"
	"github.com/kripav/btagweight/internal/worker"
)

func NewRouter(s store.Store, wk *worker.Worker, m *metrics.Metrics, adminToken string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	weights := NewWeightsHandler(wk, m, logger)
	batches := NewBatchesHandler(s, wk)
	functions := NewFunctionsHandler()
	admin := NewAdminHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/weights", weights.Weigh)
		r.Post("/weights/explain", weights.Explain)

		r.Post("/batches", batches.Create)
		r.Get("/batches", batches.List)
		r.Get("/batches/{id}", batches.Get)

		r.Get("/functions", functions.Evaluate)
		r.Get("/algorithms", functions.Catalog)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Get("/stats", admin.Stats)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
