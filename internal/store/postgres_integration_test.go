//go:build integration

package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		_, _ = s.pool.Exec(ctx, "TRUNCATE btag_batches CASCADE")
		s.Close()
	})

	return s
}

func TestCreateAndGetBatch(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	b := &BatchRecord{
		Sample:       "ttbar_semilep",
		Algorithm:    "csvm",
		Channel:      "muon",
		HeavyShift:   "nominal",
		LightShift:   "nominal",
		Events:       1000,
		Jets:         4120,
		Degenerate:   2,
		MeanWeight:   0.962,
		StdDevWeight: 0.041,
		MinWeight:    0.805,
		MaxWeight:    1.118,
	}

	if err := s.CreateBatch(ctx, b); err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}
	if b.ID == uuid.Nil {
		t.Fatal("expected non-nil batch ID after create")
	}
	if b.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	got, err := s.GetBatch(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetBatch failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected batch, got nil")
	}
	if got.Sample != "ttbar_semilep" {
		t.Errorf("expected sample 'ttbar_semilep', got '%s'", got.Sample)
	}
	if got.Events != 1000 || got.Jets != 4120 || got.Degenerate != 2 {
		t.Errorf("counts wrong: %+v", got)
	}
	if got.MeanWeight != 0.962 {
		t.Errorf("expected mean weight 0.962, got %v", got.MeanWeight)
	}
}

func TestGetBatchMissing(t *testing.T) {
	s := setupTestDB(t)

	got, err := s.GetBatch(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetBatch failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing batch, got %+v", got)
	}
}

func TestListBatchesWithFilters(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	batches := []*BatchRecord{
		{Sample: "ttbar", Algorithm: "csvm", Channel: "muon", HeavyShift: "nominal", LightShift: "nominal", Events: 10, MeanWeight: 0.95, MinWeight: 0.9, MaxWeight: 1.0},
		{Sample: "ttbar", Algorithm: "csvt", Channel: "muon", HeavyShift: "up", LightShift: "nominal", Events: 10, MeanWeight: 0.97, MinWeight: 0.9, MaxWeight: 1.1},
		{Sample: "wjets", Algorithm: "csvm", Channel: "electron", HeavyShift: "nominal", LightShift: "down", Events: 10, MeanWeight: 1.01, MinWeight: 0.9, MaxWeight: 1.2},
	}
	for _, b := range batches {
		if err := s.CreateBatch(ctx, b); err != nil {
			t.Fatalf("CreateBatch failed: %v", err)
		}
	}

	result, err := s.ListBatches(ctx, BatchFilter{Sample: "ttbar"})
	if err != nil {
		t.Fatalf("ListBatches failed: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("expected 2 ttbar batches, got %d", len(result))
	}

	result, err = s.ListBatches(ctx, BatchFilter{Algorithm: "csvm"})
	if err != nil {
		t.Fatalf("ListBatches failed: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("expected 2 csvm batches, got %d", len(result))
	}

	result, err = s.ListBatches(ctx, BatchFilter{Sample: "ttbar", Algorithm: "csvm"})
	if err != nil {
		t.Fatalf("ListBatches failed: %v", err)
	}
	if len(result) != 1 {
		t.Errorf("expected 1 batch for combined filter, got %d", len(result))
	}

	result, err = s.ListBatches(ctx, BatchFilter{Channel: "electron"})
	if err != nil {
		t.Fatalf("ListBatches failed: %v", err)
	}
	if len(result) != 1 {
		t.Errorf("expected 1 electron batch, got %d", len(result))
	}
}

func TestGetStatsAggregates(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	batches := []*BatchRecord{
		{Sample: "ttbar", Algorithm: "csvm", Channel: "muon", HeavyShift: "nominal", LightShift: "nominal",
			Events: 100, Jets: 400, Degenerate: 1, MeanWeight: 0.90, MinWeight: 0.8, MaxWeight: 1.0},
		{Sample: "wjets", Algorithm: "csvm", Channel: "muon", HeavyShift: "nominal", LightShift: "nominal",
			Events: 300, Jets: 900, Degenerate: 0, MeanWeight: 1.00, MinWeight: 0.9, MaxWeight: 1.1},
	}
	for _, b := range batches {
		if err := s.CreateBatch(ctx, b); err != nil {
			t.Fatalf("CreateBatch failed: %v", err)
		}
	}

	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalBatches != 2 {
		t.Errorf("expected 2 batches, got %d", stats.TotalBatches)
	}
	if stats.TotalEvents != 400 || stats.TotalJets != 1300 || stats.TotalDegenerate != 1 {
		t.Errorf("totals wrong: %+v", stats)
	}
	// (0.90*100 + 1.00*300) / 400 = 0.975
	if stats.AvgWeight < 0.974 || stats.AvgWeight > 0.976 {
		t.Errorf("expected event-weighted average 0.975, got %v", stats.AvgWeight)
	}
}

func TestGetStatsEmpty(t *testing.T) {
	s := setupTestDB(t)

	stats, err := s.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalBatches != 0 || stats.AvgWeight != 0 {
		t.Errorf("expected zero stats on empty table, got %+v", stats)
	}
}
