package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BatchRecord is the persisted outcome of weighing one batch of simulated
// events: the configuration it ran under and the distribution of the
// weights it produced.
type BatchRecord struct {
	ID         uuid.UUID `json:"id"`
	Sample     string    `json:"sample"`
	Algorithm  string    `json:"algorithm"`
	Channel    string    `json:"channel"`
	HeavyShift string    `json:"heavy_shift"`
	LightShift string    `json:"light_shift"`

	// Counts
	Events     int `json:"events"`
	Jets       int `json:"jets"`
	Degenerate int `json:"degenerate"`

	// Weight distribution
	MeanWeight   float64 `json:"mean_weight"`
	StdDevWeight float64 `json:"stddev_weight"`
	MinWeight    float64 `json:"min_weight"`
	MaxWeight    float64 `json:"max_weight"`

	CreatedAt time.Time `json:"created_at"`
}

// BatchFilter narrows ListBatches. Zero values mean no constraint.
type BatchFilter struct {
	Sample    string
	Algorithm string
	Channel   string
	Limit     int
	Offset    int
}

// BatchStats aggregates over all persisted batches.
type BatchStats struct {
	TotalBatches    int     `json:"total_batches"`
	TotalEvents     int     `json:"total_events"`
	TotalJets       int     `json:"total_jets"`
	TotalDegenerate int     `json:"total_degenerate"`
	AvgWeight       float64 `json:"avg_weight"`
}

type Store interface {
	CreateBatch(ctx context.Context, b *BatchRecord) error
	GetBatch(ctx context.Context, id uuid.UUID) (*BatchRecord, error)
	ListBatches(ctx context.Context, filter BatchFilter) ([]*BatchRecord, error)
	GetStats(ctx context.Context) (*BatchStats, error)

	Close() error
}
