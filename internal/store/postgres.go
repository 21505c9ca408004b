package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const batchColumns = `id, sample, algorithm, channel, heavy_shift, light_shift,
	events, jets, degenerate,
	mean_weight, stddev_weight, min_weight, max_weight,
	created_at`

func (s *PostgresStore) CreateBatch(ctx context.Context, b *BatchRecord) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO btag_batches (sample, algorithm, channel, heavy_shift, light_shift,
			events, jets, degenerate,
			mean_weight, stddev_weight, min_weight, max_weight)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`,
		b.Sample, b.Algorithm, b.Channel, b.HeavyShift, b.LightShift,
		b.Events, b.Jets, b.Degenerate,
		b.MeanWeight, b.StdDevWeight, b.MinWeight, b.MaxWeight,
	).Scan(&b.ID, &b.CreatedAt)
}

func (s *PostgresStore) GetBatch(ctx context.Context, id uuid.UUID) (*BatchRecord, error) {
	b := &BatchRecord{}
	err := s.pool.QueryRow(ctx, `
		SELECT `+batchColumns+`
		FROM btag_batches WHERE id = $1`, id,
	).Scan(
		&b.ID, &b.Sample, &b.Algorithm, &b.Channel, &b.HeavyShift, &b.LightShift,
		&b.Events, &b.Jets, &b.Degenerate,
		&b.MeanWeight, &b.StdDevWeight, &b.MinWeight, &b.MaxWeight,
		&b.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *PostgresStore) ListBatches(ctx context.Context, filter BatchFilter) ([]*BatchRecord, error) {
	query := `SELECT ` + batchColumns + ` FROM btag_batches WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Sample != "" {
		n++
		query += fmt.Sprintf(" AND sample = $%d", n)
		args = append(args, filter.Sample)
	}
	if filter.Algorithm != "" {
		n++
		query += fmt.Sprintf(" AND algorithm = $%d", n)
		args = append(args, filter.Algorithm)
	}
	if filter.Channel != "" {
		n++
		query += fmt.Sprintf(" AND channel = $%d", n)
		args = append(args, filter.Channel)
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBatches(rows)
}

func (s *PostgresStore) GetStats(ctx context.Context) (*BatchStats, error) {
	stats := &BatchStats{}
	// The average weight is weighted by batch size so large batches count
	// for what they are.
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(events), 0),
			COALESCE(SUM(jets), 0),
			COALESCE(SUM(degenerate), 0),
			COALESCE(SUM(mean_weight * events) / NULLIF(SUM(events), 0), 0)
		FROM btag_batches`,
	).Scan(
		&stats.TotalBatches, &stats.TotalEvents, &stats.TotalJets,
		&stats.TotalDegenerate, &stats.AvgWeight,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func scanBatches(rows pgx.Rows) ([]*BatchRecord, error) {
	var batches []*BatchRecord
	for rows.Next() {
		b := &BatchRecord{}
		err := rows.Scan(
			&b.ID, &b.Sample, &b.Algorithm, &b.Channel, &b.HeavyShift, &b.LightShift,
			&b.Events, &b.Jets, &b.Degenerate,
			&b.MeanWeight, &b.StdDevWeight, &b.MinWeight, &b.MaxWeight,
			&b.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}
