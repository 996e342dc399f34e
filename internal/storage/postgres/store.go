package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"swapScope/internal/model"
)

// Schema creates the tables the store writes to.
const Schema = `
CREATE TABLE IF NOT EXISTS pool_snapshots (
	key_hash      TEXT        NOT NULL,
	token0        TEXT        NOT NULL,
	token1        TEXT        NOT NULL,
	fee           TEXT        NOT NULL,
	tick_spacing  BIGINT      NOT NULL,
	extension     TEXT        NOT NULL,
	sqrt_ratio    TEXT        NOT NULL,
	tick          BIGINT      NOT NULL,
	liquidity     NUMERIC     NOT NULL,
	event_id      TEXT,
	captured_at   TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (key_hash, captured_at)
);
CREATE TABLE IF NOT EXISTS swap_journal (
	id             TEXT        NOT NULL,
	attempt        INT         NOT NULL,
	token_in       TEXT        NOT NULL,
	token_out      TEXT        NOT NULL,
	amount_in      TEXT        NOT NULL,
	amount_in_base NUMERIC,
	quote_out      TEXT,
	min_out_base   NUMERIC,
	pool_token0    TEXT,
	pool_token1    TEXT,
	pool_fee       TEXT,
	outcome        TEXT        NOT NULL,
	tx_hash        TEXT,
	error          TEXT,
	recorded_at    TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (id, attempt)
);
`

// Store persists pool snapshots and the swap journal.
type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool, now: time.Now}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Migrate applies Schema.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// InsertPoolSnapshots records the current state of every pool under one capture time.
func (s *Store) InsertPoolSnapshots(ctx context.Context, pools []model.Pool) error {
	if len(pools) == 0 {
		return nil
	}
	capturedAt := s.now().UTC()
	batch := &pgx.Batch{}
	for _, pool := range pools {
		var eventID *string
		if pool.LastUpdate != nil {
			eventID = &pool.LastUpdate.EventID
		}
		batch.Queue(`
			INSERT INTO pool_snapshots (
				key_hash, token0, token1, fee, tick_spacing, extension, sqrt_ratio, tick, liquidity, event_id, captured_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (key_hash, captured_at) DO NOTHING
		`,
			pool.KeyHash,
			pool.Token0,
			pool.Token1,
			pool.Fee,
			pool.TickSpacing,
			pool.Extension,
			pool.SqrtRatio,
			pool.Tick,
			pool.LiquidityInt().String(),
			eventID,
			capturedAt,
		)
	}
	return s.sendBatch(ctx, batch, len(pools))
}

// PutSwapRecords upserts journaled attempts keyed by id and attempt.
func (s *Store) PutSwapRecords(records []model.SwapRecord) error {
	return s.InsertSwapRecords(context.Background(), records)
}

func (s *Store) InsertSwapRecords(ctx context.Context, records []model.SwapRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range records {
		recordedAt, err := time.Parse(time.RFC3339Nano, r.RecordedAt)
		if err != nil {
			recordedAt = s.now().UTC()
		}
		batch.Queue(`
			INSERT INTO swap_journal (
				id, attempt, token_in, token_out, amount_in, amount_in_base, quote_out, min_out_base,
				pool_token0, pool_token1, pool_fee, outcome, tx_hash, error, recorded_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
			ON CONFLICT (id, attempt)
			DO UPDATE SET
				outcome = EXCLUDED.outcome,
				tx_hash = EXCLUDED.tx_hash,
				error = EXCLUDED.error,
				recorded_at = EXCLUDED.recorded_at
		`,
			r.ID,
			r.Attempt,
			r.TokenIn,
			r.TokenOut,
			r.AmountIn,
			nullable(r.AmountInBase),
			r.QuoteOut,
			nullable(r.MinOutBase),
			r.PoolKey.Token0,
			r.PoolKey.Token1,
			r.PoolKey.Fee,
			r.Outcome,
			nullable(r.TxHash),
			nullable(r.Error),
			recordedAt,
		)
	}
	return s.sendBatch(ctx, batch, len(records))
}

func (s *Store) sendBatch(ctx context.Context, batch *pgx.Batch, n int) error {
	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < n; i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func nullable(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
