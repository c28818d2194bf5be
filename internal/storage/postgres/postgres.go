// Package postgres provides PostgreSQL persistence for the best-runs list
// using pgx v5.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soverby/diceforge/internal/config"
	"github.com/soverby/diceforge/internal/storage"
)

// Pool wraps a pgx connection pool with health-check and lifecycle methods.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool creates a new PostgreSQL connection pool from the given
// configuration.
//
// Precondition: cfg must contain valid database connection parameters.
// Postcondition: Returns a connected Pool or a non-nil error. The pool is
// ready for queries upon successful return.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Pool{pool: pool}, nil
}

// Health checks that the database is reachable within the given timeout.
//
// Postcondition: Returns nil if the database responds within the timeout.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.pool.Ping(ctx)
}

// Close releases all pool resources.
//
// Postcondition: The pool is no longer usable after calling Close.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB returns the underlying pgxpool.Pool.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}

// RunStore is the PostgreSQL implementation of storage.Store. Save replaces
// the whole list inside one transaction, so the engine's load-then-save
// sequence cannot lose updates to an interleaved writer.
type RunStore struct {
	db *pgxpool.Pool
}

// NewRunStore creates a RunStore backed by the given pool.
//
// Precondition: pool must be a valid, open Pool.
func NewRunStore(pool *Pool) *RunStore {
	return &RunStore{db: pool.DB()}
}

// Load returns all stored runs sorted descending by rounds survived.
func (s *RunStore) Load(ctx context.Context) ([]storage.RunSummary, error) {
	rows, err := s.db.Query(ctx,
		`SELECT class, rounds_survived, enemies_defeated, damage_dealt, gold_earned, recorded_at
		 FROM best_runs
		 ORDER BY rounds_survived DESC, recorded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying best runs: %w", err)
	}
	defer rows.Close()

	var runs []storage.RunSummary
	for rows.Next() {
		var r storage.RunSummary
		if err := rows.Scan(&r.Class, &r.RoundsSurvived, &r.EnemiesDefeated, &r.DamageDealt, &r.GoldEarned, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning best run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating best runs: %w", err)
	}
	return runs, nil
}

// Save replaces the stored runs with the given list in a single transaction.
func (s *RunStore) Save(ctx context.Context, runs []storage.RunSummary) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM best_runs`); err != nil {
		return fmt.Errorf("clearing best runs: %w", err)
	}
	for _, r := range runs {
		_, err := tx.Exec(ctx,
			`INSERT INTO best_runs (class, rounds_survived, enemies_defeated, damage_dealt, gold_earned, recorded_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			r.Class, r.RoundsSurvived, r.EnemiesDefeated, r.DamageDealt, r.GoldEarned, r.RecordedAt)
		if err != nil {
			return fmt.Errorf("inserting best run: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing best runs: %w", err)
	}
	return nil
}
