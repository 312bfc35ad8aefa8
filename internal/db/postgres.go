package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/careerportal/internal/config"
	"github.com/yigit/careerportal/internal/pkg/helpers"
	"github.com/yigit/careerportal/internal/pkg/logger"
)

// applicationName tags portal sessions in pg_stat_activity
const applicationName = "careerportal"

// PostgresDB database connection structure
type PostgresDB struct {
	Pool *pgxpool.Pool
}

// poolConfig maps the database section of cfg onto a pgxpool configuration
func poolConfig(cfg *config.Config) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	pc.MaxConns = int32(cfg.Database.MaxOpenConns)
	pc.MinConns = int32(cfg.Database.MaxIdleConns)
	pc.MaxConnLifetime = helpers.ParseDuration(cfg.Database.ConnMaxLifetime, time.Hour)
	pc.MaxConnIdleTime = helpers.ParseDuration(cfg.Database.ConnMaxIdleTime, 15*time.Minute)
	pc.HealthCheckPeriod = helpers.ParseDuration(cfg.Database.HealthCheck, time.Minute)
	pc.ConnConfig.ConnectTimeout = helpers.ParseDuration(cfg.Database.ConnectTimeout, 10*time.Second)
	pc.ConnConfig.RuntimeParams["application_name"] = applicationName

	// the background health check covers idle connections; a ping per acquire is opt-in
	if cfg.Database.PingOnAcquire {
		pc.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
			if err := conn.Ping(ctx); err != nil {
				logger.Warn().Err(err).Msg("Dropping unhealthy pooled connection")
				return false
			}
			return true
		}
	}

	return pc, nil
}

// NewPostgresDB opens the pool and checks it answers within the connect timeout
func NewPostgresDB(cfg *config.Config) (*PostgresDB, error) {
	pc, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pc.ConnConfig.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Int32("maxConns", pc.MaxConns).
		Dur("healthCheck", pc.HealthCheckPeriod).
		Msg("Connected to PostgreSQL")
	return &PostgresDB{Pool: pool}, nil
}

// Close releases the pool
func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx pgx.Tx) error

// WithTransaction begins a transaction on pool, runs fn and commits, rolling back on error or panic
func WithTransaction(ctx context.Context, pool *pgxpool.Pool, fn TransactionFn) error {
	_, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
