package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ipede/app-admin-service/internal/infrastructure/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Querier is the query surface shared by the pool and a transaction. The
// unit of work hands repositories a transaction through this interface so
// staged mutations stay invisible until commit.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres represents a PostgreSQL database connection
type Postgres struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// NewPostgres creates a new PostgreSQL connection
func NewPostgres(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Postgres, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("error parsing database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("error creating connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	return &Postgres{
		pool: pool,
		log:  log,
	}, nil
}

// Close closes the database connection
func (p *Postgres) Close() {
	p.pool.Close()
}

// BeginTx starts a new transaction
func (p *Postgres) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return p.pool.BeginTx(ctx, pgx.TxOptions{})
}

// Ping checks if the database connection is alive
func (p *Postgres) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.pool.Ping(ctx)
}

// txQuerier adapts a pgx transaction to the Querier interface
type txQuerier struct {
	tx  pgx.Tx
	log *zap.Logger
}

// NewTxQuerier wraps a transaction for use by repositories
func NewTxQuerier(tx pgx.Tx, log *zap.Logger) Querier {
	return &txQuerier{tx: tx, log: log}
}

// Exec executes a statement inside the transaction
func (q *txQuerier) Exec(ctx context.Context, sql string, args ...any) error {
	_, err := q.tx.Exec(ctx, sql, args...)
	if err != nil {
		q.log.Error("Exec error", zap.String("sql", sql), zap.Error(err))
	}
	return err
}

// Query executes a query that returns rows inside the transaction
func (q *txQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return q.tx.Query(ctx, sql, args...)
}

// QueryRow executes a query that is expected to return at most one row
func (q *txQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return q.tx.QueryRow(ctx, sql, args...)
}
