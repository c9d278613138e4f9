package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store backend names.
const (
	BackendCSV      = "csv"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Backends lists every backend Open accepts.
var Backends = []string{BackendCSV, BackendPostgres, BackendSQLite}

// Options selects and locates a store backend.
type Options struct {
	Backend     string
	CSVPath     string
	SQLitePath  string
	DatabaseURL string
}

// Open returns the Store for opts.Backend. An empty backend means csv.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendCSV:
		return NewLocalCSVSubmissionRepository(opts.CSVPath), nil
	case BackendSQLite:
		repo, err := OpenSQLiteSubmissionRepository(opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case BackendPostgres:
		pool, err := NewPool(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres store: %w", err)
		}
		return NewPgSubmissionRepository(pool), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// NewPool は PostgreSQL 接続プールを生成する
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
