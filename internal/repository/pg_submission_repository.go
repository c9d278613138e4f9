package repository

import (
	"context"

	"github.com/givers/contactform/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgSubmissionRepository is the PostgreSQL implementation of SubmissionRepository.
// The submissions table is created by cmd/migrate.
type PgSubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewPgSubmissionRepository creates a PgSubmissionRepository backed by the given pool.
func NewPgSubmissionRepository(pool *pgxpool.Pool) *PgSubmissionRepository {
	return &PgSubmissionRepository{pool: pool}
}

// Ensure PgSubmissionRepository implements Store at compile time.
var _ Store = (*PgSubmissionRepository)(nil)

// Append inserts a new submissions row. The BIGSERIAL id fixes insertion order.
func (r *PgSubmissionRepository) Append(ctx context.Context, sub *model.Submission) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO submissions (submitted_at, name, email, message)
		 VALUES ($1, $2, $3, $4)`,
		sub.Timestamp, sub.Name, sub.Email, sub.Message,
	)
	return err
}

// ListAll returns every row in insertion order. NULL columns read back as "".
func (r *PgSubmissionRepository) ListAll(ctx context.Context) ([]*model.Submission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT COALESCE(submitted_at, ''), COALESCE(name, ''), COALESCE(email, ''), COALESCE(message, '')
		 FROM submissions
		 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []*model.Submission{}
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.Timestamp, &s.Name, &s.Email, &s.Message); err != nil {
			return nil, err
		}
		subs = append(subs, &s)
	}
	return subs, rows.Err()
}

func (r *PgSubmissionRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *PgSubmissionRepository) Close() error {
	r.pool.Close()
	return nil
}
