package repository

import (
	"context"

	"github.com/givers/contactform/internal/model"
)

// DB は ストアの生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// SubmissionRepository is the append-only persistence contract for contact
// form submissions. There is no update or delete.
type SubmissionRepository interface {
	// Append stores one submission after all previously stored ones.
	Append(ctx context.Context, sub *model.Submission) error
	// ListAll returns every stored submission in insertion order.
	// An empty store yields an empty, non-nil slice.
	ListAll(ctx context.Context) ([]*model.Submission, error)
}

// Store is a SubmissionRepository backed by a resource that must be closed.
type Store interface {
	SubmissionRepository
	DB
	Close() error
}
