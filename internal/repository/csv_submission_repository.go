package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/givers/contactform/internal/model"
	"github.com/givers/contactform/internal/storage"
)

// CSVSubmissionRepository keeps all submissions in one CSV file. Every Append
// rewrites the whole file through storage.Replace, so readers never see a
// half-written store.
type CSVSubmissionRepository struct {
	storage storage.Storage
	key     string

	// mu serializes read-append-replace cycles within this process.
	mu sync.Mutex
}

// NewCSVSubmissionRepository creates a repository for the file key inside s.
func NewCSVSubmissionRepository(s storage.Storage, key string) *CSVSubmissionRepository {
	return &CSVSubmissionRepository{storage: s, key: key}
}

// NewLocalCSVSubmissionRepository creates a repository for the CSV file at path.
func NewLocalCSVSubmissionRepository(path string) *CSVSubmissionRepository {
	return NewCSVSubmissionRepository(storage.NewLocalStorage(filepath.Dir(path)), filepath.Base(path))
}

// Ensure CSVSubmissionRepository implements Store at compile time.
var _ Store = (*CSVSubmissionRepository)(nil)

// ListAll reads the file. A missing file is an empty store.
func (r *CSVSubmissionRepository) ListAll(ctx context.Context) ([]*model.Submission, error) {
	rc, err := r.storage.Open(ctx, r.key)
	if errors.Is(err, fs.ErrNotExist) {
		return []*model.Submission{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadCSV(rc)
}

// Append reads the current set, appends sub, and replaces the file.
func (r *CSVSubmissionRepository) Append(ctx context.Context, sub *model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, err := r.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("csv store: read: %w", err)
	}
	subs = append(subs, sub)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, subs); err != nil {
		return fmt.Errorf("csv store: serialize: %w", err)
	}
	if err := r.storage.Replace(ctx, r.key, &buf); err != nil {
		return fmt.Errorf("csv store: replace: %w", err)
	}
	return nil
}

func (r *CSVSubmissionRepository) Ping(ctx context.Context) error {
	return r.storage.Ping(ctx)
}

func (r *CSVSubmissionRepository) Close() error { return nil }
