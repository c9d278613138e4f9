package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/givers/contactform/internal/model"
)

func TestOpen_DefaultsToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.csv")
	store, err := Open(context.Background(), Options{CSVPath: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	if _, ok := store.(*CSVSubmissionRepository); !ok {
		t.Errorf("expected *CSVSubmissionRepository, got %T", store)
	}
}

func TestOpen_SQLite(t *testing.T) {
	store, err := Open(context.Background(), Options{Backend: BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "s.db")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	if _, ok := store.(*SQLiteSubmissionRepository); !ok {
		t.Errorf("expected *SQLiteSubmissionRepository, got %T", store)
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: "mongo"})
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestPgSubmissionRepository_AppendAndListAll(t *testing.T) {
	dbURL := os.Getenv("DATABASE_URL")
	if testing.Short() || dbURL == "" {
		t.Skip("skipping integration test: DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := NewPool(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	repo := NewPgSubmissionRepository(pool)
	defer repo.Close()

	before, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	sub := &model.Submission{Timestamp: "2024-01-01 00:00:00", Name: "PG", Email: "pg@example.com", Message: "hello"}
	if err := repo.Append(ctx, sub); err != nil {
		t.Fatalf("Append: %v", err)
	}
	after, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("expected %d rows, got %d", len(before)+1, len(after))
	}
	if last := after[len(after)-1]; *last != *sub {
		t.Errorf("last row = %+v, want %+v", last, sub)
	}
}
