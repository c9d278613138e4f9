package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/givers/contactform/internal/model"
	"github.com/givers/contactform/internal/storage"
	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// mockStorage — storage.Storage with injectable failures
// ---------------------------------------------------------------------------

type mockStorage struct {
	openFunc    func(ctx context.Context, key string) (io.ReadCloser, error)
	replaceFunc func(ctx context.Context, key string, data io.Reader) error
}

func (m *mockStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return m.openFunc(ctx, key)
}

func (m *mockStorage) Replace(ctx context.Context, key string, data io.Reader) error {
	return m.replaceFunc(ctx, key, data)
}

func (m *mockStorage) Ping(ctx context.Context) error { return nil }

var _ storage.Storage = (*mockStorage)(nil)

func TestCSVSubmissionRepository_ListAll_MissingFile(t *testing.T) {
	repo := NewLocalCSVSubmissionRepository(filepath.Join(t.TempDir(), "submissions.csv"))
	subs, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if subs == nil || len(subs) != 0 {
		t.Errorf("expected empty slice, got %#v", subs)
	}
}

func TestCSVSubmissionRepository_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "submissions.csv")
	repo := NewLocalCSVSubmissionRepository(path)
	ctx := context.Background()

	var want []*model.Submission
	for i := 0; i < 5; i++ {
		s := &model.Submission{
			Timestamp: fmt.Sprintf("2024-01-01 00:00:0%d", i),
			Name:      fmt.Sprintf("User %d", i),
			Email:     fmt.Sprintf("user%d@example.com", i),
			Message:   fmt.Sprintf("message, number %d", i),
		}
		want = append(want, s)
		if err := repo.Append(ctx, s); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}
	// Form posts arrive with CRLF line breaks; the write path stores them as LF.
	multiline := &model.Submission{
		Timestamp: "2024-01-01 00:00:05",
		Name:      "User 5",
		Email:     "user5@example.com",
		Message:   model.NormalizeNewlines("line1\r\nline2\r\n\r\n\"quoted\", line3"),
	}
	want = append(want, multiline)
	if err := repo.Append(ctx, multiline); err != nil {
		t.Fatalf("Append multiline: %v", err)
	}

	got, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(b), "Timestamp,Name,Email,Message\n") {
		t.Errorf("unexpected header in %q", b)
	}
}

func TestCSVSubmissionRepository_AppendDuplicatesAllowed(t *testing.T) {
	repo := NewLocalCSVSubmissionRepository(filepath.Join(t.TempDir(), "s.csv"))
	ctx := context.Background()
	s := &model.Submission{Timestamp: "2024-01-01 00:00:00", Name: "A", Email: "a@b.co", Message: "same"}
	for i := 0; i < 2; i++ {
		if err := repo.Append(ctx, s); err != nil {
			t.Fatal(err)
		}
	}
	got, _ := repo.ListAll(ctx)
	if len(got) != 2 {
		t.Errorf("expected 2 rows, got %d", len(got))
	}
}

func TestCSVSubmissionRepository_AppendKeepsLegacyRowsComplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.csv")
	legacy := "Timestamp,Name,Message\n2023-12-31 23:59:59,Old,legacy row\n"
	if err := os.WriteFile(path, []byte(legacy), 0o600); err != nil {
		t.Fatal(err)
	}
	repo := NewLocalCSVSubmissionRepository(path)
	ctx := context.Background()

	if err := repo.Append(ctx, &model.Submission{Timestamp: "2024-01-01 00:00:00", Name: "New", Email: "n@x.io", Message: "hi"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	b, _ := os.ReadFile(path)
	want := "Timestamp,Name,Email,Message\n2023-12-31 23:59:59,Old,,legacy row\n2024-01-01 00:00:00,New,n@x.io,hi\n"
	if string(b) != want {
		t.Errorf("file mismatch:\nwant %q\ngot  %q", want, b)
	}
}

func TestCSVSubmissionRepository_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.csv")
	if err := os.WriteFile(path, []byte("Timestamp,Name,Email,Message\na,b,c,d,e,f\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	repo := NewLocalCSVSubmissionRepository(path)
	ctx := context.Background()

	if _, err := repo.ListAll(ctx); !errors.Is(err, ErrCorruptStore) {
		t.Errorf("ListAll: expected ErrCorruptStore, got %v", err)
	}

	err := repo.Append(ctx, &model.Submission{Name: "x"})
	if !errors.Is(err, ErrCorruptStore) {
		t.Errorf("Append: expected ErrCorruptStore, got %v", err)
	}
	b, _ := os.ReadFile(path)
	if !strings.Contains(string(b), "a,b,c,d,e,f") {
		t.Error("corrupt file should be left untouched")
	}
}

func TestCSVSubmissionRepository_ReplaceError(t *testing.T) {
	ms := &mockStorage{
		openFunc: func(ctx context.Context, key string) (io.ReadCloser, error) {
			return nil, fmt.Errorf("storage: open: %w", os.ErrNotExist)
		},
		replaceFunc: func(ctx context.Context, key string, data io.Reader) error {
			return errors.New("disk full")
		},
	}
	repo := NewCSVSubmissionRepository(ms, "s.csv")

	err := repo.Append(context.Background(), &model.Submission{Name: "x"})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected replace error, got %v", err)
	}
}

func TestCSVSubmissionRepository_ConcurrentAppendsAreSerialized(t *testing.T) {
	repo := NewLocalCSVSubmissionRepository(filepath.Join(t.TempDir(), "s.csv"))
	ctx := context.Background()

	const n = 20
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			errs <- repo.Append(ctx, &model.Submission{Name: fmt.Sprintf("u%d", i)})
		}(i)
	}
	for i := 0; i < n; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	got, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != n {
		t.Errorf("expected %d rows, got %d", n, len(got))
	}
}
