package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestLocalStorage_ReplaceThenOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s := NewLocalStorage(dir)
	ctx := context.Background()

	if err := s.Replace(ctx, "a.csv", strings.NewReader("first")); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if err := s.Replace(ctx, "a.csv", strings.NewReader("second")); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	rc, err := s.Open(ctx, "a.csv")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	if string(b) != "second" {
		t.Errorf("expected second, got %q", b)
	}
}

func TestLocalStorage_OpenMissing(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	_, err := s.Open(context.Background(), "missing.csv")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLocalStorage_ReplaceFailureKeepsTarget(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)
	ctx := context.Background()

	if err := s.Replace(ctx, "a.csv", strings.NewReader("original")); err != nil {
		t.Fatal(err)
	}
	if err := s.Replace(ctx, "a.csv", failingReader{}); err == nil {
		t.Fatal("expected error from failing reader")
	}

	b, err := os.ReadFile(filepath.Join(dir, "a.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "original" {
		t.Errorf("target was modified: %q", b)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected temp file cleanup, dir has %v", names)
	}
}

func TestLocalStorage_Ping(t *testing.T) {
	dir := t.TempDir()
	if err := NewLocalStorage(filepath.Join(dir, "not-yet")).Ping(context.Background()); err != nil {
		t.Errorf("missing dir should be ok, got %v", err)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := NewLocalStorage(file).Ping(context.Background()); err == nil {
		t.Error("expected error when base dir is a file")
	}
}
