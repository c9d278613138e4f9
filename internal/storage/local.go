package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage はローカルファイルシステム上のディレクトリを使う Storage 実装。
type LocalStorage struct {
	baseDir string // ディスク上のルートディレクトリ (例: "./data")
}

// NewLocalStorage は LocalStorage を生成する。
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

var _ Storage = (*LocalStorage)(nil)

func (s *LocalStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.baseDir, key))
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}
	return f, nil
}

// Replace は同じディレクトリに一時ファイルを書き、fsync 後に rename で差し替える。
func (s *LocalStorage) Replace(_ context.Context, key string, data io.Reader) (err error) {
	dest := filepath.Join(s.baseDir, key)
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, data); err != nil {
		return fmt.Errorf("storage: write: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("storage: sync: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("storage: close: %w", err)
	}
	if err = os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	return nil
}

// Ping はベースディレクトリが存在しディレクトリであることを確認する。
// まだ作成されていない場合は初回書き込みで作られるため正常とみなす。
func (s *LocalStorage) Ping(_ context.Context) error {
	info, err := os.Stat(s.baseDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("storage: stat: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage: %s is not a directory", s.baseDir)
	}
	return nil
}
