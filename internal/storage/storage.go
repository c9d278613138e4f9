package storage

import (
	"context"
	"io"
)

// Storage はファイル単位の読み出しと置き換えを抽象化するインターフェース。
// ローカルファイルシステム実装の他、オブジェクトストレージ等に差し替え可能。
type Storage interface {
	// Open は key のファイルを開く。存在しない場合は fs.ErrNotExist を返す。
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Replace は data を key のファイルとしてアトミックに書き込む。
	// 途中で失敗した場合、既存ファイルは変更されない。
	Replace(ctx context.Context, key string, data io.Reader) error

	// Ping はストレージが利用可能かを確認する。
	Ping(ctx context.Context) error
}
