// Package storage persists rendered export artifacts.
package storage

import (
	"context"
	"io"
)

// Storage はエクスポート成果物の保存を抽象化するインターフェース。
type Storage interface {
	// Save はファイルを保存し、公開 URL を返す。
	// key はストレージ内の一意パス (例: "<job id>/御見積書_20240401.json")。
	Save(ctx context.Context, key string, data io.Reader, contentType string) (url string, err error)
}
