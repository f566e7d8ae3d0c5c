package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrInvalidKey is returned for keys that would escape the base directory.
var ErrInvalidKey = errors.New("storage: invalid key")

// LocalStorage はローカルファイルシステムに成果物を保存する Storage 実装。
type LocalStorage struct {
	baseDir   string // ディスク上のルートディレクトリ (例: "./exports")
	urlPrefix string // HTTP で配信する際の URL プレフィックス (例: "/exports")
}

// NewLocalStorage は LocalStorage を生成する。
func NewLocalStorage(baseDir, urlPrefix string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

// BaseDir は配信用のルートディレクトリを返す
func (s *LocalStorage) BaseDir() string { return s.baseDir }

func (s *LocalStorage) Save(_ context.Context, key string, data io.Reader, _ string) (string, error) {
	dest, clean, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("storage: create: %w", err)
	}
	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("storage: write: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("storage: close: %w", err)
	}

	return s.urlPrefix + "/" + escapePath(clean), nil
}

// resolve maps a slash-separated key to a path under baseDir.
func (s *LocalStorage) resolve(key string) (string, string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return "", "", ErrInvalidKey
	}
	clean := path.Clean(key)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", "", ErrInvalidKey
	}
	return filepath.Join(s.baseDir, filepath.FromSlash(clean)), clean, nil
}

// ファイル名に日本語が入るため URL ではセグメント単位でエスケープする
func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
