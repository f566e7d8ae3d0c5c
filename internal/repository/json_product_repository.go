package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/sakecatalog/backend/internal/model"
)

const hiddenKey = "isHidden"

// JSONProductRepository は sake_list.json（商品オブジェクトの配列）を読み書きする ProductRepository。
// SourceKey は配列内の位置。
type JSONProductRepository struct {
	path string
	mu   sync.Mutex
}

// NewJSONProductRepository は JSONProductRepository を生成する
func NewJSONProductRepository(path string) *JSONProductRepository {
	return &JSONProductRepository{path: path}
}

// List はファイル内の順序で商品を返す
func (r *JSONProductRepository) List(_ context.Context) ([]*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrUnavailable, r.path, err)
	}
	products := make([]*model.Product, len(records))
	for i, raw := range records {
		p, err := model.DecodeProduct(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: parse %s record %d: %v", ErrUnavailable, r.path, i, err)
		}
		if p == nil {
			p = &model.Product{}
		}
		p.SourceKey = strconv.Itoa(i)
		products[i] = p
	}
	return products, nil
}

// SetHidden は isHidden だけを書き換える。他のキー（未知のものを含む）はそのまま残す。
func (r *JSONProductRepository) SetHidden(_ context.Context, key string, hidden bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, err := strconv.Atoi(key)
	if err != nil {
		return ErrNotFound
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var records []map[string]json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrUnavailable, r.path, err)
	}
	if idx < 0 || idx >= len(records) {
		return ErrNotFound
	}
	if records[idx] == nil {
		records[idx] = map[string]json.RawMessage{}
	}
	records[idx][hiddenKey] = json.RawMessage(strconv.FormatBool(hidden))
	return r.write(records)
}

// ReplaceAll はファイル全体を上書きする（管理画面の保存）。
// Raw にあるモデル外のキーはそのまま書き戻す。
func (r *JSONProductRepository) ReplaceAll(_ context.Context, products []*model.Product) error {
	records := make([]map[string]json.RawMessage, len(products))
	for i, p := range products {
		if p == nil {
			continue
		}
		rec, err := p.Record()
		if err != nil {
			return fmt.Errorf("encode product %d: %w", i, err)
		}
		records[i] = rec
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(records)
}

// Ping はファイルが読めるかを確認する
func (r *JSONProductRepository) Ping(_ context.Context) error {
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return f.Close()
}

// write は一時ファイルに書いてから rename する
func (r *JSONProductRepository) write(v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode products: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
