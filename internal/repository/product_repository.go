package repository

import (
	"context"

	"github.com/sakecatalog/backend/internal/model"
)

// ProductRepository は商品リストの永続化インターフェース。
// 返す順序がカタログの表示順になる。
type ProductRepository interface {
	List(ctx context.Context) ([]*model.Product, error)
	SetHidden(ctx context.Context, key string, hidden bool) error
	ReplaceAll(ctx context.Context, products []*model.Product) error
	Ping(ctx context.Context) error
}
