package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakecatalog/backend/internal/catalog"
	"github.com/sakecatalog/backend/internal/model"
	"github.com/sakecatalog/backend/internal/repository"
)

// AdminProductService は管理者向けの商品リスト操作
type AdminProductService interface {
	SetHidden(ctx context.Context, itemID int, hidden bool) (*model.Item, error)
	Save(ctx context.Context, products []*model.Product) (int, error)
}

// AdminProductServiceImpl writes through to the repository before touching the in-memory catalog.
type AdminProductServiceImpl struct {
	repo    repository.ProductRepository
	catalog *catalog.Catalog
}

// NewAdminProductService は AdminProductServiceImpl を生成する
func NewAdminProductService(repo repository.ProductRepository, c *catalog.Catalog) *AdminProductServiceImpl {
	return &AdminProductServiceImpl{repo: repo, catalog: c}
}

// SetHidden persists the hidden flag, then applies it so the next recomputation observes it.
func (s *AdminProductServiceImpl) SetHidden(ctx context.Context, itemID int, hidden bool) (*model.Item, error) {
	it, ok := s.catalog.Lookup(itemID)
	if !ok {
		return nil, ErrItemNotFound
	}
	if err := s.repo.SetHidden(ctx, it.SourceKey, hidden); err != nil {
		return nil, fmt.Errorf("persist hidden flag for item %d: %w", itemID, err)
	}
	if err := s.catalog.SetHidden(itemID, hidden); err != nil {
		return nil, ErrItemNotFound
	}
	it.Hidden = hidden
	slog.InfoContext(ctx, "product visibility changed", "item_id", itemID, "hidden", hidden)
	return &it, nil
}

// Save replaces the whole product list and reloads the catalog from the repository,
// so source keys match what was stored. Returns the number of loaded records.
func (s *AdminProductServiceImpl) Save(ctx context.Context, products []*model.Product) (int, error) {
	if err := s.repo.ReplaceAll(ctx, products); err != nil {
		return 0, fmt.Errorf("replace products: %w", err)
	}
	loaded, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("reload products: %w", err)
	}
	s.catalog.Replace(loaded)
	slog.InfoContext(ctx, "product list saved", "count", len(loaded))
	return len(loaded), nil
}
