package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sakecatalog/backend/internal/catalog"
	"github.com/sakecatalog/backend/internal/layout"
	"github.com/sakecatalog/backend/internal/model"
)

const (
	QuotationTitle    = "御見積書"
	QuotationValidity = "発行より1ヶ月間有効"
	ListingTitle      = "商品リスト"
	DefaultMenuTitle  = "おすすめ日本酒"
)

// DocumentService は印刷用ドキュメントを組み立てる
type DocumentService interface {
	Quotation(ctx context.Context, sessionID, addressee string, now time.Time) (*model.Document, error)
	Listing(ctx context.Context, addressee string, now time.Time) (*model.Document, error)
	Menu(ctx context.Context, sessionID, title string, o model.Orientation, now time.Time) (*model.Document, error)
}

// DocumentServiceImpl builds documents fresh on every call; nothing is cached.
type DocumentServiceImpl struct {
	sessions SessionService
	catalog  *catalog.Catalog
}

// NewDocumentService は DocumentServiceImpl を生成する
func NewDocumentService(sessions SessionService, c *catalog.Catalog) *DocumentServiceImpl {
	return &DocumentServiceImpl{sessions: sessions, catalog: c}
}

// Quotation は選択順に10件ずつページ分けした見積書を返す
func (s *DocumentServiceImpl) Quotation(ctx context.Context, sessionID, addressee string, now time.Time) (*model.Document, error) {
	items, err := s.sessions.SelectedItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptySelection
	}
	doc, err := paged(model.DocumentQuotation, QuotationTitle, addressee, now, items)
	if err != nil {
		return nil, err
	}
	doc.ValidityNote = QuotationValidity
	return doc, nil
}

// Listing は表示可能な全商品の一覧
func (s *DocumentServiceImpl) Listing(_ context.Context, addressee string, now time.Time) (*model.Document, error) {
	return paged(model.DocumentListing, ListingTitle, addressee, now, s.catalog.Visible())
}

// Menu lays the selection out on a single page grid. An odd count leaves one filler cell.
func (s *DocumentServiceImpl) Menu(ctx context.Context, sessionID, title string, o model.Orientation, now time.Time) (*model.Document, error) {
	items, err := s.sessions.SelectedItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptySelection
	}
	plan, err := layout.PlanGrid(len(items), o)
	if err != nil {
		return nil, fmt.Errorf("plan menu grid: %w", err)
	}
	if title = strings.TrimSpace(title); title == "" {
		title = DefaultMenuTitle
	}

	doc := &model.Document{
		Kind:     model.DocumentMenu,
		Title:    title,
		IssuedAt: now,
		Count:    len(items),
		Grid:     &plan,
		Menu:     make([]model.MenuEntry, 0, len(items)),
	}
	for _, it := range items {
		doc.Menu = append(doc.Menu, model.MenuEntry{Item: it, SuggestedPrice: it.Price720})
		doc.Total1800 += it.Price1800
		doc.Total720 += it.Price720
	}
	return doc, nil
}

func paged(kind model.DocumentKind, title, addressee string, now time.Time, items []model.Item) (*model.Document, error) {
	p, err := layout.Paginate(items, layout.DefaultPageCapacity)
	if err != nil {
		return nil, fmt.Errorf("paginate %s: %w", kind, err)
	}
	return &model.Document{
		Kind:      kind,
		Title:     title,
		Addressee: strings.TrimSpace(addressee),
		IssuedAt:  now,
		Pages:     p.Pages,
		Count:     p.Count,
		Total1800: p.Total1800,
		Total720:  p.Total720,
	}, nil
}
