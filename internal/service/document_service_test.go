package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakecatalog/backend/internal/model"
)

var issued = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

func TestDocumentService_Quotation(t *testing.T) {
	sessions, c := newTestSessions(t)
	svc := NewDocumentService(sessions, c)
	ctx := context.Background()

	if _, err := svc.Quotation(ctx, "s1", "", issued); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}

	for _, id := range []int{2, 1} {
		if _, err := sessions.Toggle(ctx, "s1", id); err != nil {
			t.Fatal(err)
		}
	}
	doc, err := svc.Quotation(ctx, "s1", " 山田酒店 ", issued)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != QuotationTitle || doc.ValidityNote != QuotationValidity || doc.Addressee != "山田酒店" {
		t.Errorf("unexpected header: %+v", doc)
	}
	if len(doc.Pages) != 1 || len(doc.Pages[0].Slots) != 10 {
		t.Fatalf("expected one page of 10 slots, got %+v", doc.Pages)
	}
	if doc.Pages[0].Slots[0].Item.ID != 2 || doc.Pages[0].Slots[1].Item.ID != 1 || !doc.Pages[0].Slots[2].Empty {
		t.Errorf("slots not in selection order: %+v", doc.Pages[0].Slots[:3])
	}
	if doc.Total1800 != 5800 || doc.Total720 != 2850 {
		t.Errorf("unexpected totals 1800=%d 720=%d", doc.Total1800, doc.Total720)
	}
}

func TestDocumentService_Listing(t *testing.T) {
	sessions, c := newTestSessions(t)
	svc := NewDocumentService(sessions, c)

	doc, err := svc.Listing(context.Background(), "", issued)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != ListingTitle || doc.Count != 4 || doc.ValidityNote != "" {
		t.Errorf("unexpected listing: %+v", doc)
	}
	if doc.Pages[0].Total != 1 {
		t.Errorf("expected one page, got %d", doc.Pages[0].Total)
	}
}

func TestDocumentService_ListingOfEmptyCatalogHasOnePage(t *testing.T) {
	sessions, c := newTestSessions(t)
	c.Replace(nil)
	svc := NewDocumentService(sessions, c)

	doc, err := svc.Listing(context.Background(), "", issued)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 1 || doc.Count != 0 {
		t.Errorf("expected a single empty page, got %+v", doc)
	}
}

func TestDocumentService_Menu(t *testing.T) {
	sessions, c := newTestSessions(t)
	svc := NewDocumentService(sessions, c)
	ctx := context.Background()

	for _, id := range []int{1, 4, 6} {
		if _, err := sessions.Toggle(ctx, "s1", id); err != nil {
			t.Fatal(err)
		}
	}
	doc, err := svc.Menu(ctx, "s1", "  ", model.Landscape, issued)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != DefaultMenuTitle {
		t.Errorf("expected default title, got %q", doc.Title)
	}
	if doc.Grid == nil || doc.Grid.Rows != 2 || doc.Grid.Columns != 2 || !doc.Grid.NeedsFiller {
		t.Errorf("unexpected grid: %+v", doc.Grid)
	}
	if len(doc.Menu) != 3 || doc.Menu[0].SuggestedPrice != 1650 || doc.Menu[1].SuggestedPrice != 0 {
		t.Errorf("unexpected menu entries: %+v", doc.Menu)
	}

	if _, err := svc.Menu(ctx, "s1", "", model.Orientation("diagonal"), issued); err == nil {
		t.Error("expected error for unknown orientation")
	}
	if _, err := svc.Menu(ctx, "empty", "", model.Portrait, issued); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("expected ErrEmptySelection, got %v", err)
	}
}
