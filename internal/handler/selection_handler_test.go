package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sakecatalog/backend/internal/model"
	"github.com/sakecatalog/backend/internal/service"
)

func TestSelectionHandler_Toggle(t *testing.T) {
	var gotID int
	mock := &mockSessionService{
		toggleFunc: func(_ context.Context, _ string, id int) (*model.Selection, error) {
			gotID = id
			return model.NewSelection(3, id)
		},
	}
	h := NewSelectionHandler(mock)

	mux := http.NewServeMux()
	mux.Handle("POST /api/selection/{id}", http.HandlerFunc(h.Toggle))

	req := withSession(httptest.NewRequest("POST", "/api/selection/7", nil), "s1")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != 7 {
		t.Errorf("expected id 7, got %d", gotID)
	}
	var resp struct {
		Selection struct {
			IDs   []int `json:"ids"`
			Count int   `json:"count"`
			Limit int   `json:"limit"`
		} `json:"selection"`
		Added bool `json:"added"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Added || resp.Selection.Count != 2 || resp.Selection.Limit != model.MaxSelection {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestSelectionHandler_Toggle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
		code   string
	}{
		{"full", "/api/selection/11", model.ErrSelectionFull, http.StatusConflict, "selection_full"},
		{"unknown", "/api/selection/99", service.ErrItemNotFound, http.StatusNotFound, "not_found"},
		{"bad id", "/api/selection/abc", nil, http.StatusBadRequest, "invalid_id"},
		{"zero id", "/api/selection/0", nil, http.StatusBadRequest, "invalid_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockSessionService{
				toggleFunc: func(context.Context, string, int) (*model.Selection, error) {
					return nil, tt.err
				},
			}
			mux := http.NewServeMux()
			mux.Handle("POST /api/selection/{id}", http.HandlerFunc(NewSelectionHandler(mock).Toggle))

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, withSession(httptest.NewRequest("POST", tt.path, nil), "s1"))

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			resp := decodeError(t, rec)
			if resp.Error != tt.code {
				t.Errorf("expected %q, got %q", tt.code, resp.Error)
			}
			if tt.code == "selection_full" && resp.Message != "最大10個まで選択可能です" {
				t.Errorf("unexpected message %q", resp.Message)
			}
		})
	}
}

func TestSelectionHandler_GetAndClear(t *testing.T) {
	cleared := ""
	mock := &mockSessionService{
		selectionFunc: func(context.Context, string) (*model.Selection, error) { return model.NewSelection(1, 2) },
		clearFunc: func(_ context.Context, sid string) error {
			cleared = sid
			return nil
		},
	}
	h := NewSelectionHandler(mock)

	rec := httptest.NewRecorder()
	h.Get(rec, withSession(httptest.NewRequest("GET", "/api/selection", nil), "s1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var sel struct {
		IDs []int `json:"ids"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&sel); err != nil {
		t.Fatal(err)
	}
	if len(sel.IDs) != 2 || sel.IDs[0] != 1 {
		t.Errorf("unexpected selection: %v", sel.IDs)
	}

	rec = httptest.NewRecorder()
	h.Clear(rec, withSession(httptest.NewRequest("DELETE", "/api/selection", nil), "s1"))
	if rec.Code != http.StatusNoContent || cleared != "s1" {
		t.Errorf("expected 204 clearing s1, got %d / %q", rec.Code, cleared)
	}
}
