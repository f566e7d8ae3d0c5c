package handler

import (
	"net/http"

	"github.com/sakecatalog/backend/internal/filter"
	"github.com/sakecatalog/backend/internal/geo"
	"github.com/sakecatalog/backend/internal/service"
)

// CatalogHandler は商品検索の HTTP ハンドラ
type CatalogHandler struct {
	sessions service.SessionService
	taxonomy *geo.Taxonomy
}

// NewCatalogHandler は CatalogHandler を生成する
func NewCatalogHandler(sessions service.SessionService, taxonomy *geo.Taxonomy) *CatalogHandler {
	return &CatalogHandler{sessions: sessions, taxonomy: taxonomy}
}

// Search は GET /api/catalog を処理する。クエリが検索条件のスナップショットになる。
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	criteria, err := filter.ParseCriteria(r.URL.Query(), h.taxonomy)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	view, err := h.sessions.Recompute(r.Context(), sid, criteria)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Origins は GET /api/catalog/origins を処理する
func (h *CatalogHandler) Origins(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sessions.Origins(r.Context()))
}
