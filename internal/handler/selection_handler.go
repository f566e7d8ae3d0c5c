package handler

import (
	"net/http"
	"strconv"

	"github.com/sakecatalog/backend/internal/model"
	"github.com/sakecatalog/backend/internal/service"
)

// SelectionHandler は選択状態の HTTP ハンドラ
type SelectionHandler struct {
	sessions service.SessionService
}

// NewSelectionHandler は SelectionHandler を生成する
func NewSelectionHandler(sessions service.SessionService) *SelectionHandler {
	return &SelectionHandler{sessions: sessions}
}

type toggleResponse struct {
	Selection *model.Selection `json:"selection"`
	Added     bool             `json:"added"`
}

// Get は GET /api/selection を処理する
func (h *SelectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	sel, err := h.sessions.Selection(r.Context(), sid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

// Toggle は POST /api/selection/{id} を処理する
func (h *SelectionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	sel, err := h.sessions.Toggle(r.Context(), sid, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{Selection: sel, Added: sel.Contains(id)})
}

// Clear は DELETE /api/selection を処理する
func (h *SelectionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := h.sessions.ClearSelection(r.Context(), sid); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
