package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sakecatalog/backend/internal/service"
)

const maxExportRequestBytes = 16 << 10

// ExportHandler はエクスポートの起動と状態確認
type ExportHandler struct {
	docs    service.DocumentService
	exports service.ExportService
	now     func() time.Time
}

// NewExportHandler は ExportHandler を生成する
func NewExportHandler(docs service.DocumentService, exports service.ExportService) *ExportHandler {
	return &ExportHandler{docs: docs, exports: exports, now: time.Now}
}

// Start は POST /api/exports を処理する。ドキュメントはリクエスト時点の状態で確定する。
func (h *ExportHandler) Start(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req documentRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxExportRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "")
		return
	}

	doc, err := buildDocument(r.Context(), h.docs, sid, req, h.now())
	if errors.Is(err, errUnknownDocumentKind) {
		writeError(w, http.StatusBadRequest, "invalid_kind", "")
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	status, err := h.exports.Start(r.Context(), doc)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, status)
}

// Status は GET /api/exports/status を処理する
func (h *ExportHandler) Status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.exports.Status())
}
