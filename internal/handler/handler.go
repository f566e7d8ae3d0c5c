package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakecatalog/backend/internal/filter"
	"github.com/sakecatalog/backend/internal/layout"
	"github.com/sakecatalog/backend/internal/model"
	"github.com/sakecatalog/backend/internal/repository"
	"github.com/sakecatalog/backend/internal/service"
	"github.com/sakecatalog/backend/pkg/auth"
)

// Pinger はヘルスチェック対象（商品リポジトリ）
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db          Pinger
	frontendURL string
}

func New(db Pinger, frontendURL string) *Handler {
	return &Handler{db: db, frontendURL: frontendURL}
}

func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writeServiceError maps domain errors to HTTP responses. Unknown errors become 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrSelectionFull):
		writeError(w, http.StatusConflict, "selection_full", "最大10個まで選択可能です")
	case errors.Is(err, service.ErrExportInProgress):
		writeError(w, http.StatusConflict, "export_in_progress", "エクスポート処理中です")
	case errors.Is(err, service.ErrItemNotFound), errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "")
	case errors.Is(err, service.ErrEmptySelection):
		writeError(w, http.StatusBadRequest, "empty_selection", "商品を選択してください")
	case errors.Is(err, service.ErrInvalidSession):
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
	case errors.Is(err, filter.ErrInvalidPrice):
		writeError(w, http.StatusBadRequest, "invalid_price", "")
	case errors.Is(err, filter.ErrConflictingOrigin):
		writeError(w, http.StatusBadRequest, "conflicting_origin", "")
	case errors.Is(err, filter.ErrUnknownRegion):
		writeError(w, http.StatusBadRequest, "unknown_region", "")
	case errors.Is(err, layout.ErrInvalidOrientation):
		writeError(w, http.StatusBadRequest, "invalid_orientation", "")
	case errors.Is(err, layout.ErrInvalidCount):
		writeError(w, http.StatusBadRequest, "invalid_count", "")
	case errors.Is(err, repository.ErrUnavailable):
		slog.ErrorContext(r.Context(), "product source unavailable", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusServiceUnavailable, "unavailable", "")
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

// sessionID は EnsureSession が付与した閲覧セッション ID を取り出す
func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := auth.SessionIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return "", false
	}
	return id, true
}
