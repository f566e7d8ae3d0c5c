package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sakecatalog/backend/internal/model"
	"github.com/sakecatalog/backend/internal/service"
	"github.com/sakecatalog/backend/pkg/auth"
)

const maxProductListBytes = 10 << 20

// AdminProductHandler は商品リスト管理（非表示フラグ・一括保存）の HTTP ハンドラ
type AdminProductHandler struct {
	svc service.AdminProductService
}

// NewAdminProductHandler は AdminProductHandler を生成する
func NewAdminProductHandler(svc service.AdminProductService) *AdminProductHandler {
	return &AdminProductHandler{svc: svc}
}

// requireAdmin checks authentication and the admin flag. Returns false (and writes the error) otherwise.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := auth.UserIDFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return false
	}
	if !auth.IsAdminFromContext(r.Context()) {
		writeError(w, http.StatusForbidden, "forbidden", "")
		return false
	}
	return true
}

type setHiddenRequest struct {
	Hidden *bool `json:"hidden"`
}

// SetHidden は PATCH /api/admin/products/{id}/hidden を処理する
func (h *AdminProductHandler) SetHidden(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	var req setHiddenRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&req); err != nil || req.Hidden == nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "")
		return
	}

	item, err := h.svc.SetHidden(r.Context(), id, *req.Hidden)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Save は PUT /api/admin/products を処理する（商品リスト全体の置き換え）
func (h *AdminProductHandler) Save(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	var records []json.RawMessage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxProductListBytes)).Decode(&records); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "")
		return
	}
	if records == nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "商品リストは配列で指定してください")
		return
	}
	// 未知のキーも保存するため、レコードは Raw ごと渡す
	products := make([]*model.Product, len(records))
	for i, raw := range records {
		p, err := model.DecodeProduct(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", fmt.Sprintf("%d 件目の商品が不正です", i+1))
			return
		}
		products[i] = p
	}

	n, err := h.svc.Save(r.Context(), products)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "saved", "count": n})
}
