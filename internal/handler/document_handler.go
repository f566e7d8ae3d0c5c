package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sakecatalog/backend/internal/layout"
	"github.com/sakecatalog/backend/internal/model"
	"github.com/sakecatalog/backend/internal/service"
)

var errUnknownDocumentKind = errors.New("unknown document kind")

// documentRequest はドキュメント生成のパラメータ（クエリまたは JSON ボディ）
type documentRequest struct {
	Kind        model.DocumentKind `json:"kind"`
	Addressee   string             `json:"addressee"`
	Orientation string             `json:"orientation"`
	Title       string             `json:"title"`
}

// DocumentHandler は印刷用ドキュメントのプレビュー
type DocumentHandler struct {
	docs service.DocumentService
	now  func() time.Time
}

// NewDocumentHandler は DocumentHandler を生成する
func NewDocumentHandler(docs service.DocumentService) *DocumentHandler {
	return &DocumentHandler{docs: docs, now: time.Now}
}

// Get は GET /api/documents/{kind} を処理する
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	req := documentRequest{
		Kind:        model.DocumentKind(r.PathValue("kind")),
		Addressee:   q.Get("addressee"),
		Orientation: q.Get("orientation"),
		Title:       q.Get("title"),
	}
	doc, err := buildDocument(r.Context(), h.docs, sid, req, h.now())
	if errors.Is(err, errUnknownDocumentKind) {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func buildDocument(ctx context.Context, docs service.DocumentService, sid string, req documentRequest, now time.Time) (*model.Document, error) {
	switch req.Kind {
	case model.DocumentQuotation:
		return docs.Quotation(ctx, sid, req.Addressee, now)
	case model.DocumentListing:
		return docs.Listing(ctx, req.Addressee, now)
	case model.DocumentMenu:
		o, err := layout.ParseOrientation(req.Orientation)
		if err != nil {
			return nil, err
		}
		return docs.Menu(ctx, sid, req.Title, o, now)
	default:
		return nil, errUnknownDocumentKind
	}
}
