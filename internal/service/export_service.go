package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/sakecatalog/backend/internal/model"
	"github.com/sakecatalog/backend/internal/storage"
)

// Renderer materializes a document into a file. Rasterization lives behind this interface.
type Renderer interface {
	Render(ctx context.Context, doc *model.Document, w io.Writer) error
	Extension() string
	ContentType() string
}

// ManifestRenderer は外部ラスタライザ向けにドキュメントを JSON マニフェストとして書き出す
type ManifestRenderer struct{}

func (ManifestRenderer) Render(_ context.Context, doc *model.Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func (ManifestRenderer) Extension() string   { return "json" }
func (ManifestRenderer) ContentType() string { return "application/json" }

// ExportService runs at most one export at a time in the background.
type ExportService interface {
	Start(ctx context.Context, doc *model.Document) (*model.ExportStatus, error)
	Status() model.ExportStatus
}

// ExportServiceImpl は ExportService の実装
type ExportServiceImpl struct {
	renderer Renderer
	store    storage.Storage
	slot     *semaphore.Weighted
	now      func() time.Time
	wg       sync.WaitGroup

	mu     sync.Mutex
	status model.ExportStatus
}

// NewExportService は ExportServiceImpl を生成する（DI: Renderer, Storage を注入）
func NewExportService(r Renderer, store storage.Storage) *ExportServiceImpl {
	return &ExportServiceImpl{
		renderer: r,
		store:    store,
		slot:     semaphore.NewWeighted(1),
		now:      time.Now,
		status:   model.ExportStatus{State: model.ExportIdle},
	}
}

// Start claims the export slot and renders doc in the background.
// The job is not tied to ctx: once started it runs to completion or failure.
func (s *ExportServiceImpl) Start(ctx context.Context, doc *model.Document) (*model.ExportStatus, error) {
	if doc == nil {
		return nil, fmt.Errorf("export: nil document")
	}
	if !s.slot.TryAcquire(1) {
		return nil, ErrExportInProgress
	}

	started := s.now()
	st := model.ExportStatus{
		JobID:     uuid.NewString(),
		State:     model.ExportRunning,
		Kind:      doc.Kind,
		StartedAt: &started,
	}
	s.setStatus(st)
	slog.InfoContext(ctx, "export started", "job_id", st.JobID, "kind", doc.Kind, "count", doc.Count)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.slot.Release(1)
		s.run(context.Background(), st, doc)
	}()
	return &st, nil
}

func (s *ExportServiceImpl) run(ctx context.Context, st model.ExportStatus, doc *model.Document) {
	url, err := s.render(ctx, st.JobID, doc)
	finished := s.now()
	st.FinishedAt = &finished
	if err != nil {
		st.State = model.ExportFailed
		st.Error = err.Error()
		slog.Error("export failed", "job_id", st.JobID, "kind", doc.Kind, "error", err)
	} else {
		st.State = model.ExportSucceeded
		st.URL = url
		slog.Info("export finished", "job_id", st.JobID, "kind", doc.Kind, "url", url,
			"duration_ms", finished.Sub(*st.StartedAt).Milliseconds())
	}
	s.setStatus(st)
}

func (s *ExportServiceImpl) render(ctx context.Context, jobID string, doc *model.Document) (string, error) {
	var buf bytes.Buffer
	if err := s.renderer.Render(ctx, doc, &buf); err != nil {
		return "", fmt.Errorf("render %s: %w", doc.Kind, err)
	}
	key := jobID + "/" + ExportFileName(doc, s.renderer.Extension())
	url, err := s.store.Save(ctx, key, &buf, s.renderer.ContentType())
	if err != nil {
		return "", fmt.Errorf("store %s: %w", doc.Kind, err)
	}
	return url, nil
}

// Status は直近のジョブの状態を返す
func (s *ExportServiceImpl) Status() model.ExportStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Wait blocks until the in-flight export, if any, has finished.
func (s *ExportServiceImpl) Wait() {
	s.wg.Wait()
}

func (s *ExportServiceImpl) setStatus(st model.ExportStatus) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

// ExportFileName は "<タイトル>_<YYYYMMDD>.<ext>" を返す
func ExportFileName(doc *model.Document, ext string) string {
	title := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ', '　':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, strings.TrimSpace(doc.Title))
	if title == "" {
		title = string(doc.Kind)
	}
	return fmt.Sprintf("%s_%s.%s", title, doc.IssuedAt.Format("20060102"), ext)
}
