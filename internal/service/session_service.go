package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sakecatalog/backend/internal/catalog"
	"github.com/sakecatalog/backend/internal/filter"
	"github.com/sakecatalog/backend/internal/geo"
	"github.com/sakecatalog/backend/internal/model"
)

// SessionIdleTTL はアクセスのないセッション状態を破棄するまでの時間
const SessionIdleTTL = 12 * time.Hour

// SessionService はセッション単位の検索条件・選択状態を扱う
type SessionService interface {
	Recompute(ctx context.Context, sessionID string, c model.FilterCriteria) (*model.CatalogView, error)
	Origins(ctx context.Context) model.Origins
	Toggle(ctx context.Context, sessionID string, itemID int) (*model.Selection, error)
	Selection(ctx context.Context, sessionID string) (*model.Selection, error)
	ClearSelection(ctx context.Context, sessionID string) error
	// SelectedItems returns the selected items that are still visible, in selection order.
	SelectedItems(ctx context.Context, sessionID string) ([]model.Item, error)
}

type sessionState struct {
	mu       sync.Mutex
	criteria model.FilterCriteria
	sel      model.Selection
	lastSeen time.Time
}

// SessionServiceImpl keeps per-session state in memory. State does not survive a restart.
type SessionServiceImpl struct {
	catalog  *catalog.Catalog
	taxonomy *geo.Taxonomy
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionState
}

// NewSessionService は SessionServiceImpl を生成する
func NewSessionService(c *catalog.Catalog, tx *geo.Taxonomy) *SessionServiceImpl {
	return &SessionServiceImpl{
		catalog:  c,
		taxonomy: tx,
		now:      time.Now,
		sessions: make(map[string]*sessionState),
	}
}

// state returns the session's state with its mutex held. The caller must unlock it.
func (s *SessionServiceImpl) state(sessionID string) (*sessionState, error) {
	if sessionID == "" {
		return nil, ErrInvalidSession
	}
	s.mu.Lock()
	st, ok := s.sessions[sessionID]
	if !ok {
		st = &sessionState{}
		s.sessions[sessionID] = st
	}
	s.mu.Unlock()

	st.mu.Lock()
	st.lastSeen = s.now()
	return st, nil
}

// Recompute stores the criteria snapshot and derives the view from the current catalog.
func (s *SessionServiceImpl) Recompute(_ context.Context, sessionID string, c model.FilterCriteria) (*model.CatalogView, error) {
	st, err := s.state(sessionID)
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()

	st.criteria = c
	visible := s.catalog.Visible()
	items := filter.Apply(visible, c, s.taxonomy)
	if items == nil {
		items = []model.Item{}
	}
	return &model.CatalogView{
		Items:        items,
		Count:        len(items),
		VisibleTotal: len(visible),
		SelectedIDs:  st.sel.IDs(),
		Origins:      s.taxonomy.Observe(s.catalog.Prefectures()),
	}, nil
}

// Origins は現在カタログに存在する産地のグループを返す
func (s *SessionServiceImpl) Origins(_ context.Context) model.Origins {
	return s.taxonomy.Observe(s.catalog.Prefectures())
}

// Toggle adds or removes an item. Invisible items can be deselected but not selected.
func (s *SessionServiceImpl) Toggle(_ context.Context, sessionID string, itemID int) (*model.Selection, error) {
	st, err := s.state(sessionID)
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()

	if !st.sel.Contains(itemID) {
		it, ok := s.catalog.Lookup(itemID)
		if !ok || !it.Visible() {
			return nil, ErrItemNotFound
		}
	}
	added, err := st.sel.Toggle(itemID)
	if err != nil {
		slog.Info("selection full", "session", shortID(sessionID), "item_id", itemID)
		return nil, err
	}
	slog.Debug("selection toggled", "session", shortID(sessionID), "item_id", itemID, "added", added, "count", st.sel.Len())
	return copySelection(&st.sel), nil
}

// Selection は現在の選択状態のコピーを返す
func (s *SessionServiceImpl) Selection(_ context.Context, sessionID string) (*model.Selection, error) {
	st, err := s.state(sessionID)
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()
	return copySelection(&st.sel), nil
}

// ClearSelection は選択をすべて解除する
func (s *SessionServiceImpl) ClearSelection(_ context.Context, sessionID string) error {
	st, err := s.state(sessionID)
	if err != nil {
		return err
	}
	defer st.mu.Unlock()
	st.sel.Clear()
	return nil
}

func (s *SessionServiceImpl) SelectedItems(_ context.Context, sessionID string) ([]model.Item, error) {
	st, err := s.state(sessionID)
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()

	ids := st.sel.IDs()
	items := make([]model.Item, 0, len(ids))
	for _, id := range ids {
		it, ok := s.catalog.Lookup(id)
		if !ok || !it.Visible() {
			continue
		}
		items = append(items, it)
	}
	return items, nil
}

// PruneIdle drops sessions not seen within ttl and returns how many were removed.
func (s *SessionServiceImpl) PruneIdle(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, st := range s.sessions {
		st.mu.Lock()
		idle := st.lastSeen.Before(cutoff)
		st.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// RunJanitor prunes idle sessions every interval until ctx is done.
func (s *SessionServiceImpl) RunJanitor(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.PruneIdle(ttl); n > 0 {
				slog.Info("pruned idle sessions", "count", n)
			}
		}
	}
}

func copySelection(sel *model.Selection) *model.Selection {
	// ids already satisfy the cap, so NewSelection cannot fail here
	out, _ := model.NewSelection(sel.IDs()...)
	return out
}

// ログにセッション ID 全体を残さない
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
