package model

import (
	"encoding/json"
	"errors"
	"slices"
)

// MaxSelection は同時に選択できる商品数の上限
const MaxSelection = 10

// ErrSelectionFull is returned when an 11th item would be added.
var ErrSelectionFull = errors.New("selection: at most 10 items can be selected")

// Selection は選択中の商品 ID（選択順）
type Selection struct {
	ids []int
}

// NewSelection builds a selection from ids, dropping duplicates. Ids past the cap are rejected.
func NewSelection(ids ...int) (*Selection, error) {
	s := &Selection{}
	for _, id := range ids {
		if s.Contains(id) {
			continue
		}
		if _, err := s.Toggle(id); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Toggle adds id when absent and removes it when present. The boolean is true when id was added.
// On ErrSelectionFull the selection is left unchanged.
func (s *Selection) Toggle(id int) (bool, error) {
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return false, nil
	}
	if len(s.ids) >= MaxSelection {
		return false, ErrSelectionFull
	}
	s.ids = append(s.ids, id)
	return true, nil
}

func (s *Selection) Contains(id int) bool { return slices.Contains(s.ids, id) }

func (s *Selection) Len() int { return len(s.ids) }

// IDs returns a copy in selection order.
func (s *Selection) IDs() []int {
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *Selection) Clear() { s.ids = nil }

func (s *Selection) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		IDs   []int `json:"ids"`
		Count int   `json:"count"`
		Limit int   `json:"limit"`
	}{IDs: s.IDs(), Count: s.Len(), Limit: MaxSelection})
}
