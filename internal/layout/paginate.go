// Package layout computes page and grid geometry for printable documents.
package layout

import (
	"errors"

	"github.com/sakecatalog/backend/internal/model"
)

// DefaultPageCapacity は見積書・商品リスト1ページあたりの枠数
const DefaultPageCapacity = 10

var ErrInvalidCapacity = errors.New("layout: page capacity must be positive")

// Pagination is the paginated form of an item sequence plus its aggregates.
type Pagination struct {
	Pages     []model.Page `json:"pages"`
	Count     int          `json:"count"`
	Total1800 model.Price  `json:"total_1800"`
	Total720  model.Price  `json:"total_720"`
}

// Paginate splits items into ceil(n/capacity) pages (at least one). Every page has exactly
// capacity slots; slots past the last item are empty placeholders.
func Paginate(items []model.Item, capacity int) (Pagination, error) {
	if capacity <= 0 {
		return Pagination{}, ErrInvalidCapacity
	}
	n := len(items)
	total := (n + capacity - 1) / capacity
	if total == 0 {
		total = 1
	}

	out := Pagination{Pages: make([]model.Page, total), Count: n}
	for _, it := range items {
		out.Total1800 += it.Price1800
		out.Total720 += it.Price720
	}

	for pi := 0; pi < total; pi++ {
		slots := make([]model.Slot, capacity)
		for si := range slots {
			idx := pi*capacity + si
			if idx >= n {
				slots[si] = model.Slot{Empty: true}
				continue
			}
			it := items[idx]
			slots[si] = model.Slot{Item: &it}
		}
		out.Pages[pi] = model.Page{Index: pi + 1, Total: total, Slots: slots}
	}
	return out, nil
}
