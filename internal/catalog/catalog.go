// Package catalog holds the ordered product list loaded for the session.
package catalog

import (
	"errors"
	"sync"

	"github.com/sakecatalog/backend/internal/model"
)

// ErrUnknownItem is returned for an id that was never issued or belongs to a replaced load.
var ErrUnknownItem = errors.New("catalog: unknown item")

// Catalog keeps products in load order under stable integer ids.
// Ids are never reused, even after Replace.
type Catalog struct {
	mu     sync.RWMutex
	items  []model.Item
	byID   map[int]int // id → index in items
	lastID int
}

// New assigns ids 1..n in load order.
func New(products []*model.Product) *Catalog {
	c := &Catalog{}
	c.load(products)
	return c
}

// Replace swaps in a freshly loaded list. New ids continue after the last one issued.
func (c *Catalog) Replace(products []*model.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(products)
}

func (c *Catalog) load(products []*model.Product) {
	items := make([]model.Item, 0, len(products))
	byID := make(map[int]int, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		c.lastID++
		byID[c.lastID] = len(items)
		items = append(items, model.NewItem(c.lastID, p))
	}
	c.items = items
	c.byID = byID
}

// Len returns the number of loaded records, visible or not.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Items returns every record in load order. The visible predicate is not applied.
func (c *Catalog) Items() []model.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Item, len(c.items))
	for i, it := range c.items {
		out[i] = snapshot(it)
	}
	return out
}

// Visible returns the records that pass model.Product.Visible at the time of the call.
func (c *Catalog) Visible() []model.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Item, 0, len(c.items))
	for _, it := range c.items {
		if it.Visible() {
			out = append(out, snapshot(it))
		}
	}
	return out
}

// Lookup finds a record by id regardless of visibility.
func (c *Catalog) Lookup(id int) (model.Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[id]
	if !ok {
		return model.Item{}, false
	}
	return snapshot(c.items[i]), true
}

// SetHidden flips the hidden flag. The next Visible/Lookup call observes it.
func (c *Catalog) SetHidden(id int, hidden bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.byID[id]
	if !ok {
		return ErrUnknownItem
	}
	c.items[i].Hidden = hidden
	return nil
}

// Prefectures lists the origins of visible records in load order, duplicates included.
func (c *Catalog) Prefectures() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.items))
	for _, it := range c.items {
		if it.Visible() && it.Prefecture != "" {
			out = append(out, it.Prefecture)
		}
	}
	return out
}

// snapshot copies the product so callers never share memory with the catalog.
func snapshot(it model.Item) model.Item {
	it.Product = it.Product.Clone()
	return it
}
