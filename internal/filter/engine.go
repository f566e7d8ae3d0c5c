// Package filter narrows catalog items by the search criteria.
package filter

import (
	"strings"

	"github.com/sakecatalog/backend/internal/geo"
	"github.com/sakecatalog/backend/internal/model"
)

// Apply returns the items matching every active criterion, in input order.
// Items failing model.Product.Visible never pass, nor do items without a positive price.
// Apply does not modify items.
func Apply(items []model.Item, c model.FilterCriteria, tx *geo.Taxonomy) []model.Item {
	m := compile(c)
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if m.match(it.Product, tx) {
			out = append(out, it)
		}
	}
	return out
}

// matcher holds the criteria with inputs normalized once per Apply call.
type matcher struct {
	jan     string
	name    string
	brewery string
	keyword string
	min     *model.Price
	max     *model.Price
	origin  model.OriginSelector
}

func compile(c model.FilterCriteria) matcher {
	return matcher{
		jan:     normalizeJANQuery(c.JAN),
		name:    foldText(c.Name),
		brewery: foldText(c.Brewery),
		keyword: foldText(c.Keyword),
		min:     c.MinPrice,
		max:     c.MaxPrice,
		origin:  model.OriginSelector{Mode: c.Origin.Mode, Value: strings.TrimSpace(c.Origin.Value)},
	}
}

func (m matcher) match(p *model.Product, tx *geo.Taxonomy) bool {
	if !p.Visible() {
		return false
	}
	if m.jan != "" && !m.matchJAN(p) {
		return false
	}
	if m.name != "" && !strings.Contains(foldText(p.Name), m.name) {
		return false
	}
	if m.brewery != "" && !strings.Contains(foldText(p.Brewery), m.brewery) {
		return false
	}
	if m.keyword != "" && !m.matchKeyword(p) {
		return false
	}
	if !m.matchOrigin(p.Prefecture, tx) {
		return false
	}
	if !m.matchPrice(p) {
		return false
	}
	return true
}

func (m matcher) matchJAN(p *model.Product) bool {
	for _, code := range p.JANs() {
		if code == "" {
			continue
		}
		if strings.Contains(normalizeJANField(string(code)), m.jan) {
			return true
		}
	}
	return false
}

func (m matcher) matchKeyword(p *model.Product) bool {
	return strings.Contains(foldText(p.Name), m.keyword) ||
		strings.Contains(foldText(p.Prefecture), m.keyword) ||
		strings.Contains(foldText(p.Brewery), m.keyword)
}

func (m matcher) matchOrigin(pref string, tx *geo.Taxonomy) bool {
	switch m.origin.Mode {
	case model.OriginPrefecture:
		return pref == m.origin.Value
	case model.OriginRegion:
		return tx.InRegion(m.origin.Value, pref)
	case model.OriginOther:
		return tx.IsOther(pref)
	default:
		return true
	}
}

// matchPrice passes when either bottle size has a positive price inside the bounds.
// Unpriced records never pass, with or without bounds.
func (m matcher) matchPrice(p *model.Product) bool {
	return m.qualifies(p.Price1800) || m.qualifies(p.Price720)
}

func (m matcher) qualifies(price model.Price) bool {
	if price <= 0 {
		return false
	}
	if m.min != nil && price < *m.min {
		return false
	}
	if m.max != nil && price > *m.max {
		return false
	}
	return true
}
