// Package geo resolves prefectures to the regions used by the origin selector.
package geo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sakecatalog/backend/internal/model"
)

// OtherRegion はどの地方にも属さない産地（海外・不明など）のグループ名
const OtherRegion = "その他"

// Region は地方名と、その地方に属する都道府県（正規順）
type Region struct {
	Name        string
	Prefectures []string
}

// regions は正規の地方テーブル。順序が表示順になる。
var regions = []Region{
	{"北海道", []string{"北海道"}},
	{"東北", []string{"青森", "岩手", "宮城", "秋田", "山形", "福島"}},
	{"関東", []string{"茨城", "栃木", "群馬", "埼玉", "千葉", "東京", "神奈川"}},
	{"甲信越・北陸", []string{"新潟", "富山", "石川", "福井", "山梨", "長野"}},
	{"東海", []string{"岐阜", "静岡", "愛知", "三重"}},
	{"近畿", []string{"滋賀", "京都", "大阪", "兵庫", "奈良", "和歌山"}},
	{"中国", []string{"鳥取", "島根", "岡山", "広島", "山口"}},
	{"四国", []string{"徳島", "香川", "愛媛", "高知"}},
	{"九州・沖縄", []string{"福岡", "佐賀", "長崎", "熊本", "大分", "宮崎", "鹿児島", "沖縄"}},
}

// RegionSelectPolicy decides when a group offers the "whole region" option.
type RegionSelectPolicy string

const (
	// SelectWholeRegionWhenMultiple offers it only when more than one prefecture is present.
	SelectWholeRegionWhenMultiple RegionSelectPolicy = "multiple"
	// SelectWholeRegionAlways offers it for every region (two-step region → prefecture selector).
	SelectWholeRegionAlways RegionSelectPolicy = "always"
)

// ParsePolicy maps a config value to a policy; empty selects the default.
func ParsePolicy(s string) (RegionSelectPolicy, error) {
	switch RegionSelectPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", SelectWholeRegionWhenMultiple:
		return SelectWholeRegionWhenMultiple, nil
	case SelectWholeRegionAlways:
		return SelectWholeRegionAlways, nil
	default:
		return "", fmt.Errorf("geo: unknown region select policy %q", s)
	}
}

// Taxonomy is the static region table plus its reverse index.
type Taxonomy struct {
	policy   RegionSelectPolicy
	regionOf map[string]string
	members  map[string]map[string]struct{}
}

// New builds the reverse index for the canonical table.
func New(policy RegionSelectPolicy) *Taxonomy {
	if policy == "" {
		policy = SelectWholeRegionWhenMultiple
	}
	t := &Taxonomy{
		policy:   policy,
		regionOf: make(map[string]string),
		members:  make(map[string]map[string]struct{}, len(regions)),
	}
	for _, r := range regions {
		set := make(map[string]struct{}, len(r.Prefectures))
		for _, p := range r.Prefectures {
			t.regionOf[p] = r.Name
			set[p] = struct{}{}
		}
		t.members[r.Name] = set
	}
	return t
}

// Policy returns the active whole-region policy.
func (t *Taxonomy) Policy() RegionSelectPolicy { return t.policy }

// Regions returns a copy of the canonical table.
func (t *Taxonomy) Regions() []Region {
	out := make([]Region, len(regions))
	for i, r := range regions {
		out[i] = Region{Name: r.Name, Prefectures: append([]string(nil), r.Prefectures...)}
	}
	return out
}

// RegionOf returns the region a prefecture belongs to.
func (t *Taxonomy) RegionOf(prefecture string) (string, bool) {
	r, ok := t.regionOf[prefecture]
	return r, ok
}

// HasRegion reports whether name is a canonical region.
func (t *Taxonomy) HasRegion(name string) bool {
	_, ok := t.members[name]
	return ok
}

// InRegion reports whether prefecture is a member of region. Unknown regions contain nothing.
func (t *Taxonomy) InRegion(region, prefecture string) bool {
	set, ok := t.members[region]
	if !ok {
		return false
	}
	_, ok = set[prefecture]
	return ok
}

// IsOther reports whether a non-empty prefecture falls outside every region.
func (t *Taxonomy) IsOther(prefecture string) bool {
	if prefecture == "" {
		return false
	}
	_, ok := t.regionOf[prefecture]
	return !ok
}

// Observe groups the prefectures present in the catalog. Regions keep the canonical order and only
// their observed members; the Other bucket comes last, sorted.
func (t *Taxonomy) Observe(prefectures []string) model.Origins {
	present := make(map[string]struct{}, len(prefectures))
	for _, p := range prefectures {
		if p = strings.TrimSpace(p); p != "" {
			present[p] = struct{}{}
		}
	}

	out := model.Origins{Policy: string(t.policy), Groups: []model.OriginGroup{}}
	for _, r := range regions {
		var found []string
		for _, p := range r.Prefectures {
			if _, ok := present[p]; ok {
				found = append(found, p)
				delete(present, p)
			}
		}
		if len(found) == 0 {
			continue
		}
		out.Groups = append(out.Groups, model.OriginGroup{
			Region:      r.Name,
			Prefectures: found,
			WholeRegion: t.policy == SelectWholeRegionAlways || len(found) > 1,
		})
	}

	if len(present) > 0 {
		rest := make([]string, 0, len(present))
		for p := range present {
			rest = append(rest, p)
		}
		sort.Strings(rest)
		out.Groups = append(out.Groups, model.OriginGroup{
			Region:      OtherRegion,
			Prefectures: rest,
			WholeRegion: true,
			Other:       true,
		})
	}
	return out
}
