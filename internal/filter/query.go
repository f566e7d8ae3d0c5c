package filter

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sakecatalog/backend/internal/geo"
	"github.com/sakecatalog/backend/internal/model"
)

var (
	ErrInvalidPrice      = errors.New("filter: invalid price bound")
	ErrConflictingOrigin = errors.New("filter: only one of prefecture, region or other may be set")
	ErrUnknownRegion     = errors.New("filter: unknown region")
)

// regionValuePrefix is the flat-selector encoding of a whole-region choice ("region:東北").
const regionValuePrefix = "region:"

// ParseCriteria decodes search criteria from query parameters:
// jan, name, brewery, q, min_price, max_price, prefecture, region, other.
// prefecture also accepts the flat-selector form "region:<name>".
// Region names are checked against tx; a prefecture given with a region must belong to it.
func ParseCriteria(q url.Values, tx *geo.Taxonomy) (model.FilterCriteria, error) {
	c := model.FilterCriteria{
		JAN:     strings.TrimSpace(q.Get("jan")),
		Name:    strings.TrimSpace(q.Get("name")),
		Brewery: strings.TrimSpace(q.Get("brewery")),
		Keyword: strings.TrimSpace(q.Get("q")),
	}

	var err error
	if c.MinPrice, err = parseBound(q.Get("min_price")); err != nil {
		return model.FilterCriteria{}, err
	}
	if c.MaxPrice, err = parseBound(q.Get("max_price")); err != nil {
		return model.FilterCriteria{}, err
	}

	pref := strings.TrimSpace(q.Get("prefecture"))
	region := strings.TrimSpace(q.Get("region"))
	other := isTrue(q.Get("other"))

	if strings.HasPrefix(pref, regionValuePrefix) {
		if region != "" {
			return model.FilterCriteria{}, ErrConflictingOrigin
		}
		region = strings.TrimPrefix(pref, regionValuePrefix)
		pref = ""
	}

	if region != "" && !tx.HasRegion(region) {
		return model.FilterCriteria{}, fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}

	set := 0
	for _, on := range []bool{pref != "", region != "", other} {
		if on {
			set++
		}
	}
	// two-step selector: region + prefecture narrows to the prefecture
	if set == 2 && pref != "" && region != "" {
		if !tx.InRegion(region, pref) {
			return model.FilterCriteria{}, fmt.Errorf("%w: %s is not in %s", ErrConflictingOrigin, pref, region)
		}
		set = 1
		region = ""
	}
	if set > 1 {
		return model.FilterCriteria{}, ErrConflictingOrigin
	}

	switch {
	case pref != "":
		c.Origin = model.OriginSelector{Mode: model.OriginPrefecture, Value: pref}
	case region != "":
		c.Origin = model.OriginSelector{Mode: model.OriginRegion, Value: region}
	case other:
		c.Origin = model.OriginSelector{Mode: model.OriginOther}
	}
	return c, nil
}

func parseBound(s string) (*model.Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	p, err := model.ParsePrice(s)
	if err != nil || p < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	return &p, nil
}

func isTrue(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
