package layout

import (
	"errors"
	"strings"

	"github.com/sakecatalog/backend/internal/model"
)

// MaxGridItems is the largest selection a one-page menu can hold.
const MaxGridItems = model.MaxSelection

var (
	ErrInvalidCount       = errors.New("layout: menu item count must be between 1 and 10")
	ErrInvalidOrientation = errors.New("layout: orientation must be portrait or landscape")
)

// ParseOrientation accepts "portrait" or "landscape"; empty means portrait.
func ParseOrientation(s string) (model.Orientation, error) {
	switch model.Orientation(strings.ToLower(strings.TrimSpace(s))) {
	case "", model.Portrait:
		return model.Portrait, nil
	case model.Landscape:
		return model.Landscape, nil
	default:
		return "", ErrInvalidOrientation
	}
}

// PlanGrid lays out count menu cards on one A4 sheet.
//
// Up to two cards sit in a single line (a row in landscape, a column in portrait). Beyond that
// the sheet is two lines deep and the count is rounded up to even; the odd cell left over holds
// a decorative filler.
func PlanGrid(count int, o model.Orientation) (model.GridPlan, error) {
	if count < 1 || count > MaxGridItems {
		return model.GridPlan{}, ErrInvalidCount
	}
	if o != model.Portrait && o != model.Landscape {
		return model.GridPlan{}, ErrInvalidOrientation
	}

	short, long := 1, count
	if count > 2 {
		slots := count + count%2
		short, long = 2, slots/2
	}

	plan := model.GridPlan{Orientation: o, Count: count, NeedsFiller: count%2 == 1}
	if o == model.Landscape {
		plan.Rows, plan.Columns = short, long
	} else {
		plan.Rows, plan.Columns = long, short
	}
	plan.Cells = plan.Rows * plan.Columns
	return plan, nil
}
