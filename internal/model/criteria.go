package model

// OriginMode selects which geographic predicate is active.
type OriginMode string

const (
	OriginNone       OriginMode = ""
	OriginPrefecture OriginMode = "prefecture"
	OriginRegion     OriginMode = "region"
	OriginOther      OriginMode = "other"
)

// OriginSelector は産地条件。Mode ごとに Value の意味が変わる（都道府県名 / 地方名 / 未使用）。
type OriginSelector struct {
	Mode  OriginMode `json:"mode,omitempty"`
	Value string     `json:"value,omitempty"`
}

// FilterCriteria は検索条件のスナップショット。ゼロ値の項目は条件なし。
type FilterCriteria struct {
	JAN      string         `json:"jan,omitempty"`
	Name     string         `json:"name,omitempty"`
	Brewery  string         `json:"brewery,omitempty"`
	Keyword  string         `json:"keyword,omitempty"` // 商品名・産地・蔵元のいずれかに一致
	MinPrice *Price         `json:"min_price,omitempty"`
	MaxPrice *Price         `json:"max_price,omitempty"`
	Origin   OriginSelector `json:"origin"`
}
