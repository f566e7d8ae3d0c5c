package model

// Item はカタログ内の1商品。ID はロード時に採番され、フィールドからは導出しない。
type Item struct {
	ID int `json:"id"`
	*Product
	ImageKey string `json:"image_key,omitempty"`
}

// NewItem wraps a product with its catalog identifier.
func NewItem(id int, p *Product) Item {
	return Item{ID: id, Product: p, ImageKey: p.ImageKey()}
}

// CatalogView は再計算1回分の結果
type CatalogView struct {
	Items        []Item  `json:"items"`
	Count        int     `json:"count"`
	VisibleTotal int     `json:"visible_total"`
	SelectedIDs  []int   `json:"selected_ids"`
	Origins      Origins `json:"origins"`
}

// OriginGroup は産地セレクタの1グループ（地方またはその他）
type OriginGroup struct {
	Region      string   `json:"region"`
	Prefectures []string `json:"prefectures"`
	WholeRegion bool     `json:"whole_region"`
	Other       bool     `json:"other,omitempty"`
}

// Origins はカタログに実在する産地だけを並べたセレクタの中身
type Origins struct {
	Policy string        `json:"policy"`
	Groups []OriginGroup `json:"groups"`
}
