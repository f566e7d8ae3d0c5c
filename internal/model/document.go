package model

import "time"

// Slot is one cell of a page. Empty slots are explicit so renderers always lay out a full grid.
type Slot struct {
	Item  *Item `json:"item,omitempty"`
	Empty bool  `json:"empty"`
}

// Page は固定枠数の1ページ
type Page struct {
	Index int    `json:"index"` // 1 始まり
	Total int    `json:"total"`
	Slots []Slot `json:"slots"`
}

// Orientation is the paper orientation of a menu.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// GridPlan はメニュー1枚分のグリッド寸法
type GridPlan struct {
	Orientation Orientation `json:"orientation"`
	Count       int         `json:"count"`
	Rows        int         `json:"rows"`
	Columns     int         `json:"columns"`
	Cells       int         `json:"cells"`
	NeedsFiller bool        `json:"needs_filler"`
}

// DocumentKind identifies which printable document is produced.
type DocumentKind string

const (
	DocumentQuotation DocumentKind = "quotation"
	DocumentListing   DocumentKind = "listing"
	DocumentMenu      DocumentKind = "menu"
)

// MenuEntry は販促メニューの1枠。SuggestedPrice は 720/500mL 価格（なければ 0）。
type MenuEntry struct {
	Item           Item  `json:"item"`
	SuggestedPrice Price `json:"suggested_price,omitempty"`
}

// Document はレンダラに渡す印刷用ドキュメント
type Document struct {
	Kind         DocumentKind `json:"kind"`
	Title        string       `json:"title"`
	Addressee    string       `json:"addressee,omitempty"`
	IssuedAt     time.Time    `json:"issued_at"`
	ValidityNote string       `json:"validity_note,omitempty"`

	Pages     []Page `json:"pages,omitempty"`
	Count     int    `json:"count"`
	Total1800 Price  `json:"total_1800"`
	Total720  Price  `json:"total_720"`

	Grid *GridPlan   `json:"grid,omitempty"`
	Menu []MenuEntry `json:"menu,omitempty"`
}

// ExportState is the lifecycle state of the export job.
type ExportState string

const (
	ExportIdle      ExportState = "idle"
	ExportRunning   ExportState = "running"
	ExportSucceeded ExportState = "succeeded"
	ExportFailed    ExportState = "failed"
)

// ExportStatus は直近のエクスポートジョブの状態
type ExportStatus struct {
	JobID      string       `json:"job_id,omitempty"`
	State      ExportState  `json:"state"`
	Kind       DocumentKind `json:"kind,omitempty"`
	StartedAt  *time.Time   `json:"started_at,omitempty"`
	FinishedAt *time.Time   `json:"finished_at,omitempty"`
	URL        string       `json:"url,omitempty"`
	Error      string       `json:"error,omitempty"`
}
