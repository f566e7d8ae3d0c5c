package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SentinelName は「定番商品なし」を示すプレースホルダ商品名
const SentinelName = "定番商品はございません"

// Product は sake_list.json の1レコード。JSON キーはデータソースの契約なので変更しないこと。
type Product struct {
	Name       string  `json:"商品名"`
	Brewery    string  `json:"蔵元"`
	Prefecture string  `json:"産地"`
	Grade      string  `json:"グレード"`
	Comment    string  `json:"コメント,omitempty"`
	Catch      string  `json:"キャッチ,omitempty"`
	Price1800  Price   `json:"1800mL価格税抜"`
	Price720   Price   `json:"720mL500mL価格税抜"`
	JAN1800    JANCode `json:"1800mL　JAN"`
	JAN720     JANCode `json:"720mL500mLJAN"`
	JAN360     JANCode `json:"360mL300mL180mL　JAN"`
	Hidden     bool    `json:"isHidden,omitempty"`

	// SourceKey はリポジトリ内での行キー（DB の id やファイル内の位置）。ワイヤには出さない。
	SourceKey string `json:"-"`
	// Raw は読み込んだ元のレコード。モデルにないキーを保存時に残すために持つ。
	Raw json.RawMessage `json:"-"`
}

// productKeys are the wire keys owned by Product's fields.
var productKeys = []string{
	"商品名", "蔵元", "産地", "グレード", "コメント", "キャッチ",
	"1800mL価格税抜", "720mL500mL価格税抜",
	"1800mL　JAN", "720mL500mLJAN", "360mL300mL180mL　JAN", "isHidden",
}

// DecodeProduct decodes one wire record and keeps it as Raw.
// A JSON null yields nil.
func DecodeProduct(raw json.RawMessage) (*Product, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var p Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	p.Raw = append(json.RawMessage(nil), raw...)
	return &p, nil
}

// Record returns the wire object to store: keys of Raw that Product does not own,
// plus the current field values.
func (p *Product) Record() (map[string]json.RawMessage, error) {
	rec := map[string]json.RawMessage{}
	if len(p.Raw) > 0 {
		if err := json.Unmarshal(p.Raw, &rec); err != nil {
			return nil, fmt.Errorf("product record: %w", err)
		}
		if rec == nil {
			rec = map[string]json.RawMessage{}
		}
		for _, k := range productKeys {
			delete(rec, k)
		}
	}
	known, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		rec[k] = v
	}
	return rec, nil
}

// Visible reports whether the product may appear in any view or document.
func (p *Product) Visible() bool {
	if p == nil {
		return false
	}
	name := strings.TrimSpace(p.Name)
	if name == "" || strings.Contains(name, SentinelName) {
		return false
	}
	return !p.Hidden
}

// JANs returns the three JAN fields in bottle-size order (1800, 720/500, 360/300/180).
func (p *Product) JANs() [3]JANCode {
	return [3]JANCode{p.JAN1800, p.JAN720, p.JAN360}
}

// ImageKey は画像解決に渡す識別子（720/500mL の JAN）
func (p *Product) ImageKey() string {
	return strings.TrimSpace(string(p.JAN720))
}

// Clone returns a shallow copy that can be mutated independently.
func (p *Product) Clone() *Product {
	c := *p
	return &c
}

// Price は税抜価格（円）。0 は「設定なし」を意味する。
// 数値・数値文字列（カンマ区切り可）・"-"・""・null を受け付ける。
type Price int64

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParsePrice(s)
		if err != nil {
			return err
		}
		*p = v
		return nil
	}
	v, err := priceFromString(string(data))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParsePrice parses a human-entered price. Blank and "-" yield 0.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "円")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "-" {
		return 0, nil
	}
	return priceFromString(s)
}

// maxPrice is the largest float64 that still fits in int64.
const maxPrice = float64(1<<63 - 1024)

var ErrPriceOutOfRange = errors.New("price out of range")

// priceFromString rounds fractional yen to the nearest integer.
func priceFromString(s string) (Price, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("price %q: %w", s, err)
	}
	f = math.Round(f)
	if math.IsNaN(f) || f > maxPrice || f < -maxPrice {
		return 0, fmt.Errorf("price %q: %w", s, ErrPriceOutOfRange)
	}
	return Price(f), nil
}

// JANCode は JAN バーコード。数値で届いても文字列として保持する。
type JANCode string

func (j *JANCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*j = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*j = JANCode(s)
		return nil
	}
	// number literal: keep digits as written
	*j = JANCode(string(data))
	return nil
}
