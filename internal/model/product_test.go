package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestProduct_Visible(t *testing.T) {
	tests := []struct {
		name string
		p    *Product
		want bool
	}{
		{"normal", &Product{Name: "獺祭 純米大吟醸"}, true},
		{"empty name", &Product{Name: ""}, false},
		{"blank name", &Product{Name: "  "}, false},
		{"sentinel", &Product{Name: SentinelName}, false},
		{"sentinel with prefix", &Product{Name: "※" + SentinelName}, false},
		{"hidden", &Product{Name: "久保田", Hidden: true}, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Visible(); got != tt.want {
				t.Errorf("Visible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProduct_UnmarshalWireKeys(t *testing.T) {
	raw := `{
		"商品名": "八海山 特別本醸造",
		"蔵元": "八海醸造",
		"産地": "新潟",
		"グレード": "特別本醸造",
		"コメント": "淡麗辛口",
		"1800mL価格税抜": "2,500",
		"720mL500mL価格税抜": "-",
		"1800mL　JAN": 4901234567890,
		"720mL500mLJAN": "4901234 567891",
		"360mL300mL180mL　JAN": null,
		"isHidden": true
	}`
	var p Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Name != "八海山 特別本醸造" || p.Brewery != "八海醸造" || p.Prefecture != "新潟" {
		t.Errorf("unexpected text fields: %+v", p)
	}
	if p.Price1800 != 2500 {
		t.Errorf("expected Price1800=2500, got %d", p.Price1800)
	}
	if p.Price720 != 0 {
		t.Errorf("expected Price720=0 for \"-\", got %d", p.Price720)
	}
	if p.JAN1800 != "4901234567890" {
		t.Errorf("expected numeric JAN kept as digits, got %q", p.JAN1800)
	}
	if p.JAN720 != "4901234 567891" {
		t.Errorf("unexpected JAN720 %q", p.JAN720)
	}
	if p.JAN360 != "" {
		t.Errorf("expected empty JAN360, got %q", p.JAN360)
	}
	if !p.Hidden {
		t.Error("expected isHidden=true")
	}
}

func TestProduct_MarshalPreservesWireKeys(t *testing.T) {
	p := Product{Name: "N", JAN1800: "1", JAN360: "3", Price1800: 100}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	for _, key := range []string{`"商品名"`, `"1800mL　JAN"`, `"360mL300mL180mL　JAN"`, `"1800mL価格税抜"`} {
		if !strings.Contains(s, key) {
			t.Errorf("expected key %s in %s", key, s)
		}
	}
	if strings.Contains(s, "SourceKey") {
		t.Errorf("source key must not be serialized: %s", s)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    Price
		wantErr bool
	}{
		{"", 0, false},
		{"-", 0, false},
		{"1200", 1200, false},
		{"1,200円", 1200, false},
		{"abc", 0, true},
		{"1650.4", 1650, false},
		{"1650.5", 1651, false},
		{"1e20", 0, true},
		{"NaN", 0, true},
		{"inf", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePrice(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePrice(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePrice(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPrice_UnmarshalRoundsAndRejectsOverflow(t *testing.T) {
	var p Product
	if err := json.Unmarshal([]byte(`{"商品名":"x","1800mL価格税抜":1650.9}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Price1800 != 1651 {
		t.Errorf("expected 1651, got %d", p.Price1800)
	}

	err := json.Unmarshal([]byte(`{"商品名":"x","1800mL価格税抜":1e20}`), &p)
	if !errors.Is(err, ErrPriceOutOfRange) {
		t.Errorf("expected ErrPriceOutOfRange, got %v", err)
	}
}

func TestDecodeProduct_RecordKeepsExtraKeys(t *testing.T) {
	p, err := DecodeProduct(json.RawMessage(`{"商品名":"浦霞","1800mL価格税抜":"2,800","isHidden":true,"備考":"季節限定"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	p.Hidden = false
	rec, err := p.Record()
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if string(rec["備考"]) != `"季節限定"` {
		t.Errorf("extra key lost: %s", rec["備考"])
	}
	if string(rec["1800mL価格税抜"]) != "2800" {
		t.Errorf("expected normalized price, got %s", rec["1800mL価格税抜"])
	}
	if _, ok := rec["isHidden"]; ok {
		t.Error("isHidden should follow the field, not the raw record")
	}

	if p, err := DecodeProduct(json.RawMessage(`null`)); p != nil || err != nil {
		t.Errorf("null record: got %v, %v", p, err)
	}
}
