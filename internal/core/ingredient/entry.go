package ingredient

import (
	"encoding/json"
	"fmt"
	"strings"

	"ingredient-engine/internal/pkg/common"
)

// Entry 食譜中的一筆食材：純文字 Raw 或已拆好欄位的 Structured
type Entry interface {
	isEntry()
}

// Raw 未解析的食材文字，例如 "2 cups flour"
type Raw string

// Structured 已結構化的食材 {name, quantity, unit}
type Structured struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

func (Raw) isEntry()        {}
func (Structured) isEntry() {}

// Normalize 將任一種食材條目轉為 ParsedQuantity；結構化條目不再做文字解析
func Normalize(e Entry) ParsedQuantity {
	switch v := e.(type) {
	case Raw:
		return ParseQuantity(string(v))
	case Structured:
		q := ParsedQuantity{
			Unit: strings.TrimSpace(v.Unit),
			Item: strings.TrimSpace(v.Name),
		}
		text := strings.TrimSpace(v.Quantity)
		if text == "" {
			return q
		}
		if amount, ok := ParseAmount(text); ok {
			q.Amount = &amount
		}
		q.AmountText = text
		return q
	default:
		return ParsedQuantity{}
	}
}

// Entries 食材列表，JSON 可混合字串與 {name, quantity, unit} 物件
type Entries []Entry

// Names 回傳每筆食材的名稱
func (es Entries) Names() []string {
	names := make([]string, 0, len(es))
	for _, e := range es {
		names = append(names, Normalize(e).Item)
	}
	return names
}

// UnmarshalJSON 依照元素型別解碼
func (es *Entries) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := common.ParseJSONBytes(data, &items); err != nil {
		return fmt.Errorf("ingredients must be an array: %w", err)
	}

	out := make(Entries, 0, len(items))
	for i, item := range items {
		e, err := decodeEntry(item)
		if err != nil {
			return fmt.Errorf("ingredient %d: %w", i, err)
		}
		out = append(out, e)
	}
	*es = out
	return nil
}

// MarshalJSON Raw 輸出為字串，Structured 輸出為物件
func (es Entries) MarshalJSON() ([]byte, error) {
	items := make([]interface{}, 0, len(es))
	for _, e := range es {
		switch v := e.(type) {
		case Raw:
			items = append(items, string(v))
		case Structured:
			items = append(items, v)
		}
	}
	return json.Marshal(items)
}

// DecodeEntry 解析單一食材：JSON 字串或 {name, quantity, unit} 物件
func DecodeEntry(data []byte) (Entry, error) {
	return decodeEntry(data)
}

func decodeEntry(data json.RawMessage) (Entry, error) {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		return Raw(text), nil
	}

	var obj struct {
		Name     string      `json:"name"`
		Quantity interface{} `json:"quantity"`
		Unit     *string     `json:"unit"`
	}
	if err := common.ParseJSONBytes(data, &obj); err != nil {
		return nil, fmt.Errorf("expected string or object: %w", err)
	}

	s := Structured{Name: obj.Name}
	switch q := obj.Quantity.(type) {
	case nil:
	case string:
		s.Quantity = q
	case json.Number:
		s.Quantity = q.String()
	default:
		return nil, fmt.Errorf("unsupported quantity type %T", q)
	}
	if obj.Unit != nil {
		s.Unit = *obj.Unit
	}
	return s, nil
}
