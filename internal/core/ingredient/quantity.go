package ingredient

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ParsedQuantity 解析後的食材數量
type ParsedQuantity struct {
	Amount     *float64 `json:"amount"`                // 數值，nil 表示沒有數量
	AmountText string   `json:"amount_text,omitempty"` // 原始數量字串，例如 "1/2"
	Unit       string   `json:"unit,omitempty"`        // 單位，空字串表示沒有單位
	Item       string   `json:"item"`                  // 食材名稱
}

// HasAmount 是否包含數量
func (q ParsedQuantity) HasAmount() bool {
	return q.Amount != nil
}

// String 還原為單行文字
func (q ParsedQuantity) String() string {
	if q.Amount == nil {
		return q.Item
	}
	text := q.AmountText
	if text == "" {
		text = FormatAmount(*q.Amount)
	}
	return joinParts(text, q.Unit, q.Item)
}

// 數量 + 可選單位 + 空白 + 其餘文字。
// 帶分數 "2 1/2" 需排在前面，否則會被拆成 amount=2, item="1/2 ..."
var quantityPattern = regexp.MustCompile(`^(\d+\s+\d+/\d+|\d+(?:\.\d+)?(?:/\d+)?)\s*([A-Za-z]+)?\s+(.+)$`)

// ParseQuantity 將自由文字食材行拆成數量、單位與名稱。不符合格式時只回傳名稱。
func ParseQuantity(line string) ParsedQuantity {
	trimmed := strings.TrimSpace(line)

	m := quantityPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return ParsedQuantity{Item: trimmed}
	}

	amount, ok := ParseAmount(m[1])
	if !ok {
		return ParsedQuantity{Item: trimmed}
	}

	return ParsedQuantity{
		Amount:     &amount,
		AmountText: strings.Join(strings.Fields(m[1]), " "),
		Unit:       m[2],
		Item:       strings.TrimSpace(m[3]),
	}
}

// ParseAmount 解析數量字串：整數、小數、分數 a/b 或帶分數 "a b/c"
func ParseAmount(text string) (float64, bool) {
	fields := strings.Fields(text)
	switch len(fields) {
	case 1:
		return parseSimpleAmount(fields[0])
	case 2:
		whole, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil || !strings.Contains(fields[1], "/") {
			return 0, false
		}
		frac, ok := parseSimpleAmount(fields[1])
		if !ok {
			return 0, false
		}
		return float64(whole) + frac, true
	default:
		return 0, false
	}
}

func parseSimpleAmount(token string) (float64, bool) {
	num, den, isFraction := strings.Cut(token, "/")
	if !isFraction {
		v, err := strconv.ParseFloat(token, 64)
		if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, false
		}
		return v, true
	}

	a, err := strconv.ParseFloat(num, 64)
	if err != nil || a < 0 || math.IsInf(a, 0) || math.IsNaN(a) {
		return 0, false
	}
	b, err := strconv.ParseUint(den, 10, 32)
	if err != nil || b == 0 {
		return 0, false
	}
	return a / float64(b), true
}

func joinParts(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
