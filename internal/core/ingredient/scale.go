package ingredient

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidScaleFactor 份量參數不合法（份數 < 1、倍率 <= 0 或非有限數）
var ErrInvalidScaleFactor = errors.New("invalid scale factor")

const wholeEpsilon = 1e-9

// ScaleQuantity 依照份數變化縮放數量，baseServings 與 targetServings 都必須 >= 1
func ScaleQuantity(q ParsedQuantity, baseServings, targetServings int) (string, error) {
	if baseServings < 1 {
		return "", fmt.Errorf("%w: base servings %d", ErrInvalidScaleFactor, baseServings)
	}
	if targetServings < 1 {
		return "", fmt.Errorf("%w: target servings %d", ErrInvalidScaleFactor, targetServings)
	}
	return Scale(q, float64(targetServings)/float64(baseServings))
}

// Scale 以倍率縮放數量並格式化為顯示字串。沒有數量時原樣回傳名稱。
func Scale(q ParsedQuantity, factor float64) (string, error) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return "", fmt.Errorf("%w: %v", ErrInvalidScaleFactor, factor)
	}
	if q.Amount == nil {
		return q.Item, nil
	}
	return joinParts(FormatAmount(*q.Amount*factor), q.Unit, q.Item), nil
}

// FormatAmount 本身是整數（誤差 wholeEpsilon 內）時不顯示小數點，其餘四捨五入到一位小數。
// 整數判斷在四捨五入之前，所以 1.96 顯示為 "2.0"。
func FormatAmount(v float64) string {
	if whole := math.Round(v); math.Abs(v-whole) < wholeEpsilon {
		return strconv.FormatFloat(whole, 'f', 0, 64)
	}
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64)
}
