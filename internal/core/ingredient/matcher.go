package ingredient

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// ErrBlankAvailable 可用清單含空白項目
var ErrBlankAvailable = errors.New("available list contains a blank entry")

// IsIngredientAvailable 判斷所需食材是否已在可用清單中。
// 採雙向子字串比對（不分大小寫），"olive oil" 與 "oil" 互相視為符合；
// 寧可誤判為已有，也不要漏判。
func IsIngredientAvailable(required string, available []string) bool {
	return matchAny(matchForms(required), availableForms(available))
}

// ComputeMissingIngredients 回傳 required 中無法在 available 找到的食材。
// 依 required 的原始順序輸出，相同名稱（不分大小寫）只保留第一次出現的寫法；空名稱不列入。
func ComputeMissingIngredients(required, available []string) []string {
	forms := availableForms(available)

	missing := make([]string, 0, len(required))
	seen := make(map[string]struct{}, len(required))
	for _, name := range required {
		candidates := matchForms(name)
		if len(candidates) == 0 {
			continue
		}
		key := candidates[0]
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if !matchAny(candidates, forms) {
			missing = append(missing, strings.TrimSpace(name))
		}
	}
	return missing
}

// NameKey 回傳彙整用的名稱：去掉括號註記後轉小寫，相同 key 視為同一種食材
func NameKey(name string) string {
	return stripAnnotation(foldCase(strings.TrimSpace(name)))
}

// matchAny 任一 required 形式與任一 available 形式互為子字串即符合；沒有 required 形式表示不需要購買
func matchAny(required, available []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		for _, a := range available {
			if strings.Contains(r, a) || strings.Contains(a, r) {
				return true
			}
		}
	}
	return false
}

// matchForms 第一個是完整名稱（小寫），有括號註記時再加上去掉註記的名稱。
// 註記只會增加符合的機會，不會讓完整名稱原本的比對失效。
func matchForms(name string) []string {
	full := foldCase(strings.TrimSpace(name))
	if full == "" {
		return nil
	}
	if stripped := stripAnnotation(full); stripped != "" && stripped != full {
		return []string{full, stripped}
	}
	return []string{full}
}

// availableForms 展開可用清單；空白項目保留為 ""，它是任何名稱的子字串
func availableForms(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		forms := matchForms(n)
		if len(forms) == 0 {
			forms = []string{""}
		}
		out = append(out, forms...)
	}
	return out
}

// ValidateAvailable 拒絕空白項目：空白項目會讓所有食材都被視為已有，通常是表單漏填
func ValidateAvailable(available []string) error {
	for i, a := range available {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("%w at index %d", ErrBlankAvailable, i)
		}
	}
	return nil
}

// stripAnnotation 去除括號註記，例如 "tomatoes (2 cans)" → "tomatoes"
func stripAnnotation(name string) string {
	if idx := strings.Index(name, "("); idx > 0 {
		name = name[:idx]
	}
	return strings.TrimSpace(name)
}

// foldCase 每次建立新的 Caser：Caser 帶有狀態，不能跨 goroutine 共用
func foldCase(s string) string {
	return cases.Fold().String(s)
}
