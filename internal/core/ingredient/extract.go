package ingredient

import "strings"

// ExtractIngredients 將多行文字（手動輸入或掃描結果）逐行解析，略過空行
func ExtractIngredients(text string) []ParsedQuantity {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	out := make([]ParsedQuantity, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, ParseQuantity(line))
	}
	return out
}
