package ingredient

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// FallbackLanguage 找不到指定語言時使用的語言
const FallbackLanguage = "en"

//go:embed data/translations.yaml
var defaultTableYAML []byte

// Translator 食材名稱翻譯介面
type Translator interface {
	Translate(name, lang string) string
}

// TableTranslator 以靜態對照表翻譯食材名稱，建立後不可變更，可並行使用
type TableTranslator struct {
	entries map[string]map[string]string // 正規化英文名稱 -> 語言 -> 顯示名稱
}

// NewTableTranslator 從 YAML 對照表建立翻譯器
func NewTableTranslator(data []byte) (*TableTranslator, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse translation table: %w", err)
	}

	entries := make(map[string]map[string]string, len(raw))
	for name, byLang := range raw {
		key := foldCase(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		langs := make(map[string]string, len(byLang))
		for code, display := range byLang {
			if display = strings.TrimSpace(display); display != "" {
				langs[normalizeLanguage(code)] = display
			}
		}
		entries[key] = langs
	}
	return &TableTranslator{entries: entries}, nil
}

// LoadTableTranslator 從檔案載入對照表
func LoadTableTranslator(path string) (*TableTranslator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read translation table: %w", err)
	}
	return NewTableTranslator(data)
}

// Translate 依序嘗試：指定語言 -> 英文 -> 原始名稱
func (t *TableTranslator) Translate(name, lang string) string {
	byLang, ok := t.entries[foldCase(strings.TrimSpace(name))]
	if !ok {
		return name
	}
	if display, ok := byLang[normalizeLanguage(lang)]; ok {
		return display
	}
	if display, ok := byLang[FallbackLanguage]; ok {
		return display
	}
	return name
}

// Len 對照表項目數
func (t *TableTranslator) Len() int {
	return len(t.entries)
}

var (
	defaultTranslator     *TableTranslator
	defaultTranslatorOnce sync.Once
)

// DefaultTranslator 內建對照表，第一次使用時載入
func DefaultTranslator() *TableTranslator {
	defaultTranslatorOnce.Do(func() {
		t, err := NewTableTranslator(defaultTableYAML)
		if err != nil {
			// 內建資料隨程式編譯，解析失敗代表打包錯誤
			panic(err)
		}
		defaultTranslator = t
	})
	return defaultTranslator
}

// TranslateIngredientName 使用內建對照表翻譯食材名稱
func TranslateIngredientName(name, lang string) string {
	return DefaultTranslator().Translate(name, lang)
}

// normalizeLanguage 將 "fi-FI"、"FI" 等語言標籤轉為基本語言代碼
func normalizeLanguage(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToLower(code)
	}
	base, _ := tag.Base()
	return base.String()
}
