package shopping

import (
	"time"

	"ingredient-engine/internal/core/ingredient"
)

// Recipe 食譜（由外部服務或請求提供）
type Recipe struct {
	ID          string             `json:"id,omitempty"`
	Name        string             `json:"name"`
	Servings    int                `json:"servings"`
	Ingredients ingredient.Entries `json:"ingredients"`
}

// MealPlan 菜單
type MealPlan struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Recipes []Recipe `json:"recipes"`
}

// BuildRequest 產生購物清單的請求
type BuildRequest struct {
	Recipes        []Recipe `json:"recipes"`
	Available      []string `json:"available"`                 // 已有的食材
	Language       string   `json:"language,omitempty"`        // 顯示語言，空字串使用預設
	TargetServings int      `json:"target_servings,omitempty"` // 0 表示不縮放
}

// PlanRequest 依菜單產生購物清單的請求
type PlanRequest struct {
	Available      []string `json:"available"`
	Language       string   `json:"language,omitempty"`
	TargetServings int      `json:"target_servings,omitempty"`
}

// Item 購物清單項目
type Item struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Quantities  []string `json:"quantities"`
	Recipes     []string `json:"recipes,omitempty"`
}

// Group 同一分類的項目
type Group struct {
	Category ingredient.Category `json:"category"`
	Items    []Item              `json:"items"`
}

// List 購物清單
type List struct {
	ID         string    `json:"id"`
	MealPlanID string    `json:"meal_plan_id,omitempty"`
	Language   string    `json:"language"`
	Groups     []Group   `json:"groups"`
	Missing    []string  `json:"missing"`
	CreatedAt  time.Time `json:"created_at"`
}
