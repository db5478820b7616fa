package shopping

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ingredient-engine/internal/core/cache"
	"ingredient-engine/internal/core/ingredient"
	"ingredient-engine/internal/pkg/common"

	"go.uber.org/zap"
)

const mealPlanNamespace = "mealplan"

// ErrNoMealPlanSource 未設定菜單服務
var ErrNoMealPlanSource = errors.New("meal plan source not configured")

// MealPlanSource 取得菜單的外部服務
type MealPlanSource interface {
	GetMealPlan(ctx context.Context, id string) (*MealPlan, error)
}

// Service 購物清單服務
type Service struct {
	translator      ingredient.Translator
	source          MealPlanSource
	cache           cache.Store
	defaultLanguage string
	now             func() time.Time
	stats           counters
}

// Option 設定 Service
type Option func(*Service)

// WithMealPlanSource 設定菜單來源
func WithMealPlanSource(src MealPlanSource) Option {
	return func(s *Service) { s.source = src }
}

// WithCache 設定菜單快取
func WithCache(store cache.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.cache = store
		}
	}
}

// WithDefaultLanguage 設定預設顯示語言
func WithDefaultLanguage(lang string) Option {
	return func(s *Service) {
		if lang != "" {
			s.defaultLanguage = lang
		}
	}
}

// NewService 創建購物清單服務；translator 為 nil 時使用內建翻譯表
func NewService(translator ingredient.Translator, opts ...Option) *Service {
	if translator == nil {
		translator = ingredient.DefaultTranslator()
	}
	s := &Service{
		translator:      translator,
		cache:           cache.NopStore{},
		defaultLanguage: ingredient.FallbackLanguage,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// itemAcc 彙整同一食材在各食譜中的數量
type itemAcc struct {
	name       string
	quantities []string
	recipes    []string
}

// Build 產生購物清單：彙整所有食譜的食材、扣除已有的、依分類排序並翻譯
func (s *Service) Build(ctx context.Context, req BuildRequest) (*List, error) {
	list, err := s.build(req)
	if err != nil {
		s.stats.failures.Add(1)
		return nil, err
	}
	s.stats.listsBuilt.Add(1)
	s.stats.missingListed.Add(int64(len(list.Missing)))
	return list, nil
}

func (s *Service) build(req BuildRequest) (*List, error) {
	if err := ingredient.ValidateAvailable(req.Available); err != nil {
		return nil, err
	}
	if req.TargetServings < 0 {
		return nil, fmt.Errorf("%w: target servings %d", ingredient.ErrInvalidScaleFactor, req.TargetServings)
	}

	lang := req.Language
	if lang == "" {
		lang = s.defaultLanguage
	}

	order := make([]string, 0)
	items := make(map[string]*itemAcc)

	for _, r := range req.Recipes {
		for _, e := range r.Ingredients {
			pq := ingredient.Normalize(e)
			key := ingredient.NameKey(pq.Item)
			if key == "" {
				continue
			}

			acc, ok := items[key]
			if !ok {
				acc = &itemAcc{name: strings.TrimSpace(pq.Item)}
				items[key] = acc
				order = append(order, key)
			}

			qty, err := s.quantityText(pq, r.Servings, req.TargetServings)
			if err != nil {
				return nil, fmt.Errorf("recipe %q: %w", r.Name, err)
			}
			if qty != "" {
				acc.quantities = append(acc.quantities, qty)
			}
			if r.Name != "" && !contains(acc.recipes, r.Name) {
				acc.recipes = append(acc.recipes, r.Name)
			}
		}
	}

	names := make([]string, 0, len(order))
	for _, key := range order {
		names = append(names, items[key].name)
	}
	missing := ingredient.ComputeMissingIngredients(names, req.Available)
	s.stats.itemsListed.Add(int64(len(names)))

	grouped := make(map[ingredient.Category][]Item)
	for _, name := range missing {
		acc := items[ingredient.NameKey(name)]
		category := ingredient.CategorizeIngredient(name)
		grouped[category] = append(grouped[category], Item{
			Name:        name,
			DisplayName: s.translator.Translate(name, lang),
			Quantities:  nonNil(acc.quantities),
			Recipes:     acc.recipes,
		})
	}

	groups := make([]Group, 0, len(grouped))
	for _, c := range ingredient.Categories() {
		if g, ok := grouped[c]; ok {
			groups = append(groups, Group{Category: c, Items: g})
		}
	}

	list := &List{
		ID:        common.GenerateUUID(),
		Language:  lang,
		Groups:    groups,
		Missing:   missing,
		CreatedAt: s.now().UTC(),
	}

	common.LogInfo("購物清單已產生",
		zap.String("list_id", list.ID),
		zap.Int("食譜數量", len(req.Recipes)),
		zap.Int("食材數量", len(names)),
		zap.Int("缺少數量", len(missing)),
		zap.String("language", lang),
	)
	return list, nil
}

// ScaleRecipe 將食譜的每一行食材縮放到 target 份
func (s *Service) ScaleRecipe(recipe Recipe, target int) ([]string, error) {
	if target < 1 {
		s.stats.failures.Add(1)
		return nil, fmt.Errorf("%w: target servings %d", ingredient.ErrInvalidScaleFactor, target)
	}

	lines := make([]string, 0, len(recipe.Ingredients))
	for _, e := range recipe.Ingredients {
		scaled, err := ingredient.ScaleQuantity(ingredient.Normalize(e), servingsOrOne(recipe.Servings), target)
		if err != nil {
			s.stats.failures.Add(1)
			return nil, fmt.Errorf("recipe %q: %w", recipe.Name, err)
		}
		lines = append(lines, scaled)
	}
	s.stats.recipesScaled.Add(1)
	return lines, nil
}

// BuildForMealPlan 取得菜單後產生購物清單
func (s *Service) BuildForMealPlan(ctx context.Context, planID string, req PlanRequest) (*List, error) {
	if err := ingredient.ValidateAvailable(req.Available); err != nil {
		return nil, err
	}
	plan, err := s.mealPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	list, err := s.Build(ctx, BuildRequest{
		Recipes:        plan.Recipes,
		Available:      req.Available,
		Language:       req.Language,
		TargetServings: req.TargetServings,
	})
	if err != nil {
		return nil, err
	}
	list.MealPlanID = plan.ID
	return list, nil
}

// mealPlan 先查快取，未命中時向菜單服務取得並寫回快取
func (s *Service) mealPlan(ctx context.Context, id string) (*MealPlan, error) {
	if s.source == nil {
		return nil, ErrNoMealPlanSource
	}

	cached, err := s.cache.Get(ctx, mealPlanNamespace, id)
	if err == nil {
		var plan MealPlan
		if err := common.ParseJSON(cached, &plan); err == nil {
			s.stats.mealPlanHits.Add(1)
			return &plan, nil
		}
		common.LogWarn("快取的菜單無法解析，重新取得", zap.String("meal_plan_id", id))
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		common.LogWarn("讀取菜單快取失敗", zap.String("meal_plan_id", id), zap.Error(err))
	}

	s.stats.mealPlanFetches.Add(1)
	plan, err := s.source.GetMealPlan(ctx, id)
	if err != nil {
		s.stats.mealPlanErrors.Add(1)
		return nil, err
	}

	if data, err := common.ToJSON(plan); err == nil {
		if err := s.cache.Set(ctx, mealPlanNamespace, id, data); err != nil {
			common.LogWarn("寫入菜單快取失敗", zap.String("meal_plan_id", id), zap.Error(err))
		}
	}
	return plan, nil
}

// quantityText 產生不含名稱的數量字串，例如 "2 cups"
func (s *Service) quantityText(pq ingredient.ParsedQuantity, servings, target int) (string, error) {
	if !pq.HasAmount() {
		return strings.TrimSpace(pq.AmountText + " " + pq.Unit), nil
	}

	pq.Item = ""
	if target == 0 {
		return pq.String(), nil
	}
	return ingredient.ScaleQuantity(pq, servingsOrOne(servings), target)
}

// servingsOrOne 份數未填或無效時視為 1 份
func servingsOrOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
