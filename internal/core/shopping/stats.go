package shopping

import "sync/atomic"

// Stats 服務統計快照（/health 顯示用）
type Stats struct {
	ListsBuilt      int64 `json:"lists_built"`
	ItemsListed     int64 `json:"items_listed"`
	MissingListed   int64 `json:"missing_listed"`
	RecipesScaled   int64 `json:"recipes_scaled"`
	MealPlanFetches int64 `json:"meal_plan_fetches"`
	MealPlanHits    int64 `json:"meal_plan_cache_hits"`
	MealPlanErrors  int64 `json:"meal_plan_errors"`
	Failures        int64 `json:"failures"`
}

// counters 以原子操作累加，Build 可並行呼叫
type counters struct {
	listsBuilt      atomic.Int64
	itemsListed     atomic.Int64
	missingListed   atomic.Int64
	recipesScaled   atomic.Int64
	mealPlanFetches atomic.Int64
	mealPlanHits    atomic.Int64
	mealPlanErrors  atomic.Int64
	failures        atomic.Int64
}

// Stats 取得目前的統計數據
func (s *Service) Stats() Stats {
	return Stats{
		ListsBuilt:      s.stats.listsBuilt.Load(),
		ItemsListed:     s.stats.itemsListed.Load(),
		MissingListed:   s.stats.missingListed.Load(),
		RecipesScaled:   s.stats.recipesScaled.Load(),
		MealPlanFetches: s.stats.mealPlanFetches.Load(),
		MealPlanHits:    s.stats.mealPlanHits.Load(),
		MealPlanErrors:  s.stats.mealPlanErrors.Load(),
		Failures:        s.stats.failures.Load(),
	}
}
