package shopping

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"ingredient-engine/internal/core/cache"
	"ingredient-engine/internal/core/ingredient"
	"ingredient-engine/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	plan  *MealPlan
	err   error
	calls atomic.Int32
}

func (f *fakeSource) GetMealPlan(_ context.Context, id string) (*MealPlan, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	p := *f.plan
	p.ID = id
	return &p, nil
}

func pancakes() Recipe {
	return Recipe{
		Name:     "Pancakes",
		Servings: 2,
		Ingredients: ingredient.Entries{
			ingredient.Raw("2 cups flour"),
			ingredient.Raw("1 cup milk"),
			ingredient.Raw("2 eggs"),
			ingredient.Structured{Name: "butter", Quantity: "1/2", Unit: "tbsp"},
			ingredient.Raw("Salt"),
		},
	}
}

func omelette() Recipe {
	return Recipe{
		Name:     "Omelette",
		Servings: 1,
		Ingredients: ingredient.Entries{
			ingredient.Raw("3 eggs"),
			ingredient.Raw("Milk"),
			ingredient.Raw("1 tomato"),
		},
	}
}

func groupOf(t *testing.T, list *List, c ingredient.Category) Group {
	t.Helper()
	for _, g := range list.Groups {
		if g.Category == c {
			return g
		}
	}
	t.Fatalf("category %q not in list", c)
	return Group{}
}

func TestService_Build(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s := NewService(nil)
	s.now = func() time.Time { return fixed }

	list, err := s.Build(context.Background(), BuildRequest{
		Recipes:   []Recipe{pancakes(), omelette()},
		Available: []string{"salt", "Flour"},
		Language:  "fi",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, list.ID)
	assert.Equal(t, "fi", list.Language)
	assert.Equal(t, fixed, list.CreatedAt)
	assert.Equal(t, []string{"milk", "eggs", "butter", "tomato"}, list.Missing)

	var categories []ingredient.Category
	for _, g := range list.Groups {
		categories = append(categories, g.Category)
	}
	assert.Equal(t, []ingredient.Category{ingredient.CategoryProduce, ingredient.CategoryDairyEggs}, categories)

	dairy := groupOf(t, list, ingredient.CategoryDairyEggs)
	require.Len(t, dairy.Items, 3)
	assert.Equal(t, Item{Name: "milk", DisplayName: "Maito", Quantities: []string{"1 cup"}, Recipes: []string{"Pancakes", "Omelette"}}, dairy.Items[0])
	assert.Equal(t, []string{"2", "3"}, dairy.Items[1].Quantities)
	assert.Equal(t, []string{"1/2 tbsp"}, dairy.Items[2].Quantities)
}

func TestService_Build_Scaled(t *testing.T) {
	t.Parallel()

	s := NewService(nil)
	list, err := s.Build(context.Background(), BuildRequest{
		Recipes:        []Recipe{pancakes()},
		TargetServings: 4,
	})
	require.NoError(t, err)

	got := make(map[string][]string)
	for _, g := range list.Groups {
		for _, it := range g.Items {
			got[it.Name] = it.Quantities
		}
	}
	assert.Equal(t, []string{"4 cups"}, got["flour"])
	assert.Equal(t, []string{"2 cup"}, got["milk"])
	assert.Equal(t, []string{"1 tbsp"}, got["butter"])
	assert.Equal(t, []string{}, got["Salt"])
	assert.Equal(t, ingredient.FallbackLanguage, list.Language)
}

func TestService_Build_Empty(t *testing.T) {
	t.Parallel()

	list, err := NewService(nil).Build(context.Background(), BuildRequest{})
	require.NoError(t, err)
	assert.NotNil(t, list.Groups)
	assert.Empty(t, list.Groups)
	assert.Equal(t, []string{}, list.Missing)
}

func TestService_Build_InvalidTarget(t *testing.T) {
	t.Parallel()

	_, err := NewService(nil).Build(context.Background(), BuildRequest{Recipes: []Recipe{pancakes()}, TargetServings: -1})
	assert.ErrorIs(t, err, ingredient.ErrInvalidScaleFactor)
}

func TestService_ScaleRecipe(t *testing.T) {
	t.Parallel()

	s := NewService(nil)
	got, err := s.ScaleRecipe(pancakes(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"1 cups flour", "0.5 cup milk", "1 eggs", "0.3 tbsp butter", "Salt"}, got)

	_, err = s.ScaleRecipe(pancakes(), 0)
	assert.ErrorIs(t, err, ingredient.ErrInvalidScaleFactor)

	noServings := Recipe{Name: "x", Ingredients: ingredient.Entries{ingredient.Raw("1 cup rice")}}
	got, err = s.ScaleRecipe(noServings, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"3 cup rice"}, got)
}

func TestService_BuildForMealPlan_UsesCache(t *testing.T) {
	t.Parallel()

	store := cache.NewManager(config.CacheConfig{MaxSize: 10, TTL: time.Minute})
	t.Cleanup(func() { _ = store.Close() })

	src := &fakeSource{plan: &MealPlan{Name: "Week 1", Recipes: []Recipe{omelette()}}}
	s := NewService(nil, WithMealPlanSource(src), WithCache(store), WithDefaultLanguage("sv"))

	for i := 0; i < 3; i++ {
		list, err := s.BuildForMealPlan(context.Background(), "plan-1", PlanRequest{Available: []string{"tomato"}})
		require.NoError(t, err)
		assert.Equal(t, "plan-1", list.MealPlanID)
		assert.Equal(t, "sv", list.Language)
		assert.Equal(t, []string{"eggs", "Milk"}, list.Missing)
	}
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestService_BuildForMealPlan_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewService(nil).BuildForMealPlan(context.Background(), "1", PlanRequest{})
	assert.ErrorIs(t, err, ErrNoMealPlanSource)

	upstream := errors.New("boom")
	s := NewService(nil, WithMealPlanSource(&fakeSource{err: upstream}))
	_, err = s.BuildForMealPlan(context.Background(), "1", PlanRequest{})
	assert.ErrorIs(t, err, upstream)
}

func TestService_Stats(t *testing.T) {
	t.Parallel()

	store := cache.NewManager(config.CacheConfig{MaxSize: 10, TTL: time.Minute})
	t.Cleanup(func() { _ = store.Close() })

	src := &fakeSource{plan: &MealPlan{Name: "Week 1", Recipes: []Recipe{omelette()}}}
	s := NewService(nil, WithMealPlanSource(src), WithCache(store))
	ctx := context.Background()

	assert.Equal(t, Stats{}, s.Stats())

	_, err := s.Build(ctx, BuildRequest{Recipes: []Recipe{pancakes()}, Available: []string{"salt"}})
	require.NoError(t, err)
	_, err = s.Build(ctx, BuildRequest{Recipes: []Recipe{pancakes()}, TargetServings: -1})
	require.Error(t, err)

	_, err = s.ScaleRecipe(pancakes(), 4)
	require.NoError(t, err)
	_, err = s.ScaleRecipe(pancakes(), 0)
	require.Error(t, err)

	for i := 0; i < 2; i++ {
		_, err = s.BuildForMealPlan(ctx, "plan-1", PlanRequest{})
		require.NoError(t, err)
	}

	assert.Equal(t, Stats{
		ListsBuilt:      3,
		ItemsListed:     11,
		MissingListed:   10,
		RecipesScaled:   1,
		MealPlanFetches: 1,
		MealPlanHits:    1,
		Failures:        2,
	}, s.Stats())

	failing := NewService(nil, WithMealPlanSource(&fakeSource{err: errors.New("boom")}))
	_, err = failing.BuildForMealPlan(ctx, "1", PlanRequest{})
	require.Error(t, err)
	assert.Equal(t, int64(1), failing.Stats().MealPlanErrors)
	assert.Equal(t, int64(1), failing.Stats().MealPlanFetches)
}

func TestService_ScaleRecipe_EmptyRecipeStillValidatesTarget(t *testing.T) {
	t.Parallel()

	_, err := NewService(nil).ScaleRecipe(Recipe{Name: "empty"}, 0)
	assert.ErrorIs(t, err, ingredient.ErrInvalidScaleFactor)
}

func TestService_BlankAvailableRejected(t *testing.T) {
	t.Parallel()

	src := &fakeSource{plan: &MealPlan{Recipes: []Recipe{omelette()}}}
	s := NewService(nil, WithMealPlanSource(src))

	_, err := s.Build(context.Background(), BuildRequest{Recipes: []Recipe{omelette()}, Available: []string{"milk", " "}})
	assert.ErrorIs(t, err, ingredient.ErrBlankAvailable)

	_, err = s.BuildForMealPlan(context.Background(), "1", PlanRequest{Available: []string{""}})
	assert.ErrorIs(t, err, ingredient.ErrBlankAvailable)
	assert.Equal(t, int32(0), src.calls.Load(), "meal plan is not fetched for an invalid request")
}
