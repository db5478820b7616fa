package mealplan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"ingredient-engine/internal/core/ingredient"
	"ingredient-engine/internal/infrastructure/config"
	"ingredient-engine/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(config.MealPlanConfig{BaseURL: srv.URL + "/", Timeout: 2 * time.Second, RetryCount: 2})
}

func TestClient_GetMealPlan(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/meal-plans/week-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "week-1",
			"name": "Week 1",
			"recipes": [{
				"name": "Pancakes",
				"servings": 2,
				"ingredients": ["2 cups flour", {"name": "milk", "quantity": 1, "unit": "cup"}]
			}]
		}`))
	})

	plan, err := c.GetMealPlan(context.Background(), "week-1")
	require.NoError(t, err)
	assert.Equal(t, "Week 1", plan.Name)
	require.Len(t, plan.Recipes, 1)
	assert.Equal(t, 2, plan.Recipes[0].Servings)
	assert.Equal(t, ingredient.Entries{
		ingredient.Raw("2 cups flour"),
		ingredient.Structured{Name: "milk", Quantity: "1", Unit: "cup"},
	}, plan.Recipes[0].Ingredients)
}

func TestClient_GetMealPlan_MissingIDFilledIn(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": "Untitled", "recipes": []}`))
	})

	plan, err := c.GetMealPlan(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", plan.ID)
}

func TestClient_GetMealPlan_NotFound(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	})

	_, err := c.GetMealPlan(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrMealPlanNotFound)
	assert.Equal(t, int32(1), calls.Load(), "404 is not retried")
}

func TestClient_GetMealPlan_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"id": "1", "name": "ok", "recipes": []}`))
	})

	plan, err := c.GetMealPlan(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "ok", plan.Name)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_GetMealPlan_UpstreamError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("database down"))
	})

	_, err := c.GetMealPlan(context.Background(), "1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMealPlanNotFound)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_GetMealPlan_BadBody(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"recipes": [{"ingredients": [true]}]}`))
	})

	_, err := c.GetMealPlan(context.Background(), "1")
	assert.ErrorContains(t, err, "failed to parse meal plan response")
}

func TestClient_GetMealPlan_EmptyID(t *testing.T) {
	t.Parallel()

	c := NewClient(config.MealPlanConfig{BaseURL: "http://127.0.0.1:1"})
	_, err := c.GetMealPlan(context.Background(), " ")
	assert.True(t, common.IsValidationError(err))
}
