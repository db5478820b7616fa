package mealplan

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ingredient-engine/internal/core/shopping"
	"ingredient-engine/internal/infrastructure/config"
	"ingredient-engine/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const serviceName = "meal-plan"

// ErrMealPlanNotFound 菜單不存在
var ErrMealPlanNotFound = errors.New("meal plan not found")

// Client 菜單服務客戶端
type Client struct {
	client *resty.Client
}

var _ shopping.MealPlanSource = (*Client)(nil)

// NewClient 創建菜單服務客戶端
func NewClient(cfg config.MealPlanConfig) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "ingredient-engine").
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	return &Client{client: client}
}

// GetMealPlan 取得菜單
func (c *Client) GetMealPlan(ctx context.Context, id string) (*shopping.MealPlan, error) {
	if strings.TrimSpace(id) == "" {
		return nil, common.NewValidationError("meal plan id is required")
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Get("/meal-plans/{id}")
	if err != nil {
		err = fmt.Errorf("failed to send request to meal plan service: %w", err)
		common.LogUpstreamCall(serviceName, "/meal-plans/"+id, time.Since(start), err)
		return nil, err
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		common.LogInfo("菜單不存在", zap.String("meal_plan_id", id))
		return nil, fmt.Errorf("%w: %s", ErrMealPlanNotFound, id)
	case resp.IsError():
		err := fmt.Errorf("meal plan service returned %d: %s", resp.StatusCode(), truncate(resp.String(), 200))
		common.LogUpstreamCall(serviceName, "/meal-plans/"+id, time.Since(start), err)
		return nil, err
	}

	var plan shopping.MealPlan
	if err := common.ParseJSONBytes(resp.Body(), &plan); err != nil {
		return nil, fmt.Errorf("failed to parse meal plan response: %w", err)
	}
	if plan.ID == "" {
		plan.ID = id
	}

	common.LogUpstreamCall(serviceName, "/meal-plans/"+id, time.Since(start), nil)
	return &plan, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
