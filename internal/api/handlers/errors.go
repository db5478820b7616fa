package handlers

import (
	"context"
	"errors"

	"ingredient-engine/internal/core/ingredient"
	"ingredient-engine/internal/core/mealplan"
	"ingredient-engine/internal/core/shopping"
	"ingredient-engine/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ToCustomError 將服務層錯誤對應到 API 錯誤
func ToCustomError(err error) *common.CustomError {
	var ce *common.CustomError
	switch {
	case errors.As(err, &ce):
		return ce
	case errors.Is(err, ingredient.ErrInvalidScaleFactor):
		return common.ErrInvalidScaleFactor.Wrap(err)
	case errors.Is(err, ingredient.ErrBlankAvailable):
		return common.ErrInvalidRequest.Wrap(err)
	case errors.Is(err, mealplan.ErrMealPlanNotFound):
		return common.ErrMealPlanNotFound.Wrap(err)
	case errors.Is(err, shopping.ErrNoMealPlanSource):
		return common.ErrServiceUnavailable.Wrap(err)
	case errors.Is(err, context.DeadlineExceeded):
		return common.ErrGatewayTimeout.Wrap(err)
	case common.IsValidationError(err):
		return common.ErrInvalidRequest.Wrap(err)
	default:
		return common.ErrInternalError.Wrap(err)
	}
}

// RespondError 記錄並寫入錯誤響應
func RespondError(c *gin.Context, err error) {
	ce := ToCustomError(err)
	if ce.Status >= 500 {
		common.LogError("請求處理失敗", zap.String("code", ce.Code), zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	_ = c.Error(err)
	common.WriteError(c, ce)
}

// BindJSON 解析請求 JSON，失敗時回應 400
func BindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		common.WriteError(c, common.ErrInvalidRequest.Wrap(err))
		return false
	}
	return true
}
