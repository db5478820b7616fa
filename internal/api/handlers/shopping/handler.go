package shopping

import (
	"net/http"
	"strings"

	"ingredient-engine/internal/api/handlers"
	shoppingService "ingredient-engine/internal/core/shopping"
	"ingredient-engine/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// ScaleRecipeRequest 縮放整份食譜
type ScaleRecipeRequest struct {
	Recipe         shoppingService.Recipe `json:"recipe"`
	TargetServings int                    `json:"target_servings"`
}

// ScaleRecipeResponse 縮放後的食材行
type ScaleRecipeResponse struct {
	Name        string   `json:"name"`
	Servings    int      `json:"servings"`
	Ingredients []string `json:"ingredients"`
}

// Handler 購物清單與食譜 API
type Handler struct {
	service *shoppingService.Service
}

// NewHandler 創建購物清單處理器
func NewHandler(service *shoppingService.Service) *Handler {
	return &Handler{service: service}
}

// Build POST /shopping-lists
func (h *Handler) Build(c *gin.Context) {
	var req shoppingService.BuildRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	list, err := h.service.Build(c.Request.Context(), req)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

// BuildForMealPlan POST /shopping-lists/meal-plans/:id
func (h *Handler) BuildForMealPlan(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req shoppingService.PlanRequest
	if c.Request.ContentLength != 0 {
		if !handlers.BindJSON(c, &req) {
			return
		}
	}

	list, err := h.service.BuildForMealPlan(c.Request.Context(), id, req)
	if err != nil {
		ce := handlers.ToCustomError(err)
		// 其餘錯誤來自菜單服務
		if ce.Code == common.ErrCodeInternalError {
			ce = common.ErrUpstreamError.Wrap(err)
		}
		handlers.RespondError(c, ce)
		return
	}
	c.JSON(http.StatusCreated, list)
}

// ScaleRecipe POST /recipes/scale
func (h *Handler) ScaleRecipe(c *gin.Context) {
	var req ScaleRecipeRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	lines, err := h.service.ScaleRecipe(req.Recipe, req.TargetServings)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ScaleRecipeResponse{
		Name:        req.Recipe.Name,
		Servings:    req.TargetServings,
		Ingredients: lines,
	})
}

// Stats 服務統計，給健康檢查使用
func (h *Handler) Stats() interface{} {
	return h.service.Stats()
}
