package ingredient

import (
	"encoding/json"
	"net/http"
	"strings"

	"ingredient-engine/internal/api/handlers"
	"ingredient-engine/internal/core/ingredient"
	"ingredient-engine/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Handler 食材相關 API
type Handler struct {
	translator      ingredient.Translator
	defaultLanguage string
}

// NewHandler 創建食材處理器
func NewHandler(translator ingredient.Translator, defaultLanguage string) *Handler {
	if translator == nil {
		translator = ingredient.DefaultTranslator()
	}
	if defaultLanguage == "" {
		defaultLanguage = ingredient.FallbackLanguage
	}
	return &Handler{translator: translator, defaultLanguage: defaultLanguage}
}

// ParseRequest 解析單行食材
type ParseRequest struct {
	Line string `json:"line"`
}

// ExtractRequest 從多行文字擷取食材
type ExtractRequest struct {
	Text string `json:"text"`
}

// ExtractResponse 擷取結果
type ExtractResponse struct {
	Ingredients []ingredient.ParsedQuantity `json:"ingredients"`
}

// ScaleRequest 縮放食材；line 與 ingredient 擇一
type ScaleRequest struct {
	Line           string          `json:"line"`
	Ingredient     json.RawMessage `json:"ingredient"`
	BaseServings   int             `json:"base_servings"`
	TargetServings int             `json:"target_servings"`
}

// ScaleResponse 縮放結果
type ScaleResponse struct {
	Scaled string `json:"scaled"`
}

// AvailabilityRequest 查詢單一食材是否已有
type AvailabilityRequest struct {
	Required  string   `json:"required"`
	Available []string `json:"available"`
}

// MissingRequest 計算缺少的食材
type MissingRequest struct {
	Required  []string `json:"required"`
	Available []string `json:"available"`
}

// Parse POST /ingredients/parse
func (h *Handler) Parse(c *gin.Context) {
	var req ParseRequest
	if !handlers.BindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, ingredient.ParseQuantity(req.Line))
}

// Extract POST /ingredients/extract
func (h *Handler) Extract(c *gin.Context) {
	var req ExtractRequest
	if !handlers.BindJSON(c, &req) {
		return
	}
	found := ingredient.ExtractIngredients(req.Text)
	if found == nil {
		found = []ingredient.ParsedQuantity{}
	}
	c.JSON(http.StatusOK, ExtractResponse{Ingredients: found})
}

// Scale POST /ingredients/scale
func (h *Handler) Scale(c *gin.Context) {
	var req ScaleRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	entry, err := req.entry()
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	scaled, err := ingredient.ScaleQuantity(ingredient.Normalize(entry), req.BaseServings, req.TargetServings)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ScaleResponse{Scaled: scaled})
}

func (r ScaleRequest) entry() (ingredient.Entry, error) {
	if r.Line != "" || len(r.Ingredient) == 0 || string(r.Ingredient) == "null" {
		return ingredient.Raw(r.Line), nil
	}
	e, err := ingredient.DecodeEntry(r.Ingredient)
	if err != nil {
		return nil, common.NewValidationError("invalid ingredient: " + err.Error())
	}
	return e, nil
}

// Availability POST /ingredients/availability
func (h *Handler) Availability(c *gin.Context) {
	var req AvailabilityRequest
	if !handlers.BindJSON(c, &req) {
		return
	}
	if err := ingredient.ValidateAvailable(req.Available); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"required":  req.Required,
		"available": ingredient.IsIngredientAvailable(req.Required, req.Available),
	})
}

// Missing POST /ingredients/missing
func (h *Handler) Missing(c *gin.Context) {
	var req MissingRequest
	if !handlers.BindJSON(c, &req) {
		return
	}
	if err := ingredient.ValidateAvailable(req.Available); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"missing": ingredient.ComputeMissingIngredients(req.Required, req.Available),
	})
}

// Category GET /ingredients/category?name=
func (h *Handler) Category(c *gin.Context) {
	name := c.Query("name")
	c.JSON(http.StatusOK, gin.H{
		"name":     name,
		"category": ingredient.CategorizeIngredient(name),
	})
}

// Categories GET /ingredients/categories
func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": ingredient.Categories()})
}

// Translate GET /ingredients/translate?name=&lang=
func (h *Handler) Translate(c *gin.Context) {
	name := c.Query("name")
	if strings.TrimSpace(name) == "" {
		common.WriteError(c, common.ErrInvalidRequest.Wrap(common.NewValidationError("name is required")))
		return
	}
	lang := c.DefaultQuery("lang", h.defaultLanguage)

	c.JSON(http.StatusOK, gin.H{
		"name":        name,
		"language":    lang,
		"translation": h.translator.Translate(name, lang),
	})
}
